package tenantmail

import "errors"

var (
	ErrTenantNotFound     = errors.New("tenantmail: smtp settings not found for tenant")
	ErrInvalidSettings    = errors.New("tenantmail: invalid smtp settings")
	ErrVerificationFailed = errors.New("tenantmail: smtp settings failed verification")
	ErrInvalidAppKey      = errors.New("tenantmail: app key must be base64 of 32 bytes")
)
