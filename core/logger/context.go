package logger

import (
	"context"
	"log/slog"
)

type tenantIDKey struct{}

// WithTenantID returns a copy of ctx that carries the tenant ID for
// TenantFromContext.
func WithTenantID(ctx context.Context, id any) context.Context {
	return context.WithValue(ctx, tenantIDKey{}, id)
}

// TenantFromContext is a ContextExtractor that logs the tenant set by
// WithTenantID as tenant_id.
func TenantFromContext(ctx context.Context) (slog.Attr, bool) {
	id := ctx.Value(tenantIDKey{})
	if id == nil {
		return slog.Attr{}, false
	}
	return TenantID(id), true
}
