// Package validator validates structs by their `validate` tags using
// github.com/go-playground/validator/v10, with English messages keyed by
// the fields' json names.
//
// Besides the built-in tags it adds:
//
//   - mailbox: an RFC 5322 address, display name allowed ("Acme <noreply@example.com>")
//
// Usage:
//
//	type Input struct {
//		Host string `json:"host" validate:"required,hostname_rfc1123|ip"`
//		Port int    `json:"port" validate:"min=1,max=65535"`
//		From string `json:"from" validate:"required,mailbox"`
//	}
//
//	if err := validator.Struct(in); err != nil {
//		var verrs validator.ValidationErrors
//		if errors.As(err, &verrs) {
//			// verrs["port"] == "port must be 1 or greater"
//		}
//	}
//
// StructExcept skips fields by their Go names, e.g. StructExcept(in, "From").
package validator
