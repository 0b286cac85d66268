package validator

import (
	"errors"
	"net/mail"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// ErrTranslatorNotFound indicates the English translator could not be created.
var ErrTranslatorNotFound = errors.New("validator: translator not found")

// ValidationErrors maps a field name to a readable message.
// Field names follow the struct's json tags.
type ValidationErrors map[string]string

// Error implements the error interface. Fields are listed in name order.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation error"
	}

	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, e[f])
	}
	return strings.Join(parts, "; ")
}

// Validator validates structs by their `validate` tags.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a Validator with English messages and the package's extra rules.
func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	if err := registerRules(validate, trans); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, translator: trans}, nil
}

// Struct validates every field of s.
func (v *Validator) Struct(s any) error {
	return v.translate(v.validate.Struct(s))
}

// StructExcept validates s, skipping the named fields.
func (v *Validator) StructExcept(s any, fields ...string) error {
	return v.translate(v.validate.StructExcept(s, fields...))
}

func (v *Validator) translate(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = fe.Translate(v.translator)
	}
	return out
}

var std = sync.OnceValues(New)

// Struct validates s with the shared Validator.
func Struct(s any) error {
	v, err := std()
	if err != nil {
		return err
	}
	return v.Struct(s)
}

// StructExcept validates s with the shared Validator, skipping the named fields.
func StructExcept(s any, fields ...string) error {
	v, err := std()
	if err != nil {
		return err
	}
	return v.StructExcept(s, fields...)
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// rule is a tag the package adds on top of validator's built-ins.
type rule struct {
	tag     string
	message string
	fn      validator.Func
}

var rules = []rule{
	{
		// An RFC 5322 address, optionally with a display name.
		tag:     "mailbox",
		message: "{0} must be a valid email address",
		fn: func(fl validator.FieldLevel) bool {
			_, err := mail.ParseAddress(fl.Field().String())
			return err == nil
		},
	},
	{
		tag:     "hostname_rfc1123|ip",
		message: "{0} must be a valid hostname or IP address",
	},
}

func registerRules(validate *validator.Validate, trans ut.Translator) error {
	for _, r := range rules {
		if r.fn != nil {
			if err := validate.RegisterValidation(r.tag, r.fn); err != nil {
				return err
			}
		}
		err := validate.RegisterTranslation(r.tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(r.tag, r.message, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, err := ut.T(fe.Tag(), fe.Field())
				if err != nil {
					return fe.Error()
				}
				return msg
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}
