package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantmail/core/validator"
)

type server struct {
	Host string `json:"host" validate:"required,hostname_rfc1123|ip"`
	Port int    `json:"port" validate:"min=1,max=65535"`
	From string `json:"from" validate:"required,mailbox"`
	Note string `validate:"max=5"`
}

func validServer() server {
	return server{Host: "smtp.example.com", Port: 587, From: "Acme <noreply@example.com>"}
}

func TestStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*server)
		field   string
		message string
	}{
		{name: "valid", mutate: func(*server) {}},
		{name: "ip host", mutate: func(s *server) { s.Host = "127.0.0.1" }},
		{name: "bare from", mutate: func(s *server) { s.From = "noreply@example.com" }},
		{name: "blank host", mutate: func(s *server) { s.Host = " " }, field: "host", message: "host must be a valid hostname or IP address"},
		{name: "missing host", mutate: func(s *server) { s.Host = "" }, field: "host"},
		{name: "port zero", mutate: func(s *server) { s.Port = 0 }, field: "port"},
		{name: "port too large", mutate: func(s *server) { s.Port = 65536 }, field: "port"},
		{name: "bad from", mutate: func(s *server) { s.From = "not an address" }, field: "from", message: "from must be a valid email address"},
		{name: "field without json tag", mutate: func(s *server) { s.Note = "too long" }, field: "Note"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := validServer()
			tt.mutate(&s)

			err := validator.Struct(s)
			if tt.field == "" {
				require.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Contains(t, verrs, tt.field)
			assert.Len(t, verrs, 1)
			if tt.message != "" {
				assert.Equal(t, tt.message, verrs[tt.field])
			}
		})
	}
}

func TestStructExcept(t *testing.T) {
	t.Parallel()

	s := validServer()
	s.From = ""

	require.Error(t, validator.Struct(s))
	require.NoError(t, validator.StructExcept(s, "From"))
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "validation error", validator.ValidationErrors{}.Error())
	assert.Equal(t, "a is bad; b is bad", validator.ValidationErrors{"b": "b is bad", "a": "a is bad"}.Error())
}

func TestNew(t *testing.T) {
	t.Parallel()

	v, err := validator.New()
	require.NoError(t, err)

	s := validServer()
	s.Port = -1
	err = v.Struct(s)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["port"], "port")
}
