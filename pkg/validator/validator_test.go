package validator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Username string `json:"username" validate:"required,max=8"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=Admin Vendor Customer"`
	Note     string `validate:"omitempty,min=3"`
	Secret   string `json:"-" validate:"omitempty,min=2"`
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	return valErr.Fields()
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(loginBody{Username: "alice", Role: "Vendor"}))
	assert.NoError(t, Validate(loginBody{Username: "alice"}))
}

func TestValidate_FieldsUseJSONNames(t *testing.T) {
	err := Validate(loginBody{Role: "vendor", Note: "x"})

	fields := fieldsOf(t, err)
	assert.Equal(t, "is required", fields["username"])
	assert.Equal(t, "must be one of: Admin Vendor Customer", fields["role"])
	assert.Equal(t, "must be at least 3 characters", fields["Note"])
	assert.NotContains(t, fields, "Username")
}

func TestValidate_Messages(t *testing.T) {
	fields := fieldsOf(t, Validate(loginBody{Username: "much-too-long"}))
	assert.Equal(t, "must be at most 8 characters", fields["username"])

	err := Validate(loginBody{Username: "alice", Role: "Root"})
	assert.Equal(t, "field 'role' must be one of: Admin Vendor Customer", err.Error())
}

func TestValidate_UnknownTagMessage(t *testing.T) {
	type odd struct {
		Email string `json:"email" validate:"email"`
	}
	fields := fieldsOf(t, Validate(odd{Email: "nope"}))
	assert.Equal(t, "failed on 'email' validation", fields["email"])
}

func TestValidate_NonStruct(t *testing.T) {
	err := Validate("not a struct")
	require.Error(t, err)

	var valErr *ValidationError
	assert.False(t, errors.As(err, &valErr))
}

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(body))
}

func TestDecodeAndValidate(t *testing.T) {
	var dst loginBody
	require.NoError(t, DecodeAndValidate(newRequest(`{"username":"bob","role":"Admin"}`), &dst))
	assert.Equal(t, "bob", dst.Username)
	assert.Equal(t, "Admin", dst.Role)
}

func TestDecodeAndValidate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		validation bool
	}{
		{"malformed", `{"username":`, false},
		{"empty", ``, false},
		{"trailing data", `{"username":"bob"} {"username":"eve"}`, false},
		{"too large", `{"username":"` + strings.Repeat("a", MaxBodyBytes) + `"}`, false},
		{"fails validation", `{"role":"Admin"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst loginBody
			err := DecodeAndValidate(newRequest(tt.body), &dst)
			require.Error(t, err)

			var valErr *ValidationError
			assert.Equal(t, tt.validation, errors.As(err, &valErr))
		})
	}
}
