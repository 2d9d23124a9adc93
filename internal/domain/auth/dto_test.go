package auth

import (
	"strings"
	"testing"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        LoginRequest
		wantFields []string
	}{
		{"valid", LoginRequest{Email: "  Mia@Example.COM ", Password: "password123"}, nil},
		{"missing both", LoginRequest{}, []string{"email", "password"}},
		{"malformed email", LoginRequest{Email: "mia@", Password: "password123"}, []string{"email"}},
		{"short password", LoginRequest{Email: "mia@example.com", Password: "short"}, []string{"password"}},
		{"long password", LoginRequest{Email: "mia@example.com", Password: strings.Repeat("p", 256)}, []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var vErrs validator.ValidationErrors
			require.ErrorAs(t, err, &vErrs)
			assert.Len(t, vErrs, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, vErrs.ToMap(), f)
			}
		})
	}
}

func TestLoginRequest_NormalizesEmail(t *testing.T) {
	req := LoginRequest{Email: "  Mia@Example.COM ", Password: "password123"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "mia@example.com", req.Email)
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{Name: "Mia", Email: "mia@example.com", Password: "password123", ConfirmPassword: "password123"}
	assert.NoError(t, valid.Validate())

	mismatch := valid
	mismatch.ConfirmPassword = "password124"
	var vErrs validator.ValidationErrors
	require.ErrorAs(t, mismatch.Validate(), &vErrs)
	assert.Equal(t, map[string]string{"confirm_password": "password and confirm_password do not match"}, vErrs.ToMap())

	noName := valid
	noName.Name = "   "
	require.ErrorAs(t, noName.Validate(), &vErrs)
	assert.Contains(t, vErrs.ToMap(), "name")
}

func TestRefreshTokenRequest_Validate(t *testing.T) {
	assert.Error(t, (&RefreshTokenRequest{RefreshToken: "  "}).Validate())
	assert.Error(t, (&RefreshTokenRequest{RefreshToken: strings.Repeat("t", 2049)}).Validate())

	req := RefreshTokenRequest{RefreshToken: " abc "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "abc", req.RefreshToken)
}
