package auth

import (
	"strings"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)

	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}
	errs = append(errs, checkEmail(r.Email)...)
	errs = append(errs, checkPassword(r.Password)...)

	switch {
	case validator.IsEmpty(r.ConfirmPassword):
		errs = append(errs, validator.ValidationError{Field: "confirm_password", Message: "confirm_password is required"})
	case r.ConfirmPassword != r.Password:
		errs = append(errs, validator.ValidationError{Field: "confirm_password", Message: "password and confirm_password do not match"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = normalizeEmail(r.Email)

	errs := append(checkEmail(r.Email), checkPassword(r.Password)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkEmail reports at most one problem with an already normalized email.
func checkEmail(email string) validator.ValidationErrors {
	var msg string
	switch {
	case email == "":
		msg = "email is required"
	case len(email) > 254:
		msg = "email must not exceed 254 characters"
	case !validator.IsValidEmail(email):
		msg = "email must be a valid email address, e.g. user@example.com"
	default:
		return nil
	}
	return validator.ValidationErrors{{Field: "email", Message: msg}}
}

func checkPassword(password string) validator.ValidationErrors {
	var msg string
	switch {
	case validator.IsEmpty(password):
		msg = "password is required"
	case len(password) < 8:
		msg = "password must be at least 8 characters long"
	case len(password) > 255:
		msg = "password must not exceed 255 characters"
	default:
		return nil
	}
	return validator.ValidationErrors{{Field: "password", Message: msg}}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	r.RefreshToken = strings.TrimSpace(r.RefreshToken)
	switch {
	case r.RefreshToken == "":
		return validator.ValidationErrors{{Field: "refresh_token", Message: "refresh_token is required"}}
	case len(r.RefreshToken) > 2048:
		return validator.ValidationErrors{{Field: "refresh_token", Message: "refresh_token must not exceed 2048 characters"}}
	}
	return nil
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
