package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
)

// AdminOnly admits administrators only.
func AdminOnly(next http.Handler) http.Handler {
	return RequireRole(access.RoleAdmin)(next)
}
