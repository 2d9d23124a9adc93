package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/handler/http/response"
)

// RequireRole admits principals holding one of roles. It is a coarse route gate; services still
// decide every request through access.Policy. It must run after AuthRequired.
func RequireRole(roles ...access.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := access.PrincipalFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, fmt.Sprintf("Insufficient permissions: role '%s' cannot access this resource", p.Role))
		})
	}
}
