package access

import "context"

type Role string

const (
	RoleAdmin  Role = "admin"  // Full access to every intern and record
	RoleMentor Role = "mentor" // Manages attendance of the interns assigned to them
	RoleIntern Role = "intern" // Read-only access to their own data
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMentor, RoleIntern:
		return true
	default:
		return false
	}
}

// Principal is the authenticated actor making a request.
type Principal struct {
	ID    string
	Email string
	Role  Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type principalContextKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext returns the principal resolved by the auth middleware.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	if !ok || p.ID == "" || !p.Role.Valid() {
		return Principal{}, ErrUnauthenticated
	}
	return p, nil
}
