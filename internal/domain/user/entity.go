package user

import (
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         access.Role
	Department   *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal returns the identity the access policy evaluates for u.
func (u User) Principal() access.Principal {
	return access.Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

func (u User) IsMentor() bool {
	return u.Role == access.RoleMentor
}
