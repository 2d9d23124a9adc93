package user

import (
	"context"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ListByRole(ctx context.Context, role access.Role, activeOnly bool) ([]User, error)
}
