package intern

import (
	"context"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
)

// InternRepository is the persistence contract for intern records.
// Lookups that find nothing return ErrInternNotFound.
type InternRepository interface {
	FindByID(ctx context.Context, id string) (Intern, error)
	FindByLinkedUser(ctx context.Context, userID string) (Intern, error)
	FindByMentor(ctx context.Context, mentorID string) ([]Intern, error)

	// List returns the page of interns matching filter, narrowed to scope, and the total match count.
	List(ctx context.Context, filter InternFilter, scope access.Scope) ([]Intern, int64, error)

	Create(ctx context.Context, newIntern Intern) (Intern, error)
	Update(ctx context.Context, updated Intern) (Intern, error)
	Delete(ctx context.Context, id string) error

	// DeleteByStatuses removes every intern in one of statuses and returns how many were removed.
	DeleteByStatuses(ctx context.Context, statuses []Status) (int64, error)
}
