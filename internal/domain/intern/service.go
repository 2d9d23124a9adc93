package intern

import "context"

// InternService defines intern management. Every method reads the acting principal from ctx.
type InternService interface {
	Create(ctx context.Context, req CreateInternRequest) (InternResponse, error)
	Promote(ctx context.Context, req PromoteInternRequest) (InternResponse, error)
	Get(ctx context.Context, id string) (InternResponse, error)
	List(ctx context.Context, filter InternFilter) (ListInternResponse, error)
	// Mentees returns the interns mentored by the acting principal, who must be a mentor.
	Mentees(ctx context.Context) ([]InternResponse, error)
	Update(ctx context.Context, req UpdateInternRequest) (InternResponse, error)
	UpdateProgress(ctx context.Context, req UpdateProgressRequest) (InternResponse, error)
	Delete(ctx context.Context, id string) error
	Cleanup(ctx context.Context) (CleanupResponse, error)
}
