package user

import "context"

type UserService interface {
	// Me returns the profile of the principal in ctx.
	Me(ctx context.Context) (UserResponse, error)
	ListMentors(ctx context.Context) ([]UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
}
