package user

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
	}
}

// Me implements user.UserService.
func (s *UserServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, p.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// ListMentors implements user.UserService.
func (s *UserServiceImpl) ListMentors(ctx context.Context) ([]user.UserResponse, error) {
	if err := requireAdmin(ctx, "list mentors"); err != nil {
		return nil, err
	}

	mentors, err := s.UserRepository.ListByRole(ctx, access.RoleMentor, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}

	resp := make([]user.UserResponse, 0, len(mentors))
	for _, m := range mentors {
		resp = append(resp, user.ToResponse(m))
	}
	return resp, nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := requireAdmin(ctx, "create users"); err != nil {
		return user.UserResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         access.Role(req.Role),
		Department:   req.Department,
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(created), nil
}

func requireAdmin(ctx context.Context, action string) error {
	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	if !p.IsAdmin() {
		return fmt.Errorf("%s as %s: %w", action, p.Role, access.ErrForbidden)
	}
	return nil
}
