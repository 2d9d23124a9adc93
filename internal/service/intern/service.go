package intern

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/intern"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/repository/postgresql"
)

// SettingsProvider resolves the organisation settings for the current request.
type SettingsProvider interface {
	Current(ctx context.Context) (settings.Settings, error)
}

type InternServiceImpl struct {
	db *database.DB
	intern.InternRepository
	user.UserRepository
	settings SettingsProvider
	policy   access.Policy
}

func NewInternService(
	db *database.DB,
	internRepo intern.InternRepository,
	userRepo user.UserRepository,
	settingsProvider SettingsProvider,
) intern.InternService {
	return &InternServiceImpl{
		db:               db,
		InternRepository: internRepo,
		UserRepository:   userRepo,
		settings:         settingsProvider,
	}
}

// Create implements intern.InternService.
func (s *InternServiceImpl) Create(ctx context.Context, req intern.CreateInternRequest) (intern.InternResponse, error) {
	if err := req.Validate(); err != nil {
		return intern.InternResponse{}, err
	}

	if err := s.authorize(ctx, access.OpCreate, intern.Intern{}); err != nil {
		return intern.InternResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	newIntern := intern.Intern{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Department:    req.Department,
		Position:      req.Position,
		StartDate:     startDate,
		EndDate:       parseOptionalDate(req.EndDate),
		Status:        intern.StatusActive,
		ProjectStatus: intern.ProjectNotStarted,
		MentorID:      emptyToNil(req.MentorID),
	}
	if req.Status != nil {
		newIntern.Status = intern.Status(*req.Status)
	}

	if err := s.checkAssignment(ctx, newIntern); err != nil {
		return intern.InternResponse{}, err
	}

	created, err := s.InternRepository.Create(ctx, newIntern)
	if err != nil {
		if errors.Is(err, intern.ErrEmailExists) {
			return intern.InternResponse{}, err
		}
		return intern.InternResponse{}, fmt.Errorf("failed to create intern: %w", err)
	}

	return mapInternToResponse(created), nil
}

// Promote implements intern.InternService.
func (s *InternServiceImpl) Promote(ctx context.Context, req intern.PromoteInternRequest) (intern.InternResponse, error) {
	if err := req.Validate(); err != nil {
		return intern.InternResponse{}, err
	}

	if err := s.authorize(ctx, access.OpCreate, intern.Intern{}); err != nil {
		return intern.InternResponse{}, err
	}

	var created intern.Intern
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		u, err := s.UserRepository.GetByID(txCtx, req.UserID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return err
			}
			return fmt.Errorf("failed to get user: %w", err)
		}
		if u.Role != access.RoleIntern {
			return intern.ErrUserNotPromotable
		}

		_, err = s.InternRepository.FindByLinkedUser(txCtx, u.ID)
		if err == nil {
			return intern.ErrUserAlreadyLinked
		}
		if !errors.Is(err, intern.ErrInternNotFound) {
			return fmt.Errorf("failed to check linked intern: %w", err)
		}

		startDate, _ := validator.IsValidDate(req.StartDate)
		newIntern := intern.Intern{
			UserID:        &u.ID,
			Name:          u.Name,
			Email:         u.Email,
			Phone:         req.Phone,
			Department:    req.Department,
			Position:      req.Position,
			StartDate:     startDate,
			EndDate:       parseOptionalDate(req.EndDate),
			Status:        intern.StatusActive,
			ProjectStatus: intern.ProjectNotStarted,
			MentorID:      emptyToNil(req.MentorID),
		}
		if err := s.checkAssignment(txCtx, newIntern); err != nil {
			return err
		}

		created, err = s.InternRepository.Create(txCtx, newIntern)
		if err != nil {
			if errors.Is(err, intern.ErrEmailExists) || errors.Is(err, intern.ErrUserAlreadyLinked) {
				return err
			}
			return fmt.Errorf("failed to create intern: %w", err)
		}
		return nil
	})
	if err != nil {
		return intern.InternResponse{}, err
	}

	return mapInternToResponse(created), nil
}

// Get implements intern.InternService.
func (s *InternServiceImpl) Get(ctx context.Context, id string) (intern.InternResponse, error) {
	found, err := s.load(ctx, id)
	if err != nil {
		return intern.InternResponse{}, err
	}

	if err := s.authorize(ctx, access.OpRead, found); err != nil {
		return intern.InternResponse{}, err
	}

	return mapInternToResponse(found), nil
}

// List implements intern.InternService.
func (s *InternServiceImpl) List(ctx context.Context, filter intern.InternFilter) (intern.ListInternResponse, error) {
	if err := filter.Validate(); err != nil {
		return intern.ListInternResponse{}, err
	}

	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return intern.ListInternResponse{}, err
	}

	scope, err := s.policy.ListScope(p, access.ResourceIntern)
	if err != nil {
		return intern.ListInternResponse{}, err
	}

	interns, total, err := s.InternRepository.List(ctx, filter, scope)
	if err != nil {
		return intern.ListInternResponse{}, fmt.Errorf("failed to list interns: %w", err)
	}

	visible := access.FilterVisible(s.policy, p, access.OpList, interns, intern.Intern.Resource)

	responses := make([]intern.InternResponse, 0, len(visible))
	for _, in := range visible {
		responses = append(responses, mapInternToResponse(in))
	}

	return intern.ListInternResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: pagination.TotalPages(total, filter.Limit),
		Showing:    pagination.Showing(filter.Page, filter.Limit, total),
		Interns:    responses,
	}, nil
}

// Mentees implements intern.InternService.
func (s *InternServiceImpl) Mentees(ctx context.Context) ([]intern.InternResponse, error) {
	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if p.Role != access.RoleMentor {
		return nil, access.ErrForbidden
	}

	mentees, err := s.InternRepository.FindByMentor(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentees: %w", err)
	}

	visible := access.FilterVisible(s.policy, p, access.OpRead, mentees, intern.Intern.Resource)
	responses := make([]intern.InternResponse, 0, len(visible))
	for _, in := range visible {
		responses = append(responses, mapInternToResponse(in))
	}
	return responses, nil
}

// Update implements intern.InternService.
func (s *InternServiceImpl) Update(ctx context.Context, req intern.UpdateInternRequest) (intern.InternResponse, error) {
	if err := req.Validate(); err != nil {
		return intern.InternResponse{}, err
	}

	current, err := s.load(ctx, req.ID)
	if err != nil {
		return intern.InternResponse{}, err
	}

	if err := s.authorize(ctx, access.OpUpdate, current); err != nil {
		return intern.InternResponse{}, err
	}

	next := req.Apply(current)
	if next.EndDate != nil && next.EndDate.Before(next.StartDate) {
		return intern.InternResponse{}, validator.ValidationErrors{{
			Field:   "end_date",
			Message: intern.ErrEndDateBeforeStart.Error(),
		}}
	}

	if req.Department != nil || req.Position != nil || req.MentorID != nil {
		if err := s.checkAssignment(ctx, next); err != nil {
			return intern.InternResponse{}, err
		}
	}

	return s.save(ctx, next)
}

// UpdateProgress implements intern.InternService.
func (s *InternServiceImpl) UpdateProgress(ctx context.Context, req intern.UpdateProgressRequest) (intern.InternResponse, error) {
	if err := req.Validate(); err != nil {
		return intern.InternResponse{}, err
	}

	current, err := s.load(ctx, req.ID)
	if err != nil {
		return intern.InternResponse{}, err
	}

	if err := s.authorize(ctx, access.OpUpdateProgress, current); err != nil {
		return intern.InternResponse{}, err
	}

	return s.save(ctx, req.Apply(current))
}

// Delete implements intern.InternService.
func (s *InternServiceImpl) Delete(ctx context.Context, id string) error {
	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, access.OpDelete, current); err != nil {
		return err
	}

	if err := s.InternRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, intern.ErrInternNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete intern: %w", err)
	}
	return nil
}

// Cleanup implements intern.InternService. It removes every inactive or terminated intern.
func (s *InternServiceImpl) Cleanup(ctx context.Context) (intern.CleanupResponse, error) {
	if err := s.authorize(ctx, access.OpDelete, intern.Intern{}); err != nil {
		return intern.CleanupResponse{}, err
	}

	deleted, err := s.InternRepository.DeleteByStatuses(ctx, intern.CleanupStatuses)
	if err != nil {
		return intern.CleanupResponse{}, fmt.Errorf("failed to clean up interns: %w", err)
	}

	return intern.CleanupResponse{Deleted: deleted}, nil
}

func (s *InternServiceImpl) authorize(ctx context.Context, op access.Operation, target intern.Intern) error {
	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	return s.policy.Authorize(p, op, target.Resource())
}

// load fetches an intern by id. An id that is not a UUID names no intern.
func (s *InternServiceImpl) load(ctx context.Context, id string) (intern.Intern, error) {
	if !validator.IsUUID(id) {
		return intern.Intern{}, intern.ErrInternNotFound
	}
	found, err := s.InternRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, intern.ErrInternNotFound) {
			return intern.Intern{}, err
		}
		return intern.Intern{}, fmt.Errorf("failed to get intern: %w", err)
	}
	return found, nil
}

func (s *InternServiceImpl) save(ctx context.Context, next intern.Intern) (intern.InternResponse, error) {
	updated, err := s.InternRepository.Update(ctx, next)
	if err != nil {
		if errors.Is(err, intern.ErrEmailExists) || errors.Is(err, intern.ErrInternNotFound) {
			return intern.InternResponse{}, err
		}
		return intern.InternResponse{}, fmt.Errorf("failed to update intern: %w", err)
	}
	return mapInternToResponse(updated), nil
}

// checkAssignment validates department and position against the current settings, and that the
// mentor, when set, is an active user with the mentor role.
func (s *InternServiceImpl) checkAssignment(ctx context.Context, in intern.Intern) error {
	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if !cfg.HasDepartment(in.Department) {
		return intern.ErrInvalidDepartment
	}
	if in.Position != nil && !cfg.AllowsPosition(in.Department, *in.Position) {
		return intern.ErrInvalidPosition
	}

	if in.MentorID == nil {
		return nil
	}
	mentor, err := s.UserRepository.GetByID(ctx, *in.MentorID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return intern.ErrMentorNotFound
		}
		return fmt.Errorf("failed to get mentor: %w", err)
	}
	if !mentor.IsMentor() || !mentor.IsActive {
		return intern.ErrMentorNotFound
	}
	return nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	d, ok := validator.IsValidDate(*s)
	if !ok {
		return nil
	}
	return &d
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func dateToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.DateOnly)
	return &format
}

func mapInternToResponse(in intern.Intern) intern.InternResponse {
	var rating *string
	if in.PerformanceRating != nil {
		r := string(*in.PerformanceRating)
		rating = &r
	}

	return intern.InternResponse{
		ID:                in.ID,
		UserID:            in.UserID,
		Name:              in.Name,
		Email:             in.Email,
		Phone:             in.Phone,
		Department:        in.Department,
		Position:          in.Position,
		StartDate:         in.StartDate.Format(time.DateOnly),
		EndDate:           dateToString(in.EndDate),
		Status:            string(in.Status),
		PerformanceRating: rating,
		ProjectStatus:     string(in.ProjectStatus),
		ProgressNotes:     in.ProgressNotes,
		MentorID:          in.MentorID,
		MentorName:        in.MentorName,
		CreatedAt:         in.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         in.UpdatedAt.Format(time.RFC3339),
	}
}
