package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/intern"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/validator"
)

// DecisionRecorder counts attendance mutation outcomes.
type DecisionRecorder interface {
	AttendanceDecision(operation, outcome, reason string)
}

const (
	opMark   = "mark"
	opUpdate = "update"
	opDelete = "delete"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	intern.InternRepository
	policy   access.Policy
	recorder DecisionRecorder
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	internRepo intern.InternRepository,
	recorder DecisionRecorder,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		InternRepository:     internRepo,
		recorder:             recorder,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

// MarkAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	in, err := a.findIntern(ctx, req.InternID)
	if err != nil {
		return attendance.AttendanceResponse{}, a.observe(opMark, err)
	}

	// An unknown intern has no mentor, so only an admin gets past this check to the
	// UnknownIntern rejection.
	res := access.Resource{Kind: access.ResourceAttendance, Owner: access.Owner{InternID: req.InternID}}
	if in != nil {
		res.Owner = in.Owner()
	}
	if err := a.policy.Authorize(p, access.OpCreate, res); err != nil {
		return attendance.AttendanceResponse{}, a.observe(opMark, err)
	}

	candidate := req.Candidate(p.ID)

	existing, err := a.findSameDay(ctx, in, candidate)
	if err != nil {
		return attendance.AttendanceResponse{}, a.observe(opMark, err)
	}

	if err := attendance.Validate(candidate, in, existing); err != nil {
		return attendance.AttendanceResponse{}, a.observe(opMark, err)
	}

	created, err := a.AttendanceRepository.Insert(ctx, candidate.Record())
	if err != nil {
		if !errors.Is(err, attendance.ErrAttendanceConflict) {
			err = fmt.Errorf("failed to insert attendance: %w", err)
		}
		return attendance.AttendanceResponse{}, a.observe(opMark, err)
	}

	a.observe(opMark, nil)
	return mapAttendanceToResponse(created), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	current, err := a.find(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, a.observe(opUpdate, err)
	}

	if err := a.policy.Authorize(p, access.OpUpdate, current.Resource()); err != nil {
		return attendance.AttendanceResponse{}, a.observe(opUpdate, err)
	}

	candidate := req.Apply(attendance.CandidateFrom(current), p.ID)

	in, err := a.findIntern(ctx, candidate.InternID)
	if err != nil {
		return attendance.AttendanceResponse{}, a.observe(opUpdate, err)
	}

	existing, err := a.findSameDay(ctx, in, candidate)
	if err != nil {
		return attendance.AttendanceResponse{}, a.observe(opUpdate, err)
	}

	if err := attendance.Validate(candidate, in, existing); err != nil {
		return attendance.AttendanceResponse{}, a.observe(opUpdate, err)
	}

	updated, err := a.AttendanceRepository.UpdateByID(ctx, candidate.Record())
	if err != nil {
		if !errors.Is(err, attendance.ErrAttendanceConflict) && !errors.Is(err, attendance.ErrAttendanceNotFound) {
			err = fmt.Errorf("failed to update attendance: %w", err)
		}
		return attendance.AttendanceResponse{}, a.observe(opUpdate, err)
	}

	a.observe(opUpdate, nil)
	return mapAttendanceToResponse(updated), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}

	current, err := a.find(ctx, id)
	if err != nil {
		return a.observe(opDelete, err)
	}

	if err := a.policy.Authorize(p, access.OpDelete, current.Resource()); err != nil {
		return a.observe(opDelete, err)
	}

	if err := a.AttendanceRepository.DeleteByID(ctx, id); err != nil {
		if !errors.Is(err, attendance.ErrAttendanceNotFound) {
			err = fmt.Errorf("failed to delete attendance: %w", err)
		}
		return a.observe(opDelete, err)
	}

	a.observe(opDelete, nil)
	return nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.find(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.policy.Authorize(p, access.OpRead, record.Resource()); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService. Records the principal may not see are
// left out rather than reported as an error.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	scope, err := a.policy.ListScope(p, access.ResourceAttendance)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.Query(ctx, filter, scope)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	visible := access.FilterVisible(a.policy, p, access.OpList, records, attendance.Attendance.Resource)

	// Map to response
	responses := make([]attendance.AttendanceResponse, 0, len(visible))
	for _, att := range visible {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  pagination.TotalPages(total, filter.Limit),
		Showing:     pagination.Showing(filter.Page, filter.Limit, total),
		Attendances: responses,
	}, nil
}

// find loads the record with the given id. An id that is not a UUID names no record.
func (a *AttendanceServiceImpl) find(ctx context.Context, id string) (attendance.Attendance, error) {
	if !validator.IsUUID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	record, err := a.AttendanceRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, err
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return record, nil
}

// findIntern returns nil, nil when the intern does not exist.
func (a *AttendanceServiceImpl) findIntern(ctx context.Context, id string) (*intern.Intern, error) {
	if !validator.IsUUID(id) {
		return nil, nil
	}
	in, err := a.InternRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, intern.ErrInternNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get intern: %w", err)
	}
	return &in, nil
}

// findSameDay loads the stored record for the candidate's intern and date. Lookups the validator
// would reject anyway (unknown intern, malformed date) are skipped.
func (a *AttendanceServiceImpl) findSameDay(ctx context.Context, in *intern.Intern, c attendance.Candidate) (*attendance.Attendance, error) {
	if in == nil {
		return nil, nil
	}
	date, err := time.Parse(time.DateOnly, c.Date)
	if err != nil {
		return nil, nil
	}
	existing, err := a.AttendanceRepository.FindByInternAndDate(ctx, in.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	return existing, nil
}

// observe records the outcome of operation and returns err unchanged.
func (a *AttendanceServiceImpl) observe(operation string, err error) error {
	if a.recorder == nil {
		return err
	}
	outcome, reason := "accepted", ""
	if err != nil {
		outcome = "error"
		if r, ok := attendance.ReasonOf(err); ok {
			outcome, reason = "rejected", string(r)
		} else if errors.Is(err, access.ErrForbidden) {
			outcome = "forbidden"
		} else if errors.Is(err, attendance.ErrAttendanceNotFound) {
			outcome = "not_found"
		} else if errors.Is(err, attendance.ErrAttendanceConflict) {
			outcome = "conflict"
		}
	}
	a.recorder.AttendanceDecision(operation, outcome, reason)
	return err
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var internName, internEmail, markedByName string
	if att.InternName != nil {
		internName = *att.InternName
	}
	if att.InternEmail != nil {
		internEmail = *att.InternEmail
	}
	if att.MarkedByName != nil {
		markedByName = *att.MarkedByName
	}

	return attendance.AttendanceResponse{
		ID:           att.ID,
		InternID:     att.InternID,
		InternName:   internName,
		InternEmail:  internEmail,
		Date:         att.Date.Format(time.DateOnly),
		Status:       string(att.Status),
		CheckIn:      timePtrToString(att.CheckIn),
		CheckOut:     timePtrToString(att.CheckOut),
		Notes:        att.Notes,
		MarkedBy:     att.MarkedBy,
		MarkedByName: markedByName,
		CreatedAt:    att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    att.UpdatedAt.Format(time.RFC3339),
	}
}
