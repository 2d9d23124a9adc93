package intern

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/validator"
)

// ========================================
// INTERN DTOs
// ========================================

type CreateInternRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
	Department string  `json:"department"`
	Position   *string `json:"position,omitempty"`
	StartDate  string  `json:"start_date"`         // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"` // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`
	MentorID   *string `json:"mentor_id,omitempty"`
}

func (r *CreateInternRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	errs = append(errs, validateProfile(r.Phone, &r.Department, r.MentorID)...)
	errs = append(errs, validateDates(r.StartDate, r.EndDate)...)

	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PromoteInternRequest turns a registered user with the intern role into a tracked intern.
// Name and email are taken from the user account.
type PromoteInternRequest struct {
	UserID     string  `json:"user_id"`
	Phone      *string `json:"phone,omitempty"`
	Department string  `json:"department"`
	Position   *string `json:"position,omitempty"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date,omitempty"`
	MentorID   *string `json:"mentor_id,omitempty"`
}

func (r *PromoteInternRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	} else if !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}

	errs = append(errs, validateProfile(r.Phone, &r.Department, r.MentorID)...)
	errs = append(errs, validateDates(r.StartDate, r.EndDate)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateInternRequest is the admin patch: nil fields are left unchanged.
type UpdateInternRequest struct {
	ID                string  `json:"-"`
	Name              *string `json:"name,omitempty"`
	Email             *string `json:"email,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Department        *string `json:"department,omitempty"`
	Position          *string `json:"position,omitempty"`
	StartDate         *string `json:"start_date,omitempty"`
	EndDate           *string `json:"end_date,omitempty"` // "" clears
	Status            *string `json:"status,omitempty"`
	PerformanceRating *string `json:"performance_rating,omitempty"`
	ProjectStatus     *string `json:"project_status,omitempty"`
	ProgressNotes     *string `json:"progress_notes,omitempty"`
	MentorID          *string `json:"mentor_id,omitempty"` // "" unassigns
}

func (r *UpdateInternRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name cannot be empty",
		})
	}

	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
		if !validator.IsValidEmail(email) {
			errs = append(errs, validator.ValidationError{
				Field:   "email",
				Message: "email must be a valid email address",
			})
		}
	}

	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid phone number",
		})
	}

	if r.Department != nil && validator.IsEmpty(*r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department cannot be empty",
		})
	}

	if r.StartDate != nil {
		if _, valid := validator.IsValidDate(*r.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.EndDate != nil && *r.EndDate != "" {
		if _, valid := validator.IsValidDate(*r.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}

	errs = append(errs, validateProgress(r.PerformanceRating, r.ProjectStatus)...)

	if r.MentorID != nil && *r.MentorID != "" && !validator.IsValidUUID(*r.MentorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "mentor_id",
			Message: "mentor_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply returns a copy of cur with the patch applied. cur is not modified.
// Call Validate first: unparsable dates are ignored here.
func (r UpdateInternRequest) Apply(cur Intern) Intern {
	next := cur

	if r.Name != nil {
		next.Name = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		next.Email = *r.Email
	}
	if r.Phone != nil {
		next.Phone = emptyToNil(*r.Phone)
	}
	if r.Department != nil {
		next.Department = strings.TrimSpace(*r.Department)
	}
	if r.Position != nil {
		next.Position = emptyToNil(*r.Position)
	}
	if r.StartDate != nil {
		if d, ok := validator.IsValidDate(*r.StartDate); ok {
			next.StartDate = d
		}
	}
	if r.EndDate != nil {
		next.EndDate = nil
		if d, ok := validator.IsValidDate(*r.EndDate); ok {
			next.EndDate = &d
		}
	}
	if r.Status != nil {
		next.Status = Status(*r.Status)
	}
	if r.MentorID != nil {
		next.MentorID = emptyToNil(*r.MentorID)
		next.MentorName = nil
	}

	return UpdateProgressRequest{
		PerformanceRating: r.PerformanceRating,
		ProjectStatus:     r.ProjectStatus,
		ProgressNotes:     r.ProgressNotes,
	}.Apply(next)
}

// UpdateProgressRequest is the mentor edit path; it only touches progress fields.
type UpdateProgressRequest struct {
	ID                string  `json:"-"`
	PerformanceRating *string `json:"performance_rating,omitempty"` // "" clears
	ProjectStatus     *string `json:"project_status,omitempty"`
	ProgressNotes     *string `json:"progress_notes,omitempty"`
}

func (r *UpdateProgressRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PerformanceRating == nil && r.ProjectStatus == nil && r.ProgressNotes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of performance_rating, project_status, progress_notes is required",
		})
	}

	errs = append(errs, validateProgress(r.PerformanceRating, r.ProjectStatus)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply returns a copy of cur with the progress fields replaced.
func (r UpdateProgressRequest) Apply(cur Intern) Intern {
	next := cur
	if r.PerformanceRating != nil {
		next.PerformanceRating = nil
		if *r.PerformanceRating != "" {
			rating := PerformanceRating(*r.PerformanceRating)
			next.PerformanceRating = &rating
		}
	}
	if r.ProjectStatus != nil {
		next.ProjectStatus = ProjectStatus(*r.ProjectStatus)
	}
	if r.ProgressNotes != nil {
		next.ProgressNotes = emptyToNil(*r.ProgressNotes)
	}
	return next
}

type InternFilter struct {
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
	MentorID   *string `json:"mentor_id,omitempty"`
	Search     *string `json:"search,omitempty"` // name or email

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // name, start_date, created_at, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *InternFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}

	if f.MentorID != nil && !validator.IsValidUUID(*f.MentorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "mentor_id",
			Message: "mentor_id must be a valid UUID",
		})
	}

	if f.SortBy != "" {
		validSortFields := []string{"name", "start_date", "created_at", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: name, start_date, created_at, status",
			})
		}
	} else {
		f.SortBy = "name"
	}

	if f.SortOrder != "" {
		f.SortOrder = strings.ToLower(f.SortOrder)
		if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "asc"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type InternResponse struct {
	ID                string  `json:"id"`
	UserID            *string `json:"user_id,omitempty"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             *string `json:"phone,omitempty"`
	Department        string  `json:"department"`
	Position          *string `json:"position,omitempty"`
	StartDate         string  `json:"start_date"`
	EndDate           *string `json:"end_date,omitempty"`
	Status            string  `json:"status"`
	PerformanceRating *string `json:"performance_rating,omitempty"`
	ProjectStatus     string  `json:"project_status"`
	ProgressNotes     *string `json:"progress_notes,omitempty"`
	MentorID          *string `json:"mentor_id,omitempty"`
	MentorName        *string `json:"mentor_name,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type ListInternResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Showing    string           `json:"showing"`
	Interns    []InternResponse `json:"interns"`
}

type CleanupResponse struct {
	Deleted int64 `json:"deleted"`
}

func validateProfile(phone *string, department *string, mentorID *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if phone != nil && *phone != "" && !validator.IsValidPhoneNumber(*phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid phone number",
		})
	}

	*department = strings.TrimSpace(*department)
	if *department == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if mentorID != nil && *mentorID != "" && !validator.IsValidUUID(*mentorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "mentor_id",
			Message: "mentor_id must be a valid UUID",
		})
	}

	return errs
}

func validateDates(startDate string, endDate *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	var start time.Time
	startOK := false
	if validator.IsEmpty(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if start, startOK = validator.IsValidDate(startDate); !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if endDate != nil && *endDate != "" {
		end, valid := validator.IsValidDate(*endDate)
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else if startOK && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: ErrEndDateBeforeStart.Error(),
			})
		}
	}

	return errs
}

func validateProgress(rating *string, project *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if rating != nil && *rating != "" && !validator.IsInSlice(*rating, PerformanceRatings) {
		errs = append(errs, validator.ValidationError{
			Field:   "performance_rating",
			Message: "performance_rating must be one of: " + strings.Join(PerformanceRatings, ", "),
		})
	}

	if project != nil && !validator.IsInSlice(*project, ProjectStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_status",
			Message: "project_status must be one of: " + strings.Join(ProjectStatuses, ", "),
		})
	}

	return errs
}

func emptyToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
