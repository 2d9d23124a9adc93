package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// MarkAttendanceRequest creates the attendance record of one intern for one day.
// Validate only rejects timestamps that cannot be parsed. Intern, date and status are left to the
// domain Validate so a bad value is reported with its rejection reason.
type MarkAttendanceRequest struct {
	InternID string  `json:"intern_id"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Status   string  `json:"status"`
	CheckIn  *string `json:"check_in,omitempty"`  // RFC3339
	CheckOut *string `json:"check_out,omitempty"` // RFC3339
	Notes    *string `json:"notes,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	errs := append(validateTimestamp("check_in", r.CheckIn), validateTimestamp("check_out", r.CheckOut)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Candidate converts the request into an attendance candidate marked by markedBy.
func (r MarkAttendanceRequest) Candidate(markedBy string) Candidate {
	return Candidate{
		InternID: strings.TrimSpace(r.InternID),
		Date:     strings.TrimSpace(r.Date),
		Status:   strings.ToLower(strings.TrimSpace(r.Status)),
		CheckIn:  parseTimestamp(r.CheckIn),
		CheckOut: parseTimestamp(r.CheckOut),
		Notes:    trimToNil(r.Notes),
		MarkedBy: markedBy,
	}
}

// UpdateAttendanceRequest is a patch on an existing record: nil fields are left unchanged and
// an empty check_in, check_out or notes clears the stored value. The intern cannot be changed.
type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	Date     *string `json:"date,omitempty"`
	Status   *string `json:"status,omitempty"`
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date == nil && r.Status == nil && r.CheckIn == nil && r.CheckOut == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}

	errs = append(errs, validateTimestamp("check_in", r.CheckIn)...)
	errs = append(errs, validateTimestamp("check_out", r.CheckOut)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply returns a new candidate with the patch merged onto cur. cur is not modified.
// The merged candidate is attributed to markedBy.
func (r UpdateAttendanceRequest) Apply(cur Candidate, markedBy string) Candidate {
	next := cur
	next.MarkedBy = markedBy

	if r.Date != nil {
		next.Date = strings.TrimSpace(*r.Date)
	}
	if r.Status != nil {
		next.Status = strings.ToLower(strings.TrimSpace(*r.Status))
	}
	if r.CheckIn != nil {
		next.CheckIn = parseTimestamp(r.CheckIn)
	}
	if r.CheckOut != nil {
		next.CheckOut = parseTimestamp(r.CheckOut)
	}
	if r.Notes != nil {
		next.Notes = trimToNil(r.Notes)
	}

	return next
}

type AttendanceFilter struct {
	// Search & Filter
	InternID  *string `json:"intern_id,omitempty"`
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, intern_name, check_in, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.InternID != nil && !validator.IsValidUUID(*f.InternID) {
		errs = append(errs, validator.ValidationError{
			Field:   "intern_id",
			Message: "intern_id must be a valid UUID",
		})
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		})
	}

	// Date validation
	for field, value := range map[string]*string{"date": f.Date, "start_date": f.StartDate, "end_date": f.EndDate} {
		if value == nil || *value == "" {
			continue
		}
		if _, valid := validator.IsValidDate(*value); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in YYYY-MM-DD format",
			})
		}
	}

	if f.StartDate != nil && f.EndDate != nil {
		start, startOK := validator.IsValidDate(*f.StartDate)
		end, endOK := validator.IsValidDate(*f.EndDate)
		if startOK && endOK && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	// Sort validation
	if f.SortBy != "" {
		validSortFields := []string{"date", "intern_name", "check_in", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, intern_name, check_in, status",
			})
		}
	} else {
		f.SortBy = "date" // Default sort
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
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	InternID     string  `json:"intern_id"`
	InternName   string  `json:"intern_name"`
	InternEmail  string  `json:"intern_email"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	MarkedBy     string  `json:"marked_by"`
	MarkedByName string  `json:"marked_by_name"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

func validateTimestamp(field string, value *string) validator.ValidationErrors {
	if value == nil || *value == "" {
		return nil
	}
	if _, valid := validator.IsValidDateTime(*value); !valid {
		return validator.ValidationErrors{{
			Field:   field,
			Message: field + " must be an ISO8601 timestamp, e.g. 2024-03-01T09:00:00Z",
		}}
	}
	return nil
}

// parseTimestamp maps nil and "" to nil. Unparsable values also map to nil; Validate rejects them first.
func parseTimestamp(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	t, ok := validator.IsValidDateTime(*value)
	if !ok {
		return nil
	}
	return &t
}

func trimToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
