package settings

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/validator"
)

// ========================================
// SETTINGS DTOs
// ========================================

// UpdateSettingsRequest replaces the provided parts of the settings. Nil fields are left unchanged.
type UpdateSettingsRequest struct {
	CompanyName  *string             `json:"company_name,omitempty"`
	WorkingHours *WorkingHours       `json:"working_hours,omitempty"`
	Departments  []string            `json:"departments,omitempty"`
	Positions    map[string][]string `json:"positions,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CompanyName != nil && validator.IsEmpty(*r.CompanyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name cannot be empty",
		})
	}

	if r.WorkingHours != nil {
		errs = append(errs, validateWorkingHours(*r.WorkingHours)...)
	}

	if r.Departments != nil && len(validator.Union(nil, r.Departments)) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "departments",
			Message: "departments must contain at least one department",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply returns a copy of cur with the request applied. Department and position lists are
// trimmed and deduplicated; positions of departments that no longer exist are dropped.
func (r UpdateSettingsRequest) Apply(cur Settings) Settings {
	next := cur.clone()

	if r.CompanyName != nil {
		next.CompanyName = strings.TrimSpace(*r.CompanyName)
	}
	if r.WorkingHours != nil {
		next.WorkingHours = *r.WorkingHours
	}
	if r.Departments != nil {
		next.Departments = validator.Union(nil, r.Departments)
	}
	if r.Positions != nil {
		next.Positions = make(map[string][]string, len(r.Positions))
		for dept, positions := range r.Positions {
			next.Positions[strings.TrimSpace(dept)] = validator.Union(nil, positions)
		}
	}
	for dept := range next.Positions {
		if !next.HasDepartment(dept) {
			delete(next.Positions, dept)
		}
	}

	return next
}

type ValueType string

const (
	ValueTypeDepartments ValueType = "departments"
	ValueTypePositions   ValueType = "positions"
)

// AddValuesRequest adds values to a settings list; values already present are ignored.
type AddValuesRequest struct {
	Type       ValueType `json:"type"`
	Department string    `json:"department,omitempty"` // required for positions
	Values     []string  `json:"values"`
}

func (r *AddValuesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type != ValueTypeDepartments && r.Type != ValueTypePositions {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: departments, positions",
		})
	}

	r.Department = strings.TrimSpace(r.Department)
	if r.Type == ValueTypePositions && r.Department == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required when adding positions",
		})
	}

	if len(validator.Union(nil, r.Values)) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "values",
			Message: "values must contain at least one non-empty value",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply returns a copy of cur with the values merged in by set union.
func (r AddValuesRequest) Apply(cur Settings) (Settings, error) {
	next := cur.clone()

	switch r.Type {
	case ValueTypeDepartments:
		next.Departments = validator.Union(next.Departments, r.Values)
	case ValueTypePositions:
		if !next.HasDepartment(r.Department) {
			return Settings{}, ErrUnknownDepartment
		}
		next.Positions[r.Department] = validator.Union(next.Positions[r.Department], r.Values)
	}

	return next, nil
}

type SettingsResponse struct {
	CompanyName  string              `json:"company_name"`
	WorkingHours WorkingHours        `json:"working_hours"`
	Departments  []string            `json:"departments"`
	Positions    map[string][]string `json:"positions"`
	UpdatedAt    string              `json:"updated_at"`
}

func ToResponse(s Settings) SettingsResponse {
	positions := s.Positions
	if positions == nil {
		positions = map[string][]string{}
	}
	departments := s.Departments
	if departments == nil {
		departments = []string{}
	}
	return SettingsResponse{
		CompanyName:  s.CompanyName,
		WorkingHours: s.WorkingHours,
		Departments:  departments,
		Positions:    positions,
		UpdatedAt:    s.UpdatedAt.Format(time.RFC3339),
	}
}

func validateWorkingHours(wh WorkingHours) validator.ValidationErrors {
	var errs validator.ValidationErrors

	startOK := validator.IsValidClock(wh.Start)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "working_hours.start",
			Message: "working_hours.start must be HH:MM (24-hour)",
		})
	}
	endOK := validator.IsValidClock(wh.End)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "working_hours.end",
			Message: "working_hours.end must be HH:MM (24-hour)",
		})
	}
	if startOK && endOK && !validator.ClockBefore(wh.Start, wh.End) {
		errs = append(errs, validator.ValidationError{
			Field:   "working_hours.end",
			Message: "working_hours.end must be after working_hours.start",
		})
	}

	return errs
}
