package intern

import "errors"

var (
	ErrInternNotFound     = errors.New("intern not found")
	ErrEmailExists        = errors.New("an intern with this email already exists")
	ErrUserAlreadyLinked  = errors.New("user is already linked to an intern record")
	ErrMentorNotFound     = errors.New("mentor not found")
	ErrInvalidDepartment  = errors.New("department is not configured")
	ErrInvalidPosition    = errors.New("position is not configured for the department")
	ErrUserNotPromotable  = errors.New("only users with the intern role can be promoted")
	ErrEndDateBeforeStart = errors.New("end_date must not be before start_date")
)
