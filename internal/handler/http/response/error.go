package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/intern"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Attendance rule rejections carry a machine-readable reason
	if reason, ok := attendance.ReasonOf(err); ok {
		Rejected(w, string(reason), reason.Message())
		return
	}

	switch {
	// Access
	case errors.Is(err, access.ErrUnauthenticated):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, access.ErrForbidden):
		Forbidden(w, "You are not allowed to perform this action")

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountDisabled):
		Forbidden(w, "Account is disabled")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is disabled")

	// Intern domain errors
	case errors.Is(err, intern.ErrInternNotFound):
		NotFound(w, "Intern not found")
	case errors.Is(err, intern.ErrEmailExists):
		Conflict(w, "An intern with this email already exists")
	case errors.Is(err, intern.ErrUserAlreadyLinked):
		Conflict(w, "User is already linked to an intern")
	case errors.Is(err, intern.ErrMentorNotFound),
		errors.Is(err, intern.ErrInvalidDepartment),
		errors.Is(err, intern.ErrInvalidPosition),
		errors.Is(err, intern.ErrUserNotPromotable),
		errors.Is(err, intern.ErrEndDateBeforeStart):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceConflict):
		Conflict(w, "Attendance for this intern and date already exists")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Settings not found")
	case errors.Is(err, settings.ErrUnknownDepartment):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
