package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
)

// AttendanceRepository is the persistence contract for attendance records. Every returned record
// carries the joined intern and marker display columns.
type AttendanceRepository interface {
	// FindByID returns ErrAttendanceNotFound when no record has id.
	FindByID(ctx context.Context, id string) (Attendance, error)

	// FindByInternAndDate returns nil, nil when the intern has no record on date.
	FindByInternAndDate(ctx context.Context, internID string, date time.Time) (*Attendance, error)

	// Insert stores a new record. A (intern_id, date) uniqueness violation returns ErrAttendanceConflict.
	Insert(ctx context.Context, record Attendance) (Attendance, error)

	// UpdateByID replaces the mutable fields of the record with record.ID.
	UpdateByID(ctx context.Context, record Attendance) (Attendance, error)

	// DeleteByID returns ErrAttendanceNotFound when nothing was deleted.
	DeleteByID(ctx context.Context, id string) error

	// Query returns the page of records matching filter, narrowed to scope, and the total match count.
	Query(ctx context.Context, filter AttendanceFilter, scope access.Scope) ([]Attendance, int64, error)
}
