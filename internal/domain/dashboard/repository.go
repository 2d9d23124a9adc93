package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
)

// InternStatusStats combines intern counts by status in single query
type InternStatusStats struct {
	Active     int64
	Inactive   int64
	Completed  int64
	OnLeave    int64
	Extended   int64
	Terminated int64
}

// ProjectStatusStats combines intern counts by project status
type ProjectStatusStats struct {
	NotStarted int64
	InProgress int64
	Delayed    int64
	OnHold     int64
	Completed  int64
}

// AttendanceStats combines attendance counts by status for one day
type AttendanceStats struct {
	Present int64
	Late    int64
	HalfDay int64
	Absent  int64
}

// DashboardRepository defines the interface for dashboard data access. Every count is narrowed
// to the interns visible through scope.
type DashboardRepository interface {
	GetInternStatusStats(ctx context.Context, scope access.Scope) (*InternStatusStats, error)
	GetProjectStatusStats(ctx context.Context, scope access.Scope) (*ProjectStatusStats, error)
	GetAttendanceStatsByDay(ctx context.Context, scope access.Scope, date time.Time) (*AttendanceStats, error)
}
