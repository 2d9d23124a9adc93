package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetInternStatusStats returns intern counts per status in single query
func (r *dashboardRepositoryImpl) GetInternStatusStats(ctx context.Context, scope access.Scope) (*dashboard.InternStatusStats, error) {
	q := GetQuerier(ctx, r.db)

	where, args, _ := scopeClause(scope, "i", nil, 1)
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN i.status = 'active' THEN 1 ELSE 0 END), 0) as active_count,
			COALESCE(SUM(CASE WHEN i.status = 'inactive' THEN 1 ELSE 0 END), 0) as inactive_count,
			COALESCE(SUM(CASE WHEN i.status = 'completed' THEN 1 ELSE 0 END), 0) as completed_count,
			COALESCE(SUM(CASE WHEN i.status = 'on_leave' THEN 1 ELSE 0 END), 0) as on_leave_count,
			COALESCE(SUM(CASE WHEN i.status = 'extended' THEN 1 ELSE 0 END), 0) as extended_count,
			COALESCE(SUM(CASE WHEN i.status = 'terminated' THEN 1 ELSE 0 END), 0) as terminated_count
		FROM interns i
		WHERE ` + where

	var stats dashboard.InternStatusStats
	err := q.QueryRow(ctx, query, args...).Scan(
		&stats.Active, &stats.Inactive, &stats.Completed, &stats.OnLeave, &stats.Extended, &stats.Terminated,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get intern status stats: %w", err)
	}
	return &stats, nil
}

// GetProjectStatusStats returns intern counts per project status in single query
func (r *dashboardRepositoryImpl) GetProjectStatusStats(ctx context.Context, scope access.Scope) (*dashboard.ProjectStatusStats, error) {
	q := GetQuerier(ctx, r.db)

	where, args, _ := scopeClause(scope, "i", nil, 1)
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN i.project_status = 'not_started' THEN 1 ELSE 0 END), 0) as not_started_count,
			COALESCE(SUM(CASE WHEN i.project_status = 'in_progress' THEN 1 ELSE 0 END), 0) as in_progress_count,
			COALESCE(SUM(CASE WHEN i.project_status = 'delayed' THEN 1 ELSE 0 END), 0) as delayed_count,
			COALESCE(SUM(CASE WHEN i.project_status = 'on_hold' THEN 1 ELSE 0 END), 0) as on_hold_count,
			COALESCE(SUM(CASE WHEN i.project_status = 'completed' THEN 1 ELSE 0 END), 0) as completed_count
		FROM interns i
		WHERE ` + where

	var stats dashboard.ProjectStatusStats
	err := q.QueryRow(ctx, query, args...).Scan(
		&stats.NotStarted, &stats.InProgress, &stats.Delayed, &stats.OnHold, &stats.Completed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get project status stats: %w", err)
	}
	return &stats, nil
}

// GetAttendanceStatsByDay returns attendance counts per status for one day in single query
func (r *dashboardRepositoryImpl) GetAttendanceStatsByDay(ctx context.Context, scope access.Scope, date time.Time) (*dashboard.AttendanceStats, error) {
	q := GetQuerier(ctx, r.db)

	where, args, argIdx := scopeClause(scope, "i", nil, 1)
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(CASE WHEN a.status = 'present' THEN 1 ELSE 0 END), 0) as present_count,
			COALESCE(SUM(CASE WHEN a.status = 'late' THEN 1 ELSE 0 END), 0) as late_count,
			COALESCE(SUM(CASE WHEN a.status = 'half-day' THEN 1 ELSE 0 END), 0) as half_day_count,
			COALESCE(SUM(CASE WHEN a.status = 'absent' THEN 1 ELSE 0 END), 0) as absent_count
		FROM attendance_records a
		JOIN interns i ON i.id = a.intern_id
		WHERE %s AND a.date = $%d
	`, where, argIdx)
	args = append(args, date)

	var stats dashboard.AttendanceStats
	err := q.QueryRow(ctx, query, args...).Scan(
		&stats.Present, &stats.Late, &stats.HalfDay, &stats.Absent,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance stats by day: %w", err)
	}
	return &stats, nil
}
