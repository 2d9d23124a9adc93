package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/dashboard"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	policy access.Policy
	now    func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		now:                 time.Now,
	}
}

// parseDate parses YYYY-MM-DD format, defaults to today
func parseDate(date string, now time.Time) time.Time {
	if date == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return now
	}
	return parsed
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// GetDashboard returns combined dashboard data using parallel goroutines, one query each.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, req dashboard.DashboardRequest) (*dashboard.DashboardResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := access.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	internScope, err := s.policy.ListScope(p, access.ResourceIntern)
	if err != nil {
		return nil, err
	}
	attendanceScope, err := s.policy.ListScope(p, access.ResourceAttendance)
	if err != nil {
		return nil, err
	}

	day := parseDate(req.Date, s.now())

	var (
		internSummary   dashboard.InternSummaryResponse
		projectStats    dashboard.ProjectStatsResponse
		attendanceStats dashboard.AttendanceStatsResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Intern counts by status
	g.Go(func() error {
		stats, err := s.GetInternStatusStats(gCtx, internScope)
		if err != nil {
			return err
		}
		internSummary = dashboard.InternSummaryResponse{
			Total:      stats.Active + stats.Inactive + stats.Completed + stats.OnLeave + stats.Extended + stats.Terminated,
			Active:     stats.Active,
			Inactive:   stats.Inactive,
			Completed:  stats.Completed,
			OnLeave:    stats.OnLeave,
			Extended:   stats.Extended,
			Terminated: stats.Terminated,
		}
		return nil
	})

	// 2. Intern counts by project status
	g.Go(func() error {
		stats, err := s.GetProjectStatusStats(gCtx, internScope)
		if err != nil {
			return err
		}
		projectStats = dashboard.ProjectStatsResponse{
			NotStarted: stats.NotStarted,
			InProgress: stats.InProgress,
			Delayed:    stats.Delayed,
			OnHold:     stats.OnHold,
			Completed:  stats.Completed,
		}
		return nil
	})

	// 3. Daily attendance counts
	g.Go(func() error {
		stats, err := s.GetAttendanceStatsByDay(gCtx, attendanceScope, day)
		if err != nil {
			return err
		}
		total := stats.Present + stats.Late + stats.HalfDay + stats.Absent
		attendanceStats = dashboard.AttendanceStatsResponse{
			Present:        stats.Present,
			Late:           stats.Late,
			HalfDay:        stats.HalfDay,
			Absent:         stats.Absent,
			Total:          total,
			PresentPercent: percent(stats.Present, total),
			LatePercent:    percent(stats.Late, total),
			HalfDayPercent: percent(stats.HalfDay, total),
			AbsentPercent:  percent(stats.Absent, total),
			Date:           day.Format("2006-01-02"),
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DashboardResponse{
		InternSummary:   internSummary,
		ProjectStats:    projectStats,
		AttendanceStats: attendanceStats,
	}, nil
}
