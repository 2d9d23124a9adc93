package dashboard

import "github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/validator"

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	InternSummary   InternSummaryResponse   `json:"intern_summary"`
	ProjectStats    ProjectStatsResponse    `json:"project_stats"`
	AttendanceStats AttendanceStatsResponse `json:"attendance_stats"`
}

type DashboardRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, defaults to today
}

func (r *DashboardRequest) Validate() error {
	if r.Date == "" {
		return nil
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		return validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return nil
}

// ========== INTERN SUMMARY ==========

// InternSummaryResponse counts visible interns by status
type InternSummaryResponse struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	Inactive   int64 `json:"inactive"`
	Completed  int64 `json:"completed"`
	OnLeave    int64 `json:"on_leave"`
	Extended   int64 `json:"extended"`
	Terminated int64 `json:"terminated"`
}

// ========== PROJECT STATS ==========

type ProjectStatsResponse struct {
	NotStarted int64 `json:"not_started"`
	InProgress int64 `json:"in_progress"`
	Delayed    int64 `json:"delayed"`
	OnHold     int64 `json:"on_hold"`
	Completed  int64 `json:"completed"`
}

// ========== DAILY ATTENDANCE STATS ==========

// AttendanceStatsResponse represents attendance statistics for a specific day
type AttendanceStatsResponse struct {
	Present        int64   `json:"present"`
	Late           int64   `json:"late"`
	HalfDay        int64   `json:"half_day"`
	Absent         int64   `json:"absent"`
	Total          int64   `json:"total"`
	PresentPercent float64 `json:"present_percent"`
	LatePercent    float64 `json:"late_percent"`
	HalfDayPercent float64 `json:"half_day_percent"`
	AbsentPercent  float64 `json:"absent_percent"`
	Date           string  `json:"date"` // Format: "YYYY-MM-DD"
}
