package intern

import (
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
)

type Intern struct {
	ID                string
	UserID            *string // linked user account, nil until the intern registers or is promoted
	Name              string
	Email             string
	Phone             *string
	Department        string
	Position          *string
	StartDate         time.Time
	EndDate           *time.Time
	Status            Status
	PerformanceRating *PerformanceRating
	ProjectStatus     ProjectStatus
	ProgressNotes     *string
	MentorID          *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO / Join
	MentorName *string
}

// Owner returns the ownership facts the access policy decides on.
func (i Intern) Owner() access.Owner {
	return access.Owner{
		InternID:     i.ID,
		MentorID:     deref(i.MentorID),
		LinkedUserID: deref(i.UserID),
	}
}

// Resource returns i as an access-controlled resource.
func (i Intern) Resource() access.Resource {
	return access.Resource{Kind: access.ResourceIntern, Owner: i.Owner()}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusCompleted  Status = "completed"
	StatusOnLeave    Status = "on_leave"
	StatusExtended   Status = "extended"
	StatusTerminated Status = "terminated"
)

// Statuses is the canonical status vocabulary used by every write path.
var Statuses = []string{
	string(StatusActive),
	string(StatusInactive),
	string(StatusCompleted),
	string(StatusOnLeave),
	string(StatusExtended),
	string(StatusTerminated),
}

// CleanupStatuses are removed by the bulk cleanup operation.
var CleanupStatuses = []Status{StatusInactive, StatusTerminated}

type PerformanceRating string

const (
	RatingExcellent        PerformanceRating = "excellent"
	RatingGood             PerformanceRating = "good"
	RatingAverage          PerformanceRating = "average"
	RatingNeedsImprovement PerformanceRating = "needs_improvement"
	RatingUnsatisfactory   PerformanceRating = "unsatisfactory"
)

var PerformanceRatings = []string{
	string(RatingExcellent),
	string(RatingGood),
	string(RatingAverage),
	string(RatingNeedsImprovement),
	string(RatingUnsatisfactory),
}

type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not_started"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectDelayed    ProjectStatus = "delayed"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCompleted  ProjectStatus = "completed"
)

var ProjectStatuses = []string{
	string(ProjectNotStarted),
	string(ProjectInProgress),
	string(ProjectDelayed),
	string(ProjectOnHold),
	string(ProjectCompleted),
}
