package attendance

import (
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
)

var Statuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusLate),
	string(StatusHalfDay),
}

// Attendance is one intern's attendance for one calendar day.
// At most one record exists per (InternID, Date).
type Attendance struct {
	ID        string
	InternID  string
	Date      time.Time // calendar day, time of day is zero
	Status    Status
	CheckIn   *time.Time
	CheckOut  *time.Time
	Notes     *string
	MarkedBy  string
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	InternName   *string
	InternEmail  *string
	MentorID     *string
	InternUserID *string
	MarkedByName *string
}

// Resource returns the record as an access-controlled resource. Ownership comes from the
// joined intern columns, so records must be loaded through the repository's joined queries.
func (a Attendance) Resource() access.Resource {
	owner := access.Owner{InternID: a.InternID}
	if a.MentorID != nil {
		owner.MentorID = *a.MentorID
	}
	if a.InternUserID != nil {
		owner.LinkedUserID = *a.InternUserID
	}
	return access.Resource{Kind: access.ResourceAttendance, Owner: owner}
}
