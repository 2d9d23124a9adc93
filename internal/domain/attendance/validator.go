package attendance

import (
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/intern"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/validator"
)

// Candidate is a proposed attendance record that has not been persisted yet. ID is empty for a
// create and set to the record being replaced for an update. Date and Status are kept raw so
// malformed values surface as rejection reasons.
type Candidate struct {
	ID       string
	InternID string
	Date     string // YYYY-MM-DD
	Status   string
	CheckIn  *time.Time
	CheckOut *time.Time
	Notes    *string
	MarkedBy string
}

// CandidateFrom returns the candidate form of a stored record, for merging a patch onto it.
func CandidateFrom(a Attendance) Candidate {
	return Candidate{
		ID:       a.ID,
		InternID: a.InternID,
		Date:     a.Date.Format(time.DateOnly),
		Status:   string(a.Status),
		CheckIn:  a.CheckIn,
		CheckOut: a.CheckOut,
		Notes:    a.Notes,
		MarkedBy: a.MarkedBy,
	}
}

// Validate decides whether c is a well-formed attendance record. in is the intern c refers to,
// nil if it does not exist; existing is the stored record for the same intern and date, nil if
// there is none. Rules run in a fixed order and the first failure is returned as a *ValidationError.
// Validate does no I/O.
func Validate(c Candidate, in *intern.Intern, existing *Attendance) error {
	if in == nil || in.ID != c.InternID {
		return reject(ReasonUnknownIntern)
	}

	if _, ok := validator.IsValidDate(c.Date); !ok {
		return reject(ReasonInvalidDate)
	}

	if !validator.IsInSlice(c.Status, Statuses) {
		return reject(ReasonInvalidStatus)
	}

	if existing != nil && existing.ID != c.ID {
		return reject(ReasonDuplicateForDate)
	}

	if Status(c.Status) == StatusAbsent {
		if c.CheckIn != nil || c.CheckOut != nil {
			return reject(ReasonAbsentMustNotHaveTimes)
		}
		return nil
	}

	if c.CheckIn == nil {
		return reject(ReasonMissingCheckIn)
	}
	if c.CheckOut == nil {
		return reject(ReasonMissingCheckOut)
	}
	if !c.CheckOut.After(*c.CheckIn) {
		return reject(ReasonCheckOutBeforeCheckIn)
	}

	return nil
}

// Record converts an accepted candidate into the entity to persist. It must only be called after
// Validate returned nil.
func (c Candidate) Record() Attendance {
	date, _ := validator.IsValidDate(c.Date)
	return Attendance{
		ID:       c.ID,
		InternID: c.InternID,
		Date:     date,
		Status:   Status(c.Status),
		CheckIn:  c.CheckIn,
		CheckOut: c.CheckOut,
		Notes:    c.Notes,
		MarkedBy: c.MarkedBy,
	}
}
