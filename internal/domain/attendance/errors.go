package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// ErrAttendanceConflict is returned when the storage uniqueness constraint on (intern_id, date)
	// rejects a write that passed the duplicate pre-check.
	ErrAttendanceConflict = errors.New("an attendance record for this intern and date was written concurrently")
)

// RejectedReason is the machine-readable cause of a validation rejection.
type RejectedReason string

const (
	ReasonUnknownIntern          RejectedReason = "UNKNOWN_INTERN"
	ReasonInvalidDate            RejectedReason = "INVALID_DATE"
	ReasonInvalidStatus          RejectedReason = "INVALID_STATUS"
	ReasonDuplicateForDate       RejectedReason = "DUPLICATE_FOR_DATE"
	ReasonAbsentMustNotHaveTimes RejectedReason = "ABSENT_MUST_NOT_HAVE_TIMES"
	ReasonMissingCheckIn         RejectedReason = "MISSING_CHECK_IN"
	ReasonMissingCheckOut        RejectedReason = "MISSING_CHECK_OUT"
	ReasonCheckOutBeforeCheckIn  RejectedReason = "CHECK_OUT_BEFORE_CHECK_IN"
)

var reasonMessages = map[RejectedReason]string{
	ReasonUnknownIntern:          "intern does not exist",
	ReasonInvalidDate:            "date must be a valid calendar date in YYYY-MM-DD format",
	ReasonInvalidStatus:          "status must be one of: present, absent, late, half-day",
	ReasonDuplicateForDate:       "attendance for this intern is already recorded on this date",
	ReasonAbsentMustNotHaveTimes: "check_in and check_out must be empty when status is absent",
	ReasonMissingCheckIn:         "check_in is required unless status is absent",
	ReasonMissingCheckOut:        "check_out is required unless status is absent",
	ReasonCheckOutBeforeCheckIn:  "check_out must be after check_in",
}

// Message is the user-facing text for r.
func (r RejectedReason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return string(r)
}

// ValidationError is a rejected attendance candidate. Reason is always set.
type ValidationError struct {
	Reason RejectedReason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("attendance rejected: %s", e.Reason.Message())
}

func reject(reason RejectedReason) error {
	return &ValidationError{Reason: reason}
}

// ReasonOf extracts the rejection reason from err, if err is a ValidationError.
func ReasonOf(err error) (RejectedReason, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Reason, true
	}
	return "", false
}
