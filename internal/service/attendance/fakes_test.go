package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/intern"
)

// memoryStore backs both repositories so attendance rows can carry joined intern columns.
type memoryStore struct {
	mu      sync.Mutex
	interns map[string]intern.Intern
	records map[string]attendance.Attendance
	seq     int
	lookups int
}

func newMemoryStore(interns ...intern.Intern) *memoryStore {
	s := &memoryStore{
		interns: make(map[string]intern.Intern),
		records: make(map[string]attendance.Attendance),
	}
	for _, in := range interns {
		s.interns[in.ID] = in
	}
	return s
}

func (s *memoryStore) join(a attendance.Attendance) attendance.Attendance {
	in := s.interns[a.InternID]
	a.InternName = &in.Name
	a.InternEmail = &in.Email
	a.MentorID = in.MentorID
	a.InternUserID = in.UserID
	return a
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type fakeAttendanceRepo struct{ *memoryStore }

func (r fakeAttendanceRepo) FindByID(_ context.Context, id string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	a, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.join(a), nil
}

func (r fakeAttendanceRepo) FindByInternAndDate(_ context.Context, internID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.records {
		if a.InternID == internID && a.Date.Equal(date) {
			joined := r.join(a)
			return &joined, nil
		}
	}
	return nil, nil
}

func (r fakeAttendanceRepo) conflicts(record attendance.Attendance) bool {
	for _, a := range r.records {
		if a.ID != record.ID && a.InternID == record.InternID && a.Date.Equal(record.Date) {
			return true
		}
	}
	return false
}

func (r fakeAttendanceRepo) Insert(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflicts(record) {
		return attendance.Attendance{}, attendance.ErrAttendanceConflict
	}
	r.seq++
	record.ID = fmt.Sprintf("01900000-0000-7000-9000-%012d", r.seq)
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	r.records[record.ID] = record
	return r.join(record), nil
}

func (r fakeAttendanceRepo) UpdateByID(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.records[record.ID]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if r.conflicts(record) {
		return attendance.Attendance{}, attendance.ErrAttendanceConflict
	}
	record.CreatedAt = cur.CreatedAt
	record.UpdatedAt = time.Now()
	r.records[record.ID] = record
	return r.join(record), nil
}

func (r fakeAttendanceRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.records, id)
	return nil
}

// Query ignores scope on purpose so tests observe FilterVisible doing the narrowing.
func (r fakeAttendanceRepo) Query(_ context.Context, filter attendance.AttendanceFilter, _ access.Scope) ([]attendance.Attendance, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.records {
		if filter.InternID != nil && a.InternID != *filter.InternID {
			continue
		}
		out = append(out, r.join(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

type fakeInternRepo struct {
	intern.InternRepository
	*memoryStore
}

func (r fakeInternRepo) FindByID(_ context.Context, id string) (intern.Intern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	in, ok := r.interns[id]
	if !ok {
		return intern.Intern{}, intern.ErrInternNotFound
	}
	return in, nil
}

type countingRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (c *countingRecorder) AttendanceDecision(operation, outcome, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, operation+":"+outcome+":"+reason)
}
