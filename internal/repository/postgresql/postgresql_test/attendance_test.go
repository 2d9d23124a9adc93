package postgresql_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAttendanceRepository(db)

	mock.ExpectQuery("FROM attendance_records a").WithArgs("att-1").WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "att-1")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_FindByInternAndDate_NoneIsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAttendanceRepository(db)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.intern_id = $1 AND a.date = $2")).
		WithArgs("intern-1", day).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.FindByInternAndDate(context.Background(), "intern-1", day)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAttendanceRepository_Insert_UniqueViolation(t *testing.T) {
	cases := []struct {
		name         string
		constraint   string
		wantConflict bool
	}{
		{"intern and date", "attendance_records_intern_date_key", true},
		{"other constraint", "attendance_records_pkey", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := postgresql.NewAttendanceRepository(db)

			mock.ExpectExec("INSERT INTO attendance_records").
				WithArgs(anyArgs(8)...).
				WillReturnError(uniqueViolation(tc.constraint))

			_, err := repo.Insert(context.Background(), attendance.Attendance{
				InternID: "intern-1",
				Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				Status:   attendance.StatusAbsent,
				MarkedBy: "mentor-1",
			})
			require.Error(t, err)
			assert.Equal(t, tc.wantConflict, errors.Is(err, attendance.ErrAttendanceConflict))
		})
	}
}

func TestAttendanceRepository_UpdateByID_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAttendanceRepository(db)

	mock.ExpectExec("UPDATE attendance_records").
		WithArgs(anyArgs(7)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err := repo.UpdateByID(context.Background(), attendance.Attendance{ID: "att-1", Status: attendance.StatusAbsent})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_UpdateByID_MovedOntoTakenDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAttendanceRepository(db)

	mock.ExpectExec("UPDATE attendance_records").
		WithArgs(anyArgs(7)...).
		WillReturnError(uniqueViolation("attendance_records_intern_date_key"))

	_, err := repo.UpdateByID(context.Background(), attendance.Attendance{ID: "att-1", Status: attendance.StatusAbsent})
	assert.ErrorIs(t, err, attendance.ErrAttendanceConflict)
}

func TestAttendanceRepository_DeleteByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAttendanceRepository(db)

	mock.ExpectExec("DELETE FROM attendance_records").WithArgs("att-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM attendance_records").WithArgs("att-1").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.DeleteByID(context.Background(), "att-1"))
	assert.ErrorIs(t, repo.DeleteByID(context.Background(), "att-1"), attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_Query_Scoped(t *testing.T) {
	date := "2024-03-01"

	cases := []struct {
		name      string
		scope     access.Scope
		where     string
		scopeArgs []interface{}
	}{
		{"admin", access.Scope{All: true}, "WHERE TRUE AND a.date = $1", nil},
		{"mentor", access.Scope{MentorID: "mentor-1"}, "WHERE (i.mentor_id = $1) AND a.date = $2", []interface{}{"mentor-1"}},
		{"intern", access.Scope{LinkedUserID: "user-1"}, "WHERE (i.user_id = $1) AND a.date = $2", []interface{}{"user-1"}},
		{"nothing", access.Scope{}, "WHERE FALSE AND a.date = $1", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := postgresql.NewAttendanceRepository(db)

			filterArgs := append(append([]interface{}{}, tc.scopeArgs...), date)
			mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)") + "[\\s\\S]*" + regexp.QuoteMeta(tc.where)).
				WithArgs(filterArgs...).
				WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
			mock.ExpectQuery(regexp.QuoteMeta(tc.where) + "[\\s\\S]*" + regexp.QuoteMeta("ORDER BY i.name ASC")).
				WithArgs(append(filterArgs, 10, 10)...).
				WillReturnRows(pgxmock.NewRows([]string{"id"}))

			records, total, err := repo.Query(context.Background(), attendance.AttendanceFilter{
				Date:      &date,
				Page:      2,
				Limit:     10,
				SortBy:    "intern_name",
				SortOrder: "asc",
			}, tc.scope)
			require.NoError(t, err)
			assert.Empty(t, records)
			assert.Zero(t, total)
		})
	}
}
