package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const attendanceInternDateConstraint = "attendance_records_intern_date_key"

const attendanceSelect = `
	SELECT
		a.id, a.intern_id, a.date, a.status, a.check_in, a.check_out, a.notes, a.marked_by,
		a.created_at, a.updated_at,
		i.name AS intern_name,
		i.email AS intern_email,
		i.mentor_id,
		i.user_id AS intern_user_id,
		u.name AS marked_by_name
	FROM attendance_records a
	JOIN interns i ON i.id = a.intern_id
	LEFT JOIN users u ON u.id = a.marked_by
`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.InternID, &att.Date, &att.Status, &att.CheckIn, &att.CheckOut, &att.Notes, &att.MarkedBy,
		&att.CreatedAt, &att.UpdatedAt,
		&att.InternName, &att.InternEmail, &att.MentorID, &att.InternUserID, &att.MarkedByName,
	)
	return att, err
}

// FindByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// FindByInternAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindByInternAndDate(ctx context.Context, internID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.intern_id = $1 AND a.date = $2 LIMIT 1`, internID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by intern and date: %w", err)
	}

	return &att, nil
}

// Insert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Insert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendance_records (id, intern_id, date, status, check_in, check_out, notes, marked_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = q.Exec(ctx, query,
		id.String(), record.InternID, record.Date, string(record.Status),
		record.CheckIn, record.CheckOut, record.Notes, record.MarkedBy,
	)
	if err != nil {
		if isUniqueViolation(err, attendanceInternDateConstraint) {
			return attendance.Attendance{}, attendance.ErrAttendanceConflict
		}
		return attendance.Attendance{}, fmt.Errorf("failed to insert attendance: %w", err)
	}

	return a.FindByID(ctx, id.String())
}

// UpdateByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateByID(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET date = $2, status = $3, check_in = $4, check_out = $5, notes = $6, marked_by = $7, updated_at = NOW()
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query,
		record.ID, record.Date, string(record.Status),
		record.CheckIn, record.CheckOut, record.Notes, record.MarkedBy,
	)
	if err != nil {
		if isUniqueViolation(err, attendanceInternDateConstraint) {
			return attendance.Attendance{}, attendance.ErrAttendanceConflict
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	return a.FindByID(ctx, record.ID)
}

// DeleteByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteByID(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// Query implements attendance.AttendanceRepository.
func (a *attendanceRepository) Query(ctx context.Context, filter attendance.AttendanceFilter, scope access.Scope) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere, args, argIdx := scopeClause(scope, "i", nil, 1)

	if filter.InternID != nil && *filter.InternID != "" {
		baseWhere += fmt.Sprintf(" AND a.intern_id = $%d", argIdx)
		args = append(args, *filter.InternID)
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	// Date range filters
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_records a
		JOIN interns i ON i.id = a.intern_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	// Build ORDER BY
	orderByField := "a.date"
	switch filter.SortBy {
	case "intern_name":
		orderByField = "i.name"
	case "check_in":
		orderByField = "a.check_in"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY %s %s, a.id
		LIMIT $%d OFFSET $%d
	`, attendanceSelect, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0, limit)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, total, nil
}
