package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/intern"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	internEmailConstraint  = "interns_email_key"
	internUserIDConstraint = "interns_user_id_key"
)

const internSelect = `
	SELECT
		i.id, i.user_id, i.name, i.email, i.phone, i.department, i.position,
		i.start_date, i.end_date, i.status, i.performance_rating, i.project_status, i.progress_notes,
		i.mentor_id, i.created_at, i.updated_at,
		m.name AS mentor_name
	FROM interns i
	LEFT JOIN users m ON m.id = i.mentor_id
`

type internRepository struct {
	db *database.DB
}

func NewInternRepository(db *database.DB) intern.InternRepository {
	return &internRepository{db: db}
}

func scanIntern(row pgx.Row) (intern.Intern, error) {
	var in intern.Intern
	err := row.Scan(
		&in.ID, &in.UserID, &in.Name, &in.Email, &in.Phone, &in.Department, &in.Position,
		&in.StartDate, &in.EndDate, &in.Status, &in.PerformanceRating, &in.ProjectStatus, &in.ProgressNotes,
		&in.MentorID, &in.CreatedAt, &in.UpdatedAt,
		&in.MentorName,
	)
	return in, err
}

func translateInternError(err error, action string) error {
	switch {
	case isUniqueViolation(err, internEmailConstraint):
		return intern.ErrEmailExists
	case isUniqueViolation(err, internUserIDConstraint):
		return intern.ErrUserAlreadyLinked
	default:
		return fmt.Errorf("failed to %s intern: %w", action, err)
	}
}

func (r *internRepository) findOne(ctx context.Context, where string, arg interface{}) (intern.Intern, error) {
	q := GetQuerier(ctx, r.db)

	in, err := scanIntern(q.QueryRow(ctx, internSelect+" WHERE "+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return intern.Intern{}, intern.ErrInternNotFound
		}
		return intern.Intern{}, fmt.Errorf("failed to get intern: %w", err)
	}
	return in, nil
}

// FindByID implements intern.InternRepository.
func (r *internRepository) FindByID(ctx context.Context, id string) (intern.Intern, error) {
	return r.findOne(ctx, "i.id = $1", id)
}

// FindByLinkedUser implements intern.InternRepository.
func (r *internRepository) FindByLinkedUser(ctx context.Context, userID string) (intern.Intern, error) {
	return r.findOne(ctx, "i.user_id = $1", userID)
}

// FindByMentor implements intern.InternRepository.
func (r *internRepository) FindByMentor(ctx context.Context, mentorID string) ([]intern.Intern, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, internSelect+" WHERE i.mentor_id = $1 ORDER BY i.name", mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interns by mentor: %w", err)
	}
	defer rows.Close()

	return collectInterns(rows, 0)
}

// List implements intern.InternRepository.
func (r *internRepository) List(ctx context.Context, filter intern.InternFilter, scope access.Scope) ([]intern.Intern, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere, args, argIdx := scopeClause(scope, "i", nil, 1)

	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND i.department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND i.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.MentorID != nil && *filter.MentorID != "" {
		baseWhere += fmt.Sprintf(" AND i.mentor_id = $%d", argIdx)
		args = append(args, *filter.MentorID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (i.name ILIKE $%d OR i.email ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM interns i WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count interns: %w", err)
	}

	orderByField := "i.name"
	switch filter.SortBy {
	case "start_date":
		orderByField = "i.start_date"
	case "created_at":
		orderByField = "i.created_at"
	case "status":
		orderByField = "i.status"
	}
	sortOrder := "ASC"
	if strings.ToLower(filter.SortOrder) == "desc" {
		sortOrder = "DESC"
	}

	selectQuery := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY %s %s, i.id
		LIMIT $%d OFFSET $%d
	`, internSelect, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

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
		return nil, 0, fmt.Errorf("failed to query interns: %w", err)
	}
	defer rows.Close()

	interns, err := collectInterns(rows, limit)
	if err != nil {
		return nil, 0, err
	}
	return interns, total, nil
}

func collectInterns(rows pgx.Rows, capacity int) ([]intern.Intern, error) {
	interns := make([]intern.Intern, 0, capacity)
	for rows.Next() {
		in, err := scanIntern(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan intern: %w", err)
		}
		interns = append(interns, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interns: %w", err)
	}
	return interns, nil
}

// Create implements intern.InternRepository.
func (r *internRepository) Create(ctx context.Context, newIntern intern.Intern) (intern.Intern, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return intern.Intern{}, fmt.Errorf("failed to generate intern id: %w", err)
	}

	query := `
		INSERT INTO interns (
			id, user_id, name, email, phone, department, position, start_date, end_date,
			status, performance_rating, project_status, progress_notes, mentor_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = q.Exec(ctx, query,
		id.String(), newIntern.UserID, newIntern.Name, newIntern.Email, newIntern.Phone,
		newIntern.Department, newIntern.Position, newIntern.StartDate, newIntern.EndDate,
		string(newIntern.Status), newIntern.PerformanceRating, string(newIntern.ProjectStatus),
		newIntern.ProgressNotes, newIntern.MentorID,
	)
	if err != nil {
		return intern.Intern{}, translateInternError(err, "create")
	}

	return r.FindByID(ctx, id.String())
}

// Update implements intern.InternRepository.
func (r *internRepository) Update(ctx context.Context, updated intern.Intern) (intern.Intern, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE interns
		SET user_id = $2, name = $3, email = $4, phone = $5, department = $6, position = $7,
			start_date = $8, end_date = $9, status = $10, performance_rating = $11,
			project_status = $12, progress_notes = $13, mentor_id = $14, updated_at = NOW()
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query,
		updated.ID, updated.UserID, updated.Name, updated.Email, updated.Phone,
		updated.Department, updated.Position, updated.StartDate, updated.EndDate,
		string(updated.Status), updated.PerformanceRating, string(updated.ProjectStatus),
		updated.ProgressNotes, updated.MentorID,
	)
	if err != nil {
		return intern.Intern{}, translateInternError(err, "update")
	}
	if commandTag.RowsAffected() == 0 {
		return intern.Intern{}, intern.ErrInternNotFound
	}

	return r.FindByID(ctx, updated.ID)
}

// Delete implements intern.InternRepository. Attendance records cascade.
func (r *internRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM interns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete intern: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return intern.ErrInternNotFound
	}
	return nil
}

// DeleteByStatuses implements intern.InternRepository.
func (r *internRepository) DeleteByStatuses(ctx context.Context, statuses []intern.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM interns WHERE status = ANY($1)`, values)
	if err != nil {
		return 0, fmt.Errorf("failed to delete interns by status: %w", err)
	}
	return commandTag.RowsAffected(), nil
}
