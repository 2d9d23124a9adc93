package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/interntrack-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/interntrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// The settings table holds at most one row, pinned to id 1 by a CHECK constraint.
const settingsRowID = 1

const settingsSelect = `
	SELECT company_name, working_hours_start, working_hours_end, departments, positions, created_at, updated_at
	FROM settings
	WHERE id = $1
`

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

func scanSettings(row pgx.Row) (settings.Settings, error) {
	var (
		s           settings.Settings
		departments []byte
		positions   []byte
	)
	err := row.Scan(&s.CompanyName, &s.WorkingHours.Start, &s.WorkingHours.End, &departments, &positions, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return settings.Settings{}, err
	}
	if err := json.Unmarshal(departments, &s.Departments); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to decode departments: %w", err)
	}
	if err := json.Unmarshal(positions, &s.Positions); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to decode positions: %w", err)
	}
	return s, nil
}

func encodeLists(s settings.Settings) ([]byte, []byte, error) {
	departments, err := json.Marshal(s.Departments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode departments: %w", err)
	}
	positions, err := json.Marshal(s.Positions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode positions: %w", err)
	}
	return departments, positions, nil
}

// GetOrCreateDefault implements settings.SettingsRepository. The insert is a no-op when the row
// exists, so concurrent first reads converge on one row.
func (r *settingsRepository) GetOrCreateDefault(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	def := settings.Default()
	departments, positions, err := encodeLists(def)
	if err != nil {
		return settings.Settings{}, err
	}

	insert := `
		INSERT INTO settings (id, company_name, working_hours_start, working_hours_end, departments, positions)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = q.Exec(ctx, insert, settingsRowID, def.CompanyName, def.WorkingHours.Start, def.WorkingHours.End, departments, positions)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to create default settings: %w", err)
	}

	s, err := scanSettings(q.QueryRow(ctx, settingsSelect, settingsRowID))
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

// Update implements settings.SettingsRepository.
func (r *settingsRepository) Update(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	departments, positions, err := encodeLists(s)
	if err != nil {
		return settings.Settings{}, err
	}

	query := `
		UPDATE settings
		SET company_name = $2, working_hours_start = $3, working_hours_end = $4,
			departments = $5, positions = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING company_name, working_hours_start, working_hours_end, departments, positions, created_at, updated_at
	`
	updated, err := scanSettings(q.QueryRow(ctx, query, settingsRowID, s.CompanyName, s.WorkingHours.Start, s.WorkingHours.End, departments, positions))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
		return settings.Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}
	return updated, nil
}

// Delete implements settings.SettingsRepository.
func (r *settingsRepository) Delete(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM settings WHERE id = $1`, settingsRowID); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	return nil
}
