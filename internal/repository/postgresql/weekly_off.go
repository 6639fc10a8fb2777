package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/weeklyoff"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const weeklyOffColumns = `w.id, w.employee_id, w.date, w.reason, w.recurrence_rule, w.created_at, e.name, e.email`

type weeklyOffRepository struct {
	db *database.DB
}

func NewWeeklyOffRepository(db *database.DB) weeklyoff.WeeklyOffRepository {
	return &weeklyOffRepository{db: db}
}

func scanWeeklyOff(row pgx.Row) (weeklyoff.WeeklyOff, error) {
	var w weeklyoff.WeeklyOff
	err := row.Scan(&w.ID, &w.EmployeeID, &w.Date, &w.Reason, &w.RecurrenceRule, &w.CreatedAt,
		&w.EmployeeName, &w.EmployeeEmail)
	return w, err
}

// Create implements weeklyoff.WeeklyOffRepository.
func (r *weeklyOffRepository) Create(ctx context.Context, off weeklyoff.WeeklyOff) (weeklyoff.WeeklyOff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH w AS (
			INSERT INTO weekly_offs (employee_id, date, reason, recurrence_rule)
			VALUES ($1, $2, $3, $4)
			RETURNING *
		)
		SELECT ` + weeklyOffColumns + `
		FROM w
		LEFT JOIN employees e ON e.id = w.employee_id
	`
	created, err := scanWeeklyOff(q.QueryRow(ctx, query, off.EmployeeID, off.Date, off.Reason, off.RecurrenceRule))
	if err != nil {
		return weeklyoff.WeeklyOff{}, fmt.Errorf("failed to create weekly off: %w", err)
	}
	return created, nil
}

// Delete implements weeklyoff.WeeklyOffRepository.
func (r *weeklyOffRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM weekly_offs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete weekly off with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return weeklyoff.ErrWeeklyOffNotFound
	}
	return nil
}

func (r *weeklyOffRepository) list(ctx context.Context, query string, args ...interface{}) ([]weeklyoff.WeeklyOff, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly offs: %w", err)
	}
	defer rows.Close()

	var offs []weeklyoff.WeeklyOff
	for rows.Next() {
		w, err := scanWeeklyOff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly off: %w", err)
		}
		offs = append(offs, w)
	}
	return offs, rows.Err()
}

// ListAll implements weeklyoff.WeeklyOffRepository.
func (r *weeklyOffRepository) ListAll(ctx context.Context) ([]weeklyoff.WeeklyOff, error) {
	return r.list(ctx, `
		SELECT `+weeklyOffColumns+`
		FROM weekly_offs w
		LEFT JOIN employees e ON e.id = w.employee_id
		ORDER BY w.date DESC, w.created_at ASC`)
}

// ListByEmployee implements weeklyoff.WeeklyOffRepository.
func (r *weeklyOffRepository) ListByEmployee(ctx context.Context, employeeID string) ([]weeklyoff.WeeklyOff, error) {
	return r.list(ctx, `
		SELECT `+weeklyOffColumns+`
		FROM weekly_offs w
		LEFT JOIN employees e ON e.id = w.employee_id
		WHERE w.employee_id = $1
		ORDER BY w.date DESC, w.created_at ASC`, employeeID)
}

// ListRelevant implements weeklyoff.WeeklyOffRepository.
// Rows come back in creation order so later assignments override earlier ones.
func (r *weeklyOffRepository) ListRelevant(ctx context.Context, employeeID *string, from, to time.Time) ([]weeklyoff.WeeklyOff, error) {
	query := `
		SELECT ` + weeklyOffColumns + `
		FROM weekly_offs w
		LEFT JOIN employees e ON e.id = w.employee_id
		WHERE ((w.recurrence_rule IS NULL OR w.recurrence_rule = '') AND w.date BETWEEN $1 AND $2
			OR (w.recurrence_rule IS NOT NULL AND w.recurrence_rule <> '' AND w.date <= $2))
	`
	args := []interface{}{from, to}
	if employeeID != nil {
		query += ` AND w.employee_id = $3`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY w.created_at ASC`

	return r.list(ctx, query, args...)
}
