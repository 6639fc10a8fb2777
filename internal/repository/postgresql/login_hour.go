package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/loginhour"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const loginHourColumns = `l.id, l.employee_id, l.date, l.login_time, l.logout_time, l.breaks, l.created_at, l.updated_at`

type loginHourRepository struct {
	db *database.DB
}

func NewLoginHourRepository(db *database.DB) loginhour.LoginHourRepository {
	return &loginHourRepository{db: db}
}

func scanLoginHour(row pgx.Row, withEmployee bool) (loginhour.LoginHour, error) {
	var l loginhour.LoginHour
	dest := []interface{}{
		&l.ID, &l.EmployeeID, &l.Date, &l.LoginTime, &l.LogoutTime, &l.Breaks, &l.CreatedAt, &l.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &l.EmployeeName, &l.EmployeeEmail)
	}
	err := row.Scan(dest...)
	return l, err
}

// Create implements loginhour.LoginHourRepository.
func (r *loginHourRepository) Create(ctx context.Context, record loginhour.LoginHour) (loginhour.LoginHour, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO login_hours (employee_id, date, login_time, breaks)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, record.EmployeeID, record.Date, record.LoginTime, record.Breaks); err != nil {
		return loginhour.LoginHour{}, fmt.Errorf("failed to create login hour: %w", err)
	}

	// A concurrent or earlier login for the same day keeps the first record.
	return r.GetByEmployeeAndDate(ctx, record.EmployeeID, record.Date)
}

func (r *loginHourRepository) get(ctx context.Context, employeeID string, date time.Time, suffix string) (loginhour.LoginHour, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + loginHourColumns + ` FROM login_hours l WHERE l.employee_id = $1 AND l.date = $2` + suffix
	l, err := scanLoginHour(q.QueryRow(ctx, query, employeeID, date), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return loginhour.LoginHour{}, loginhour.ErrLoginHourNotFound
		}
		return loginhour.LoginHour{}, fmt.Errorf("failed to get login hour for employee %s: %w", employeeID, err)
	}
	return l, nil
}

// GetByEmployeeAndDate implements loginhour.LoginHourRepository.
func (r *loginHourRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (loginhour.LoginHour, error) {
	return r.get(ctx, employeeID, date, "")
}

// GetForUpdate implements loginhour.LoginHourRepository.
func (r *loginHourRepository) GetForUpdate(ctx context.Context, employeeID string, date time.Time) (loginhour.LoginHour, error) {
	return r.get(ctx, employeeID, date, " FOR UPDATE")
}

// Save implements loginhour.LoginHourRepository.
func (r *loginHourRepository) Save(ctx context.Context, record loginhour.LoginHour) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE login_hours
		SET logout_time = $1, breaks = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := q.Exec(ctx, query, record.LogoutTime, record.Breaks, record.ID)
	if err != nil {
		return fmt.Errorf("failed to save login hour %s: %w", record.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return loginhour.ErrLoginHourNotFound
	}
	return nil
}

func (r *loginHourRepository) list(ctx context.Context, query string, args ...interface{}) ([]loginhour.LoginHour, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query login hours: %w", err)
	}
	defer rows.Close()

	var out []loginhour.LoginHour
	for rows.Next() {
		l, err := scanLoginHour(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan login hour: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListAll implements loginhour.LoginHourRepository.
func (r *loginHourRepository) ListAll(ctx context.Context) ([]loginhour.LoginHour, error) {
	return r.list(ctx, `
		SELECT `+loginHourColumns+`, e.name, e.email
		FROM login_hours l
		LEFT JOIN employees e ON e.id = l.employee_id
		ORDER BY l.date DESC, l.login_time DESC`)
}

// ListOpenBreaks implements loginhour.LoginHourRepository.
func (r *loginHourRepository) ListOpenBreaks(ctx context.Context, date time.Time) ([]loginhour.LoginHour, error) {
	return r.list(ctx, `
		SELECT `+loginHourColumns+`, e.name, e.email
		FROM login_hours l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.date = $1
		  AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(l.breaks) b
			WHERE b->>'end' IS NULL
		  )`, date)
}
