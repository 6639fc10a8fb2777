package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `a.id, a.employee_id, a.date, a.status, a.reason, a.is_weekly_off, a.created_at, a.updated_at,
	e.name, e.email, e.role`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.Reason, &a.IsWeeklyOff, &a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeName, &a.EmployeeEmail, &a.EmployeeRole,
	)
	return a, err
}

// returning writes through a CTE so the employee join comes back with the written row.
func (r *attendanceRepository) returning(ctx context.Context, write string, args ...interface{}) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH a AS (` + write + ` RETURNING *)
		SELECT ` + attendanceColumns + `
		FROM a
		LEFT JOIN employees e ON e.id = a.employee_id
	`
	return scanAttendance(q.QueryRow(ctx, query, args...))
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	created, err := r.returning(ctx, `
		INSERT INTO attendances (employee_id, date, status, reason, is_weekly_off)
		VALUES ($1, $2, $3, $4, $5)`,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.Status,
		newAttendance.Reason,
		newAttendance.IsWeeklyOff,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyMarked
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`
	a, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	return a, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
	`
	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance for employee %s: %w", employeeID, err)
	}
	return &a, nil
}

// UpdateStatus implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateStatus(ctx context.Context, id string, status attendance.Status, isWeeklyOff bool) (attendance.Attendance, error) {
	updated, err := r.returning(ctx, `
		UPDATE attendances
		SET status = $1, is_weekly_off = $2, updated_at = NOW()
		WHERE id = $3`,
		status, isWeeklyOff, id,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance status: %w", err)
	}
	return updated, nil
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepository) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	saved, err := r.returning(ctx, `
		INSERT INTO attendances (employee_id, date, status, reason, is_weekly_off)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET status = EXCLUDED.status, is_weekly_off = EXCLUDED.is_weekly_off, updated_at = NOW()`,
		a.EmployeeID, a.Date, a.Status, a.Reason, a.IsWeeklyOff,
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return saved, nil
}

// ForceStatus implements attendance.AttendanceRepository.
// The conflict guard keeps the ratchet monotonic even when the caller decided from a stale read.
func (r *attendanceRepository) ForceStatus(ctx context.Context, employeeID string, date time.Time, status attendance.Status, reason string) (attendance.Attendance, bool, error) {
	saved, err := r.returning(ctx, `
		INSERT INTO attendances (employee_id, date, status, reason, is_weekly_off)
		VALUES ($1, $2, $3, $4, FALSE)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET status = EXCLUDED.status, reason = EXCLUDED.reason, updated_at = NOW()
		WHERE attendances.status <> $5
			AND NOT (attendances.status = $6 AND EXCLUDED.status = $6)`,
		employeeID, date, status, reason, attendance.StatusAbsent, attendance.StatusHalfDay,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, false, nil
	}
	if err != nil {
		return attendance.Attendance{}, false, fmt.Errorf("failed to force attendance status: %w", err)
	}
	return saved, true, nil
}

func (r *attendanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var out []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListInRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListInRange(ctx context.Context, employeeID *string, from, to time.Time) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.date BETWEEN $1 AND $2
	`
	args := []interface{}{from, to}
	if employeeID != nil {
		query += ` AND a.employee_id = $3`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY a.date DESC`

	return r.list(ctx, query, args...)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return r.list(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
		ORDER BY a.date DESC`, employeeID)
}

// CountByStatus implements attendance.AttendanceRepository.
func (r *attendanceRepository) CountByStatus(ctx context.Context, employeeID string, status attendance.Status, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendances
		WHERE employee_id = $1 AND status = $2 AND date BETWEEN $3 AND $4`,
		employeeID, status, from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendances: %w", err)
	}
	return count, nil
}
