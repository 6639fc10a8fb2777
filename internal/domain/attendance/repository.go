package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for explicit attendance records.
type AttendanceRepository interface {
	// Create inserts a record. A duplicate (employee, date) returns ErrAlreadyMarked.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists for that shift day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// UpdateStatus sets status and the weekly-off flag on an existing record.
	UpdateStatus(ctx context.Context, id string, status Status, isWeeklyOff bool) (Attendance, error)

	// Upsert inserts the record or, on an existing (employee, date), updates status and
	// weekly-off flag while keeping the stored reason.
	Upsert(ctx context.Context, attendance Attendance) (Attendance, error)

	// ForceStatus writes status and reason for (employee, date), creating the row if needed.
	// The write is skipped when the stored status is already as severe (Absent, or Half-Day
	// over Half-Day); written reports whether anything changed.
	ForceStatus(ctx context.Context, employeeID string, date time.Time, status Status, reason string) (a Attendance, written bool, err error)

	// ListInRange returns explicit records with from <= date <= to, optionally for one employee.
	ListInRange(ctx context.Context, employeeID *string, from, to time.Time) ([]Attendance, error)

	// ListByEmployee returns all of an employee's records, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)

	CountByStatus(ctx context.Context, employeeID string, status Status, from, to time.Time) (int, error)
}
