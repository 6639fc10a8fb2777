package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Create marks an explicit record for any employee and date.
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// MarkSelf marks Present for the caller's current shift day. Created is false if a record already existed.
	MarkSelf(ctx context.Context, employeeID string) (MarkResponse, error)

	// Today reports whether the caller has a record for the current shift day.
	Today(ctx context.Context, employeeID string) (TodayResponse, error)

	// List reconciles explicit records, weekly offs and leaves over the filter range.
	List(ctx context.Context, filter ListAttendanceFilter) (ListAttendanceResponse, error)

	// Summary returns only the counters of List.
	Summary(ctx context.Context, filter ListAttendanceFilter) (SummaryResponse, error)

	// ListByEmployee returns the explicit records of one employee, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)

	// UpdateStatus edits a real record, or materializes a virtual id into one.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (AttendanceResponse, error)

	// Export renders the reconciled rows of the filter as an xlsx workbook.
	Export(ctx context.Context, filter ListAttendanceFilter) ([]byte, error)

	// ApplyBreakPolicy ratchets the day's status from the accumulated break time.
	// It returns the written record, or nil when nothing changed.
	ApplyBreakPolicy(ctx context.Context, employeeID string, day time.Time, totalBreak time.Duration) (*Attendance, error)

	// AnnounceDowngrade counts and notifies a downgrade once its write is durable.
	AnnounceDowngrade(ctx context.Context, a Attendance)
}
