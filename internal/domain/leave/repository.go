package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status Status) (LeaveRequest, error)
	// CountCreatedBetween counts requests of any status with from <= created_at < to.
	CountCreatedBetween(ctx context.Context, employeeID string, from, to time.Time) (int, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)
	// ListOverlapping returns requests touching [from, to]. A nil status matches all statuses.
	ListOverlapping(ctx context.Context, employeeID *string, status *Status, from, to time.Time) ([]LeaveRequest, error)
	// SumApprovedDays totals the inclusive length of every Approved request of the employee.
	SumApprovedDays(ctx context.Context, employeeID string) (int, error)
}
