package leave

import (
	"context"
)

type LeaveService interface {
	// Request validates the policy limits and creates a Pending request.
	Request(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	// UpdateStatus changes the status and adjusts the employee balance in one transaction.
	UpdateStatus(ctx context.Context, req UpdateLeaveStatusRequest) (UpdateStatusResponse, error)
	List(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	Get(ctx context.Context, id string) (LeaveResponse, error)
}
