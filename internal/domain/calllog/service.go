package calllog

import "context"

type CallLogService interface {
	// Create checks the employee exists and stores the call with its derived fields.
	Create(ctx context.Context, req CreateCallLogRequest) (CallLogResponse, error)
	List(ctx context.Context, filter ListFilter) (ListCallLogResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]CallLogResponse, error)
	Summary(ctx context.Context, filter SummaryFilter) (SummaryResponse, error)
	// TodaySummary covers the employee's calls in the current shift window.
	TodaySummary(ctx context.Context, employeeID string) (TodaySummaryResponse, error)
}
