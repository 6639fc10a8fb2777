package calllog

import (
	"context"
	"time"
)

type CallLogRepository interface {
	Create(ctx context.Context, log CallLog) (CallLog, error)
	// List returns a page in insertion order and the total count.
	List(ctx context.Context, page, limit int) ([]CallLog, int64, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]CallLog, error)
	// ListByEmployeeBetween returns calls with from <= createdAt <= to, oldest first.
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]CallLog, error)
	// Summary aggregates over createdAt in [from, to]. Nil bounds are open.
	Summary(ctx context.Context, from, to *time.Time) (Summary, error)
}
