package weeklyoff

import (
	"context"
	"time"
)

type WeeklyOffRepository interface {
	Create(ctx context.Context, off WeeklyOff) (WeeklyOff, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]WeeklyOff, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]WeeklyOff, error)
	// ListRelevant returns one-off days inside [from, to] and every series anchored on or before to.
	ListRelevant(ctx context.Context, employeeID *string, from, to time.Time) ([]WeeklyOff, error)
}
