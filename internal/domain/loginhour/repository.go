package loginhour

import (
	"context"
	"time"
)

type LoginHourRepository interface {
	// Create inserts the record, or returns the existing one for (employee, date).
	Create(ctx context.Context, record LoginHour) (LoginHour, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (LoginHour, error)

	// GetForUpdate is GetByEmployeeAndDate with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, employeeID string, date time.Time) (LoginHour, error)

	// Save writes logout time and breaks.
	Save(ctx context.Context, record LoginHour) error

	// ListAll returns every record with employee name and email, newest first.
	ListAll(ctx context.Context) ([]LoginHour, error)

	// ListOpenBreaks returns the records of date that currently have an open break.
	ListOpenBreaks(ctx context.Context, date time.Time) ([]LoginHour, error)
}
