package weeklyoff

import "context"

type WeeklyOffService interface {
	List(ctx context.Context) ([]WeeklyOffResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]WeeklyOffResponse, error)
	Create(ctx context.Context, req CreateWeeklyOffRequest) (WeeklyOffResponse, error)
	Delete(ctx context.Context, id string) error
}
