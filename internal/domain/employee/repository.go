package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	// GetByIDs returns the employees found among ids, keyed by id.
	GetByIDs(ctx context.Context, ids []string) (map[string]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, employee Employee) (Employee, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	// ListAll returns every employee ordered by name, for reconciliation.
	ListAll(ctx context.Context) ([]Employee, error)
	UpdateBalance(ctx context.Context, id string, quota, used, remaining int) error
	UpdatePhoto(ctx context.Context, id string, photoURL string) error
}
