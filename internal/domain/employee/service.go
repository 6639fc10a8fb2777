package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees lists employees filtered by a case-insensitive name search, newest first
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// GetByUserID returns the employee linked to a user account
	GetByUserID(ctx context.Context, userID string) (EmployeeResponse, error)

	// Me returns the caller's identity and, when linked, employee profile
	Me(ctx context.Context, userID string) (MeResponse, error)

	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee applies the non-nil fields of req
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	DeleteEmployee(ctx context.Context, id string) error

	// UploadPhoto stores the photo and replaces the previous one
	UploadPhoto(ctx context.Context, req UploadPhotoRequest) (EmployeeResponse, error)

	UpdateLeaveQuota(ctx context.Context, req UpdateLeaveQuotaRequest) (EmployeeResponse, error)

	// UpdateUsedDays validates against approved leave days and the quota
	UpdateUsedDays(ctx context.Context, req UpdateUsedDaysRequest) (EmployeeResponse, error)

	SalaryByMonth(ctx context.Context, req SalaryRequest) (SalaryResponse, error)

	// SalarySlip renders SalaryByMonth as a PDF
	SalarySlip(ctx context.Context, req SalaryRequest) ([]byte, error)
}
