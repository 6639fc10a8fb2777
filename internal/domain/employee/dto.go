package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const DefaultPerPage = 100

type CreateEmployeeRequest struct {
	UserID        *string          `json:"userId,omitempty"`
	Name          string           `json:"name"`
	Role          string           `json:"role"`
	Email         string           `json:"email"`
	Status        string           `json:"status"`
	DateOfJoining *string          `json:"dateOfJoining,omitempty"`
	Salary        *decimal.Decimal `json:"salary,omitempty"`
	LeaveQuota    *int             `json:"leaveQuota,omitempty"`

	ParsedDateOfJoining *time.Time `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Role) {
		r.Role = "Employee"
	}

	if r.UserID != nil && !validator.IsValidUUID(*r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "userId",
			Message: "userId must be a valid id",
		})
	}

	if validator.IsEmpty(r.Status) {
		r.Status = string(EmploymentStatusActive)
	} else if !EmploymentStatus(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Active or Inactive",
		})
	}

	if r.DateOfJoining != nil {
		if d, ok := validator.IsValidDate(*r.DateOfJoining); ok {
			r.ParsedDateOfJoining = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "dateOfJoining",
				Message: "dateOfJoining must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if r.LeaveQuota != nil && *r.LeaveQuota < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "leaveQuota",
			Message: "leaveQuota must be at least 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID            string           `json:"-"`
	Name          *string          `json:"name,omitempty"`
	Role          *string          `json:"role,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Status        *string          `json:"status,omitempty"`
	DateOfJoining *string          `json:"dateOfJoining,omitempty"`
	Salary        *decimal.Decimal `json:"salary,omitempty"`

	ParsedDateOfJoining *time.Time `json:"-"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Status != nil && !EmploymentStatus(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Active or Inactive",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.DateOfJoining != nil {
		if d, ok := validator.IsValidDate(*r.DateOfJoining); ok {
			r.ParsedDateOfJoining = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "dateOfJoining",
				Message: "dateOfJoining must be in YYYY-MM-DD format",
			})
		}
	}
	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UploadPhotoRequest struct {
	ID       string
	Filename string
	Content  []byte
}

type UpdateLeaveQuotaRequest struct {
	ID         string `json:"-"`
	LeaveQuota *int   `json:"leaveQuota"`
}

func (r *UpdateLeaveQuotaRequest) Validate() error {
	if r.LeaveQuota == nil || *r.LeaveQuota < 1 {
		return ErrInvalidLeaveQuota
	}
	return nil
}

type UpdateUsedDaysRequest struct {
	ID       string `json:"-"`
	UsedDays *int   `json:"usedDays"`
}

func (r *UpdateUsedDaysRequest) Validate() error {
	if r.UsedDays == nil || *r.UsedDays < 0 {
		return ErrInvalidUsedDays
	}
	return nil
}

type SalaryRequest struct {
	EmployeeID string
	Month      string

	ParsedMonth time.Time
}

func (r *SalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must be a valid id",
		})
	}
	if m, ok := validator.IsValidMonth(r.Month); ok {
		r.ParsedMonth = m
	} else {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeFilter struct {
	Search  string
	Page    int
	PerPage int
}

func (f *EmployeeFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PerPage <= 0 {
		f.PerPage = DefaultPerPage
	}
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	UserID        *string `json:"userId"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	Email         string  `json:"email"`
	Status        string  `json:"status"`
	Photo         *string `json:"photo"`
	DateOfJoining *string `json:"dateOfJoining"`
	Salary        *string `json:"salary"`
	LeaveQuota    int     `json:"leaveQuota"`
	UsedDays      int     `json:"usedDays"`
	RemainingDays int     `json:"remainingDays"`
	CreatedAt     string  `json:"createdAt"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		Name:          e.Name,
		Role:          e.Role,
		Email:         e.Email,
		Status:        string(e.Status),
		Photo:         e.Photo,
		LeaveQuota:    e.LeaveQuota,
		UsedDays:      e.UsedDays,
		RemainingDays: e.RemainingDays,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
	if e.DateOfJoining != nil {
		doj := e.DateOfJoining.Format("2006-01-02")
		resp.DateOfJoining = &doj
	}
	if e.Salary != nil {
		salary := e.Salary.StringFixed(2)
		resp.Salary = &salary
	}
	return resp
}

type ListEmployeeResponse struct {
	CurrentPage int                `json:"currentPage"`
	PerPage     int                `json:"perPage"`
	TotalPages  int                `json:"totalPages"`
	TotalCount  int64              `json:"totalCount"`
	Data        []EmployeeResponse `json:"data"`
}

type MeResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	EmployeeID    *string `json:"employeeId,omitempty"`
	DateOfJoining *string `json:"dateOfJoining,omitempty"`
	LeaveQuota    *int    `json:"leaveQuota,omitempty"`
}

type SalaryResponse struct {
	EmployeeID       string `json:"employeeId"`
	Name             string `json:"name"`
	Month            string `json:"month"`
	TotalWorkingDays int    `json:"totalWorkingDays"`
	PresentDays      int    `json:"presentDays"`
	PaidLeaveDays    int    `json:"paidLeaveDays"`
	UnpaidLeaveDays  int    `json:"unpaidLeaveDays"`
	TotalAbsent      int    `json:"totalAbsent"`
	PerDaySalary     string `json:"perDaySalary"`
	TotalSalary      string `json:"totalSalary"`
	CalculatedSalary string `json:"calculatedSalary"`
}

func NewSalaryResponse(e Employee, month string, s Salary) SalaryResponse {
	return SalaryResponse{
		EmployeeID:       e.ID,
		Name:             e.Name,
		Month:            month,
		TotalWorkingDays: s.TotalWorkingDays,
		PresentDays:      s.PresentDays,
		PaidLeaveDays:    s.PaidLeaveDays,
		UnpaidLeaveDays:  s.UnpaidLeaveDays,
		TotalAbsent:      s.TotalAbsent,
		PerDaySalary:     s.PerDay.StringFixed(2),
		TotalSalary:      s.Monthly.StringFixed(2),
		CalculatedSalary: s.Calculated.StringFixed(0),
	}
}
