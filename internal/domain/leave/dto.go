package leave

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const DefaultPerPage = 100

type CreateLeaveRequest struct {
	EmployeeID string `json:"employeeId"`
	From       string `json:"from"`
	To         string `json:"to"`
	Reason     string `json:"reason"`
	LeaveType  string `json:"leaveType"`

	DocumentName    string `json:"-"`
	DocumentContent []byte `json:"-"`

	ParsedFrom time.Time `json:"-"`
	ParsedTo   time.Time `json:"-"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must be a valid id",
		})
	}

	from, fromOK := validator.IsValidDate(r.From)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	to, toOK := validator.IsValidDate(r.To)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK {
		if to.Before(from) {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must not be before from",
			})
		}
		r.ParsedFrom, r.ParsedTo = from, to
	}

	if validator.IsEmpty(r.LeaveType) {
		r.LeaveType = TypePaid
	}
	if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of Pending, Approved, Rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveFilter struct {
	EmployeeID *string
	Status     *string
	Page       int
	PerPage    int
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !Status(*f.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of Pending, Approved, Rejected",
		})
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PerPage <= 0 {
		f.PerPage = DefaultPerPage
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LeaveResponse struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employeeId"`
	Employee   *EmployeeSummary `json:"employee,omitempty"`
	From       string           `json:"from"`
	To         string           `json:"to"`
	Days       int              `json:"days"`
	Reason     string           `json:"reason"`
	LeaveType  string           `json:"leaveType"`
	IsPaid     bool             `json:"isPaid"`
	Status     string           `json:"status"`
	Document   *string          `json:"document"`
	CreatedAt  string           `json:"createdAt"`
}

func NewLeaveResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		From:       l.From.Format("2006-01-02"),
		To:         l.To.Format("2006-01-02"),
		Days:       l.Days(),
		Reason:     l.Reason,
		LeaveType:  l.LeaveType,
		IsPaid:     l.IsPaid,
		Status:     string(l.Status),
		Document:   l.DocumentURL,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.EmployeeName != nil {
		emp := EmployeeSummary{ID: l.EmployeeID, Name: *l.EmployeeName}
		if l.EmployeeEmail != nil {
			emp.Email = *l.EmployeeEmail
		}
		if l.EmployeeRole != nil {
			emp.Role = *l.EmployeeRole
		}
		resp.Employee = &emp
	}
	return resp
}

type ListLeaveResponse struct {
	CurrentPage int             `json:"currentPage"`
	PerPage     int             `json:"perPage"`
	TotalPages  int             `json:"totalPages"`
	TotalCount  int64           `json:"totalCount"`
	Data        []LeaveResponse `json:"data"`
}

// BalanceResponse is the employee balance after a status change.
type BalanceResponse struct {
	LeaveQuota    int `json:"leaveQuota"`
	UsedDays      int `json:"usedDays"`
	RemainingDays int `json:"remainingDays"`
}

type UpdateStatusResponse struct {
	Leave      LeaveResponse    `json:"leave"`
	Transition string           `json:"transition"`
	Balance    *BalanceResponse `json:"balance,omitempty"`
}
