package leave

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// TypePaid is the leave type that marks a request as paid.
const TypePaid = "Paid Leave"

// LeaveRequest covers the inclusive civil date range [From, To].
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	From        time.Time
	To          time.Time
	Reason      string
	LeaveType   string
	IsPaid      bool
	Status      Status
	DocumentURL *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName  *string
	EmployeeEmail *string
	EmployeeRole  *string
}

// Days is the inclusive length of the request.
func (l LeaveRequest) Days() int {
	days, err := DaysBetween(l.From, l.To)
	if err != nil {
		return 0
	}
	return days
}
