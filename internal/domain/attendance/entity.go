package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent   Status = "Present"
	StatusAbsent    Status = "Absent"
	StatusLeave     Status = "Leave"
	StatusWeeklyOff Status = "Weekly Off"
	StatusHalfDay   Status = "Half-Day"
)

var Statuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusLeave),
	string(StatusWeeklyOff),
	string(StatusHalfDay),
}

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave, StatusWeeklyOff, StatusHalfDay:
		return true
	}
	return false
}

// Attendance is an explicit, persisted attendance record. Date is the shift day.
type Attendance struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	Status      Status
	Reason      string
	IsWeeklyOff bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName  *string
	EmployeeEmail *string
	EmployeeRole  *string
}

// EmployeeRef is the denormalized employee carried on reconciled rows.
type EmployeeRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// WeeklyOffDay is one rostered day off, already expanded from any recurrence.
type WeeklyOffDay struct {
	EmployeeID string
	Date       time.Time
	Reason     string
}

// LeaveSpan is a leave request's inclusive date range.
type LeaveSpan struct {
	EmployeeID string
	From       time.Time
	To         time.Time
	Reason     string
	Approved   bool
}

// Covers reports whether day falls within the span, both ends included.
func (l LeaveSpan) Covers(day time.Time) bool {
	return day.After(l.From.AddDate(0, 0, -1)) && day.Before(l.To.AddDate(0, 0, 1))
}
