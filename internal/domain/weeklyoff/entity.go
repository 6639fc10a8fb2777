package weeklyoff

import "time"

// WeeklyOff is a rostered day off. With a RecurrenceRule, Date anchors the series.
type WeeklyOff struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	Reason         string
	RecurrenceRule *string
	CreatedAt      time.Time

	// DTO
	EmployeeName  *string
	EmployeeEmail *string
}

func (w WeeklyOff) Recurring() bool {
	return w.RecurrenceRule != nil && *w.RecurrenceRule != ""
}
