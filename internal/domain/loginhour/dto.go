package loginhour

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type SessionRequest struct {
	EmployeeID        string `json:"employeeId"`
	RequestedDuration *int   `json:"requestedDuration,omitempty"`
}

func (r *SessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "Employee ID is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must be a valid id",
		})
	}

	if r.RequestedDuration != nil && *r.RequestedDuration <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "requestedDuration",
			Message: "requestedDuration must be a positive number of minutes",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakResponse struct {
	Start             string  `json:"start"`
	End               *string `json:"end"`
	RequestedDuration *int    `json:"requestedDuration,omitempty"`
	Duration          string  `json:"duration"`
}

type EmployeeSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginHourResponse struct {
	ID             string           `json:"id"`
	EmployeeID     string           `json:"employeeId"`
	Employee       *EmployeeSummary `json:"employee,omitempty"`
	Date           string           `json:"date"`
	LoginTime      string           `json:"loginTime"`
	LogoutTime     *string          `json:"logoutTime"`
	Breaks         []BreakResponse  `json:"breaks"`
	TotalBreakTime string           `json:"totalBreakTime"`
}

func NewBreakResponse(b Break, now time.Time) BreakResponse {
	resp := BreakResponse{
		Start:             b.Start.Format(time.RFC3339),
		RequestedDuration: b.RequestedDuration,
		Duration:          FormatHMS(Breaks{b}.Total(now)),
	}
	if b.End != nil {
		end := b.End.Format(time.RFC3339)
		resp.End = &end
	}
	return resp
}

func NewLoginHourResponse(l LoginHour, now time.Time) LoginHourResponse {
	resp := LoginHourResponse{
		ID:             l.ID,
		EmployeeID:     l.EmployeeID,
		Date:           l.Date.Format("2006-01-02"),
		LoginTime:      l.LoginTime.Format(time.RFC3339),
		Breaks:         make([]BreakResponse, 0, len(l.Breaks)),
		TotalBreakTime: FormatHMS(l.Breaks.Total(now)),
	}
	if l.LogoutTime != nil {
		logout := l.LogoutTime.Format(time.RFC3339)
		resp.LogoutTime = &logout
	}
	for _, b := range l.Breaks {
		resp.Breaks = append(resp.Breaks, NewBreakResponse(b, now))
	}
	if l.EmployeeName != nil {
		emp := EmployeeSummary{ID: l.EmployeeID, Name: *l.EmployeeName}
		if l.EmployeeEmail != nil {
			emp.Email = *l.EmployeeEmail
		}
		resp.Employee = &emp
	}
	return resp
}

type EndBreakResponse struct {
	Record     LoginHourResponse `json:"record"`
	EndedBreak BreakResponse     `json:"endedBreak"`
}

type TodayStatsResponse struct {
	Date                 string  `json:"date"`
	WorkedHoursToday     float64 `json:"workedHoursToday"`
	TotalWorkedWithBreak float64 `json:"totalWorkedWithBreak"`
	TotalBreaksToday     int     `json:"totalBreaksToday"`
	TotalBreakTimeToday  string  `json:"totalBreakTimeToday"`
	IsOnBreak            bool    `json:"isOnBreak"`
	BreakStatus          string  `json:"breakStatus"`
	RemainingBreakTime   string  `json:"remainingBreakTime"`
}
