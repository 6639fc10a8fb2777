package weeklyoff

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type CreateWeeklyOffRequest struct {
	EmployeeID     string  `json:"employeeId"`
	Date           string  `json:"date"`
	Reason         string  `json:"reason"`
	RecurrenceRule *string `json:"recurrenceRule,omitempty"`

	ParsedDate time.Time `json:"-"`
}

func (r *CreateWeeklyOffRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must be a valid id",
		})
	}

	d, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.ParsedDate = d
	}

	if validator.IsEmpty(r.Reason) {
		r.Reason = "Weekly Off"
	}

	if r.RecurrenceRule != nil && validator.IsEmpty(*r.RecurrenceRule) {
		r.RecurrenceRule = nil
	}
	if ok && r.RecurrenceRule != nil {
		if _, err := ParseRule(*r.RecurrenceRule, d); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "recurrenceRule",
				Message: "recurrenceRule must be a valid RRULE, e.g. FREQ=WEEKLY;BYDAY=SU",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WeeklyOffResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employeeId"`
	EmployeeName   *string `json:"employeeName,omitempty"`
	EmployeeEmail  *string `json:"employeeEmail,omitempty"`
	Date           string  `json:"date"`
	Reason         string  `json:"reason"`
	RecurrenceRule *string `json:"recurrenceRule"`
	CreatedAt      string  `json:"createdAt"`
}

func NewWeeklyOffResponse(w WeeklyOff) WeeklyOffResponse {
	return WeeklyOffResponse{
		ID:             w.ID,
		EmployeeID:     w.EmployeeID,
		EmployeeName:   w.EmployeeName,
		EmployeeEmail:  w.EmployeeEmail,
		Date:           w.Date.Format("2006-01-02"),
		Reason:         w.Reason,
		RecurrenceRule: w.RecurrenceRule,
		CreatedAt:      w.CreatedAt.Format(time.RFC3339),
	}
}
