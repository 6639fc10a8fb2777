package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const (
	DefaultPerPage = 100
	MaxPerPage     = 1000
)

type CreateAttendanceRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Reason     string `json:"reason"`

	ParsedDate time.Time `json:"-"`
}

func (r *CreateAttendanceRequest) Validate() error {
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

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.ParsedDate = d
	}

	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of Present, Absent, Leave, Weekly Off, Half-Day",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
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
			Message: "status must be one of Present, Absent, Leave, Weekly Off, Half-Day",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListAttendanceFilter mirrors GET /attendance query parameters.
type ListAttendanceFilter struct {
	EmployeeID  *string
	StartDate   *string
	EndDate     *string
	Page        int
	PerPage     int
	SummaryOnly bool

	From time.Time
	To   time.Time
}

func (f *ListAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must be a valid id",
		})
	}
	if f.StartDate != nil {
		if d, ok := validator.IsValidDate(*f.StartDate); ok {
			f.From = d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if d, ok := validator.IsValidDate(*f.EndDate); ok {
			f.To = d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must be in YYYY-MM-DD format",
			})
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		})
	}

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PerPage <= 0 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID          string       `json:"id"`
	EmployeeID  string       `json:"employeeId"`
	Employee    *EmployeeRef `json:"employee,omitempty"`
	Date        string       `json:"date"`
	Status      string       `json:"status"`
	Reason      string       `json:"reason"`
	IsWeeklyOff bool         `json:"isWeeklyOff"`
	IsVirtual   bool         `json:"isVirtual"`
	CreatedAt   *string      `json:"createdAt,omitempty"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	created := a.CreatedAt.Format(time.RFC3339)
	resp := AttendanceResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Date:        a.Date.Format(dateLayout),
		Status:      string(a.Status),
		Reason:      a.Reason,
		IsWeeklyOff: a.IsWeeklyOff,
		CreatedAt:   &created,
	}
	if a.EmployeeName != nil {
		ref := EmployeeRef{ID: a.EmployeeID, Name: *a.EmployeeName}
		if a.EmployeeEmail != nil {
			ref.Email = *a.EmployeeEmail
		}
		if a.EmployeeRole != nil {
			ref.Role = *a.EmployeeRole
		}
		resp.Employee = &ref
	}
	return resp
}

func NewRecordResponse(r Record) AttendanceResponse {
	emp := r.Employee
	resp := AttendanceResponse{
		ID:          r.ID,
		EmployeeID:  emp.ID,
		Employee:    &emp,
		Date:        r.Date.Format(dateLayout),
		Status:      string(r.Status),
		Reason:      r.Reason,
		IsWeeklyOff: r.IsWeeklyOff,
		IsVirtual:   r.IsVirtual,
	}
	if r.CreatedAt != nil {
		created := r.CreatedAt.Format(time.RFC3339)
		resp.CreatedAt = &created
	}
	return resp
}

type OverallStatsResponse struct {
	TotalPresent   int `json:"totalPresent"`
	TotalAbsent    int `json:"totalAbsent"`
	TotalLeave     int `json:"totalLeave"`
	TotalWeeklyOff int `json:"totalWeeklyOff"`
	TotalHalfDay   int `json:"totalHalfDay"`
	TotalOther     int `json:"totalOther"`
}

func NewOverallStatsResponse(c Counters) OverallStatsResponse {
	return OverallStatsResponse{
		TotalPresent:   c.Present,
		TotalAbsent:    c.Absent,
		TotalLeave:     c.Leave,
		TotalWeeklyOff: c.WeeklyOff,
		TotalHalfDay:   c.HalfDay,
		TotalOther:     c.Other,
	}
}

type EmployeeStatsResponse struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Counters
}

func NewEmployeeStatsResponse(stats []EmployeeStats) []EmployeeStatsResponse {
	out := make([]EmployeeStatsResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, EmployeeStatsResponse{
			EmployeeID: s.Employee.ID,
			Name:       s.Employee.Name,
			Email:      s.Employee.Email,
			Role:       s.Employee.Role,
			Counters:   s.Counters,
		})
	}
	return out
}

type SummaryResponse struct {
	StartDate      string                  `json:"startDate"`
	EndDate        string                  `json:"endDate"`
	OverallStats   OverallStatsResponse    `json:"overallStats"`
	EmployeeStats  []EmployeeStatsResponse `json:"employeeStats"`
	TotalEmployees int                     `json:"totalEmployees"`
}

type ListAttendanceResponse struct {
	SummaryResponse
	CurrentPage int                  `json:"currentPage"`
	PerPage     int                  `json:"perPage"`
	TotalPages  int                  `json:"totalPages"`
	TotalCount  int                  `json:"totalCount"`
	Data        []AttendanceResponse `json:"data"`
}

type MarkResponse struct {
	Created    bool                `json:"created"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

type TodayResponse struct {
	Marked bool   `json:"marked"`
	Date   string `json:"date"`
}
