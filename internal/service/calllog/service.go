package calllog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calllog"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/shiftday"
)

type CallLogServiceImpl struct {
	calllog.CallLogRepository
	employee.EmployeeRepository

	calendar shiftday.Calendar
	now      func() time.Time
}

func NewCallLogService(callLogRepo calllog.CallLogRepository, employeeRepo employee.EmployeeRepository, calendar shiftday.Calendar) calllog.CallLogService {
	return &CallLogServiceImpl{
		CallLogRepository:  callLogRepo,
		EmployeeRepository: employeeRepo,
		calendar:           calendar,
		now:                time.Now,
	}
}

// Create implements calllog.CallLogService.
func (s *CallLogServiceImpl) Create(ctx context.Context, req calllog.CreateCallLogRequest) (calllog.CallLogResponse, error) {
	if err := req.Validate(); err != nil {
		return calllog.CallLogResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return calllog.CallLogResponse{}, err
	}

	entry, err := calllog.Build(req, s.now())
	if err != nil {
		return calllog.CallLogResponse{}, err
	}

	created, err := s.CallLogRepository.Create(ctx, entry)
	if err != nil {
		return calllog.CallLogResponse{}, err
	}
	created.EmployeeName = &emp.Name
	created.EmployeeEmail = &emp.Email

	slog.Info("call log created", "id", created.ID, "employee_id", created.EmployeeID, "sale", created.WasSaleConverted)
	return calllog.NewCallLogResponse(created), nil
}

// List implements calllog.CallLogService.
func (s *CallLogServiceImpl) List(ctx context.Context, filter calllog.ListFilter) (calllog.ListCallLogResponse, error) {
	filter.Normalize()

	logs, total, err := s.CallLogRepository.List(ctx, filter.Page, filter.Limit)
	if err != nil {
		return calllog.ListCallLogResponse{}, err
	}
	if err := s.attachEmployees(ctx, logs); err != nil {
		return calllog.ListCallLogResponse{}, err
	}

	return calllog.ListCallLogResponse{
		Pagination: calllog.NewPagination(filter.Page, filter.Limit, total),
		Data:       toResponses(logs),
	}, nil
}

// ListByEmployee implements calllog.CallLogService.
func (s *CallLogServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]calllog.CallLogResponse, error) {
	logs, err := s.CallLogRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := s.attachEmployees(ctx, logs); err != nil {
		return nil, err
	}
	return toResponses(logs), nil
}

// Summary implements calllog.CallLogService.
func (s *CallLogServiceImpl) Summary(ctx context.Context, filter calllog.SummaryFilter) (calllog.SummaryResponse, error) {
	from, to, err := filter.Window(s.now(), s.calendar.Location())
	if err != nil {
		return calllog.SummaryResponse{}, err
	}

	summary, err := s.CallLogRepository.Summary(ctx, from, to)
	if err != nil {
		return calllog.SummaryResponse{}, err
	}
	return calllog.NewSummaryResponse(summary), nil
}

// TodaySummary implements calllog.CallLogService.
func (s *CallLogServiceImpl) TodaySummary(ctx context.Context, employeeID string) (calllog.TodaySummaryResponse, error) {
	day := s.calendar.DayOf(s.now())
	start, end := s.calendar.Window(day)

	logs, err := s.CallLogRepository.ListByEmployeeBetween(ctx, employeeID, start, end)
	if err != nil {
		return calllog.TodaySummaryResponse{}, err
	}
	if err := s.attachEmployees(ctx, logs); err != nil {
		return calllog.TodaySummaryResponse{}, err
	}

	return calllog.NewTodaySummaryResponse(day.Format(shiftday.Layout), logs), nil
}

// attachEmployees fills name and email from Postgres. Unknown employees are left blank.
func (s *CallLogServiceImpl) attachEmployees(ctx context.Context, logs []calllog.CallLog) error {
	if len(logs) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	ids := make([]string, 0, len(logs))
	for _, l := range logs {
		if _, ok := seen[l.EmployeeID]; ok {
			continue
		}
		seen[l.EmployeeID] = struct{}{}
		ids = append(ids, l.EmployeeID)
	}

	employees, err := s.EmployeeRepository.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load call log employees: %w", err)
	}

	for i := range logs {
		if e, ok := employees[logs[i].EmployeeID]; ok {
			name, email := e.Name, e.Email
			logs[i].EmployeeName = &name
			logs[i].EmployeeEmail = &email
		}
	}
	return nil
}

func toResponses(logs []calllog.CallLog) []calllog.CallLogResponse {
	resp := make([]calllog.CallLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, calllog.NewCallLogResponse(l))
	}
	return resp
}
