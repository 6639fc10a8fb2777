package weeklyoff

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/weeklyoff"
)

type WeeklyOffServiceImpl struct {
	weeklyoff.WeeklyOffRepository
	employee.EmployeeRepository
}

func NewWeeklyOffService(weeklyOffRepo weeklyoff.WeeklyOffRepository, employeeRepo employee.EmployeeRepository) weeklyoff.WeeklyOffService {
	return &WeeklyOffServiceImpl{
		WeeklyOffRepository: weeklyOffRepo,
		EmployeeRepository:  employeeRepo,
	}
}

// List implements weeklyoff.WeeklyOffService.
func (s *WeeklyOffServiceImpl) List(ctx context.Context) ([]weeklyoff.WeeklyOffResponse, error) {
	offs, err := s.WeeklyOffRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(offs), nil
}

// ListByEmployee implements weeklyoff.WeeklyOffService.
func (s *WeeklyOffServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]weeklyoff.WeeklyOffResponse, error) {
	offs, err := s.WeeklyOffRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toResponses(offs), nil
}

// Create implements weeklyoff.WeeklyOffService.
func (s *WeeklyOffServiceImpl) Create(ctx context.Context, req weeklyoff.CreateWeeklyOffRequest) (weeklyoff.WeeklyOffResponse, error) {
	if err := req.Validate(); err != nil {
		return weeklyoff.WeeklyOffResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return weeklyoff.WeeklyOffResponse{}, err
	}

	created, err := s.WeeklyOffRepository.Create(ctx, weeklyoff.WeeklyOff{
		EmployeeID:     req.EmployeeID,
		Date:           req.ParsedDate,
		Reason:         req.Reason,
		RecurrenceRule: req.RecurrenceRule,
	})
	if err != nil {
		return weeklyoff.WeeklyOffResponse{}, err
	}

	slog.Info("weekly off created", "id", created.ID, "employee_id", created.EmployeeID, "recurring", created.RecurrenceRule != nil)
	return weeklyoff.NewWeeklyOffResponse(created), nil
}

// Delete implements weeklyoff.WeeklyOffService.
func (s *WeeklyOffServiceImpl) Delete(ctx context.Context, id string) error {
	return s.WeeklyOffRepository.Delete(ctx, id)
}

func toResponses(offs []weeklyoff.WeeklyOff) []weeklyoff.WeeklyOffResponse {
	resp := make([]weeklyoff.WeeklyOffResponse, 0, len(offs))
	for _, w := range offs {
		resp = append(resp, weeklyoff.NewWeeklyOffResponse(w))
	}
	return resp
}
