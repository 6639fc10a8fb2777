package employee

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	user.UserRepository
	attendance.AttendanceRepository
	leave.LeaveRequestRepository

	tx           database.Transactor
	storage      storage.FileStorage
	defaultQuota int
	now          func() time.Time
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	tx database.Transactor,
	fileStorage storage.FileStorage,
	policy config.PolicyConfig,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository:     employeeRepo,
		UserRepository:         userRepo,
		AttendanceRepository:   attendanceRepo,
		LeaveRequestRepository: leaveRepo,
		tx:                     tx,
		storage:                fileStorage,
		defaultQuota:           policy.EmployeeDefaultQuota,
		now:                    time.Now,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()
	filter.Search = strings.TrimSpace(filter.Search)

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	data := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		data = append(data, employee.NewEmployeeResponse(e))
	}

	return employee.ListEmployeeResponse{
		CurrentPage: filter.Page,
		PerPage:     filter.PerPage,
		TotalPages:  int((total + int64(filter.PerPage) - 1) / int64(filter.PerPage)),
		TotalCount:  total,
		Data:        data,
	}, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// GetByUserID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByUserID(ctx context.Context, userID string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// Me implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Me(ctx context.Context, userID string) (employee.MeResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return employee.MeResponse{}, err
	}

	resp := employee.MeResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
	if u.EmployeeID == nil {
		return resp, nil
	}

	e, err := s.EmployeeRepository.GetByID(ctx, *u.EmployeeID)
	if err != nil {
		return employee.MeResponse{}, err
	}
	resp.EmployeeID = &e.ID
	resp.LeaveQuota = &e.LeaveQuota
	if e.DateOfJoining != nil {
		doj := e.DateOfJoining.Format("2006-01-02")
		resp.DateOfJoining = &doj
	}
	return resp, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	quota := s.defaultQuota
	if req.LeaveQuota != nil {
		quota = *req.LeaveQuota
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		UserID:        req.UserID,
		Name:          strings.TrimSpace(req.Name),
		Role:          req.Role,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Status:        employee.EmploymentStatus(req.Status),
		DateOfJoining: req.ParsedDateOfJoining,
		Salary:        req.Salary,
		LeaveQuota:    quota,
		RemainingDays: quota,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.ID)
	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		e.Role = *req.Role
	}
	if req.Email != nil {
		e.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Status != nil {
		e.Status = employee.EmploymentStatus(*req.Status)
	}
	if req.ParsedDateOfJoining != nil {
		e.DateOfJoining = req.ParsedDateOfJoining
	}
	if req.Salary != nil {
		e.Salary = req.Salary
	}

	updated, err := s.EmployeeRepository.Update(ctx, e)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.EmployeeRepository.Delete(ctx, id); err != nil {
		return err
	}

	if e.Photo != nil && *e.Photo != "" {
		s.removeFile(ctx, *e.Photo)
	}
	slog.Info("employee deleted", "employee_id", id)
	return nil
}

// UploadPhoto implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadPhoto(ctx context.Context, req employee.UploadPhotoRequest) (employee.EmployeeResponse, error) {
	if req.Filename == "" || len(req.Content) == 0 {
		return employee.EmployeeResponse{}, employee.ErrPhotoRequired
	}
	if !storage.HasAllowedExt(req.Filename, storage.PhotoExts) {
		return employee.EmployeeResponse{}, employee.ErrInvalidPhotoType
	}

	e, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	url, err := s.storage.Save(ctx, storage.PhotosDir, req.Filename, bytes.NewReader(req.Content))
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to store photo: %w", err)
	}

	if err := s.EmployeeRepository.UpdatePhoto(ctx, e.ID, url); err != nil {
		s.removeFile(ctx, url)
		return employee.EmployeeResponse{}, err
	}

	if e.Photo != nil && *e.Photo != "" {
		s.removeFile(ctx, *e.Photo)
	}
	e.Photo = &url
	return employee.NewEmployeeResponse(e), nil
}

// UpdateLeaveQuota implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateLeaveQuota(ctx context.Context, req employee.UpdateLeaveQuotaRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var resp employee.EmployeeResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e, err := s.EmployeeRepository.GetForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		if err := e.SetLeaveQuota(*req.LeaveQuota); err != nil {
			return err
		}
		if err := s.EmployeeRepository.UpdateBalance(ctx, e.ID, e.LeaveQuota, e.UsedDays, e.RemainingDays); err != nil {
			return err
		}
		resp = employee.NewEmployeeResponse(e)
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return resp, nil
}

// UpdateUsedDays implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateUsedDays(ctx context.Context, req employee.UpdateUsedDaysRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var resp employee.EmployeeResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		e, err := s.EmployeeRepository.GetForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}

		approved, err := s.LeaveRequestRepository.SumApprovedDays(ctx, e.ID)
		if err != nil {
			return fmt.Errorf("failed to sum approved leave days: %w", err)
		}
		if err := e.SetUsedDays(*req.UsedDays, approved); err != nil {
			return err
		}
		if err := s.EmployeeRepository.UpdateBalance(ctx, e.ID, e.LeaveQuota, e.UsedDays, e.RemainingDays); err != nil {
			return err
		}
		resp = employee.NewEmployeeResponse(e)
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return resp, nil
}

// SalaryByMonth implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SalaryByMonth(ctx context.Context, req employee.SalaryRequest) (employee.SalaryResponse, error) {
	e, salary, err := s.salary(ctx, req)
	if err != nil {
		return employee.SalaryResponse{}, err
	}
	return employee.NewSalaryResponse(e, req.Month, salary), nil
}

// SalarySlip implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SalarySlip(ctx context.Context, req employee.SalaryRequest) ([]byte, error) {
	e, salary, err := s.salary(ctx, req)
	if err != nil {
		return nil, err
	}

	return export.SalarySlipPDF(export.SalarySlip{
		EmployeeName:    e.Name,
		EmployeeEmail:   e.Email,
		Role:            e.Role,
		Month:           req.Month,
		MonthlySalary:   salary.Monthly.StringFixed(2),
		PerDaySalary:    salary.PerDay.StringFixed(2),
		PresentDays:     salary.PresentDays,
		PaidLeaveDays:   salary.PaidLeaveDays,
		UnpaidLeaveDays: salary.UnpaidLeaveDays,
		TotalAbsent:     salary.TotalAbsent,
		CalculatedPay:   salary.Calculated.StringFixed(0),
	}, s.now())
}

func (s *EmployeeServiceImpl) salary(ctx context.Context, req employee.SalaryRequest) (employee.Employee, employee.Salary, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, employee.Salary{}, err
	}

	e, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.Employee{}, employee.Salary{}, err
	}
	if e.Salary == nil {
		return employee.Employee{}, employee.Salary{}, employee.ErrNoSalary
	}

	first, last := employee.MonthBounds(req.ParsedMonth)
	present, err := s.AttendanceRepository.CountByStatus(ctx, e.ID, attendance.StatusPresent, first, last)
	if err != nil {
		return employee.Employee{}, employee.Salary{}, fmt.Errorf("failed to count present days: %w", err)
	}

	approved := leave.StatusApproved
	leaves, err := s.LeaveRequestRepository.ListOverlapping(ctx, &e.ID, &approved, first, last)
	if err != nil {
		return employee.Employee{}, employee.Salary{}, fmt.Errorf("failed to list approved leaves: %w", err)
	}

	spans := make([]employee.LeaveDays, 0, len(leaves))
	for _, l := range leaves {
		spans = append(spans, employee.LeaveDays{From: l.From, To: l.To, Paid: l.IsPaid})
	}

	return e, employee.ComputeSalary(employee.SalaryInput{
		Monthly:     *e.Salary,
		Month:       req.ParsedMonth,
		PresentDays: present,
		Leaves:      spans,
	}), nil
}

func (s *EmployeeServiceImpl) removeFile(ctx context.Context, url string) {
	if err := s.storage.Delete(ctx, url); err != nil {
		slog.Warn("failed to remove file", "url", url, "error", err)
	}
}
