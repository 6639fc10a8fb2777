package leave

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/notify"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository

	tx       database.Transactor
	locker   lock.Locker
	storage  storage.FileStorage
	notifier notify.Notifier
	policy   leave.Policy
	location *time.Location
	now      func() time.Time
}

func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	tx database.Transactor,
	locker lock.Locker,
	fileStorage storage.FileStorage,
	notifier notify.Notifier,
	policy config.PolicyConfig,
	location *time.Location,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRepo,
		EmployeeRepository:     employeeRepo,
		tx:                     tx,
		locker:                 locker,
		storage:                fileStorage,
		notifier:               notifier,
		policy: leave.Policy{
			MaxDaysPerRequest:  policy.LeaveMaxDaysPerRequest,
			MaxRequestsPerYear: policy.LeaveMaxRequestsPerYear,
			FallbackQuota:      policy.LeaveFallbackQuota,
		},
		location: location,
		now:      time.Now,
	}
}

// Request implements leave.LeaveService.
func (s *LeaveServiceImpl) Request(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	days, err := leave.DaysBetween(req.ParsedFrom, req.ParsedTo)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := s.policy.CheckSpan(days); err != nil {
		return leave.LeaveResponse{}, err
	}

	yearStart, yearEnd := leave.YearBounds(s.now(), s.location)
	count, err := s.LeaveRequestRepository.CountCreatedBetween(ctx, req.EmployeeID, yearStart, yearEnd)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to count leave requests: %w", err)
	}
	if err := s.policy.CheckYearCount(count); err != nil {
		return leave.LeaveResponse{}, err
	}

	var documentURL *string
	if req.DocumentName != "" {
		if !storage.HasAllowedExt(req.DocumentName, storage.DocumentExts) {
			return leave.LeaveResponse{}, leave.ErrInvalidDocument
		}
		url, err := s.storage.Save(ctx, storage.LeaveDocumentsDir, req.DocumentName, bytes.NewReader(req.DocumentContent))
		if err != nil {
			return leave.LeaveResponse{}, fmt.Errorf("failed to store leave document: %w", err)
		}
		documentURL = &url
	}

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID:  req.EmployeeID,
		From:        req.ParsedFrom,
		To:          req.ParsedTo,
		Reason:      req.Reason,
		LeaveType:   req.LeaveType,
		IsPaid:      req.LeaveType == leave.TypePaid,
		Status:      leave.StatusPending,
		DocumentURL: documentURL,
	})
	if err != nil {
		if documentURL != nil {
			if delErr := s.storage.Delete(ctx, *documentURL); delErr != nil {
				slog.Warn("failed to remove orphaned leave document", "url", *documentURL, "error", delErr)
			}
		}
		return leave.LeaveResponse{}, err
	}

	slog.Info("leave requested", "leave_id", created.ID, "employee_id", created.EmployeeID, "days", days)
	s.notify(ctx, fmt.Sprintf("New %s request from %s: %s to %s (%d days)",
		created.LeaveType, s.employeeLabel(created), created.From.Format("2006-01-02"), created.To.Format("2006-01-02"), days))

	return leave.NewLeaveResponse(created), nil
}

// UpdateStatus implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateStatus(ctx context.Context, req leave.UpdateLeaveStatusRequest) (leave.UpdateStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.UpdateStatusResponse{}, err
	}
	next := leave.Status(req.Status)

	current, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.UpdateStatusResponse{}, err
	}

	var resp leave.UpdateStatusResponse
	err = lock.Do(ctx, s.locker, lock.LeaveKey(current.EmployeeID), func(ctx context.Context) error {
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			locked, err := s.LeaveRequestRepository.GetForUpdate(ctx, req.ID)
			if err != nil {
				return err
			}

			transition := leave.BalanceTransition(locked.Status, next)
			updated, err := s.LeaveRequestRepository.UpdateStatus(ctx, req.ID, next)
			if err != nil {
				return err
			}

			resp = leave.UpdateStatusResponse{
				Leave:      leave.NewLeaveResponse(updated),
				Transition: transition.String(),
			}
			if transition == leave.TransitionNone {
				return nil
			}

			balance, err := s.adjustBalance(ctx, updated, transition)
			if err != nil {
				return err
			}
			resp.Balance = balance
			return nil
		})
	})
	if err != nil {
		return leave.UpdateStatusResponse{}, err
	}

	metrics.LeaveStatusTransitions.WithLabelValues(string(next)).Inc()
	slog.Info("leave status updated",
		"leave_id", req.ID,
		"employee_id", current.EmployeeID,
		"status", next,
		"transition", resp.Transition,
	)
	if current.Status != next {
		s.notify(ctx, fmt.Sprintf("Leave %s to %s for %s was %s",
			resp.Leave.From, resp.Leave.To, s.employeeLabel(current), next))
	}

	return resp, nil
}

// adjustBalance applies or reverts the leave days on the locked employee row.
func (s *LeaveServiceImpl) adjustBalance(ctx context.Context, l leave.LeaveRequest, transition leave.Transition) (*leave.BalanceResponse, error) {
	days := l.Days()

	emp, err := s.EmployeeRepository.GetForUpdate(ctx, l.EmployeeID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		if transition == leave.TransitionRevert {
			slog.Warn("no employee to revert leave balance", "employee_id", l.EmployeeID, "leave_id", l.ID)
			return nil, nil
		}
		fallback := employee.NewFallback(l.EmployeeID, s.policy.FallbackQuota)
		fallback.ApplyLeave(days)
		created, err := s.EmployeeRepository.Create(ctx, fallback)
		if err != nil {
			return nil, fmt.Errorf("failed to create fallback employee: %w", err)
		}
		slog.Warn("created fallback employee for approved leave", "employee_id", created.ID, "leave_id", l.ID)
		return &leave.BalanceResponse{
			LeaveQuota:    created.LeaveQuota,
			UsedDays:      created.UsedDays,
			RemainingDays: created.RemainingDays,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	if transition == leave.TransitionApply {
		emp.ApplyLeave(days)
	} else {
		emp.RevertLeave(days)
	}

	if err := s.EmployeeRepository.UpdateBalance(ctx, emp.ID, emp.LeaveQuota, emp.UsedDays, emp.RemainingDays); err != nil {
		return nil, err
	}

	return &leave.BalanceResponse{
		LeaveQuota:    emp.LeaveQuota,
		UsedDays:      emp.UsedDays,
		RemainingDays: emp.RemainingDays,
	}, nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	rows, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	data := make([]leave.LeaveResponse, 0, len(rows))
	for _, l := range rows {
		data = append(data, leave.NewLeaveResponse(l))
	}

	totalPages := int((total + int64(filter.PerPage) - 1) / int64(filter.PerPage))
	return leave.ListLeaveResponse{
		CurrentPage: filter.Page,
		PerPage:     filter.PerPage,
		TotalPages:  totalPages,
		TotalCount:  total,
		Data:        data,
	}, nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveResponse, error) {
	l, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(l), nil
}

func (s *LeaveServiceImpl) employeeLabel(l leave.LeaveRequest) string {
	if l.EmployeeName != nil {
		return *l.EmployeeName
	}
	return l.EmployeeID
}

func (s *LeaveServiceImpl) notify(ctx context.Context, message string) {
	if err := s.notifier.Info(ctx, message); err != nil {
		slog.Error("failed to send leave notification", "error", err)
	}
}
