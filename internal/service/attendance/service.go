package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/weeklyoff"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/notify"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/shiftday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	weeklyoff.WeeklyOffRepository
	leave.LeaveRequestRepository

	calendar          shiftday.Calendar
	thresholds        attendance.BreakThresholds
	approvedLeaveOnly bool
	notifier          notify.Notifier
	now               func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	weeklyOffRepo weeklyoff.WeeklyOffRepository,
	leaveRepo leave.LeaveRequestRepository,
	calendar shiftday.Calendar,
	policy config.PolicyConfig,
	notifier notify.Notifier,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		WeeklyOffRepository:    weeklyOffRepo,
		LeaveRequestRepository: leaveRepo,
		calendar:               calendar,
		thresholds:             attendance.BreakThresholds{HalfDay: policy.BreakHalfDay, Absent: policy.BreakAbsent},
		approvedLeaveOnly:      policy.ApprovedLeaveOnly,
		notifier:               notifier,
		now:                    time.Now,
	}
}

// Create implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, req.ParsedDate)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyMarked
	}

	status := attendance.Status(req.Status)
	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID:  req.EmployeeID,
		Date:        req.ParsedDate,
		Status:      status,
		Reason:      req.Reason,
		IsWeeklyOff: status == attendance.StatusWeeklyOff,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(created), nil
}

// MarkSelf implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkSelf(ctx context.Context, employeeID string) (attendance.MarkResponse, error) {
	if employeeID == "" {
		return attendance.MarkResponse{}, attendance.ErrNoEmployeeProfile
	}
	day := s.calendar.DayOf(s.now())

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.MarkResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		resp := attendance.NewAttendanceResponse(*existing)
		return attendance.MarkResponse{Created: false, Attendance: &resp}, nil
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       day,
		Status:     attendance.StatusPresent,
	})
	if errors.Is(err, attendance.ErrAlreadyMarked) {
		// Lost a race with a concurrent mark for the same shift day.
		existing, err = s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
		if err != nil || existing == nil {
			return attendance.MarkResponse{}, fmt.Errorf("failed to reload attendance: %w", err)
		}
		resp := attendance.NewAttendanceResponse(*existing)
		return attendance.MarkResponse{Created: false, Attendance: &resp}, nil
	}
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	resp := attendance.NewAttendanceResponse(created)
	return attendance.MarkResponse{Created: true, Attendance: &resp}, nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, employeeID string) (attendance.TodayResponse, error) {
	if employeeID == "" {
		return attendance.TodayResponse{}, attendance.ErrNoEmployeeProfile
	}
	day := s.calendar.DayOf(s.now())

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	return attendance.TodayResponse{Marked: existing != nil, Date: day.Format(shiftday.Layout)}, nil
}

// reconcile loads everything the filter touches and projects it.
func (s *AttendanceServiceImpl) reconcile(ctx context.Context, filter *attendance.ListAttendanceFilter) (attendance.Reconciliation, error) {
	if err := filter.Validate(); err != nil {
		return attendance.Reconciliation{}, err
	}

	monthStart, today := s.calendar.MonthToDate(s.now())
	if filter.From.IsZero() {
		filter.From = monthStart
	}
	if filter.To.IsZero() {
		filter.To = today
	}
	if filter.To.Before(filter.From) {
		var errs validator.ValidationErrors
		errs.Add("endDate", "endDate must not be before startDate")
		return attendance.Reconciliation{}, errs
	}

	var employees []employee.Employee
	if filter.EmployeeID != nil {
		emp, err := s.EmployeeRepository.GetByID(ctx, *filter.EmployeeID)
		if err != nil {
			return attendance.Reconciliation{}, err
		}
		employees = []employee.Employee{emp}
	} else {
		all, err := s.EmployeeRepository.ListAll(ctx)
		if err != nil {
			return attendance.Reconciliation{}, fmt.Errorf("failed to list employees: %w", err)
		}
		employees = all
	}

	records, err := s.AttendanceRepository.ListInRange(ctx, filter.EmployeeID, filter.From, filter.To)
	if err != nil {
		return attendance.Reconciliation{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	offs, err := s.WeeklyOffRepository.ListRelevant(ctx, filter.EmployeeID, filter.From, filter.To)
	if err != nil {
		return attendance.Reconciliation{}, fmt.Errorf("failed to list weekly offs: %w", err)
	}

	leaves, err := s.LeaveRequestRepository.ListOverlapping(ctx, filter.EmployeeID, nil, filter.From, filter.To)
	if err != nil {
		return attendance.Reconciliation{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	refs := make([]attendance.EmployeeRef, 0, len(employees))
	for _, e := range employees {
		refs = append(refs, attendance.EmployeeRef{ID: e.ID, Name: e.Name, Email: e.Email, Role: e.Role})
	}

	spans := make([]attendance.LeaveSpan, 0, len(leaves))
	for _, l := range leaves {
		spans = append(spans, attendance.LeaveSpan{
			EmployeeID: l.EmployeeID,
			From:       l.From,
			To:         l.To,
			Reason:     l.Reason,
			Approved:   l.Status == leave.StatusApproved,
		})
	}

	return attendance.Reconcile(attendance.ReconcileInput{
		Employees:         refs,
		From:              filter.From,
		To:                filter.To,
		Records:           records,
		WeeklyOffs:        weeklyoff.Expand(offs, filter.From, filter.To),
		Leaves:            spans,
		ApprovedLeaveOnly: s.approvedLeaveOnly,
	}), nil
}

func summaryOf(filter attendance.ListAttendanceFilter, r attendance.Reconciliation) attendance.SummaryResponse {
	return attendance.SummaryResponse{
		StartDate:      filter.From.Format(shiftday.Layout),
		EndDate:        filter.To.Format(shiftday.Layout),
		OverallStats:   attendance.NewOverallStatsResponse(r.Overall),
		EmployeeStats:  attendance.NewEmployeeStatsResponse(r.Employees),
		TotalEmployees: len(r.Employees),
	}
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	r, err := s.reconcile(ctx, &filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	page, totalPages := attendance.Paginate(r.Records, filter.Page, filter.PerPage)
	data := make([]attendance.AttendanceResponse, 0, len(page))
	for _, rec := range page {
		data = append(data, attendance.NewRecordResponse(rec))
	}

	return attendance.ListAttendanceResponse{
		SummaryResponse: summaryOf(filter, r),
		CurrentPage:     filter.Page,
		PerPage:         filter.PerPage,
		TotalPages:      totalPages,
		TotalCount:      len(r.Records),
		Data:            data,
	}, nil
}

// Summary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summary(ctx context.Context, filter attendance.ListAttendanceFilter) (attendance.SummaryResponse, error) {
	r, err := s.reconcile(ctx, &filter)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	return summaryOf(filter, r), nil
}

// Export implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Export(ctx context.Context, filter attendance.ListAttendanceFilter) ([]byte, error) {
	r, err := s.reconcile(ctx, &filter)
	if err != nil {
		return nil, err
	}

	rows := make([]export.AttendanceRow, 0, len(r.Records))
	for _, rec := range r.Records {
		rows = append(rows, export.AttendanceRow{
			Date:     rec.Date.Format(shiftday.Layout),
			Employee: rec.Employee.Name,
			Email:    rec.Employee.Email,
			Role:     rec.Employee.Role,
			Status:   string(rec.Status),
			Reason:   rec.Reason,
			Virtual:  rec.IsVirtual,
		})
	}

	return export.AttendanceXLSX(rows)
}

// ListByEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, employee.ErrEmployeeNotFound
	}

	records, err := s.AttendanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, attendance.NewAttendanceResponse(r))
	}
	return out, nil
}

// UpdateStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateStatus(ctx context.Context, req attendance.UpdateStatusRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	status := attendance.Status(req.Status)
	isWeeklyOff := status == attendance.StatusWeeklyOff

	if !attendance.IsVirtualID(req.ID) {
		if !validator.IsValidUUID(req.ID) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		updated, err := s.AttendanceRepository.UpdateStatus(ctx, req.ID, status, isWeeklyOff)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.NewAttendanceResponse(updated), nil
	}

	ref, err := attendance.ParseVirtualID(req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, ref.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, ref.EmployeeID, ref.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up attendance: %w", err)
	}
	if existing != nil {
		updated, err := s.AttendanceRepository.UpdateStatus(ctx, existing.ID, status, isWeeklyOff)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.NewAttendanceResponse(updated), nil
	}

	materialized, err := s.AttendanceRepository.Upsert(ctx, attendance.Attendance{
		EmployeeID:  ref.EmployeeID,
		Date:        ref.Date,
		Status:      status,
		Reason:      ref.MaterializeReason(),
		IsWeeklyOff: isWeeklyOff,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(materialized), nil
}

// ApplyBreakPolicy implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ApplyBreakPolicy(ctx context.Context, employeeID string, day time.Time, totalBreak time.Duration) (*attendance.Attendance, error) {
	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for break policy: %w", err)
	}

	var current *attendance.Status
	if existing != nil {
		current = &existing.Status
	}

	target, ok := attendance.Downgrade(current, totalBreak, s.thresholds)
	if !ok {
		return nil, nil
	}

	written, changed, err := s.AttendanceRepository.ForceStatus(ctx, employeeID, day, target, attendance.DowngradeReason(totalBreak))
	if err != nil {
		return nil, fmt.Errorf("failed to downgrade attendance: %w", err)
	}
	if !changed {
		return nil, nil
	}
	return &written, nil
}

// AnnounceDowngrade implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AnnounceDowngrade(ctx context.Context, a attendance.Attendance) {
	metrics.AttendanceDowngrades.WithLabelValues(string(a.Status)).Inc()
	slog.Info("attendance downgraded after break limit",
		"employee_id", a.EmployeeID,
		"date", a.Date.Format(shiftday.Layout),
		"status", a.Status,
		"reason", a.Reason,
	)

	name := a.EmployeeID
	if a.EmployeeName != nil {
		name = *a.EmployeeName
	}
	msg := fmt.Sprintf("%s was marked %s for %s: %s", name, a.Status, a.Date.Format(shiftday.Layout), a.Reason)
	if err := s.notifier.Info(ctx, msg); err != nil {
		slog.Error("failed to send downgrade notification", "error", err)
	}
}
