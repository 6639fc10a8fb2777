package loginhour

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/loginhour"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/shiftday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type LoginHourServiceImpl struct {
	loginhour.LoginHourRepository
	employee.EmployeeRepository

	attendanceService attendance.AttendanceService
	tx                database.Transactor
	locker            lock.Locker
	calendar          shiftday.Calendar
	thresholds        attendance.BreakThresholds
	now               func() time.Time
}

func NewLoginHourService(
	repo loginhour.LoginHourRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceService attendance.AttendanceService,
	tx database.Transactor,
	locker lock.Locker,
	calendar shiftday.Calendar,
	policy config.PolicyConfig,
) loginhour.LoginHourService {
	return &LoginHourServiceImpl{
		LoginHourRepository: repo,
		EmployeeRepository:  employeeRepo,
		attendanceService:   attendanceService,
		tx:                  tx,
		locker:              locker,
		calendar:            calendar,
		thresholds:          attendance.BreakThresholds{HalfDay: policy.BreakHalfDay, Absent: policy.BreakAbsent},
		now:                 time.Now,
	}
}

// Login implements loginhour.LoginHourService.
func (s *LoginHourServiceImpl) Login(ctx context.Context, req loginhour.SessionRequest) (loginhour.LoginHourResponse, error) {
	if err := req.Validate(); err != nil {
		return loginhour.LoginHourResponse{}, err
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return loginhour.LoginHourResponse{}, err
	}

	now := s.now()
	record, err := s.LoginHourRepository.Create(ctx, loginhour.LoginHour{
		EmployeeID: req.EmployeeID,
		Date:       s.calendar.DayOf(now),
		LoginTime:  now,
		Breaks:     loginhour.Breaks{},
	})
	if err != nil {
		return loginhour.LoginHourResponse{}, err
	}

	metrics.SessionEvents.WithLabelValues("login").Inc()
	return loginhour.NewLoginHourResponse(record, now), nil
}

// Logout implements loginhour.LoginHourService.
func (s *LoginHourServiceImpl) Logout(ctx context.Context, req loginhour.SessionRequest) (loginhour.LoginHourResponse, error) {
	var record loginhour.LoginHour
	now := s.now()

	err := s.mutate(ctx, req, func(ctx context.Context, l *loginhour.LoginHour) error {
		l.LogoutTime = &now
		record = *l
		return nil
	})
	if err != nil {
		return loginhour.LoginHourResponse{}, err
	}

	metrics.SessionEvents.WithLabelValues("logout").Inc()
	return loginhour.NewLoginHourResponse(record, now), nil
}

// StartBreak implements loginhour.LoginHourService.
func (s *LoginHourServiceImpl) StartBreak(ctx context.Context, req loginhour.SessionRequest) (loginhour.LoginHourResponse, error) {
	var record loginhour.LoginHour
	now := s.now()

	err := s.mutate(ctx, req, func(ctx context.Context, l *loginhour.LoginHour) error {
		if err := l.Breaks.Start(now, req.RequestedDuration); err != nil {
			return err
		}
		record = *l
		return nil
	})
	if err != nil {
		return loginhour.LoginHourResponse{}, err
	}

	metrics.SessionEvents.WithLabelValues("break_start").Inc()
	return loginhour.NewLoginHourResponse(record, now), nil
}

// EndBreak implements loginhour.LoginHourService.
func (s *LoginHourServiceImpl) EndBreak(ctx context.Context, req loginhour.SessionRequest) (loginhour.EndBreakResponse, error) {
	var (
		record     loginhour.LoginHour
		ended      loginhour.Break
		downgraded *attendance.Attendance
	)
	now := s.now()

	err := s.mutate(ctx, req, func(ctx context.Context, l *loginhour.LoginHour) error {
		b, err := l.Breaks.End(now)
		if err != nil {
			return err
		}
		ended = b
		record = *l

		// The downgrade commits with the closed break.
		downgraded, err = s.attendanceService.ApplyBreakPolicy(ctx, l.EmployeeID, l.Date, l.Breaks.Total(now))
		return err
	})
	if err != nil {
		return loginhour.EndBreakResponse{}, err
	}
	if downgraded != nil {
		s.attendanceService.AnnounceDowngrade(ctx, *downgraded)
	}

	metrics.SessionEvents.WithLabelValues("break_end").Inc()
	return loginhour.EndBreakResponse{
		Record:     loginhour.NewLoginHourResponse(record, now),
		EndedBreak: loginhour.NewBreakResponse(ended, now),
	}, nil
}

// mutate loads the current shift's record under the employee lock and a row lock,
// applies fn and saves the result in the same transaction.
func (s *LoginHourServiceImpl) mutate(ctx context.Context, req loginhour.SessionRequest, fn func(ctx context.Context, l *loginhour.LoginHour) error) error {
	if err := req.Validate(); err != nil {
		return err
	}
	day := s.calendar.DayOf(s.now())

	return lock.Do(ctx, s.locker, lock.LoginHourKey(req.EmployeeID), func(ctx context.Context) error {
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			record, err := s.LoginHourRepository.GetForUpdate(ctx, req.EmployeeID, day)
			if err != nil {
				return err
			}
			if err := fn(ctx, &record); err != nil {
				return err
			}
			return s.LoginHourRepository.Save(ctx, record)
		})
	})
}

// TodayStats implements loginhour.LoginHourService.
func (s *LoginHourServiceImpl) TodayStats(ctx context.Context, employeeID string) (loginhour.TodayStatsResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return loginhour.TodayStatsResponse{}, validator.ValidationErrors{{Field: "employeeId", Message: "employeeId must be a valid id"}}
	}

	now := s.now()
	day := s.calendar.DayOf(now)

	resp := loginhour.TodayStatsResponse{
		Date:                day.Format(shiftday.Layout),
		TotalBreakTimeToday: loginhour.FormatHMS(0),
		BreakStatus:         attendance.SeverityNormal.String(),
		RemainingBreakTime:  loginhour.FormatHMS(s.thresholds.Remaining(0)),
	}

	record, err := s.LoginHourRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if errors.Is(err, loginhour.ErrLoginHourNotFound) {
		return resp, nil
	}
	if err != nil {
		return loginhour.TodayStatsResponse{}, err
	}

	total := record.Breaks.Total(now)
	severity := s.thresholds.Classify(total)

	resp.WorkedHoursToday = loginhour.Hours(record.Worked(now))
	resp.TotalWorkedWithBreak = loginhour.Hours(record.Elapsed(now))
	resp.TotalBreaksToday = len(record.Breaks)
	resp.TotalBreakTimeToday = loginhour.FormatHMS(total)
	resp.IsOnBreak = record.Breaks.OnBreak()
	resp.BreakStatus = severity.String()
	resp.RemainingBreakTime = loginhour.FormatHMS(s.thresholds.Remaining(total))

	// A live break can cross a threshold before it is ended.
	if resp.IsOnBreak && severity > attendance.SeverityNormal {
		written, err := s.attendanceService.ApplyBreakPolicy(ctx, employeeID, day, total)
		if err != nil {
			slog.Error("failed to apply break policy", "employee_id", employeeID, "error", err)
		} else if written != nil {
			s.attendanceService.AnnounceDowngrade(ctx, *written)
		}
	}

	return resp, nil
}

// ListAll implements loginhour.LoginHourService.
func (s *LoginHourServiceImpl) ListAll(ctx context.Context) ([]loginhour.LoginHourResponse, error) {
	records, err := s.LoginHourRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resp := make([]loginhour.LoginHourResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, loginhour.NewLoginHourResponse(r, now))
	}
	return resp, nil
}

// SweepOpenBreaks implements loginhour.LoginHourService.
func (s *LoginHourServiceImpl) SweepOpenBreaks(ctx context.Context) error {
	now := s.now()
	day := s.calendar.DayOf(now)

	records, err := s.LoginHourRepository.ListOpenBreaks(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to list open breaks: %w", err)
	}

	var failed int
	for _, r := range records {
		total := r.Breaks.Total(now)
		if s.thresholds.Classify(total) == attendance.SeverityNormal {
			continue
		}
		written, err := s.attendanceService.ApplyBreakPolicy(ctx, r.EmployeeID, day, total)
		if err != nil {
			slog.Error("failed to apply break policy", "employee_id", r.EmployeeID, "error", err)
			failed++
			continue
		}
		if written != nil {
			s.attendanceService.AnnounceDowngrade(ctx, *written)
		}
	}

	slog.Info("open break sweep finished", "date", day.Format(shiftday.Layout), "open", len(records), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("break policy failed for %d of %d records", failed, len(records))
	}
	return nil
}
