package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calllog"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/loginhour"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/shiftday"
)

type ReportServiceImpl struct {
	employee.EmployeeRepository

	callLogService   calllog.CallLogService
	loginHourService loginhour.LoginHourService
	emailService     email.EmailService
	calendar         shiftday.Calendar
	now              func() time.Time
}

func NewReportService(
	employeeRepo employee.EmployeeRepository,
	callLogService calllog.CallLogService,
	loginHourService loginhour.LoginHourService,
	emailService email.EmailService,
	calendar shiftday.Calendar,
) report.ReportService {
	return &ReportServiceImpl{
		EmployeeRepository: employeeRepo,
		callLogService:     callLogService,
		loginHourService:   loginHourService,
		emailService:       emailService,
		calendar:           calendar,
		now:                time.Now,
	}
}

// SendDailyReport implements report.ReportService.
func (s *ReportServiceImpl) SendDailyReport(ctx context.Context, req report.DailyReportRequest) (report.DailyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.DailyReportResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.DailyReportResponse{}, err
	}

	recipient := emp.Email
	if req.Email != nil {
		recipient = *req.Email
	}
	if recipient == "" {
		return report.DailyReportResponse{}, report.ErrNoRecipient
	}

	summary := req.Summary
	if summary == nil {
		summary, err = s.todaySummary(ctx, emp.ID)
		if err != nil {
			return report.DailyReportResponse{}, err
		}
	}

	reportDate := s.calendar.KeyOf(s.now())
	data := email.DailyReportData{
		EmployeeName:     emp.Name,
		EmployeeRole:     emp.Role,
		EmployeeID:       emp.ID,
		ReportDate:       reportDate,
		TotalCalls:       summary.TotalCalls,
		SalesCount:       summary.SalesCount,
		RejectionCount:   summary.RejectionCount,
		ProfitEarned:     money(summary.ProfitEarned),
		ChargebackRefund: money(summary.ChargebackRefund),
		NetProfit:        money(summary.NetProfit),
		LanguageBarriers: summary.LanguageBarriers,
		ReasonBreakdown:  summary.ReasonBreakdown,
		TotalBreakTime:   loginhour.FormatHMS(0),
	}

	stats, err := s.loginHourService.TodayStats(ctx, emp.ID)
	if err != nil {
		slog.Warn("daily report without session stats", "employee_id", emp.ID, "error", err)
	} else {
		data.WorkedHours = stats.WorkedHoursToday
		data.TotalBreakTime = stats.TotalBreakTimeToday
	}

	if err := s.emailService.SendDailyReport(ctx, recipient, data); err != nil {
		slog.Error("failed to send daily report", "employee_id", emp.ID, "error", err)
		return report.DailyReportResponse{}, fmt.Errorf("%w: %v", report.ErrSendFailed, err)
	}

	slog.Info("daily report sent", "employee_id", emp.ID, "report_date", reportDate)
	return report.DailyReportResponse{
		Recipient:  recipient,
		Employee:   emp.Name,
		ReportDate: reportDate,
	}, nil
}

// todaySummary builds the call summary of the current shift from stored call logs.
func (s *ReportServiceImpl) todaySummary(ctx context.Context, employeeID string) (*report.CallSummary, error) {
	today, err := s.callLogService.TodaySummary(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to build call summary: %w", err)
	}
	return &report.CallSummary{
		TotalCalls:       today.TotalCalls,
		SalesCount:       today.SalesCount,
		RejectionCount:   today.RejectionCount,
		ProfitEarned:     &today.ProfitEarned,
		ChargebackRefund: &today.ChargebackRefund,
		NetProfit:        &today.NetProfit,
		LanguageBarriers: today.LanguageBarriers,
		ReasonBreakdown:  today.ReasonBreakdown,
	}, nil
}

func money(d *decimal.Decimal) string {
	if d == nil {
		return decimal.Zero.StringFixed(2)
	}
	return d.StringFixed(2)
}
