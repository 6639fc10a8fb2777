package report

import "context"

type ReportService interface {
	// SendDailyReport emails the employee's daily work report.
	SendDailyReport(ctx context.Context, req DailyReportRequest) (DailyReportResponse, error)
}
