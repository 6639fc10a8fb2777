package email

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// ErrNotConfigured is returned when no SMTP host is set.
var ErrNotConfigured = errors.New("smtp is not configured")

// EmailService defines the interface for sending emails
type EmailService interface {
	SendDailyReport(ctx context.Context, to string, data DailyReportData) error
	SendPasswordChanged(ctx context.Context, to string, data PasswordChangedData) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      sendFunc
	backoff   time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      smtp.SendMail,
		backoff:   time.Second,
	}, nil
}

// DailyReportData is rendered into the daily work report.
type DailyReportData struct {
	EmployeeName     string
	EmployeeRole     string
	EmployeeID       string
	ReportDate       string
	TotalCalls       int
	SalesCount       int
	RejectionCount   int
	ProfitEarned     string
	ChargebackRefund string
	NetProfit        string
	LanguageBarriers int
	ReasonBreakdown  map[string]int
	WorkedHours      float64
	TotalBreakTime   string
}

// TopReasons formats the no-sale reasons, most frequent first.
func (d DailyReportData) TopReasons() string {
	if len(d.ReasonBreakdown) == 0 {
		return "None"
	}
	reasons := make([]string, 0, len(d.ReasonBreakdown))
	for r := range d.ReasonBreakdown {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool {
		ci, cj := d.ReasonBreakdown[reasons[i]], d.ReasonBreakdown[reasons[j]]
		if ci != cj {
			return ci > cj
		}
		return reasons[i] < reasons[j]
	})

	var buf bytes.Buffer
	for i, r := range reasons {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s (%d)", r, d.ReasonBreakdown[r])
	}
	return buf.String()
}

func (s *emailServiceImpl) SendDailyReport(ctx context.Context, to string, data DailyReportData) error {
	if s.cfg.RecipientOverride != "" {
		to = s.cfg.RecipientOverride
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "daily_report.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(ctx, to, fmt.Sprintf("Daily Work Report - %s", data.ReportDate), body.String())
}

// PasswordChangedData describes a password reset performed from the admin panel.
type PasswordChangedData struct {
	UserEmail string
	Role      string
	ChangedAt time.Time
}

func (d PasswordChangedData) ChangedAtText() string {
	return d.ChangedAt.Format("Monday, 02 January 2006 15:04 MST")
}

func (s *emailServiceImpl) SendPasswordChanged(ctx context.Context, to string, data PasswordChangedData) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "password_changed.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(ctx, to, "Password Change Notification", body.String())
}

func (s *emailServiceImpl) sendHTML(ctx context.Context, to, subject, htmlBody string) error {
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return ErrNotConfigured
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s\r\n", from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// exponential backoff: 1s, 2s
		if attempt < maxRetries {
			select {
			case <-time.After(s.backoff << (attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
