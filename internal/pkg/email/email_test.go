package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	addr string
	to   []string
	msg  string
}

func newTestService(t *testing.T, cfg config.SMTPConfig, send sendFunc) *emailServiceImpl {
	t.Helper()
	svc, err := NewEmailService(cfg)
	require.NoError(t, err)
	impl := svc.(*emailServiceImpl)
	impl.send = send
	impl.backoff = time.Millisecond
	return impl
}

func TestSendDailyReport_RendersAndOverridesRecipient(t *testing.T) {
	var got capturedMail
	svc := newTestService(t, config.SMTPConfig{
		Host: "smtp.example.com", Port: 587, From: "reports@example.com",
		RecipientOverride: "qa@example.com",
	}, func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		got = capturedMail{addr: addr, to: to, msg: string(msg)}
		return nil
	})

	err := svc.SendDailyReport(context.Background(), "agent@example.com", DailyReportData{
		EmployeeName:    "Asha",
		ReportDate:      "2024-03-10",
		TotalCalls:      7,
		SalesCount:      2,
		NetProfit:       "120.50",
		ReasonBreakdown: map[string]int{"Price too high": 1, "Language barrier": 3},
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", got.addr)
	assert.Equal(t, []string{"qa@example.com"}, got.to)
	assert.Contains(t, got.msg, "Subject: Daily Work Report - 2024-03-10")
	assert.Contains(t, got.msg, "Total Calls Handled: 7")
	assert.Contains(t, got.msg, "Language barrier (3), Price too high (1)")
}

func TestSendHTML_RetriesThenFails(t *testing.T) {
	calls := 0
	svc := newTestService(t, config.SMTPConfig{Host: "smtp.example.com", Port: 25},
		func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			calls++
			return errors.New("connection refused")
		})

	err := svc.SendPasswordChanged(context.Background(), "admin@example.com", PasswordChangedData{UserEmail: "agent@example.com", Role: "user", ChangedAt: time.Now()})
	require.Error(t, err)
	assert.Equal(t, maxRetries, calls)
	assert.True(t, strings.Contains(err.Error(), "connection refused"))
}

func TestSendHTML_NotConfigured(t *testing.T) {
	svc := newTestService(t, config.SMTPConfig{}, nil)

	err := svc.SendPasswordChanged(context.Background(), "admin@example.com", PasswordChangedData{UserEmail: "agent@example.com", Role: "user", ChangedAt: time.Now()})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTopReasons_Empty(t *testing.T) {
	assert.Equal(t, "None", DailyReportData{}.TopReasons())
}
