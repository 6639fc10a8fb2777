package loginhour

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/loginhour"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/shiftday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	attendancesvc "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/servicetest"
)

const empAsha = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

// 18:00 at +05:30, inside the 2024-05-10 shift.
var shiftStart = time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC)

type fixture struct {
	svc      *LoginHourServiceImpl
	records  *servicetest.AttendanceRepo
	sessions *servicetest.LoginHourRepo
	notifier *servicetest.Notifier
	clock    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	employees := servicetest.NewEmployeeRepo(
		employee.Employee{ID: empAsha, Name: "Asha", Email: "asha@example.com", Role: "Agent"},
	)
	f := &fixture{
		records:  servicetest.NewAttendanceRepo(employees),
		sessions: &servicetest.LoginHourRepo{},
		notifier: &servicetest.Notifier{},
		clock:    shiftStart,
	}
	attendanceService := attendancesvc.NewAttendanceService(f.records, employees, &servicetest.WeeklyOffRepo{},
		&servicetest.LeaveRepo{}, shiftday.Default(), config.DefaultPolicy(), f.notifier)

	svc := NewLoginHourService(f.sessions, employees, attendanceService, servicetest.PassThroughTx{},
		lock.NewLocalLocker(), shiftday.Default(), config.DefaultPolicy()).(*LoginHourServiceImpl)
	svc.now = func() time.Time { return f.clock }
	f.svc = svc
	return f
}

func (f *fixture) advance(d time.Duration) { f.clock = f.clock.Add(d) }

func req() loginhour.SessionRequest { return loginhour.SessionRequest{EmployeeID: empAsha} }

func TestLogin_IsIdempotentPerShift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Login(ctx, req())
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", first.Date)

	f.advance(2 * time.Hour)
	second, err := f.svc.Login(ctx, req())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.LoginTime, second.LoginTime)
}

func TestLogin_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, loginhour.SessionRequest{})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	_, err = f.svc.Login(ctx, loginhour.SessionRequest{EmployeeID: "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestMutations_WithoutSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Logout(ctx, req())
	assert.ErrorIs(t, err, loginhour.ErrLoginHourNotFound)

	_, err = f.svc.StartBreak(ctx, req())
	assert.ErrorIs(t, err, loginhour.ErrLoginHourNotFound)
}

func TestBreaks_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, req())
	require.NoError(t, err)

	_, err = f.svc.EndBreak(ctx, req())
	assert.ErrorIs(t, err, loginhour.ErrNoBreaksRecorded)

	f.advance(time.Hour)
	_, err = f.svc.StartBreak(ctx, req())
	require.NoError(t, err)

	_, err = f.svc.StartBreak(ctx, req())
	assert.ErrorIs(t, err, loginhour.ErrBreakAlreadyOpen)

	f.advance(20 * time.Minute)
	resp, err := f.svc.EndBreak(ctx, req())
	require.NoError(t, err)
	assert.Equal(t, "00:20:00", resp.EndedBreak.Duration)
	assert.Equal(t, "00:20:00", resp.Record.TotalBreakTime)
	require.NotNil(t, resp.EndedBreak.End)

	_, err = f.svc.EndBreak(ctx, req())
	assert.ErrorIs(t, err, loginhour.ErrNoActiveBreak)

	stored, err := f.sessions.GetByEmployeeAndDate(ctx, empAsha, shiftday.Date(2024, 5, 10))
	require.NoError(t, err)
	assert.Len(t, stored.Breaks, 1)

	// Below the half-day threshold nothing is written.
	rec, err := f.records.GetByEmployeeAndDate(ctx, empAsha, shiftday.Date(2024, 5, 10))
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestEndBreak_DowngradesPastThresholds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := shiftday.Date(2024, 5, 10)

	_, err := f.svc.Login(ctx, req())
	require.NoError(t, err)

	_, err = f.svc.StartBreak(ctx, req())
	require.NoError(t, err)
	f.advance(75 * time.Minute)
	_, err = f.svc.EndBreak(ctx, req())
	require.NoError(t, err)

	rec, err := f.records.GetByEmployeeAndDate(ctx, empAsha, day)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusHalfDay, rec.Status)

	f.advance(time.Hour)
	_, err = f.svc.StartBreak(ctx, req())
	require.NoError(t, err)
	f.advance(20 * time.Minute)
	_, err = f.svc.EndBreak(ctx, req())
	require.NoError(t, err)

	rec, err = f.records.GetByEmployeeAndDate(ctx, empAsha, day)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.Len(t, f.notifier.Messages, 2)
}

// commitFails runs fn like a transaction would and then reports a failed commit.
type commitFails struct{}

func (commitFails) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return errors.New("commit failed")
}

func TestEndBreak_NotifiesOnlyAfterCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, req())
	require.NoError(t, err)
	_, err = f.svc.StartBreak(ctx, req())
	require.NoError(t, err)
	f.advance(75 * time.Minute)

	f.svc.tx = commitFails{}
	_, err = f.svc.EndBreak(ctx, req())
	require.ErrorContains(t, err, "commit failed")
	assert.Empty(t, f.notifier.Messages)
}

func TestLogout_AllowsLaterBreaks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, req())
	require.NoError(t, err)

	f.advance(4 * time.Hour)
	out, err := f.svc.Logout(ctx, req())
	require.NoError(t, err)
	require.NotNil(t, out.LogoutTime)

	f.advance(10 * time.Minute)
	_, err = f.svc.StartBreak(ctx, req())
	assert.NoError(t, err)
}

func TestTodayStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.svc.TodayStats(ctx, empAsha)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", empty.Date)
	assert.Zero(t, empty.WorkedHoursToday)
	assert.Equal(t, "00:00:00", empty.TotalBreakTimeToday)
	assert.Equal(t, "normal", empty.BreakStatus)
	assert.Equal(t, "01:10:00", empty.RemainingBreakTime)

	_, err = f.svc.Login(ctx, req())
	require.NoError(t, err)
	f.advance(2 * time.Hour)
	_, err = f.svc.StartBreak(ctx, req())
	require.NoError(t, err)
	f.advance(30 * time.Minute)

	stats, err := f.svc.TodayStats(ctx, empAsha)
	require.NoError(t, err)
	assert.Equal(t, 2.0, stats.WorkedHoursToday)
	assert.Equal(t, 2.5, stats.TotalWorkedWithBreak)
	assert.Equal(t, 1, stats.TotalBreaksToday)
	assert.Equal(t, "00:30:00", stats.TotalBreakTimeToday)
	assert.True(t, stats.IsOnBreak)
	assert.Equal(t, "normal", stats.BreakStatus)
	assert.Equal(t, "00:40:00", stats.RemainingBreakTime)
}

func TestTodayStats_LiveBreakDowngrades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, req())
	require.NoError(t, err)
	_, err = f.svc.StartBreak(ctx, req())
	require.NoError(t, err)
	f.advance(95 * time.Minute)

	stats, err := f.svc.TodayStats(ctx, empAsha)
	require.NoError(t, err)
	assert.Equal(t, "absent", stats.BreakStatus)
	assert.Equal(t, "00:00:00", stats.RemainingBreakTime)

	rec, err := f.records.GetByEmployeeAndDate(ctx, empAsha, shiftday.Date(2024, 5, 10))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
}

func TestSweepOpenBreaks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, req())
	require.NoError(t, err)
	_, err = f.svc.StartBreak(ctx, req())
	require.NoError(t, err)

	f.advance(30 * time.Minute)
	require.NoError(t, f.svc.SweepOpenBreaks(ctx))
	rec, err := f.records.GetByEmployeeAndDate(ctx, empAsha, shiftday.Date(2024, 5, 10))
	require.NoError(t, err)
	assert.Nil(t, rec)

	f.advance(45 * time.Minute)
	require.NoError(t, f.svc.SweepOpenBreaks(ctx))
	rec, err = f.records.GetByEmployeeAndDate(ctx, empAsha, shiftday.Date(2024, 5, 10))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusHalfDay, rec.Status)
}

func TestListAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, req())
	require.NoError(t, err)

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, empAsha, all[0].EmployeeID)
	assert.Empty(t, all[0].Breaks)
}
