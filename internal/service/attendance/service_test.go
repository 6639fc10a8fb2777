package attendance

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/weeklyoff"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/shiftday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/servicetest"
)

const (
	empAsha = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	empRavi = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"
)

type fixture struct {
	svc        *AttendanceServiceImpl
	records    *servicetest.AttendanceRepo
	employees  *servicetest.EmployeeRepo
	weeklyOffs *servicetest.WeeklyOffRepo
	leaves     *servicetest.LeaveRepo
	notifier   *servicetest.Notifier
}

func newFixture(t *testing.T, now time.Time) fixture {
	t.Helper()
	employees := servicetest.NewEmployeeRepo(
		employee.Employee{ID: empAsha, Name: "Asha", Email: "asha@example.com", Role: "Agent"},
		employee.Employee{ID: empRavi, Name: "Ravi", Email: "ravi@example.com", Role: "Agent"},
	)
	f := fixture{
		records:    servicetest.NewAttendanceRepo(employees),
		employees:  employees,
		weeklyOffs: &servicetest.WeeklyOffRepo{},
		leaves:     &servicetest.LeaveRepo{},
		notifier:   &servicetest.Notifier{},
	}
	svc := NewAttendanceService(f.records, f.employees, f.weeklyOffs, f.leaves,
		shiftday.Default(), config.DefaultPolicy(), f.notifier).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	f.svc = svc
	return f
}

func date(y int, m time.Month, d int) time.Time {
	return shiftday.Date(y, m, d)
}

func strPtr(s string) *string { return &s }

func TestCreate_RejectsDuplicate(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()

	req := attendance.CreateAttendanceRequest{EmployeeID: empAsha, Date: "2024-05-10", Status: "Present"}
	resp, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", resp.Date)
	require.NotNil(t, resp.Employee)
	assert.Equal(t, "Asha", resp.Employee.Name)

	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyMarked)
}

func TestCreate_UnknownEmployee(t *testing.T) {
	f := newFixture(t, time.Now())

	_, err := f.svc.Create(context.Background(), attendance.CreateAttendanceRequest{
		EmployeeID: "7c9e6679-7425-40de-944b-e07fc1f90ae7", Date: "2024-05-10", Status: "Present",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestMarkSelf_UsesShiftDay(t *testing.T) {
	// 10:00 IST on the 11th still belongs to the shift that started on the 10th.
	now := time.Date(2024, time.May, 11, 4, 30, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	first, err := f.svc.MarkSelf(ctx, empAsha)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "2024-05-10", first.Attendance.Date)

	second, err := f.svc.MarkSelf(ctx, empAsha)
	require.NoError(t, err)
	assert.False(t, second.Created)

	today, err := f.svc.Today(ctx, empAsha)
	require.NoError(t, err)
	assert.True(t, today.Marked)
	assert.Equal(t, "2024-05-10", today.Date)

	_, err = f.svc.MarkSelf(ctx, "")
	assert.ErrorIs(t, err, attendance.ErrNoEmployeeProfile)
}

func TestList_ReconcilesAllSources(t *testing.T) {
	f := newFixture(t, time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := f.records.Create(ctx, attendance.Attendance{EmployeeID: empAsha, Date: date(2024, 5, 1), Status: attendance.StatusPresent})
	require.NoError(t, err)
	_, err = f.weeklyOffs.Create(ctx, weeklyoff.WeeklyOff{EmployeeID: empAsha, Date: date(2024, 5, 2), Reason: "Weekly Off"})
	require.NoError(t, err)
	_, err = f.leaves.Create(ctx, leave.LeaveRequest{
		EmployeeID: empRavi, From: date(2024, 5, 1), To: date(2024, 5, 2), Status: leave.StatusPending,
	})
	require.NoError(t, err)

	resp, err := f.svc.List(ctx, attendance.ListAttendanceFilter{
		StartDate: strPtr("2024-05-01"), EndDate: strPtr("2024-05-03"), PerPage: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Data, 4)
	assert.Equal(t, "2024-05-03", resp.Data[0].Date)
	assert.Equal(t, 2, resp.TotalEmployees)

	stats := resp.OverallStats
	assert.Equal(t, 1, stats.TotalPresent)
	assert.Equal(t, 1, stats.TotalWeeklyOff)
	assert.Equal(t, 2, stats.TotalLeave)
	assert.Equal(t, 2, stats.TotalAbsent)
}

func TestList_DefaultsToMonthToDate(t *testing.T) {
	f := newFixture(t, time.Date(2024, time.May, 3, 12, 0, 0, 0, time.UTC))

	resp, err := f.svc.Summary(context.Background(), attendance.ListAttendanceFilter{EmployeeID: strPtr(empAsha)})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", resp.StartDate)
	assert.Equal(t, "2024-05-03", resp.EndDate)
	assert.Equal(t, 3, resp.OverallStats.TotalAbsent)
}

func TestList_UnknownEmployeeFilter(t *testing.T) {
	f := newFixture(t, time.Now())

	_, err := f.svc.List(context.Background(), attendance.ListAttendanceFilter{
		EmployeeID: strPtr("7c9e6679-7425-40de-944b-e07fc1f90ae7"),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdateStatus_MaterializesVirtual(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()
	id := attendance.VirtualID(attendance.KindAbsent, empAsha, date(2024, 5, 4))

	resp, err := f.svc.UpdateStatus(ctx, attendance.UpdateStatusRequest{ID: id, Status: "Weekly Off"})
	require.NoError(t, err)
	assert.False(t, resp.IsVirtual)
	assert.True(t, resp.IsWeeklyOff)
	assert.Equal(t, "Updated from virtual absent record", resp.Reason)

	// A second update through the same virtual id edits the materialized row.
	resp2, err := f.svc.UpdateStatus(ctx, attendance.UpdateStatusRequest{ID: id, Status: "Present"})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, resp2.ID)
	assert.False(t, resp2.IsWeeklyOff)
}

func TestUpdateStatus_RealAndInvalidIDs(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()

	created, err := f.records.Create(ctx, attendance.Attendance{EmployeeID: empAsha, Date: date(2024, 5, 1), Status: attendance.StatusPresent})
	require.NoError(t, err)

	resp, err := f.svc.UpdateStatus(ctx, attendance.UpdateStatusRequest{ID: created.ID, Status: "Half-Day"})
	require.NoError(t, err)
	assert.Equal(t, "Half-Day", resp.Status)

	_, err = f.svc.UpdateStatus(ctx, attendance.UpdateStatusRequest{ID: "virtual-bogus", Status: "Present"})
	assert.ErrorIs(t, err, attendance.ErrInvalidVirtualID)

	_, err = f.svc.UpdateStatus(ctx, attendance.UpdateStatusRequest{ID: "not-a-uuid", Status: "Present"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestApplyBreakPolicy_Ratchets(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()
	day := date(2024, 5, 10)

	got, err := f.svc.ApplyBreakPolicy(ctx, empAsha, day, 60*time.Minute)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = f.svc.ApplyBreakPolicy(ctx, empAsha, day, 75*time.Minute)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.StatusHalfDay, got.Status)

	got, err = f.svc.ApplyBreakPolicy(ctx, empAsha, day, 80*time.Minute)
	require.NoError(t, err)
	assert.Nil(t, got, "half-day is not rewritten at the same severity")

	got, err = f.svc.ApplyBreakPolicy(ctx, empAsha, day, 95*time.Minute)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.StatusAbsent, got.Status)
	assert.Equal(t, "Break limit exceeded (1h35m0s)", got.Reason)

	assert.Empty(t, f.notifier.Messages, "announcing is left to the caller")
}

func TestAnnounceDowngrade_NotifiesWithName(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()

	got, err := f.svc.ApplyBreakPolicy(ctx, empAsha, date(2024, 5, 10), 95*time.Minute)
	require.NoError(t, err)
	require.NotNil(t, got)

	f.svc.AnnounceDowngrade(ctx, *got)
	require.Len(t, f.notifier.Messages, 1)
	assert.Equal(t, "Asha was marked Absent for 2024-05-10: Break limit exceeded (1h35m0s)", f.notifier.Messages[0])
}

// staleReads hides stored records, like a read taken before a concurrent downgrade committed.
type staleReads struct {
	*servicetest.AttendanceRepo
}

func (staleReads) GetByEmployeeAndDate(context.Context, string, time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func TestApplyBreakPolicy_StaleReadKeepsAbsent(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()
	day := date(2024, 5, 10)

	_, err := f.svc.ApplyBreakPolicy(ctx, empAsha, day, 95*time.Minute)
	require.NoError(t, err)

	f.svc.AttendanceRepository = staleReads{f.records}
	got, err := f.svc.ApplyBreakPolicy(ctx, empAsha, day, 75*time.Minute)
	require.NoError(t, err)
	assert.Nil(t, got)

	rec, err := f.records.GetByEmployeeAndDate(ctx, empAsha, day)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.Equal(t, "Break limit exceeded (1h35m0s)", rec.Reason)
}

func TestExport_WritesWorkbook(t *testing.T) {
	f := newFixture(t, time.Now())

	data, err := f.svc.Export(context.Background(), attendance.ListAttendanceFilter{
		EmployeeID: strPtr(empAsha), StartDate: strPtr("2024-05-01"), EndDate: strPtr("2024-05-02"),
	})
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(export.AttendanceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-05-02", rows[1][0])
	assert.Equal(t, "Absent", rows[1][4])
}
