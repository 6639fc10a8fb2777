package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/loginhour"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/shiftday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEmployee(t *testing.T, ctx context.Context, name, email string) employee.Employee {
	t.Helper()
	created, err := postgresql.NewEmployeeRepository(testSetup.DB).Create(ctx, employee.Employee{
		Name:          name,
		Role:          "Agent",
		Email:         email,
		Status:        employee.EmploymentStatusActive,
		LeaveQuota:    24,
		RemainingDays: 24,
	})
	require.NoError(t, err)
	return created
}

func TestAttendanceRepository_CreateDuplicateAndForce(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	emp := createTestEmployee(t, ctx, "Asha", "asha@example.com")
	day := shiftday.Date(2024, time.May, 10)

	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: emp.ID, Date: day, Status: attendance.StatusPresent, Reason: "on site",
	})
	require.NoError(t, err)
	require.NotNil(t, created.EmployeeName)
	assert.Equal(t, "Asha", *created.EmployeeName)
	assert.True(t, created.Date.Equal(day))

	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: day, Status: attendance.StatusAbsent})
	assert.ErrorIs(t, err, attendance.ErrAlreadyMarked)

	upserted, err := repo.Upsert(ctx, attendance.Attendance{
		EmployeeID: emp.ID, Date: day, Status: attendance.StatusWeeklyOff, Reason: "ignored", IsWeeklyOff: true,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusWeeklyOff, upserted.Status)
	assert.Equal(t, "on site", upserted.Reason)

	forced, written, err := repo.ForceStatus(ctx, emp.ID, day, attendance.StatusHalfDay, "Break limit exceeded (40m0s)")
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, attendance.StatusHalfDay, forced.Status)
	assert.Equal(t, "Break limit exceeded (40m0s)", forced.Reason)
	assert.Equal(t, created.ID, forced.ID)

	_, written, err = repo.ForceStatus(ctx, emp.ID, day, attendance.StatusHalfDay, "Break limit exceeded (45m0s)")
	require.NoError(t, err)
	assert.False(t, written)

	// A later day: Absent is never lowered back to Half-Day.
	absentDay := day.AddDate(0, 0, 2)
	_, written, err = repo.ForceStatus(ctx, emp.ID, absentDay, attendance.StatusAbsent, "Break limit exceeded (1h35m0s)")
	require.NoError(t, err)
	assert.True(t, written)
	_, written, err = repo.ForceStatus(ctx, emp.ID, absentDay, attendance.StatusHalfDay, "Break limit exceeded (1h15m0s)")
	require.NoError(t, err)
	assert.False(t, written)
	kept, err := repo.GetByEmployeeAndDate(ctx, emp.ID, absentDay)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, attendance.StatusAbsent, kept.Status)
	assert.Equal(t, "Break limit exceeded (1h35m0s)", kept.Reason)

	found, err := repo.GetByEmployeeAndDate(ctx, emp.ID, day)
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := repo.GetByEmployeeAndDate(ctx, emp.ID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, missing)

	count, err := repo.CountByStatus(ctx, emp.ID, attendance.StatusHalfDay, day.AddDate(0, 0, -1), day)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	inRange, err := repo.ListInRange(ctx, &emp.ID, day, day)
	require.NoError(t, err)
	assert.Len(t, inRange, 1)
}

func TestLeaveRequestRepository_OverlapAndSum(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(testSetup.DB)
	emp := createTestEmployee(t, ctx, "Ravi", "ravi@example.com")

	approved, err := repo.Create(ctx, leave.LeaveRequest{
		EmployeeID: emp.ID,
		From:       shiftday.Date(2024, time.June, 3),
		To:         shiftday.Date(2024, time.June, 5),
		LeaveType:  leave.TypePaid,
		IsPaid:     true,
		Status:     leave.StatusPending,
	})
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, approved.ID, leave.StatusApproved)
	require.NoError(t, err)

	days, err := repo.SumApprovedDays(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, days)

	status := leave.StatusApproved
	overlapping, err := repo.ListOverlapping(ctx, &emp.ID, &status, shiftday.Date(2024, time.June, 5), shiftday.Date(2024, time.June, 9))
	require.NoError(t, err)
	assert.Len(t, overlapping, 1)

	none, err := repo.ListOverlapping(ctx, &emp.ID, nil, shiftday.Date(2024, time.June, 6), shiftday.Date(2024, time.June, 9))
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLoginHourRepository_BreaksRoundTrip(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewLoginHourRepository(testSetup.DB)
	emp := createTestEmployee(t, ctx, "Meera", "meera@example.com")
	day := shiftday.Date(2024, time.May, 10)
	login := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, loginhour.LoginHour{EmployeeID: emp.ID, Date: day, LoginTime: login})
	require.NoError(t, err)

	again, err := repo.Create(ctx, loginhour.LoginHour{EmployeeID: emp.ID, Date: day, LoginTime: login.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, again.LoginTime.Equal(login))

	require.NoError(t, first.Breaks.Start(login.Add(time.Hour), nil))
	require.NoError(t, repo.Save(ctx, first))

	open, err := repo.ListOpenBreaks(ctx, day)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.True(t, open[0].Breaks.OnBreak())
	require.NotNil(t, open[0].EmployeeName)
	assert.Equal(t, "Meera", *open[0].EmployeeName)

	txm := postgresql.NewTxManager(testSetup.DB)
	err = txm.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := repo.GetForUpdate(ctx, emp.ID, day)
		if err != nil {
			return err
		}
		if _, err := locked.Breaks.End(login.Add(90 * time.Minute)); err != nil {
			return err
		}
		return repo.Save(ctx, locked)
	})
	require.NoError(t, err)

	open, err = repo.ListOpenBreaks(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, open)

	saved, err := repo.GetByEmployeeAndDate(ctx, emp.ID, day)
	require.NoError(t, err)
	require.Len(t, saved.Breaks, 1)
	assert.Equal(t, 30*time.Minute, saved.Breaks.Total(login.Add(2*time.Hour)))
}
