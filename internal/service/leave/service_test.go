package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/shiftday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/servicetest"
)

const (
	empAsha    = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	empUnknown = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"
)

type fixture struct {
	svc       *LeaveServiceImpl
	leaves    *servicetest.LeaveRepo
	employees *servicetest.EmployeeRepo
	files     *servicetest.Storage
	notifier  *servicetest.Notifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		leaves: &servicetest.LeaveRepo{},
		employees: servicetest.NewEmployeeRepo(employee.Employee{
			ID: empAsha, Name: "Asha", Email: "asha@example.com", Role: "Agent",
			LeaveQuota: 20, UsedDays: 0, RemainingDays: 20,
		}),
		files:    servicetest.NewStorage(),
		notifier: &servicetest.Notifier{},
	}
	f.svc = NewLeaveService(f.leaves, f.employees, servicetest.PassThroughTx{}, lock.NewLocalLocker(),
		f.files, f.notifier, config.DefaultPolicy(), shiftday.Default().Location()).(*LeaveServiceImpl)
	return f
}

func request(from, to string) leave.CreateLeaveRequest {
	return leave.CreateLeaveRequest{EmployeeID: empAsha, From: from, To: to, Reason: "Family trip", LeaveType: "Paid Leave"}
}

func TestRequest_SpanLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Request(ctx, request("2024-05-10", "2024-05-14"))
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Days)
	assert.Equal(t, "Pending", resp.Status)
	assert.True(t, resp.IsPaid)

	_, err = f.svc.Request(ctx, request("2024-06-10", "2024-06-15"))
	assert.ErrorIs(t, err, leave.ErrTooManyDays)
	assert.EqualError(t, err, "More than 5 days please contact HR.")
}

func TestRequest_YearlyLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, d := range []string{"2024-01-10", "2024-02-10", "2024-03-10", "2024-04-10"} {
		_, err := f.svc.Request(ctx, request(d, d))
		require.NoError(t, err)
	}

	_, err := f.svc.Request(ctx, request("2024-05-10", "2024-05-10"))
	assert.ErrorIs(t, err, leave.ErrTooManyRequests)

	var pe *validator.PolicyError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Maximum 4 leave requests per year. Please contact HR.", pe.Message)
}

func TestRequest_UnpaidAndDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := request("2024-05-10", "2024-05-10")
	req.LeaveType = "Sick Leave"
	req.DocumentName = "note.pdf"
	req.DocumentContent = []byte("%PDF")

	resp, err := f.svc.Request(ctx, req)
	require.NoError(t, err)
	assert.False(t, resp.IsPaid)
	require.NotNil(t, resp.Document)
	assert.Equal(t, []byte("%PDF"), f.files.Files[*resp.Document])
	assert.Len(t, f.notifier.Messages, 1)

	req.DocumentName = "virus.exe"
	_, err = f.svc.Request(ctx, req)
	assert.ErrorIs(t, err, leave.ErrInvalidDocument)
}

func TestUpdateStatus_ApplyAndRevert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Request(ctx, request("2024-05-10", "2024-05-12"))
	require.NoError(t, err)

	approved, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{ID: created.ID, Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, "apply", approved.Transition)
	require.NotNil(t, approved.Balance)
	assert.Equal(t, 3, approved.Balance.UsedDays)
	assert.Equal(t, 17, approved.Balance.RemainingDays)

	again, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{ID: created.ID, Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, "none", again.Transition)
	assert.Nil(t, again.Balance)

	rejected, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{ID: created.ID, Status: "Rejected"})
	require.NoError(t, err)
	assert.Equal(t, "revert", rejected.Transition)

	emp, err := f.employees.GetByID(ctx, empAsha)
	require.NoError(t, err)
	assert.Equal(t, 0, emp.UsedDays)
	assert.Equal(t, 20, emp.RemainingDays)
}

func TestUpdateStatus_ClampsRemaining(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.employees.UpdateBalance(ctx, empAsha, 20, 19, 1))

	created, err := f.svc.Request(ctx, request("2024-05-10", "2024-05-12"))
	require.NoError(t, err)

	resp, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{ID: created.ID, Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, 22, resp.Balance.UsedDays)
	assert.Equal(t, 0, resp.Balance.RemainingDays)
}

func TestUpdateStatus_FallbackEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := request("2024-05-10", "2024-05-11")
	req.EmployeeID = empUnknown
	created, err := f.svc.Request(ctx, req)
	require.NoError(t, err)

	resp, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{ID: created.ID, Status: "Approved"})
	require.NoError(t, err)
	require.NotNil(t, resp.Balance)
	assert.Equal(t, 21, resp.Balance.LeaveQuota)
	assert.Equal(t, 2, resp.Balance.UsedDays)
	assert.Equal(t, 19, resp.Balance.RemainingDays)

	emp, err := f.employees.GetByID(ctx, empUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", emp.Name)
}

func TestUpdateStatus_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{ID: empAsha, Status: "Approved"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = f.svc.UpdateStatus(ctx, leave.UpdateLeaveStatusRequest{ID: empAsha, Status: "Maybe"})
	var errs validator.ValidationErrors
	assert.ErrorAs(t, err, &errs)
}

func TestList_Paginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, d := range []string{"2024-01-10", "2024-02-10", "2024-03-10"} {
		_, err := f.svc.Request(ctx, request(d, d))
		require.NoError(t, err)
	}

	resp, err := f.svc.List(ctx, leave.LeaveFilter{PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, 2, resp.TotalPages)
	assert.EqualValues(t, 3, resp.TotalCount)
	assert.Equal(t, "2024-03-10", resp.Data[0].From)
}
