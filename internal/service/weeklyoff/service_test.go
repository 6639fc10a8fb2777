package weeklyoff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/weeklyoff"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/servicetest"
)

const empAsha = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

func newService() weeklyoff.WeeklyOffService {
	employees := servicetest.NewEmployeeRepo(employee.Employee{ID: empAsha, Name: "Asha", Email: "asha@example.com"})
	return NewWeeklyOffService(&servicetest.WeeklyOffRepo{}, employees)
}

func TestCreate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	rule := "FREQ=WEEKLY;BYDAY=SU"
	created, err := svc.Create(ctx, weeklyoff.CreateWeeklyOffRequest{EmployeeID: empAsha, Date: "2024-05-05", RecurrenceRule: &rule})
	require.NoError(t, err)
	assert.Equal(t, "Weekly Off", created.Reason)
	assert.Equal(t, "2024-05-05", created.Date)
	require.NotNil(t, created.RecurrenceRule)

	list, err := svc.ListByEmployee(ctx, empAsha)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), weeklyoff.ErrWeeklyOffNotFound)
}

func TestCreate_DuplicatesAllowed(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, weeklyoff.CreateWeeklyOffRequest{EmployeeID: empAsha, Date: "2024-05-05"})
		require.NoError(t, err)
	}
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreate_Errors(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	bad := "FREQ=SOMETIMES"
	_, err := svc.Create(ctx, weeklyoff.CreateWeeklyOffRequest{EmployeeID: empAsha, Date: "2024-05-05", RecurrenceRule: &bad})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "recurrenceRule")

	_, err = svc.Create(ctx, weeklyoff.CreateWeeklyOffRequest{EmployeeID: "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", Date: "2024-05-05"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
