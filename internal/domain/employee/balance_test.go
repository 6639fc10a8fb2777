package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

func TestRemaining(t *testing.T) {
	assert.Equal(t, 17, Remaining(20, 3))
	assert.Equal(t, 0, Remaining(20, 20))
	assert.Equal(t, 0, Remaining(20, 25))
}

func TestApplyRevertLeave(t *testing.T) {
	e := Employee{LeaveQuota: 20, UsedDays: 2, RemainingDays: 18}

	e.ApplyLeave(3)
	assert.Equal(t, 5, e.UsedDays)
	assert.Equal(t, 15, e.RemainingDays)

	e.RevertLeave(3)
	assert.Equal(t, 2, e.UsedDays)
	assert.Equal(t, 18, e.RemainingDays)
}

func TestApplyLeave_ClampsRemaining(t *testing.T) {
	e := Employee{LeaveQuota: 4, UsedDays: 3, RemainingDays: 1}

	e.ApplyLeave(3)
	assert.Equal(t, 6, e.UsedDays)
	assert.Zero(t, e.RemainingDays)

	e.RevertLeave(3)
	assert.Equal(t, 3, e.UsedDays)
	assert.Equal(t, 1, e.RemainingDays)
}

func TestRevertLeave_FloorsAtZero(t *testing.T) {
	// Used days lowered by hand after the leave was approved.
	e := Employee{LeaveQuota: 20, UsedDays: 2, RemainingDays: 18}

	e.RevertLeave(5)
	assert.Zero(t, e.UsedDays)
	assert.Equal(t, 20, e.RemainingDays)
}

func TestSetLeaveQuota(t *testing.T) {
	e := Employee{LeaveQuota: 20, UsedDays: 5}

	require.NoError(t, e.SetLeaveQuota(10))
	assert.Equal(t, 5, e.RemainingDays)

	assert.ErrorIs(t, e.SetLeaveQuota(0), ErrInvalidLeaveQuota)
	assert.Equal(t, 10, e.LeaveQuota)
}

func TestSetUsedDays(t *testing.T) {
	tests := []struct {
		name     string
		used     int
		approved int
		wantErr  error
		wantMsg  string
	}{
		{name: "valid", used: 6, approved: 4},
		{name: "equal to approved", used: 4, approved: 4},
		{name: "below approved", used: 3, approved: 4, wantErr: ErrUsedDaysBelowApproved, wantMsg: "Used days cannot be less than 4 (approved leaves)"},
		{name: "above quota", used: 21, approved: 4, wantErr: ErrUsedDaysAboveQuota, wantMsg: "Used days (21) cannot exceed quota (20)"},
		{name: "negative", used: -1, wantErr: ErrInvalidUsedDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Employee{LeaveQuota: 20}
			err := e.SetUsedDays(tt.used, tt.approved)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.used, e.UsedDays)
				assert.Equal(t, 20-tt.used, e.RemainingDays)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				var pe *validator.PolicyError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, tt.wantMsg, pe.Message)
			}
			assert.Zero(t, e.UsedDays)
		})
	}
}

func TestNewFallback(t *testing.T) {
	e := NewFallback("emp-1", 21)
	e.ApplyLeave(3)
	assert.Equal(t, 21, e.LeaveQuota)
	assert.Equal(t, 3, e.UsedDays)
	assert.Equal(t, 18, e.RemainingDays)
}
