package employee

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// Remaining is quota minus used, floored at zero.
func Remaining(quota, used int) int {
	if r := quota - used; r > 0 {
		return r
	}
	return 0
}

// ApplyLeave adds approved leave days. Exceeding the quota is clamped, not rejected.
func (e *Employee) ApplyLeave(days int) {
	e.UsedDays += days
	e.RemainingDays = Remaining(e.LeaveQuota, e.UsedDays)
}

// RevertLeave takes back days added by ApplyLeave.
func (e *Employee) RevertLeave(days int) {
	e.UsedDays -= days
	if e.UsedDays < 0 {
		e.UsedDays = 0
	}
	e.RemainingDays = Remaining(e.LeaveQuota, e.UsedDays)
}

func (e *Employee) SetLeaveQuota(quota int) error {
	if quota < 1 {
		return ErrInvalidLeaveQuota
	}
	e.LeaveQuota = quota
	e.RemainingDays = Remaining(e.LeaveQuota, e.UsedDays)
	return nil
}

// SetUsedDays is the direct edit: used must cover the approved leave days and fit the quota.
func (e *Employee) SetUsedDays(used, approvedDays int) error {
	if used < 0 {
		return ErrInvalidUsedDays
	}
	if used < approvedDays {
		return validator.NewPolicyError(ErrUsedDaysBelowApproved,
			fmt.Sprintf("Used days cannot be less than %d (approved leaves)", approvedDays))
	}
	if used > e.LeaveQuota {
		return validator.NewPolicyError(ErrUsedDaysAboveQuota,
			fmt.Sprintf("Used days (%d) cannot exceed quota (%d)", used, e.LeaveQuota))
	}
	e.UsedDays = used
	e.RemainingDays = Remaining(e.LeaveQuota, e.UsedDays)
	return nil
}

// NewFallback builds the employee row created when a leave is approved for an unknown employee.
func NewFallback(id string, quota int) Employee {
	return Employee{
		ID:            id,
		Name:          "Unknown",
		Role:          "Unknown",
		Email:         "unknown+" + id + "@fallback.invalid",
		Status:        EmploymentStatusActive,
		LeaveQuota:    quota,
		RemainingDays: quota,
	}
}
