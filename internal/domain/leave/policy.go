package leave

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// Policy holds the request limits.
type Policy struct {
	MaxDaysPerRequest  int
	MaxRequestsPerYear int
	// FallbackQuota seeds an employee row created on approval when none exists.
	FallbackQuota int
}

var DefaultPolicy = Policy{MaxDaysPerRequest: 5, MaxRequestsPerYear: 4, FallbackQuota: 21}

// DaysBetween counts civil days from..to, both included.
func DaysBetween(from, to time.Time) (int, error) {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	if t.Before(f) {
		return 0, ErrInvalidDateRange
	}
	return int(t.Sub(f).Hours()/24) + 1, nil
}

// CheckSpan rejects requests longer than MaxDaysPerRequest.
func (p Policy) CheckSpan(days int) error {
	if days > p.MaxDaysPerRequest {
		return validator.NewPolicyError(ErrTooManyDays,
			fmt.Sprintf("More than %d days please contact HR.", p.MaxDaysPerRequest))
	}
	return nil
}

// CheckYearCount rejects a new request once the employee already has MaxRequestsPerYear this year,
// whatever their status.
func (p Policy) CheckYearCount(existing int) error {
	if existing >= p.MaxRequestsPerYear {
		return validator.NewPolicyError(ErrTooManyRequests,
			fmt.Sprintf("Maximum %d leave requests per year. Please contact HR.", p.MaxRequestsPerYear))
	}
	return nil
}

// Transition is the balance effect of a status change.
type Transition int

const (
	TransitionNone Transition = iota
	// TransitionApply adds the leave days to the employee's used days.
	TransitionApply
	// TransitionRevert takes them back.
	TransitionRevert
)

func (t Transition) String() string {
	switch t {
	case TransitionApply:
		return "apply"
	case TransitionRevert:
		return "revert"
	default:
		return "none"
	}
}

// BalanceTransition applies on entering Approved and reverts on leaving it, exactly once each way.
func BalanceTransition(prev, next Status) Transition {
	switch {
	case prev != StatusApproved && next == StatusApproved:
		return TransitionApply
	case prev == StatusApproved && next != StatusApproved:
		return TransitionRevert
	default:
		return TransitionNone
	}
}

// YearBounds returns [Jan 1, next Jan 1) of the local calendar year containing now, in loc.
func YearBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(1, 0, 0)
}
