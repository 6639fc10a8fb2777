package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkingDaysPerMonth is the fixed divisor for daily pay.
const WorkingDaysPerMonth = 30

// LeaveDays is an approved leave span used for payroll.
type LeaveDays struct {
	From time.Time
	To   time.Time
	Paid bool
}

type SalaryInput struct {
	Monthly     decimal.Decimal
	Month       time.Time
	PresentDays int
	Leaves      []LeaveDays
}

type Salary struct {
	Monthly          decimal.Decimal
	PerDay           decimal.Decimal
	TotalWorkingDays int
	PresentDays      int
	PaidLeaveDays    int
	UnpaidLeaveDays  int
	TotalAbsent      int
	Calculated       decimal.Decimal
}

// MonthBounds returns the first and last civil day of month.
func MonthBounds(month time.Time) (time.Time, time.Time) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// ComputeSalary prorates the monthly salary over present and paid leave days.
// Leaves are clipped to the month.
func ComputeSalary(in SalaryInput) Salary {
	first, last := MonthBounds(in.Month)
	perDay := in.Monthly.Div(decimal.NewFromInt(WorkingDaysPerMonth))

	out := Salary{
		Monthly:          in.Monthly,
		PerDay:           perDay,
		TotalWorkingDays: WorkingDaysPerMonth,
		PresentDays:      in.PresentDays,
	}

	for _, l := range in.Leaves {
		from, to := civilDate(l.From), civilDate(l.To)
		if from.Before(first) {
			from = first
		}
		if to.After(last) {
			to = last
		}
		if to.Before(from) {
			continue
		}
		days := int(to.Sub(from).Hours()/24) + 1
		if l.Paid {
			out.PaidLeaveDays += days
		} else {
			out.UnpaidLeaveDays += days
		}
	}

	paidDays := decimal.NewFromInt(int64(out.PresentDays + out.PaidLeaveDays))
	out.Calculated = paidDays.Mul(perDay).Round(0)
	out.TotalAbsent = WorkingDaysPerMonth - (out.PresentDays + out.PaidLeaveDays + out.UnpaidLeaveDays)

	return out
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
