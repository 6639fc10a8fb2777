package weeklyoff

import (
	"log/slog"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// ParseRule parses an RFC 5545 RRULE anchored at the given civil date.
func ParseRule(rule string, anchor time.Time) (*rrule.RRule, error) {
	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, ErrInvalidRecurrence
	}
	opt.Dtstart = civil(anchor)

	rr, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, ErrInvalidRecurrence
	}
	return rr, nil
}

// Expand turns assignments into concrete days within [from, to], both included.
// A stored rule that no longer parses is skipped.
func Expand(offs []WeeklyOff, from, to time.Time) []attendance.WeeklyOffDay {
	from, to = civil(from), civil(to)

	var days []attendance.WeeklyOffDay
	for _, off := range offs {
		if !off.Recurring() {
			d := civil(off.Date)
			if !d.Before(from) && !d.After(to) {
				days = append(days, attendance.WeeklyOffDay{EmployeeID: off.EmployeeID, Date: d, Reason: off.Reason})
			}
			continue
		}

		rr, err := ParseRule(*off.RecurrenceRule, off.Date)
		if err != nil {
			slog.Warn("skipping weekly off with invalid recurrence", "id", off.ID, "rule", *off.RecurrenceRule)
			continue
		}

		set := rrule.Set{}
		set.RRule(rr)
		for _, instance := range set.Between(from, to, true) {
			days = append(days, attendance.WeeklyOffDay{EmployeeID: off.EmployeeID, Date: civil(instance), Reason: off.Reason})
		}
	}
	return days
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
