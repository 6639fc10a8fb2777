package attendance

import "time"

// Severity orders statuses for the break-limit ratchet: Normal < HalfDay < Absent.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityHalfDay
	SeverityAbsent
)

func (s Severity) String() string {
	switch s {
	case SeverityHalfDay:
		return "half-day"
	case SeverityAbsent:
		return "absent"
	default:
		return "normal"
	}
}

// Status is the attendance status a breach of this severity forces.
func (s Severity) Status() Status {
	switch s {
	case SeverityHalfDay:
		return StatusHalfDay
	case SeverityAbsent:
		return StatusAbsent
	default:
		return ""
	}
}

// SeverityOf places an existing status on the ratchet. Present, Leave and Weekly Off are Normal.
func SeverityOf(s Status) Severity {
	switch s {
	case StatusAbsent:
		return SeverityAbsent
	case StatusHalfDay:
		return SeverityHalfDay
	default:
		return SeverityNormal
	}
}

// BreakThresholds are the accumulated break durations that downgrade a day.
type BreakThresholds struct {
	HalfDay time.Duration
	Absent  time.Duration
}

// DefaultBreakThresholds is 70 minutes for Half-Day and 90 for Absent.
var DefaultBreakThresholds = BreakThresholds{HalfDay: 70 * time.Minute, Absent: 90 * time.Minute}

// Classify maps total break time to the severity it has reached.
func (t BreakThresholds) Classify(total time.Duration) Severity {
	switch {
	case total >= t.Absent:
		return SeverityAbsent
	case total >= t.HalfDay:
		return SeverityHalfDay
	default:
		return SeverityNormal
	}
}

// Remaining is the break time left before Half-Day, floored at zero.
func (t BreakThresholds) Remaining(total time.Duration) time.Duration {
	if left := t.HalfDay - total; left > 0 {
		return left
	}
	return 0
}

// Downgrade decides whether a day's status must move. current is nil when no record exists.
// It only moves toward a worse status, so Absent is never rewritten to Half-Day and a
// lower break total never restores anything.
func Downgrade(current *Status, total time.Duration, t BreakThresholds) (Status, bool) {
	target := t.Classify(total)
	if target == SeverityNormal {
		return "", false
	}

	have := SeverityNormal
	if current != nil {
		have = SeverityOf(*current)
	}
	if target <= have {
		return "", false
	}
	return target.Status(), true
}

// DowngradeReason is stored on records written by the ratchet.
func DowngradeReason(total time.Duration) string {
	return "Break limit exceeded (" + total.Truncate(time.Second).String() + ")"
}
