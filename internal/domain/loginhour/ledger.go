package loginhour

import (
	"fmt"
	"time"
)

// Open returns the index of the open break, or -1.
func (b Breaks) Open() int {
	for i := range b {
		if b[i].End == nil {
			return i
		}
	}
	return -1
}

func (b Breaks) OnBreak() bool {
	return b.Open() >= 0
}

// Start appends an open break. It fails if one is already open.
func (b *Breaks) Start(now time.Time, requestedMinutes *int) error {
	if b.OnBreak() {
		return ErrBreakAlreadyOpen
	}
	*b = append(*b, Break{Start: now, RequestedDuration: requestedMinutes})
	return nil
}

// End closes the open break and returns it. The ledger is untouched on error.
func (b Breaks) End(now time.Time) (Break, error) {
	if len(b) == 0 {
		return Break{}, ErrNoBreaksRecorded
	}
	i := b.Open()
	if i < 0 {
		return Break{}, ErrNoActiveBreak
	}
	end := now
	b[i].End = &end
	return b[i], nil
}

// Total sums every interval, counting an open break up to now.
func (b Breaks) Total(now time.Time) time.Duration {
	var total time.Duration
	for _, br := range b {
		end := now
		if br.End != nil {
			end = *br.End
		}
		total += end.Sub(br.Start)
	}
	return total
}

// Elapsed is logout (or now) minus login.
func (l LoginHour) Elapsed(now time.Time) time.Duration {
	end := now
	if l.LogoutTime != nil {
		end = *l.LogoutTime
	}
	return end.Sub(l.LoginTime)
}

// Worked is Elapsed minus total break time. It is not floored and can go negative
// when stored intervals overlap.
func (l LoginHour) Worked(now time.Time) time.Duration {
	return l.Elapsed(now) - l.Breaks.Total(now)
}

// FormatHMS renders d as HH:MM:SS, flooring negative values at zero.
func FormatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// Hours converts d to hours rounded to two decimals.
func Hours(d time.Duration) float64 {
	h := d.Hours()
	if h < 0 {
		return -roundHundredths(-h)
	}
	return roundHundredths(h)
}

func roundHundredths(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
