package shiftday

import (
	"time"
)

const (
	// DefaultOffsetMinutes is the organizational UTC offset (+05:30).
	DefaultOffsetMinutes = 330
	// DefaultStartHour is the local hour a shift day begins.
	DefaultStartHour = 17
	// Layout is the date key format used across the system.
	Layout = "2006-01-02"
)

// Calendar maps instants to shift days under a fixed offset and start hour.
type Calendar struct {
	loc       *time.Location
	startHour int
}

func New(offsetMinutes int, startHour int) Calendar {
	if startHour < 0 || startHour > 23 {
		startHour = DefaultStartHour
	}
	return Calendar{
		loc:       time.FixedZone("ORG", offsetMinutes*60),
		startHour: startHour,
	}
}

// Default returns the calendar for +05:30 with shifts starting at 17:00.
func Default() Calendar {
	return New(DefaultOffsetMinutes, DefaultStartHour)
}

// Location returns the organizational zone.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return Default().loc
	}
	return c.loc
}

// DayOf returns the shift day containing t as a civil date (midnight UTC).
func (c Calendar) DayOf(t time.Time) time.Time {
	local := t.In(c.Location())
	day := Date(local.Year(), local.Month(), local.Day())
	if local.Hour() < c.hour() {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// KeyOf returns the YYYY-MM-DD key of the shift day containing t.
func (c Calendar) KeyOf(t time.Time) string {
	return c.DayOf(t).Format(Layout)
}

// LocalDate returns the organizational calendar date of t, ignoring the shift boundary.
func (c Calendar) LocalDate(t time.Time) time.Time {
	local := t.In(c.Location())
	return Date(local.Year(), local.Month(), local.Day())
}

// Window returns the first and last instant of the given shift day.
func (c Calendar) Window(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), c.hour(), 0, 0, 0, c.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// MonthToDate returns the first day of the current local month and today's local date.
func (c Calendar) MonthToDate(now time.Time) (time.Time, time.Time) {
	today := c.LocalDate(now)
	return Date(today.Year(), today.Month(), 1), today
}

func (c Calendar) hour() int {
	if c.loc == nil {
		return DefaultStartHour
	}
	return c.startHour
}

// Of returns the shift day key of instant for the given offset and the default start hour.
func Of(instant time.Time, offsetMinutes int) string {
	return New(offsetMinutes, DefaultStartHour).KeyOf(instant)
}

// Date builds a civil date at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Parse parses a YYYY-MM-DD key into a civil date.
func Parse(key string) (time.Time, error) {
	return time.ParseInLocation(Layout, key, time.UTC)
}

// Truncate drops the clock part of t, keeping its calendar fields.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}
