package weeklyoff

import "errors"

var (
	ErrWeeklyOffNotFound = errors.New("weekly off not found")
	ErrInvalidRecurrence = errors.New("invalid recurrence rule")
)
