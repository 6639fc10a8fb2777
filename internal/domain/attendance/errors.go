package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyMarked      = errors.New("attendance already marked for this date")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidVirtualID   = errors.New("invalid virtual attendance id")
	ErrNoEmployeeProfile  = errors.New("no employee profile linked to this account")
)
