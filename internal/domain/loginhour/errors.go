package loginhour

import "errors"

var (
	ErrLoginHourNotFound = errors.New("login record not found for this shift")
	ErrBreakAlreadyOpen  = errors.New("a break is already open")
	ErrNoBreaksRecorded  = errors.New("no breaks recorded")
	ErrNoActiveBreak     = errors.New("no active break to end")
)
