package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidDateRange     = errors.New("to must not be before from")
	ErrTooManyDays          = errors.New("leave request exceeds the maximum length")
	ErrTooManyRequests      = errors.New("yearly leave request limit reached")
	ErrInvalidDocument      = errors.New("document must be a pdf, doc, docx, jpg, jpeg or png file")
)
