package report

import "errors"

var (
	ErrNoRecipient = errors.New("email address is required")
	ErrSendFailed  = errors.New("failed to send daily report")
)
