package validator

// PolicyError is a business-rule rejection whose message depends on configured limits.
// errors.Is matches it against its Kind sentinel.
type PolicyError struct {
	Kind    error
	Message string
}

func NewPolicyError(kind error, message string) *PolicyError {
	return &PolicyError{Kind: kind, Message: message}
}

func (e *PolicyError) Error() string {
	return e.Message
}

func (e *PolicyError) Unwrap() error {
	return e.Kind
}
