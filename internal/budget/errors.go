package budget

import "errors"

// ErrNotFound is returned when a budget limit does not exist for the user.
var ErrNotFound = errors.New("budget limit not found")

// ErrCacheMiss is returned by a Cache when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// ValidationError reports bad caller input. Handlers map it to 400.
type ValidationError struct {
	Message string
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}

func invalid(msg, details string) error {
	return &ValidationError{Message: msg, Details: details}
}
