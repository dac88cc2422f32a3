package domain

import (
	"errors"
	"fmt"
)

// ErrFieldNotFound is returned when an operation targets a field name
// that is not currently registered.
var ErrFieldNotFound = errors.New("field not found")

// ErrValidationFailed is returned by Submit when the validation gate
// rejects the form. The submit action is not invoked in that case.
var ErrValidationFailed = errors.New("validation failed")

// ErrSubmitInProgress is returned when Submit is called while another
// submission attempt is still running.
var ErrSubmitInProgress = errors.New("submission already in progress")

// ConfigError reports an invalid field configuration at registration
// time.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("field %q: invalid config: %s", e.Field, e.Reason)
}

// SubmitError wraps a failure of the caller-supplied submit action.
// The submitting flag is reset and the submitted flag stays false; the
// cause is surfaced instead of swallowed.
type SubmitError struct {
	Cause error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit action failed: %v", e.Cause)
}

func (e *SubmitError) Unwrap() error {
	return e.Cause
}
