package domain

import (
	"context"
	"time"
)

// EventType defines the category of a lifecycle event.
type EventType string

const (
	EventFieldRegister EventType = "field_register"
	EventFieldValidate EventType = "field_validate"
	EventFormValidate  EventType = "form_validate"
	EventSubmit        EventType = "submit"
)

// EventBase contains common fields for all lifecycle events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// FieldEvent describes a registration or validation of a single field.
type FieldEvent struct {
	EventBase
	Field string `json:"field"`
	// Valid is meaningful for validation events only.
	Valid bool `json:"valid"`
	// Message carries the resolved failure message when Valid is false.
	Message string `json:"message,omitempty"`
	// Stale marks a validation result that was discarded because the
	// field was removed or re-validated while the pass was in flight.
	Stale bool `json:"stale,omitempty"`
}

// FormEvent describes a whole-form validation pass.
type FormEvent struct {
	EventBase
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// SubmitEvent describes a submission attempt.
type SubmitEvent struct {
	EventBase
	// Gated is true when the validation gate blocked the attempt before
	// the submit action ran.
	Gated bool `json:"gated"`
	// Duration covers the whole attempt, gate included.
	Duration time.Duration `json:"duration"`
	// Err is the submit action failure, if any.
	Err error `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability. Nil hooks
// are skipped. Hooks run synchronously on the mutating goroutine and
// must return promptly.
type LifecycleHooks struct {
	OnFieldRegister func(context.Context, *FieldEvent)
	OnFieldValidate func(context.Context, *FieldEvent)
	OnFormValidate  func(context.Context, *FormEvent)
	OnSubmit        func(context.Context, *SubmitEvent)
}
