package domain

// DefaultInvalidMessage is the fallback shown when a rule fails without
// providing any message of its own.
const DefaultInvalidMessage = "Invalid value"

// Rule pairs a validation predicate with a failure message.
//
// Check receives the field's current (post-transform) value and returns
// nil when the value is acceptable. Any non-nil error is a failure; the
// error text becomes the field error message. An error with empty text
// falls back to Message, and then to DefaultInvalidMessage, so the two
// "bare failure" shapes behave identically.
//
// Predicates must be pure and side-effect free. The engine may invoke
// them from a goroutine, but never more than one at a time per field.
type Rule struct {
	// Name identifies the rule in logs and lifecycle events.
	Name string

	// Check is the predicate. A nil Check is rejected at registration.
	Check func(value any) error

	// Message is the static failure message, used when Check's error
	// carries no text of its own.
	Message string
}

// RuleError is the failure reported by the first rule in a field's
// chain that rejects the value. It is stored on the field, never
// propagated as a Go error to callers.
type RuleError struct {
	// Rule is the name of the failing rule.
	Rule string

	// Message is the resolved, human-readable failure message. It is
	// never empty.
	Message string
}

func (e *RuleError) Error() string {
	if e.Rule == "" {
		return e.Message
	}
	return e.Rule + ": " + e.Message
}
