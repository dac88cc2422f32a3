package domain

// FieldConfig describes how a single field is seeded and validated.
// A config is immutable once registered; replacing it requires another
// RegisterField or ReinitializeField call.
type FieldConfig struct {
	// InitialValue seeds the field on registration and reset. When nil,
	// the form-level initial values map is consulted, and finally the
	// empty string.
	InitialValue any

	// Rules are evaluated in declaration order, stopping at the first
	// failure.
	Rules []Rule

	// ValidateOnChange triggers an asynchronous validation pass after
	// every value mutation.
	ValidateOnChange bool

	// ValidateOnBlur triggers an asynchronous validation pass when the
	// field transitions to touched.
	ValidateOnBlur bool

	// Transform normalizes raw input before it is stored (trimming,
	// casing, parsing). Nil means identity.
	Transform func(value any) any
}

// FieldState is the runtime snapshot of a single field.
type FieldState struct {
	// Value is the current (post-transform) value.
	Value any

	// Touched reports whether the field has been blurred at least once
	// since registration or reset.
	Touched bool

	// Dirty reports whether the value has changed at least once since
	// registration or reset.
	Dirty bool

	// Error is the message of the first failing rule as of the last
	// validation run, or the empty string when the field passed. It may
	// be stale relative to Value between a change and the next
	// validation pass.
	Error string

	// Validating reports whether a validation pass for this field is
	// currently in flight.
	Validating bool
}

// Invalid reports whether the field currently carries an error message.
func (s FieldState) Invalid() bool {
	return s.Error != ""
}
