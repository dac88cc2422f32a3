package store

import (
	"context"
	"fmt"

	"github.com/aretw0/formwork/pkg/domain"
)

// SetValue applies the field's transform to raw, stores the result, and
// marks the field dirty. When the field's ValidateOnChange is set, a
// validation pass is triggered asynchronously (fire-and-forget).
func (s *Store) SetValue(name string, raw any) error {
	s.mu.Lock()
	cfg, ok := s.configs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("set value of %q: %w", name, domain.ErrFieldNotFound)
	}

	// Transform is caller code; run it outside the lock so it may read
	// the store without deadlocking.
	value := raw
	if cfg.Transform != nil {
		value = cfg.Transform(raw)
	}

	s.mu.Lock()
	st, ok := s.states[name]
	if !ok {
		// Unregistered between the config read and the write.
		s.mu.Unlock()
		return fmt.Errorf("set value of %q: %w", name, domain.ErrFieldNotFound)
	}
	st.Value = value
	st.Dirty = true
	s.states[name] = st
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	publish(snap, subs)
	if cfg.ValidateOnChange {
		go s.validateAsync(name)
	}
	return nil
}

// SetTouched sets the field's touched flag. When the flag transitions
// from false to true and the field's ValidateOnBlur is set, a
// validation pass is triggered asynchronously.
func (s *Store) SetTouched(name string, touched bool) error {
	s.mu.Lock()
	st, ok := s.states[name]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("set touched of %q: %w", name, domain.ErrFieldNotFound)
	}
	edge := touched && !st.Touched
	st.Touched = touched
	s.states[name] = st
	cfg := s.configs[name]
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	publish(snap, subs)
	if edge && cfg.ValidateOnBlur {
		go s.validateAsync(name)
	}
	return nil
}

// SetError overrides the field's error directly, bypassing the rule
// engine. External validators (for example server-side checks) use this
// channel. An empty message clears the error; a non-empty one also
// flips the form-level valid flag to false.
func (s *Store) SetError(name string, message string) error {
	s.mu.Lock()
	st, ok := s.states[name]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("set error of %q: %w", name, domain.ErrFieldNotFound)
	}
	st.Error = message
	s.states[name] = st
	if message != "" {
		s.valid = false
	}
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	publish(snap, subs)
	return nil
}

// Values returns a snapshot projection of the current field values.
func (s *Store) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := make(map[string]any, len(s.states))
	for name, st := range s.states {
		values[name] = st.Value
	}
	return values
}

// Reset restores every field to its seeded initial value, clears all
// per-field flags, and clears the form-level flags, submitting and
// submitted included. In-flight validations are discarded.
func (s *Store) Reset() {
	s.mu.Lock()
	for _, name := range s.order {
		s.gens[name]++
		s.states[name] = domain.FieldState{Value: s.seedLocked(name, s.configs[name])}
	}
	s.submitting = false
	s.submitted = false
	s.valid = true
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	publish(snap, subs)
	s.logger.Debug("form reset", "fields", len(snap.Fields))
}

// BeginSubmit transitions the form to submitting. It reports false when
// a submission attempt is already in progress.
func (s *Store) BeginSubmit() bool {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return false
	}
	s.submitting = true
	s.submitted = false
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	publish(snap, subs)
	return true
}

// FinishSubmit leaves the submitting state. The form is marked
// submitted only on success; gate failures and submit action errors
// return it to idle.
func (s *Store) FinishSubmit(success bool) {
	s.mu.Lock()
	s.submitting = false
	s.submitted = success
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	publish(snap, subs)
}

// validateAsync runs a fire-and-forget validation pass for event-driven
// triggers (change, blur). Failures are recorded on the field itself;
// a vanished field is not an error here.
func (s *Store) validateAsync(name string) {
	if _, err := s.ValidateField(context.Background(), name); err != nil {
		s.logger.Debug("async validation skipped", "field", name, "err", err)
	}
}
