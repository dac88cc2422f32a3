package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/formwork/internal/engine"
	"github.com/aretw0/formwork/pkg/domain"
)

// ValidateField runs the field's rule chain against its current value
// and records the outcome. It reports whether the field passed.
//
// Each invocation is tagged with the field's next generation number.
// If the field is unregistered, reset, or re-validated while the pass
// is in flight, the result is stale and discarded instead of being
// written into a state slot it no longer owns.
//
// A failing field flips the form-level valid flag to false; a passing
// one never flips it to true, since other fields may still be invalid.
// Only a full ValidateForm pass may set it true.
func (s *Store) ValidateField(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	cfg, ok := s.configs[name]
	if !ok {
		s.mu.Unlock()
		return false, fmt.Errorf("validate %q: %w", name, domain.ErrFieldNotFound)
	}
	s.gens[name]++
	gen := s.gens[name]
	st := s.states[name]
	st.Validating = true
	s.states[name] = st
	value := st.Value
	snap, subs := s.commitLocked()
	s.mu.Unlock()
	publish(snap, subs)

	// Predicates are caller code; evaluate outside the lock.
	verr := engine.Evaluate(cfg.Rules, value)
	passed := verr == nil

	s.mu.Lock()
	cur, exists := s.states[name]
	if !exists {
		// The field was unregistered while validation was in flight;
		// there is no state slot left to write into.
		s.mu.Unlock()
		s.logger.Debug("discarding validation result for removed field", "field", name)
		s.fieldValidateEvent(ctx, name, verr, true)
		return false, fmt.Errorf("validate %q: %w", name, domain.ErrFieldNotFound)
	}
	if s.gens[name] != gen {
		// A newer invocation superseded this one; its result wins.
		s.mu.Unlock()
		s.logger.Debug("discarding stale validation result", "field", name, "generation", gen)
		s.fieldValidateEvent(ctx, name, verr, true)
		return passed, nil
	}
	cur.Validating = false
	cur.Error = failureMessage(verr)
	s.states[name] = cur
	if !passed {
		s.valid = false
	}
	snap, subs = s.commitLocked()
	s.mu.Unlock()

	publish(snap, subs)
	s.fieldValidateEvent(ctx, name, verr, false)
	return passed, nil
}

// ValidateForm validates every registered field as a concurrent batch,
// waits for all results, and stores the aggregate AND as the form-level
// valid flag. On failure it returns (and delivers to the configured
// callback) the name-to-message map built from each field's
// post-validation error.
func (s *Store) ValidateForm(ctx context.Context) (bool, map[string]string) {
	s.mu.Lock()
	names := slices.Clone(s.order)
	s.mu.Unlock()

	results := make([]bool, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		i, name := i, name
		wg.Add(1)
		go func() {
			defer wg.Done()
			passed, err := s.ValidateField(ctx, name)
			// A field unregistered mid-pass drops out of the aggregate.
			results[i] = passed || err != nil
		}()
	}
	wg.Wait()

	valid := true
	for _, r := range results {
		valid = valid && r
	}

	s.mu.Lock()
	s.valid = valid
	failures := make(map[string]string)
	for _, name := range names {
		if st, ok := s.states[name]; ok && st.Error != "" {
			failures[name] = st.Error
		}
	}
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	publish(snap, subs)
	s.formValidateEvent(ctx, valid, failures)
	if !valid && s.onValidationError != nil {
		s.onValidationError(failures)
	}
	return valid, failures
}

// failureMessage extracts the stored field error from an evaluation
// result; nil means the field passed and the error is cleared.
func failureMessage(err error) string {
	if err == nil {
		return ""
	}
	var ruleErr *domain.RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Message
	}
	return err.Error()
}

func (s *Store) fieldRegisterEvent(name string) {
	if s.hooks.OnFieldRegister == nil {
		return
	}
	s.hooks.OnFieldRegister(context.Background(), &domain.FieldEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFieldRegister},
		Field:     name,
	})
}

func (s *Store) fieldValidateEvent(ctx context.Context, name string, verr error, stale bool) {
	if s.hooks.OnFieldValidate == nil {
		return
	}
	s.hooks.OnFieldValidate(ctx, &domain.FieldEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFieldValidate},
		Field:     name,
		Valid:     verr == nil,
		Message:   failureMessage(verr),
		Stale:     stale,
	})
}

func (s *Store) formValidateEvent(ctx context.Context, valid bool, failures map[string]string) {
	if s.hooks.OnFormValidate == nil {
		return
	}
	s.hooks.OnFormValidate(ctx, &domain.FormEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFormValidate},
		Valid:     valid,
		Errors:    failures,
	})
}
