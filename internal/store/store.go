// Package store implements the field registry and form state store: the
// single source of truth for per-field state, derived form-level flags,
// and the mutation API everything else reads from.
//
// One Store exists per form instance; there is no ambient global state,
// so multiple forms coexist without interference. Every mutation is
// serialized behind a single mutex and committed atomically with the
// aggregate flags it touches. Subscribers receive an immutable snapshot
// after each committed mutation.
package store

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/formwork/internal/logging"
	"github.com/aretw0/formwork/pkg/domain"
)

// Store is the authoritative mapping of field name to configuration and
// runtime state, plus the form-level flags derived from them.
type Store struct {
	mu      sync.Mutex
	configs map[string]domain.FieldConfig
	states  map[string]domain.FieldState
	gens    map[string]uint64
	order   []string // registration order, for deterministic summaries

	initialValues map[string]any

	// valid is authoritative only after a full ValidateForm pass; a
	// failing field validation flips it false, a passing one never
	// flips it true.
	valid      bool
	submitting bool
	submitted  bool

	subs      map[uint64]func(domain.FormSnapshot)
	nextSubID uint64

	logger            *slog.Logger
	hooks             domain.LifecycleHooks
	onValidationError func(map[string]string)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger configures the structured logger for internal events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithHooks registers lifecycle hooks for observability.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Store) {
		s.hooks = hooks
	}
}

// WithInitialValues sets the form-level initial values, consulted when
// a field's config carries no InitialValue of its own.
func WithInitialValues(values map[string]any) Option {
	return func(s *Store) {
		s.initialValues = values
	}
}

// WithValidationErrorCallback registers the callback invoked with the
// name-to-message map after a failed ValidateForm pass.
func WithValidationErrorCallback(fn func(map[string]string)) Option {
	return func(s *Store) {
		s.onValidationError = fn
	}
}

// New creates an empty store. The form starts valid, untouched, and
// clean.
func New(opts ...Option) *Store {
	s := &Store{
		configs: make(map[string]domain.FieldConfig),
		states:  make(map[string]domain.FieldState),
		gens:    make(map[string]uint64),
		valid:   true,
		subs:    make(map[uint64]func(domain.FormSnapshot)),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register inserts a field or replaces an existing field's
// configuration. Registration is idempotent with respect to runtime
// state: re-registering a mounted field keeps its current value and
// flags. Use Reinitialize for an explicit reset.
func (s *Store) Register(name string, cfg domain.FieldConfig) error {
	if err := validateConfig(name, cfg); err != nil {
		return err
	}

	s.mu.Lock()
	_, exists := s.configs[name]
	s.configs[name] = cfg
	if !exists {
		s.states[name] = domain.FieldState{Value: s.seedLocked(name, cfg)}
		s.order = append(s.order, name)
	}
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	publish(snap, subs)
	s.fieldRegisterEvent(name)
	s.logger.Debug("field registered", "field", name, "existing", exists)
	return nil
}

// Reinitialize replaces a field's configuration and resets its runtime
// state to the seeded initial value with all flags cleared. In-flight
// validations for the field are discarded.
func (s *Store) Reinitialize(name string, cfg domain.FieldConfig) error {
	if err := validateConfig(name, cfg); err != nil {
		return err
	}

	s.mu.Lock()
	if _, exists := s.configs[name]; !exists {
		s.order = append(s.order, name)
	}
	s.configs[name] = cfg
	s.gens[name]++
	s.states[name] = domain.FieldState{Value: s.seedLocked(name, cfg)}
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	publish(snap, subs)
	s.fieldRegisterEvent(name)
	return nil
}

// Unregister removes the field entirely; subsequent reads report it as
// absent, not empty. A pending validation for the field becomes stale
// and its result is discarded.
func (s *Store) Unregister(name string) {
	s.mu.Lock()
	if _, exists := s.configs[name]; !exists {
		s.mu.Unlock()
		return
	}
	delete(s.configs, name)
	delete(s.states, name)
	// The generation counter survives removal so that a validation
	// still in flight cannot land in a later incarnation of the field.
	s.gens[name]++
	if i := slices.Index(s.order, name); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	publish(snap, subs)
	s.logger.Debug("field unregistered", "field", name)
}

// State returns a copy of the field's state, and whether the field is
// registered.
func (s *Store) State(name string) (domain.FieldState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[name]
	return st, ok
}

// Config returns a copy of the field's configuration, and whether the
// field is registered.
func (s *Store) Config(name string) (domain.FieldConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[name]
	return cfg, ok
}

// Names returns the registered field names in registration order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order)
}

// FirstInvalid returns the first field (in registration order) that
// currently carries an error.
func (s *Store) FirstInvalid() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range s.order {
		if s.states[name].Error != "" {
			return name, true
		}
	}
	return "", false
}

// Snapshot returns an immutable view of the whole form.
func (s *Store) Snapshot() domain.FormSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every committed
// mutation. It returns the unsubscribe function. Callbacks run
// synchronously on the mutating goroutine and must return promptly.
func (s *Store) Subscribe(fn func(domain.FormSnapshot)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// seedLocked resolves a field's initial value: field config first, then
// the form-level initial values map, then the empty string.
func (s *Store) seedLocked(name string, cfg domain.FieldConfig) any {
	if cfg.InitialValue != nil {
		return cfg.InitialValue
	}
	if v, ok := s.initialValues[name]; ok {
		return v
	}
	return ""
}

func (s *Store) snapshotLocked() domain.FormSnapshot {
	fields := make(map[string]domain.FieldState, len(s.states))
	touched, dirty := false, false
	for name, st := range s.states {
		fields[name] = st
		touched = touched || st.Touched
		dirty = dirty || st.Dirty
	}
	return domain.FormSnapshot{
		Fields:       fields,
		IsSubmitting: s.submitting,
		IsSubmitted:  s.submitted,
		IsValid:      s.valid,
		IsTouched:    touched,
		IsDirty:      dirty,
	}
}

// commitLocked captures the post-mutation snapshot and the current
// subscriber list. Callers publish after releasing the lock so
// subscribers can safely call back into the store.
func (s *Store) commitLocked() (domain.FormSnapshot, []func(domain.FormSnapshot)) {
	snap := s.snapshotLocked()
	subs := make([]func(domain.FormSnapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return snap, subs
}

func publish(snap domain.FormSnapshot, subs []func(domain.FormSnapshot)) {
	for _, fn := range subs {
		fn(snap)
	}
}

func validateConfig(name string, cfg domain.FieldConfig) error {
	if name == "" {
		return &domain.ConfigError{Field: name, Reason: "empty field name"}
	}
	for i, rule := range cfg.Rules {
		if rule.Check == nil {
			return &domain.ConfigError{
				Field:  name,
				Reason: fmt.Sprintf("rule %d (%s) has a nil predicate", i, rule.Name),
			}
		}
	}
	return nil
}
