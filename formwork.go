package formwork

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/formwork/internal/logging"
	"github.com/aretw0/formwork/internal/store"
	"github.com/aretw0/formwork/pkg/domain"
	"github.com/aretw0/formwork/pkg/ports"
)

// SubmitAction is the caller-supplied action invoked with the values
// snapshot once the validation gate passes.
type SubmitAction func(ctx context.Context, values map[string]any) error

// Form is the high-level entry point: one instance per form, owning the
// field registry, the state store, and the submission pipeline.
type Form struct {
	store  *store.Store
	logger *slog.Logger

	onSubmit          SubmitAction
	onSubmitError     func(error)
	onValidationError func(map[string]string)
	validateOnSubmit  bool

	initialValues map[string]any
	hooks         domain.LifecycleHooks
	announcer     ports.Announcer
	focus         ports.FocusMover
}

// Option defines a functional option for configuring a Form.
type Option func(*Form)

// WithInitialValues sets form-level initial values, used to seed fields
// whose config carries no InitialValue of its own.
func WithInitialValues(values map[string]any) Option {
	return func(f *Form) {
		f.initialValues = values
	}
}

// WithOnSubmit configures the submit action invoked by Submit.
func WithOnSubmit(action SubmitAction) Option {
	return func(f *Form) {
		f.onSubmit = action
	}
}

// WithOnValidationError registers the callback receiving the
// name-to-message map after a failed ValidateForm pass.
func WithOnValidationError(fn func(map[string]string)) Option {
	return func(f *Form) {
		f.onValidationError = fn
	}
}

// WithOnSubmitError registers a callback for submit action failures, in
// addition to the typed error Submit returns.
func WithOnSubmitError(fn func(error)) Option {
	return func(f *Form) {
		f.onSubmitError = fn
	}
}

// WithValidateOnSubmit toggles the validation gate (default true).
func WithValidateOnSubmit(enabled bool) Option {
	return func(f *Form) {
		f.validateOnSubmit = enabled
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		f.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(f *Form) {
		f.hooks = hooks
	}
}

// WithAnnouncer plugs in the live-region collaborator used for the
// error summary after a failed validation pass.
func WithAnnouncer(a ports.Announcer) Option {
	return func(f *Form) {
		f.announcer = a
	}
}

// WithFocusMover plugs in the focus collaborator that receives the
// first invalid field after a failed validation pass.
func WithFocusMover(m ports.FocusMover) Option {
	return func(f *Form) {
		f.focus = m
	}
}

// New creates an empty form. Fields are added dynamically through
// RegisterField as the host mounts them.
func New(opts ...Option) *Form {
	f := &Form{
		logger:           logging.NewNop(),
		validateOnSubmit: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.store = store.New(
		store.WithLogger(f.logger),
		store.WithHooks(f.hooks),
		store.WithInitialValues(f.initialValues),
		store.WithValidationErrorCallback(f.onValidationError),
	)
	return f
}

// RegisterField inserts a field or replaces an existing field's
// configuration. Re-registering a mounted field preserves its runtime
// state; use ReinitializeField for an explicit wipe.
func (f *Form) RegisterField(name string, cfg domain.FieldConfig) error {
	return f.store.Register(name, cfg)
}

// ReinitializeField replaces a field's configuration and resets its
// state to the seeded initial value.
func (f *Form) ReinitializeField(name string, cfg domain.FieldConfig) error {
	return f.store.Reinitialize(name, cfg)
}

// UnregisterField removes the field entirely; subsequent reads report
// it as absent.
func (f *Form) UnregisterField(name string) {
	f.store.Unregister(name)
}

// FieldState returns the field's current state and whether the field is
// registered.
func (f *Form) FieldState(name string) (domain.FieldState, bool) {
	return f.store.State(name)
}

// FieldNames returns the registered field names in registration order.
func (f *Form) FieldNames() []string {
	return f.store.Names()
}

// SetValue stores a new value for the field (after its transform) and
// marks it dirty.
func (f *Form) SetValue(name string, value any) error {
	return f.store.SetValue(name, value)
}

// SetTouched sets the field's touched flag.
func (f *Form) SetTouched(name string, touched bool) error {
	return f.store.SetTouched(name, touched)
}

// SetError overrides the field's error directly, bypassing the rule
// engine. An empty message clears it.
func (f *Form) SetError(name string, message string) error {
	return f.store.SetError(name, message)
}

// ValidateField validates a single field and reports whether it passed.
func (f *Form) ValidateField(ctx context.Context, name string) (bool, error) {
	return f.store.ValidateField(ctx, name)
}

// ValidateForm validates every registered field concurrently and
// reports the aggregate result. On failure the configured validation
// error callback receives the name-to-message map, the focus
// collaborator is pointed at the first invalid field, and the announcer
// receives a summary.
func (f *Form) ValidateForm(ctx context.Context) bool {
	valid, failures := f.store.ValidateForm(ctx)
	if !valid {
		f.dispatchErrorSummary(ctx, failures)
	}
	return valid
}

// Reset restores every field to its initial value and clears all flags,
// submitting and submitted included.
func (f *Form) Reset() {
	f.store.Reset()
}

// Values returns a snapshot projection of the current field values.
func (f *Form) Values() map[string]any {
	return f.store.Values()
}

// Snapshot returns an immutable view of the whole form.
func (f *Form) Snapshot() domain.FormSnapshot {
	return f.store.Snapshot()
}

// Subscribe registers fn to receive a snapshot after every committed
// mutation and returns the unsubscribe function.
func (f *Form) Subscribe(fn func(domain.FormSnapshot)) func() {
	return f.store.Subscribe(fn)
}

func (f *Form) dispatchErrorSummary(ctx context.Context, failures map[string]string) {
	if f.focus != nil {
		if name, ok := f.store.FirstInvalid(); ok {
			if err := f.focus.Focus(ctx, name); err != nil {
				f.logger.Warn("focus collaborator failed", "field", name, "err", err)
			}
		}
	}
	if f.announcer != nil {
		msg := fmt.Sprintf("Form has %d invalid field(s)", len(failures))
		if err := f.announcer.Announce(ctx, msg); err != nil {
			f.logger.Warn("announcer collaborator failed", "err", err)
		}
	}
}
