// Package binding provides the per-field facade between a host UI and a
// form: it translates primitive events (change, blur) into store
// mutations and exposes render-ready field state back to the host.
//
// A Binding is bound to a single field name. Attaching registers the
// field; detaching unregisters it, at which point any in-flight
// validation for the field is discarded by the engine.
package binding

import (
	"context"
	"fmt"

	"github.com/aretw0/formwork"
	"github.com/aretw0/formwork/pkg/domain"
)

// Binding is the per-field facade. Create one with Attach when the host
// mounts the field, and call Detach when it unmounts.
type Binding struct {
	form *formwork.Form
	name string
}

// Attach registers the field on the form and returns its binding.
// Re-attaching an already registered field preserves its runtime state.
func Attach(form *formwork.Form, name string, cfg domain.FieldConfig) (*Binding, error) {
	if err := form.RegisterField(name, cfg); err != nil {
		return nil, fmt.Errorf("attach %q: %w", name, err)
	}
	return &Binding{form: form, name: name}, nil
}

// Detach unregisters the field from the form.
func (b *Binding) Detach() {
	b.form.UnregisterField(b.name)
}

// Name returns the bound field name.
func (b *Binding) Name() string {
	return b.name
}

// State returns the field's current state. A detached field reads as
// the zero state.
func (b *Binding) State() domain.FieldState {
	st, _ := b.form.FieldState(b.name)
	return st
}

// Value returns the field's current value.
func (b *Binding) Value() any {
	return b.State().Value
}

// Err returns the field's current error message, or the empty string.
func (b *Binding) Err() string {
	return b.State().Error
}

// Touched reports whether the field has been blurred at least once.
func (b *Binding) Touched() bool {
	return b.State().Touched
}

// Dirty reports whether the value has changed since registration/reset.
func (b *Binding) Dirty() bool {
	return b.State().Dirty
}

// Validating reports whether a validation pass is in flight.
func (b *Binding) Validating() bool {
	return b.State().Validating
}

// ShowError reports whether the host should display the field's error:
// only once the user has interacted with the field. An error on an
// untouched field stays suppressed.
func (b *Binding) ShowError() bool {
	st := b.State()
	return st.Touched && st.Error != ""
}

// HandleChange is the change-event handler: it funnels the raw input
// into the store (transform, dirty flag, optional validate-on-change).
func (b *Binding) HandleChange(value any) error {
	return b.form.SetValue(b.name, value)
}

// HandleBlur is the blur-event handler: it marks the field touched
// (triggering validate-on-blur when configured).
func (b *Binding) HandleBlur() error {
	return b.form.SetTouched(b.name, true)
}

// SetValue is the imperative escape for callers manipulating the field
// outside the standard event flow.
func (b *Binding) SetValue(value any) error {
	return b.form.SetValue(b.name, value)
}

// SetTouched is the imperative escape for the touched flag.
func (b *Binding) SetTouched(touched bool) error {
	return b.form.SetTouched(b.name, touched)
}

// Validate runs the field's rule chain immediately.
func (b *Binding) Validate(ctx context.Context) (bool, error) {
	return b.form.ValidateField(ctx, b.name)
}
