package binding_test

import (
	"context"
	"testing"

	"github.com/aretw0/formwork"
	"github.com/aretw0/formwork/pkg/binding"
	"github.com/aretw0/formwork/pkg/domain"
	"github.com/aretw0/formwork/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachDetach_Lifecycle(t *testing.T) {
	form := formwork.New()

	b, err := binding.Attach(form, "email", domain.FieldConfig{})
	require.NoError(t, err)
	_, registered := form.FieldState("email")
	assert.True(t, registered)

	b.Detach()
	_, registered = form.FieldState("email")
	assert.False(t, registered)
}

func TestAttach_PreservesStateOnRemount(t *testing.T) {
	form := formwork.New()
	cfg := domain.FieldConfig{InitialValue: "initial"}

	b, err := binding.Attach(form, "name", cfg)
	require.NoError(t, err)
	require.NoError(t, b.HandleChange("typed"))

	// A remount (effect re-run) attaches again without detaching first.
	b2, err := binding.Attach(form, "name", cfg)
	require.NoError(t, err)
	assert.Equal(t, "typed", b2.Value())
}

func TestAttach_RejectsBadConfig(t *testing.T) {
	form := formwork.New()
	_, err := binding.Attach(form, "x", domain.FieldConfig{
		Rules: []domain.Rule{{Name: "nil-check"}},
	})
	var cfgErr *domain.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestShowError_TouchGated(t *testing.T) {
	form := formwork.New()
	b, err := binding.Attach(form, "email", domain.FieldConfig{
		Rules: []domain.Rule{rules.Required()},
	})
	require.NoError(t, err)

	ok, err := b.Validate(context.Background())
	require.NoError(t, err)
	require.False(t, ok)

	// The error exists but the user never interacted with the field:
	// display stays suppressed.
	assert.NotEmpty(t, b.Err())
	assert.False(t, b.Touched())
	assert.False(t, b.ShowError())

	require.NoError(t, b.HandleBlur())
	assert.True(t, b.ShowError())
}

func TestHandleChange_FunnelsIntoStore(t *testing.T) {
	form := formwork.New()
	b, err := binding.Attach(form, "email", domain.FieldConfig{})
	require.NoError(t, err)

	require.NoError(t, b.HandleChange("a@b.com"))

	assert.Equal(t, "a@b.com", b.Value())
	assert.True(t, b.Dirty())
	assert.Equal(t, map[string]any{"email": "a@b.com"}, form.Values())
}

func TestHandlers_AfterDetach(t *testing.T) {
	form := formwork.New()
	b, err := binding.Attach(form, "email", domain.FieldConfig{})
	require.NoError(t, err)
	b.Detach()

	assert.ErrorIs(t, b.HandleChange("x"), domain.ErrFieldNotFound)
	assert.ErrorIs(t, b.HandleBlur(), domain.ErrFieldNotFound)
	_, verr := b.Validate(context.Background())
	assert.ErrorIs(t, verr, domain.ErrFieldNotFound)
	assert.Equal(t, domain.FieldState{}, b.State())
}
