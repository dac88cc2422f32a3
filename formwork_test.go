package formwork_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/formwork"
	"github.com/aretw0/formwork/pkg/domain"
	"github.com/aretw0/formwork/pkg/ports"
	"github.com/aretw0/formwork/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_ValidationGateBlocksAction(t *testing.T) {
	invoked := false
	form := formwork.New(
		formwork.WithOnSubmit(func(ctx context.Context, values map[string]any) error {
			invoked = true
			return nil
		}),
	)
	require.NoError(t, form.RegisterField("email", domain.FieldConfig{
		Rules: []domain.Rule{rules.Required()},
	}))

	err := form.Submit(context.Background())

	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.False(t, invoked, "submit action must not run when the gate fails")
	snap := form.Snapshot()
	assert.False(t, snap.IsSubmitted)
	assert.False(t, snap.IsSubmitting)
}

func TestSubmit_Success(t *testing.T) {
	var received map[string]any
	form := formwork.New(
		formwork.WithOnSubmit(func(ctx context.Context, values map[string]any) error {
			received = values
			return nil
		}),
	)
	require.NoError(t, form.RegisterField("email", domain.FieldConfig{
		Rules: []domain.Rule{rules.Required(), rules.Email()},
	}))
	require.NoError(t, form.SetValue("email", "a@b.com"))

	require.NoError(t, form.Submit(context.Background()))

	assert.Equal(t, map[string]any{"email": "a@b.com"}, received)
	snap := form.Snapshot()
	assert.True(t, snap.IsSubmitted)
	assert.False(t, snap.IsSubmitting)
	assert.Equal(t, domain.SubmitCompleted, snap.Status())
}

func TestSubmit_ActionFailureIsTyped(t *testing.T) {
	cause := errors.New("backend unavailable")
	var callbackErr error
	form := formwork.New(
		formwork.WithOnSubmit(func(context.Context, map[string]any) error { return cause }),
		formwork.WithOnSubmitError(func(err error) { callbackErr = err }),
	)
	require.NoError(t, form.RegisterField("name", domain.FieldConfig{InitialValue: "x"}))

	err := form.Submit(context.Background())

	var submitErr *domain.SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, err, callbackErr)
	snap := form.Snapshot()
	assert.False(t, snap.IsSubmitted, "a failed action must not mark the form submitted")
	assert.False(t, snap.IsSubmitting, "submitting must reset after a failed action")
}

func TestSubmit_GateDisabled(t *testing.T) {
	invoked := false
	form := formwork.New(
		formwork.WithValidateOnSubmit(false),
		formwork.WithOnSubmit(func(context.Context, map[string]any) error {
			invoked = true
			return nil
		}),
	)
	require.NoError(t, form.RegisterField("email", domain.FieldConfig{
		Rules: []domain.Rule{rules.Required()},
	}))

	// The field is invalid, but the gate is off.
	require.NoError(t, form.Submit(context.Background()))
	assert.True(t, invoked)
	assert.True(t, form.Snapshot().IsSubmitted)
}

func TestSubmit_Reentrancy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	form := formwork.New(
		formwork.WithValidateOnSubmit(false),
		formwork.WithOnSubmit(func(context.Context, map[string]any) error {
			close(started)
			<-release
			return nil
		}),
	)
	require.NoError(t, form.RegisterField("a", domain.FieldConfig{}))

	first := make(chan error, 1)
	go func() { first <- form.Submit(context.Background()) }()
	<-started

	err := form.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSubmitInProgress)

	close(release)
	assert.NoError(t, <-first)
}

func TestValidateForm_OnValidationErrorCallback(t *testing.T) {
	var reported map[string]string
	form := formwork.New(
		formwork.WithOnValidationError(func(failures map[string]string) { reported = failures }),
	)
	require.NoError(t, form.RegisterField("email", domain.FieldConfig{
		Rules: []domain.Rule{rules.Required(), rules.Email()},
	}))
	require.NoError(t, form.SetValue("email", "not-an-email"))

	assert.False(t, form.ValidateForm(context.Background()))
	assert.Equal(t, map[string]string{"email": "Please enter a valid email"}, reported)
}

func TestValidateForm_CollaboratorDispatch(t *testing.T) {
	var focused string
	var announced string
	form := formwork.New(
		formwork.WithFocusMover(ports.FocusMoverFunc(func(_ context.Context, field string) error {
			focused = field
			return nil
		})),
		formwork.WithAnnouncer(ports.AnnouncerFunc(func(_ context.Context, message string) error {
			announced = message
			return nil
		})),
	)
	require.NoError(t, form.RegisterField("first", domain.FieldConfig{InitialValue: "ok"}))
	require.NoError(t, form.RegisterField("second", domain.FieldConfig{
		Rules: []domain.Rule{rules.Required()},
	}))
	require.NoError(t, form.RegisterField("third", domain.FieldConfig{
		Rules: []domain.Rule{rules.Required()},
	}))

	assert.False(t, form.ValidateForm(context.Background()))

	// Focus lands on the first invalid field in registration order.
	assert.Equal(t, "second", focused)
	assert.Contains(t, announced, "2 invalid")
}

func TestInitialValues_SeedAndReset(t *testing.T) {
	form := formwork.New(formwork.WithInitialValues(map[string]any{"city": "Lisbon"}))
	require.NoError(t, form.RegisterField("city", domain.FieldConfig{}))

	st, ok := form.FieldState("city")
	require.True(t, ok)
	assert.Equal(t, "Lisbon", st.Value)

	require.NoError(t, form.SetValue("city", "Porto"))
	form.Reset()
	assert.Equal(t, map[string]any{"city": "Lisbon"}, form.Values())
}

func TestSubmitHandler_BoundTrigger(t *testing.T) {
	form := formwork.New(formwork.WithValidateOnSubmit(false))
	require.NoError(t, form.RegisterField("a", domain.FieldConfig{}))

	handler := form.SubmitHandler()
	require.NoError(t, handler(context.Background()))
	assert.True(t, form.Snapshot().IsSubmitted)
}
