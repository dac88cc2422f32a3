package formwork

import (
	"context"
	"time"

	"github.com/aretw0/formwork/pkg/domain"
)

// Submit runs one submission attempt with the configured submit action:
// Idle -> Submitting -> Submitted on success, back to Idle otherwise.
//
// When the validation gate is enabled (default) a failed ValidateForm
// pass returns domain.ErrValidationFailed without invoking the submit
// action, and the form is not marked submitted. A failing submit action
// is returned as a *domain.SubmitError wrapping the cause (and handed
// to the OnSubmitError callback when configured), never swallowed.
func (f *Form) Submit(ctx context.Context) error {
	return f.SubmitWith(ctx, f.onSubmit)
}

// SubmitWith is Submit with an explicit action, for hosts that choose
// the action per attempt. A nil action turns the attempt into a pure
// validation gate that marks the form submitted on success.
func (f *Form) SubmitWith(ctx context.Context, action SubmitAction) error {
	start := time.Now()
	if !f.store.BeginSubmit() {
		return domain.ErrSubmitInProgress
	}

	if f.validateOnSubmit {
		if !f.ValidateForm(ctx) {
			f.store.FinishSubmit(false)
			f.submitEvent(ctx, start, true, nil)
			f.logger.Debug("submission blocked by validation gate")
			return domain.ErrValidationFailed
		}
	}

	if action != nil {
		if err := action(ctx, f.store.Values()); err != nil {
			f.store.FinishSubmit(false)
			submitErr := &domain.SubmitError{Cause: err}
			f.submitEvent(ctx, start, false, submitErr)
			if f.onSubmitError != nil {
				f.onSubmitError(submitErr)
			}
			return submitErr
		}
	}

	f.store.FinishSubmit(true)
	f.submitEvent(ctx, start, false, nil)
	return nil
}

// SubmitHandler returns a bound trigger for host event wiring (the
// submit-button callback): each call runs one submission attempt.
func (f *Form) SubmitHandler() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return f.Submit(ctx)
	}
}

func (f *Form) submitEvent(ctx context.Context, start time.Time, gated bool, err error) {
	if f.hooks.OnSubmit == nil {
		return
	}
	f.hooks.OnSubmit(ctx, &domain.SubmitEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSubmit},
		Gated:     gated,
		Duration:  time.Since(start),
		Err:       err,
	})
}
