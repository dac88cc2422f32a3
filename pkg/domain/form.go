package domain

// SubmitStatus describes where a form is in its submission lifecycle.
type SubmitStatus string

const (
	SubmitIdle      SubmitStatus = "idle"       // No submission running
	SubmitRunning   SubmitStatus = "submitting" // Validation gate or submit action in progress
	SubmitCompleted SubmitStatus = "submitted"  // Submit action finished without error
)

// FormSnapshot is an immutable view of the whole form at one point in
// time. Subscribers receive a snapshot after every committed mutation;
// mutating it has no effect on the form.
type FormSnapshot struct {
	// Fields maps field name to its state at snapshot time.
	Fields map[string]FieldState

	// IsSubmitting is true while a submission attempt is in progress.
	IsSubmitting bool

	// IsSubmitted is true once a submission attempt has completed
	// without error. Reset clears it.
	IsSubmitted bool

	// IsValid is authoritative only immediately after a full
	// ValidateForm pass; it is not recomputed on every field mutation.
	// A single failing field validation flips it to false, but a single
	// passing one never flips it back to true.
	IsValid bool

	// IsTouched is the OR of every field's Touched flag.
	IsTouched bool

	// IsDirty is the OR of every field's Dirty flag.
	IsDirty bool
}

// Status derives the submission status from the snapshot flags.
func (s FormSnapshot) Status() SubmitStatus {
	switch {
	case s.IsSubmitting:
		return SubmitRunning
	case s.IsSubmitted:
		return SubmitCompleted
	default:
		return SubmitIdle
	}
}
