package tui

import (
	"github.com/muesli/termenv"
)

// Styler renders terminal text with a fixed color profile. With
// termenv.Ascii it degrades to plain strings, which keeps output
// stable when stdout is not a TTY.
type Styler struct {
	profile termenv.Profile
}

// NewStyler creates a styler for the given profile.
func NewStyler(profile termenv.Profile) *Styler {
	return &Styler{profile: profile}
}

// Label renders a field label in bold.
func (s *Styler) Label(text string) string {
	return s.profile.String(text).Bold().String()
}

// Help renders secondary help text faintly.
func (s *Styler) Help(text string) string {
	return s.profile.String(text).Faint().String()
}

// Error renders a validation message in red.
func (s *Styler) Error(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#ef4444")).String()
}

// Success renders a confirmation message in green.
func (s *Styler) Success(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#22c55e")).String()
}
