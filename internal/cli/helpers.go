package cli

import (
	"log/slog"

	"github.com/aretw0/formwork/internal/logging"
)

// createLogger configures the application logger. In debug mode it
// writes to stderr to stay out of the prompt flow on stdout.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}
