package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the process logger: JSON output in production, console
// output everywhere else.
func New(env string) zerolog.Logger {
	if env == "production" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
