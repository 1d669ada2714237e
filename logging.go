package grouptable

import (
	"os"

	"github.com/rs/zerolog"
)

var defaultLogger = newLogger()

// newLogger returns the package logger: JSON lines on stderr at info level.
// PRETTY=1 switches to console output and DEBUG=1 lowers the level to debug.
func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("pkg", "grouptable").Logger()

	if os.Getenv("PRETTY") == "1" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	level := zerolog.InfoLevel
	if os.Getenv("DEBUG") == "1" {
		level = zerolog.DebugLevel
	}
	return logger.Level(level)
}
