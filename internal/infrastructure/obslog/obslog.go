// Package obslog sets up the engine's structured logger: a single
// entry point that parses a level string and installs a global
// default logger, built on github.com/rs/zerolog.
package obslog

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup parses level, configures the global zerolog logger to write
// JSON to stdout, and installs it as zerolog's package-level default
// so every call site that uses github.com/rs/zerolog/log picks it up.
func Setup(level string) zerolog.Logger {
	parsed := parseLevel(level)
	zerolog.SetGlobalLevel(parsed)

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Default creates a default logger at info level, mirroring the
// teacher's Logger() convenience constructor.
func Default() zerolog.Logger {
	return Setup("info")
}
