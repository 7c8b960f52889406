// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output instead of JSON.
	Pretty bool

	// Output receives logs when File is empty. A nil Output discards them.
	Output io.Writer

	// File, when set, is a rotated log file that takes precedence over Output.
	File string
}

// DefaultConfig logs JSON at info level to DefaultLogFile.
func DefaultConfig() Config {
	return Config{
		Level: LevelInfo,
		File:  DefaultLogFile(),
	}
}

// DefaultLogFile is $XDG_STATE_HOME/skiphire/skiphire.log, falling back to
// ~/.local/state when XDG_STATE_HOME is unset.
func DefaultLogFile() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "skiphire", "skiphire.log")
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "skiphire", "skiphire.log")
}

// Setup configures the global zerolog logger and returns it with a close
// function that releases the log file.
func Setup(cfg Config) (zerolog.Logger, func() error) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	closeFn := func() error { return nil }
	output := cfg.Output
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		output = file
		closeFn = file.Close
	}
	if output == nil {
		output = io.Discard
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output, NoColor: cfg.File != ""}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger
	return logger, closeFn
}

// ValidLevel reports whether level names a supported log level.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
