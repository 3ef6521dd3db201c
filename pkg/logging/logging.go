// Package logging provides structured logging for coinkit.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Level represents a log level.
type Level = log.Level

// Log levels.
const (
	DebugLevel = log.DebugLevel
	InfoLevel  = log.InfoLevel
	WarnLevel  = log.WarnLevel
	ErrorLevel = log.ErrorLevel
	FatalLevel = log.FatalLevel
)

// Logger wraps charmbracelet/log and remembers its options so that child
// loggers created with WithPrefix keep writing to the same place.
type Logger struct {
	*log.Logger
	timeFormat string
	output     io.Writer
}

// Config holds logger configuration.
type Config struct {
	Level      string
	TimeFormat string
	Prefix     string
	Output     io.Writer
}

// DefaultConfig returns a default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		TimeFormat: time.TimeOnly,
		Output:     os.Stderr,
	}
}

// New creates a new logger with the given configuration.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	logger := log.NewWithOptions(output, log.Options{
		ReportTimestamp: cfg.TimeFormat != "",
		TimeFormat:      cfg.TimeFormat,
		Prefix:          cfg.Prefix,
	})
	logger.SetLevel(ParseLevel(cfg.Level))

	return &Logger{Logger: logger, timeFormat: cfg.TimeFormat, output: output}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return New(&Config{Level: "fatal", Output: io.Discard})
}

// ParseLevel parses a string level into a log.Level. Unknown names map to info.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}

// ValidateLevel reports an error for level names ParseLevel would not recognize.
func ValidateLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return nil
	}
	return fmt.Errorf("unknown log level %q", level)
}

// WithPrefix returns a new logger with the given prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	output := l.output
	if output == nil {
		output = os.Stderr
	}
	newLogger := log.NewWithOptions(output, log.Options{
		ReportTimestamp: l.timeFormat != "",
		TimeFormat:      l.timeFormat,
		Prefix:          prefix,
	})
	newLogger.SetLevel(l.GetLevel())
	return &Logger{Logger: newLogger, timeFormat: l.timeFormat, output: output}
}

// Component returns a logger for a specific component.
func (l *Logger) Component(name string) *Logger {
	return l.WithPrefix(name)
}

var defaultLogger = New(DefaultConfig())

// SetDefault sets the default logger.
func SetDefault(l *Logger) {
	defaultLogger = l
}

// Component returns a child of the default logger for the named package.
func Component(name string) *Logger {
	return defaultLogger.Component(name)
}
