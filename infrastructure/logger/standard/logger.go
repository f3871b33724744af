// ABOUTME: Structured logger implementation backed by logrus
// ABOUTME: Writes to stdout and optionally to a size-rotated log file via lumberjack

package standard

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is one of debug, info, warn, error
	Level string

	// Format is "json" or "text"
	Format string

	// File enables rotated file output in addition to stdout
	File string
}

// StandardLogger implements the Logger interface using logrus
type StandardLogger struct {
	entry  *logrus.Entry
	closer io.Closer
}

// NewStandardLogger creates a text logger at info level on stdout
func NewStandardLogger() *StandardLogger {
	return NewStandardLoggerWithOptions(Options{})
}

// NewStandardLoggerWithOptions creates a logger from options
func NewStandardLoggerWithOptions(opts Options) *StandardLogger {
	log := logrus.New()
	log.SetLevel(parseLevel(opts.Level))

	if strings.EqualFold(opts.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	l := &StandardLogger{entry: logrus.NewEntry(log)}

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		log.SetOutput(io.MultiWriter(os.Stdout, rotator))
		l.closer = rotator
	} else {
		log.SetOutput(os.Stdout)
	}

	return l
}

// NewWithWriter creates a logger writing to w, used by tests
func NewWithWriter(w io.Writer, opts Options) *StandardLogger {
	l := NewStandardLoggerWithOptions(Options{Level: opts.Level, Format: opts.Format})
	l.entry.Logger.SetOutput(w)
	return l
}

// With returns a child logger carrying the given fields
func (l *StandardLogger) With(fields map[string]interface{}) *StandardLogger {
	return &StandardLogger{entry: l.entry.WithFields(logrus.Fields(fields)), closer: l.closer}
}

// Debug logs a debug message
func (l *StandardLogger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *StandardLogger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *StandardLogger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *StandardLogger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Error(msg)
}

// Writer returns a writer that logs each line at info level
func (l *StandardLogger) Writer() *io.PipeWriter {
	return l.entry.Writer()
}

// Close flushes and closes the rotated log file, if any
func (l *StandardLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func parseLevel(level string) logrus.Level {
	if level == "" {
		return logrus.InfoLevel
	}
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
