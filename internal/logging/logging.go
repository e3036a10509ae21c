// Package logging builds the logrus loggers used across clineup.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the logging level
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// LogConfig holds the logging configuration
type LogConfig struct {
	Level  LogLevel `json:"level" yaml:"level"`
	Format string   `json:"format" yaml:"format"` // "json" or "text"
	Output string   `json:"output" yaml:"output"` // "stdout", "stderr", "none" or file path

	// File additionally receives every entry when set.
	File       string `json:"file" yaml:"file"`
	Rotation   bool   `json:"rotation" yaml:"rotation"`
	MaxSize    int    `json:"max_size" yaml:"max_size"` // MB
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	MaxAge     int    `json:"max_age" yaml:"max_age"` // days
	Compress   bool   `json:"compress" yaml:"compress"`
}

// DefaultLogConfig returns the default logging configuration
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:      InfoLevel,
		Format:     "text",
		Output:     "stderr",
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

// ParseLevel maps a level name to logrus, defaulting to info.
func ParseLevel(level LogLevel) logrus.Level {
	switch LogLevel(strings.ToLower(string(level))) {
	case DebugLevel:
		return logrus.DebugLevel
	case WarnLevel, "warning":
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// NewLogger creates a logger from config. The returned closer releases the
// log file, if any.
func NewLogger(config *LogConfig) (*logrus.Logger, io.Closer, error) {
	if config == nil {
		config = DefaultLogConfig()
	}

	logger := logrus.New()
	logger.SetLevel(ParseLevel(config.Level))

	if config.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339,
			FullTimestamp:   true,
		})
	}

	var closers multiCloser
	var writers []io.Writer

	switch config.Output {
	case "", "stderr":
		writers = append(writers, os.Stderr)
	case "stdout":
		writers = append(writers, os.Stdout)
	case "none":
	default:
		w, c, err := openFile(config.Output, config)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, w)
		closers = append(closers, c)
	}

	if config.File != "" {
		w, c, err := openFile(config.File, config)
		if err != nil {
			closers.Close()
			return nil, nil, err
		}
		writers = append(writers, w)
		closers = append(closers, c)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return logger, closers, nil
}

func openFile(path string, config *LogConfig) (io.Writer, io.Closer, error) {
	if config.Rotation {
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		}
		return lj, lj, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, file, nil
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Discard()
	}
	return l
}

// WithRun tags entries with a fresh run id.
func WithRun(l logrus.FieldLogger) (*logrus.Entry, string) {
	id := uuid.NewString()
	return l.WithField("run_id", id), id
}
