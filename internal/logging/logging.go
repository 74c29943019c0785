// Package logging builds the process logger. Output goes to a file by
// default because stdout and stderr belong to tables and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options control where and how verbosely the logger writes.
type Options struct {
	Level   string
	File    string
	Verbose bool // debug level, mirrored to stderr
}

// New returns a configured logger and a closer for its file. An unknown
// level falls back to info.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if opts.File == "" {
		logger.SetOutput(io.Discard)
		if opts.Verbose {
			logger.SetOutput(os.Stderr)
		}
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	var out io.Writer = f
	if opts.Verbose {
		out = io.MultiWriter(f, os.Stderr)
	}
	logger.SetOutput(out)
	return logger, f, nil
}

// Discard returns a logger that drops everything. Used when the log file
// cannot be opened and by tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
