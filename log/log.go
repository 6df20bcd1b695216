// Package log provides the logger handed to every component of the
// importer. Keeping it behind a small interface lets the parsing and
// import packages stay free of any process-wide logging state.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Debugf(string, ...interface{})
	Infof(string, ...interface{})
	Errorf(string, ...interface{})
	Fatal(...interface{})
}

type logger struct {
	*logrus.Logger
}

// New returns a logger writing line-oriented output to stdout. Verbose
// mode enables debug-level messages (per-entry and per-record traces).
func New(verbose bool) Logger {
	l := logrus.New()
	l.Out = os.Stdout
	l.Formatter = &logrus.TextFormatter{}
	if verbose {
		l.Level = logrus.DebugLevel
	} else {
		l.Level = logrus.InfoLevel
	}
	return logger{l}
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() Logger {
	l := logrus.New()
	l.Out = io.Discard
	return logger{l}
}
