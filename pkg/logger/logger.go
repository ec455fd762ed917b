// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger for the whole application. It is usable before
// Init is called: until then it logs at info level in text format to stderr.
var Log = logrus.New()

// Options configures the global logger.
type Options struct {
	Level  string    // panic, fatal, error, warn, info, debug or trace
	Format string    // "json" or "text"
	Output io.Writer // defaults to os.Stderr
}

// Init replaces the global logger. It must be called once from main before
// any goroutine starts logging.
func Init(opts Options) {
	Log = New(opts)
}

// New builds a logger without touching the global one.
func New(opts Options) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.ToLower(opts.Format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	if opts.Output != nil {
		l.SetOutput(opts.Output)
	} else {
		l.SetOutput(os.Stderr)
	}

	return l
}

// Component returns an entry tagged with the given component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
