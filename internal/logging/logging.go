package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var (
	Debug   *logrus.Entry
	Scanner *logrus.Entry
	Volumes *logrus.Entry
	Enabled bool

	base *logrus.Logger
)

func init() {
	// Only enable logging if DISKSEEK_DEBUG environment variable is set
	if os.Getenv("DISKSEEK_DEBUG") == "" {
		setup(io.Discard, logrus.InfoLevel)
		Enabled = false
		return
	}
	Enable("", "")
}

// Enable turns on debug logging to debug.log inside dir (or stderr if the file
// can't be opened). An empty dir means the working directory, an empty level keeps debug.
func Enable(dir, level string) {
	lvl := logrus.DebugLevel
	if level != "" {
		if parsed, err := logrus.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}

	Enabled = true

	path := "debug.log"
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err == nil {
			path = filepath.Join(dir, "debug.log")
		}
	}

	debugFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Fallback to stderr if we can't open the file
		setup(os.Stderr, lvl)
		return
	}
	setup(debugFile, lvl)
}

// SetOutput redirects all component loggers, mainly for tests
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

func setup(w io.Writer, level logrus.Level) {
	base = logrus.New()
	base.SetOutput(w)
	base.SetLevel(level)
	base.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000000",
	})

	// Loggers share one output and differ by component field
	Debug = base.WithField("component", "debug")
	Scanner = base.WithField("component", "scanner")
	Volumes = base.WithField("component", "volumes")
}
