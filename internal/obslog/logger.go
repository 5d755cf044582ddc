// Package obslog provides structured, leveled logging for the rule engine's
// ambient diagnostics (compiler warnings, per-rule runtime failures, CLI
// output). It is built on logrus, following the same stream-splitting
// convention used across the rest of this codebase: error-level entries are
// routed to stderr so operators can separate alerting signal from routine
// progress output, while everything else goes to stdout.
package obslog

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Level names accepted by New and the CLI's --log-level flag.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config controls how a Logger is constructed.
type Config struct {
	Level     string // debug|info|warn|error, defaults to info
	Format    string // "json" or "text", defaults to text
	AddCaller bool
}

// DefaultConfig returns sensible defaults for interactive CLI use.
func DefaultConfig() Config {
	return Config{Level: LevelInfo, Format: "text"}
}

// streamSplitter routes error-level formatted log lines to stderr and
// everything else to stdout, so shell users can pipe the two independently.
type streamSplitter struct{}

func (streamSplitter) Write(p []byte) (int, error) {
	if bytes.Contains(p, []byte("level=error")) || bytes.Contains(p, []byte(`"level":"error"`)) {
		return os.Stderr.Write(p)
	}
	return os.Stdout.Write(p)
}

// New builds a logrus.Logger configured per cfg. A nil-safe disabled logger
// is never returned here — callers that want "no logging" should pass
// io.Discard output explicitly or rely on Disabled().
func New(cfg Config) *logrus.Logger {
	logger := logrus.New()

	switch cfg.Level {
	case LevelDebug:
		logger.SetLevel(logrus.DebugLevel)
	case LevelWarn:
		logger.SetLevel(logrus.WarnLevel)
	case LevelError:
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339, FullTimestamp: true})
	}
	logger.SetReportCaller(cfg.AddCaller)
	logger.SetOutput(streamSplitter{})

	return logger
}

// Disabled returns a logger that discards everything. The runtime and
// compiler accept *logrus.Logger directly and treat nil the same as this —
// Disabled exists for call sites that want an explicit, non-nil value.
func Disabled() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))
	logger.SetLevel(logrus.PanicLevel + 1)
	return logger
}

// WithOperation times fn and logs its start/completion at debug level,
// and any returned error at warn level. Used by the compiler and runtime to
// report elapsed time for a named stage without scattering time.Now() calls.
func WithOperation(logger *logrus.Logger, operation string, fields logrus.Fields, fn func() error) error {
	if logger == nil {
		logger = Disabled()
	}
	entry := logger.WithFields(fields).WithField("operation", operation)
	start := time.Now()
	entry.Debug("operation started")

	err := fn()

	elapsed := time.Since(start)
	entry = entry.WithField("elapsed_ms", float64(elapsed.Microseconds())/1000.0)
	if err != nil {
		entry.WithField("error", fmt.Sprintf("%v", err)).Warn("operation failed")
		return err
	}
	entry.Debug("operation completed")
	return nil
}
