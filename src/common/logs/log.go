// Package logs provides the logging facility shared by staffd and staffctl.
// Output goes to stdout, stderr or systemd journald based on configuration.
package logs

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// LogOutput defines the output destination for logs
type LogOutput string

const (
	// OutputStdout sends logs to standard output
	OutputStdout LogOutput = "stdout"
	// OutputStderr sends logs to standard error, keeping stdout free for command output
	OutputStderr LogOutput = "stderr"
	// OutputJournald sends logs to systemd journald
	OutputJournald LogOutput = "journald"
	// OutputAuto selects journald if available, otherwise stdout
	OutputAuto LogOutput = "auto"
)

// Logger wraps the charm log.Logger with the resolved output
type Logger struct {
	*log.Logger
	output LogOutput
}

// Config holds the configuration for the logger
type Config struct {
	// Output specifies where logs should be sent (stdout, stderr, journald, auto)
	Output LogOutput
	// Level sets the minimum log level (debug, info, warn, error)
	Level string
	// Prefix is prepended to every message and used as the journald identifier
	Prefix string
	// Writer overrides Output when set
	Writer io.Writer
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Output: OutputAuto,
		Level:  "info",
	}
}

// journaldAvailable checks if systemd-journald is available on the system
func journaldAvailable() bool {
	if _, err := exec.LookPath("systemd-cat"); err != nil {
		return false
	}
	if _, err := os.Stat("/run/systemd/journal/socket"); err != nil {
		return false
	}
	return true
}

// ParseLevel converts a string level to log.Level, defaulting to info
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New creates a new Logger with the given configuration
func New(cfg Config) *Logger {
	writer, output := resolveWriter(cfg)

	logger := log.NewWithOptions(writer, log.Options{
		Level:           ParseLevel(cfg.Level),
		Prefix:          cfg.Prefix,
		ReportTimestamp: true,
	})

	return &Logger{
		Logger: logger,
		output: output,
	}
}

func resolveWriter(cfg Config) (io.Writer, LogOutput) {
	if cfg.Writer != nil {
		return cfg.Writer, cfg.Output
	}

	switch cfg.Output {
	case OutputStderr:
		return os.Stderr, OutputStderr
	case OutputJournald, OutputAuto:
		if journaldAvailable() {
			return newJournaldWriter(cfg.Prefix), OutputJournald
		}
		return os.Stdout, OutputStdout
	default:
		return os.Stdout, OutputStdout
	}
}

// NewDefault creates a new Logger with default configuration
func NewDefault() *Logger {
	return New(DefaultConfig())
}

// Discard returns a logger that drops everything, for tests
func Discard() *Logger {
	return New(Config{Writer: io.Discard, Level: "error"})
}

// Output returns the current output destination
func (l *Logger) Output() LogOutput {
	return l.output
}

// journaldWriter implements io.Writer for journald through systemd-cat
type journaldWriter struct {
	identifier string
}

func newJournaldWriter(identifier string) *journaldWriter {
	if identifier == "" {
		identifier = "staffdb"
	}
	return &journaldWriter{identifier: identifier}
}

// Write sends p to journald, falling back to stdout if systemd-cat cannot be started
func (w *journaldWriter) Write(p []byte) (n int, err error) {
	cmd := exec.Command("systemd-cat", "-t", w.identifier)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return os.Stdout.Write(p)
	}

	if err := cmd.Start(); err != nil {
		return os.Stdout.Write(p)
	}

	n, err = stdin.Write(p)
	stdin.Close()

	// journald hiccups after the write are not the caller's problem
	_ = cmd.Wait()

	return n, err
}
