// Package logger builds the zerolog logger used by every command.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"

	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 3
)

// Options configures New.
type Options struct {
	// Level is used when neither Verbosity nor Quiet is set.
	Level     string
	Verbosity int
	Quiet     bool
	Format    string
	NoColor   bool

	// File enables a rotated log file next to the stderr output.
	File       string
	// MaxSizeMB defaults to DefaultMaxSizeMB when not positive.
	MaxSizeMB  int
	// MaxBackups is passed to lumberjack as is, 0 keeps every rotated file.
	MaxBackups int

	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

// Logger is a zerolog.Logger that owns its file writer.
type Logger struct {
	zerolog.Logger
	file *lumberjack.Logger
}

// New creates a logger writing to stderr and, when configured, to a file.
func New(opts Options) (*Logger, error) {
	level, err := LevelFor(opts.Level, opts.Verbosity, opts.Quiet)
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(opts.Format)
	if format == "" {
		format = FormatConsole
	}

	if format != FormatConsole && format != FormatJSON {
		return nil, fmt.Errorf("invalid log format %q (use console or json)", opts.Format)
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	writers := []io.Writer{consoleOrJSON(stderr, format, opts.NoColor)}

	l := &Logger{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		l.file = rotatingFile(opts)

		// Files never get ANSI colors.
		writers = append(writers, consoleOrJSON(l.file, format, true))
	}

	l.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return l, nil
}

// LevelFor maps the command line switches to a level. Quiet wins, then
// verbosity (1-2 debug, 3 and more trace), then the configured level.
func LevelFor(level string, verbosity int, quiet bool) (zerolog.Level, error) {
	switch {
	case quiet:
		return zerolog.WarnLevel, nil
	case verbosity >= 3:
		return zerolog.TraceLevel, nil
	case verbosity > 0:
		return zerolog.DebugLevel, nil
	case level == "":
		return zerolog.InfoLevel, nil
	}

	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level: %w", err)
	}

	return parsed, nil
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	return l.file.Close()
}

func consoleOrJSON(out io.Writer, format string, noColor bool) io.Writer {
	if format == FormatJSON {
		return out
	}

	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}
}

func rotatingFile(opts Options) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    orDefault(opts.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: opts.MaxBackups,
		LocalTime:  true,
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}

	return v
}
