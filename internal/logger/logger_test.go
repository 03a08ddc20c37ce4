package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		verbosity int
		quiet     bool
		want      zerolog.Level
		wantErr   bool
	}{
		{name: "default", want: zerolog.InfoLevel},
		{name: "configured", level: "ERROR", want: zerolog.ErrorLevel},
		{name: "one v", verbosity: 1, want: zerolog.DebugLevel},
		{name: "two v", verbosity: 2, want: zerolog.DebugLevel},
		{name: "three v", verbosity: 3, want: zerolog.TraceLevel},
		{name: "verbosity beats config", level: "error", verbosity: 1, want: zerolog.DebugLevel},
		{name: "quiet wins", verbosity: 3, quiet: true, want: zerolog.WarnLevel},
		{name: "bad level", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LevelFor(tt.level, tt.verbosity, tt.quiet)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(Options{Format: FormatJSON, Stderr: &buf})
	require.NoError(t, err)

	l.Debug().Msg("hidden")
	l.Info().Str("file", "/docs/a.pdf").Msg("Extracting metadata from file")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "/docs/a.pdf", entry["file"])
	assert.Contains(t, entry, "time")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(Options{Verbosity: 3, NoColor: true, Stderr: &buf})
	require.NoError(t, err)

	l.Trace().Str("stage", "read_text").Msg("Entering stage")

	assert.Contains(t, buf.String(), "Entering stage")
	assert.Contains(t, buf.String(), "stage=read_text")
}

func TestNewWithFile(t *testing.T) {
	var buf bytes.Buffer

	path := filepath.Join(t.TempDir(), "logs", "pdfrecon.log")

	l, err := New(Options{Format: FormatJSON, File: path, Stderr: &buf})
	require.NoError(t, err)

	l.Warn().Msg("to both")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}

func TestRotatingFileKeepsConfiguredBackups(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		size    int
		backups int
	}{
		{"zero backups keeps every file", Options{File: "a.log", MaxSizeMB: 5, MaxBackups: 0}, 5, 0},
		{"configured backups", Options{File: "a.log", MaxSizeMB: 5, MaxBackups: 7}, 5, 7},
		{"size defaults", Options{File: "a.log", MaxBackups: DefaultMaxBackups}, DefaultMaxSizeMB, DefaultMaxBackups},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rotator := rotatingFile(tt.opts)
			assert.Equal(t, tt.size, rotator.MaxSize)
			assert.Equal(t, tt.backups, rotator.MaxBackups)
		})
	}
}

func TestNewRejectsBadFormat(t *testing.T) {
	_, err := New(Options{Format: "xml"})
	assert.Error(t, err)
}
