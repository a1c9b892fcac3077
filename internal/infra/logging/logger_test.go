package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_Info(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packerctl.log")
	logger := New(path, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("build", "test message")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[build]")
	assert.Contains(t, string(content), "test message")
}

func TestLogger_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packerctl.log")
	logger := New(path, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	logger.Debug("build", "debug message")
	logger.Info("build", "info message")
	logger.Warn("build", "warn message")
	logger.Error("build", "error message")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "warn message")
	assert.Contains(t, string(content), "error message")
}

func TestLogger_DisabledWithoutPath(t *testing.T) {
	logger := New("", slog.LevelDebug)
	defer func() { _ = logger.Close() }()

	// Must not panic or create anything.
	logger.Info("build", "dropped")
	assert.NoError(t, logger.Close())
}

func TestLogger_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "packerctl.log")
	logger := New(path, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("setup", "created")

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLogger_AppendsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packerctl.log")
	logger := New(path, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("build", "first")
	logger.Warn("build", "second")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first")
	assert.Contains(t, lines[1], "second")
}
