package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "skillnav.log")

	logger, closeFn, err := New(Config{File: path, Level: "debug"})
	require.NoError(t, err)
	logger.Debug("generation started", zap.String("purpose", "pathway"))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "generation started", entry["msg"])
	assert.Equal(t, "pathway", entry["purpose"])
}

func TestConsoleSinkRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Config{Level: "warn", Stderr: true, Console: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, closeFn())

	assert.NotContains(t, buf.String(), "hidden")
	assert.True(t, strings.Contains(buf.String(), "WARN") && strings.Contains(buf.String(), "shown"))
}

func TestNoSinks(t *testing.T) {
	logger, closeFn, err := New(Config{})
	require.NoError(t, err)
	logger.Error("nowhere")
	assert.NoError(t, closeFn())
}

func TestBadLevel(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}
