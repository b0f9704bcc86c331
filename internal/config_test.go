package internal

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xRadioAc7iv/go-quickdata/pkg/backend"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "quickdata.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DEFAULT_PATH, cfg.Path)
	assert.Equal(t, backend.SyncAlways, cfg.SyncMode())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "path: /tmp/settings.qdt\nsync: never\nlog_format: json\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/settings.qdt", cfg.Path)
	assert.Equal(t, backend.SyncNever, cfg.SyncMode())
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, DEFAULT_LOG_LEVEL, cfg.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "path: [unterminated", "parse config"},
		{"unknown sync mode", "sync: sometimes", "Sync must be one of"},
		{"empty path", "path: \"\"", "Path is required"},
		{"unknown log level", "log_level: loud", "LogLevel must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	t.Run("text filters by level", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := DefaultConfig()
		cfg.LogLevel = "warn"

		logger := NewLogger(cfg, &buf)
		logger.Info("hidden")
		logger.Warn("shown", "key", "k")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown key=k")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := DefaultConfig()
		cfg.LogFormat = "json"
		cfg.LogLevel = "debug"

		NewLogger(cfg, &buf).Debug("store opened", "keys", 3)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "store opened", entry["msg"])
		assert.Equal(t, "DEBUG", entry["level"])
		assert.Equal(t, 3.0, entry["keys"])
	})
}
