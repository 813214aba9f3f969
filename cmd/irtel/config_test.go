package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "irtel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := loadConfig("")
		require.NoError(t, err)
		require.Equal(t, defaultConfig(), cfg)
		require.Equal(t, time.Second, cfg.Timeout)
	})

	t.Run("File overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
poll_interval: 100ms
timeout: 250ms
metrics_addr: ":9120"
vars: [Speed, RPM]
logs:
  file: logs/irtel.log
  level: debug
  format: json
`)
		cfg, err := loadConfig(path)
		require.NoError(t, err)
		require.Equal(t, 100*time.Millisecond, cfg.PollInterval)
		require.Equal(t, 250*time.Millisecond, cfg.Timeout)
		require.Equal(t, 2*time.Second, cfg.ReconnectDelay)
		require.Equal(t, ":9120", cfg.MetricsAddr)
		require.Equal(t, []string{"Speed", "RPM"}, cfg.Vars)
		require.Equal(t, filepath.Join(filepath.Dir(path), "logs", "irtel.log"), cfg.Logs.File)
		require.Equal(t, 25, cfg.Logs.MaxSizeMB)
	})

	t.Run("Unknown field", func(t *testing.T) {
		_, err := loadConfig(writeConfig(t, "timeot: 1s\n"))
		require.Error(t, err)
	})

	t.Run("Invalid values", func(t *testing.T) {
		for _, body := range []string{
			"timeout: -1s\n",
			"poll_interval: -1s\n",
			"reconnect_delay: 0s\n",
			"logs:\n  format: xml\n",
			"logs:\n  level: loud\n",
		} {
			_, err := loadConfig(writeConfig(t, body))
			require.Error(t, err, body)
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Stderr only", func(t *testing.T) {
		var stderr bytes.Buffer
		logger, closer, err := newLogger(logConfig{Level: "warn", Format: "text"}, &stderr)
		require.NoError(t, err)
		defer closer.Close()

		logger.Info("hidden")
		logger.Warn("shown", "key", "value")
		require.NotContains(t, stderr.String(), "hidden")
		require.Contains(t, stderr.String(), "key=value")
	})

	t.Run("Rotating file", func(t *testing.T) {
		var stderr bytes.Buffer
		path := filepath.Join(t.TempDir(), "logs", "irtel.log")

		logger, closer, err := newLogger(logConfig{File: path, MaxSizeMB: 1, Level: "info", Format: "json"}, &stderr)
		require.NoError(t, err)

		logger.Info("connected", "tick_rate", 60)
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), `"tick_rate":60`)
		require.Equal(t, stderr.String(), string(data))
	})

	t.Run("Bad level", func(t *testing.T) {
		_, _, err := newLogger(logConfig{Level: "chatty"}, &bytes.Buffer{})
		require.Error(t, err)
	})
}
