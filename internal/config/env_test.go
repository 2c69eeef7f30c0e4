// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_DRIVE_TOKEN": "token_secret",
		"APP_FOLDER_PATH": "/Apps/readsync",

		"ADAPTER_BASE_URL":             "https://drive.example.com/api",
		"ADAPTER_REQUEST_TIMEOUT":      "30s",
		"ADAPTER_DOWNLOAD_CONCURRENCY": "4",

		// Storage has a nested prefix: STORAGE_ + DB_
		"STORAGE_DB_DATABASE_URI": "file:readsync.db?_journal_mode=WAL",

		"SYNC_RETRY_BUDGET":       "5",
		"SYNC_RETRY_BACKOFF":      "2s",
		"SYNC_STALE_CURSOR_AFTER": "45m",
		"SYNC_DIVERGENCE_AFTER":   "2h",

		"NOTIFY_DIR": "/var/run/readsync",

		"WORKERS_SYNC_INTERVAL": "10m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "token_secret", cfg.App.Token)
	assert.Equal(t, "/Apps/readsync", cfg.App.FolderPath)

	assert.Equal(t, "https://drive.example.com/api", cfg.Adapter.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 4, cfg.Adapter.DownloadConcurrency)

	assert.Equal(t, "file:readsync.db?_journal_mode=WAL", cfg.Storage.DB.DSN)

	assert.Equal(t, 5, cfg.Sync.RetryBudget)
	assert.Equal(t, 2*time.Second, cfg.Sync.RetryBackoff)
	assert.Equal(t, 45*time.Minute, cfg.Sync.StaleCursorAfter)
	assert.Equal(t, 2*time.Hour, cfg.Sync.DivergenceAfter)

	assert.Equal(t, "/var/run/readsync", cfg.Notify.Dir)

	assert.Equal(t, 10*time.Minute, cfg.Workers.SyncInterval)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"APP_DRIVE_TOKEN":  "token_secret",
		"ADAPTER_BASE_URL": "https://drive.example.com/api",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// App partially filled
	assert.Equal(t, "token_secret", cfg.App.Token)
	assert.Empty(t, cfg.App.FolderPath)

	// Adapter partially filled
	assert.Equal(t, "https://drive.example.com/api", cfg.Adapter.BaseURL)
	assert.Zero(t, cfg.Adapter.RequestTimeout)
	assert.Zero(t, cfg.Adapter.DownloadConcurrency)

	// Others untouched
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.Notify.Dir)
	assert.Zero(t, cfg.Workers.SyncInterval)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// All nested fields are non-pointer values, so "empty" state is
	// represented by zero values.
	assert.Equal(t, "", cfg.JSONFilePath)

	assert.Equal(t, App{}, cfg.App)
	assert.Equal(t, Adapter{}, cfg.Adapter)
	assert.Equal(t, Storage{}, cfg.Storage)
	assert.Equal(t, Sync{}, cfg.Sync)
	assert.Equal(t, Notify{}, cfg.Notify)
	assert.Equal(t, Workers{}, cfg.Workers)
}

func TestParseEnv_OnlyStorageDB(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"STORAGE_DB_DATABASE_URI": "file:test.db",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "file:test.db", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.App.Token)
	assert.Empty(t, cfg.Adapter.BaseURL)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"ADAPTER_REQUEST_TIMEOUT": "invalid_duration",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &ClientConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	// Error wording may vary depending on parseEnv internals; assert loosely.
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			envVars := map[string]string{
				"SYNC_STALE_CURSOR_AFTER": tt.envValue,
			}
			setEnvVars(t, envVars)

			// Act
			cfg := &ClientConfig{}
			err := parseEnv(cfg)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Sync.StaleCursorAfter)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_DRIVE_TOKEN",
		"APP_FOLDER_PATH",

		"ADAPTER_BASE_URL",
		"ADAPTER_REQUEST_TIMEOUT",
		"ADAPTER_DOWNLOAD_CONCURRENCY",

		"STORAGE_DB_DATABASE_URI",

		"SYNC_RETRY_BUDGET",
		"SYNC_RETRY_BACKOFF",
		"SYNC_STALE_CURSOR_AFTER",
		"SYNC_DIVERGENCE_AFTER",

		"NOTIFY_DIR",

		"WORKERS_SYNC_INTERVAL",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
