// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// ClientConfig is the top-level configuration container for the go-readsync
// client. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type ClientConfig struct {
	// App holds application-level settings such as the drive bearer token
	// and the remote folder path.
	App App `envPrefix:"APP_"`

	// Adapter holds network settings for the remote drive transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the local cache database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds tuning knobs for the sync coordinator and write queue.
	Sync Sync `envPrefix:"SYNC_"`

	// Notify holds settings for the cross-instance notification channel.
	Notify Notify `envPrefix:"NOTIFY_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged after the values already
	// loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration for the client.
type App struct {
	// Token is the static bearer token presented to the remote drive API.
	// Token acquisition and refresh belong to an external provider; this
	// value is consumed opaquely.
	// Env: APP_DRIVE_TOKEN
	Token string `env:"DRIVE_TOKEN"`

	// FolderPath is the remote drive folder that holds the article files
	// (e.g. "/Apps/readsync").
	// Env: APP_FOLDER_PATH
	FolderPath string `env:"FOLDER_PATH"`
}

// Adapter holds network settings used by the remote drive transport layer.
type Adapter struct {
	// BaseURL is the drive API endpoint the client talks to.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the maximum duration for a single outbound request
	// (e.g. "30s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// DownloadConcurrency caps concurrent metadata downloads within one
	// batch. Kept small to respect drive API rate limits.
	// Env: ADAPTER_DOWNLOAD_CONCURRENCY
	DownloadConcurrency int `env:"DOWNLOAD_CONCURRENCY"`
}

// Storage groups the configuration for the local cache backend.
type Storage struct {
	// DB holds the local cache database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local cache database.
type DB struct {
	// DSN is the SQLite connection string for the local cache
	// (e.g. "file:readsync.db?_journal_mode=WAL").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Sync holds tuning knobs for the sync coordinator and its write queue.
type Sync struct {
	// RetryBudget is the number of retries granted to one queued remote
	// write before it is rolled back.
	// Env: SYNC_RETRY_BUDGET
	RetryBudget int `env:"RETRY_BUDGET"`

	// RetryBackoff is the initial write-queue backoff; it doubles on every
	// retry.
	// Env: SYNC_RETRY_BACKOFF
	RetryBackoff time.Duration `env:"RETRY_BACKOFF"`

	// StaleCursorAfter is how old the last successful sync may be before the
	// persisted change-feed cursor is discarded and a full reconciliation is
	// forced. Feeds may expire server-side without an explicit error.
	// Env: SYNC_STALE_CURSOR_AFTER
	StaleCursorAfter time.Duration `env:"STALE_CURSOR_AFTER"`

	// DivergenceAfter is how old the last successful sync may be, with no
	// persisted cursor, before a possible-divergence signal is emitted.
	// Env: SYNC_DIVERGENCE_AFTER
	DivergenceAfter time.Duration `env:"DIVERGENCE_AFTER"`
}

// Notify holds settings for the cross-instance notification channel.
type Notify struct {
	// Dir is the directory holding the shared events file watched by sibling
	// instances. Empty disables cross-instance notification.
	// Env: NOTIFY_DIR
	Dir string `env:"DIR"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the background sync job runs.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Defaults applied to fields left unset by every source.
const (
	defaultRequestTimeout      = 15 * time.Second
	defaultDownloadConcurrency = 6
	defaultRetryBudget         = 3
	defaultRetryBackoff        = time.Second
	defaultStaleCursorAfter    = 30 * time.Minute
	defaultDivergenceAfter     = time.Hour
	defaultSyncInterval        = 5 * time.Minute
)

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Adapter.DownloadConcurrency <= 0 {
		cfg.Adapter.DownloadConcurrency = defaultDownloadConcurrency
	}
	if cfg.Sync.RetryBudget <= 0 {
		cfg.Sync.RetryBudget = defaultRetryBudget
	}
	if cfg.Sync.RetryBackoff <= 0 {
		cfg.Sync.RetryBackoff = defaultRetryBackoff
	}
	if cfg.Sync.StaleCursorAfter <= 0 {
		cfg.Sync.StaleCursorAfter = defaultStaleCursorAfter
	}
	if cfg.Sync.DivergenceAfter <= 0 {
		cfg.Sync.DivergenceAfter = defaultDivergenceAfter
	}
	if cfg.Workers.SyncInterval <= 0 {
		cfg.Workers.SyncInterval = defaultSyncInterval
	}
}

// GetClientConfig loads, merges, and validates the client configuration from
// all available sources in the following priority order (earlier sources win
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *ClientConfig or an error if any source fails to
// load or the final config fails validation.
func GetClientConfig() (*ClientConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
