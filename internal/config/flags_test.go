package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseFlags tests the ParseFlags function
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *ClientConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-a", "https://drive.example.com/api",
				"-d", "file:readsync.db",
				"-t", "token_secret",
				"-folder", "/Apps/readsync",
				"-c", "/path/to/config.json",
				"-request-timeout", "30s",
				"-sync-interval", "10m",
				"-notify-dir", "/var/run/readsync",
			},
			validate: func(t *testing.T, cfg *ClientConfig) {
				assert.Equal(t, "https://drive.example.com/api", cfg.Adapter.BaseURL)
				assert.Equal(t, "file:readsync.db", cfg.Storage.DB.DSN)
				assert.Equal(t, "token_secret", cfg.App.Token)
				assert.Equal(t, "/Apps/readsync", cfg.App.FolderPath)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
				assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
				assert.Equal(t, 10*time.Minute, cfg.Workers.SyncInterval)
				assert.Equal(t, "/var/run/readsync", cfg.Notify.Dir)
			},
		},
		{
			name: "config alias flag",
			args: []string{
				"-config", "/path/to/config.json",
			},
			validate: func(t *testing.T, cfg *ClientConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "partial flags",
			args: []string{
				"-a", "https://drive.example.com/api",
				"-t", "secret",
			},
			validate: func(t *testing.T, cfg *ClientConfig) {
				assert.Equal(t, "https://drive.example.com/api", cfg.Adapter.BaseURL)
				assert.Equal(t, "secret", cfg.App.Token)
				assert.Empty(t, cfg.Storage.DB.DSN)
				assert.Empty(t, cfg.App.FolderPath)
				assert.Zero(t, cfg.Adapter.RequestTimeout)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *ClientConfig) {
				assert.Empty(t, cfg.Adapter.BaseURL)
				assert.Empty(t, cfg.Storage.DB.DSN)
				assert.Empty(t, cfg.App.Token)
				assert.Empty(t, cfg.App.FolderPath)
				assert.Empty(t, cfg.JSONFilePath)
				assert.Empty(t, cfg.Notify.Dir)
				assert.Zero(t, cfg.Workers.SyncInterval)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flag.CommandLine for each test
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

			// Set os.Args to simulate command line arguments
			oldArgs := os.Args
			os.Args = append([]string{"cmd"}, tt.args...)
			defer func() { os.Args = oldArgs }()

			cfg := ParseFlags()
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}
