package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// validConfig returns a config that passes validation on its own.
func validConfig() *ClientConfig {
	return &ClientConfig{
		App:     App{Token: "token"},
		Adapter: Adapter{BaseURL: "https://drive.example.com/api"},
		Storage: Storage{DB: DB{DSN: "file:test.db"}},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs fails
// validation: nothing can default the DSN, base URL, or token.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	require.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		validConfig(),
		&ClientConfig{App: App{FolderPath: "/Apps/readsync"}},
		&ClientConfig{Notify: Notify{Dir: "/var/run/readsync"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.App.Token)
	assert.Equal(t, "/Apps/readsync", cfg.App.FolderPath)
	assert.Equal(t, "/var/run/readsync", cfg.Notify.Dir)
}

// TestBuild_EarlierSourcesWin verifies priority: a non-zero field from an
// earlier config is never overwritten by a later one.
func TestBuild_EarlierSourcesWin(t *testing.T) {
	b := newConfigBuilder()
	first := validConfig()
	first.App.Token = "from-env"
	b.configs = append(b.configs,
		first,
		&ClientConfig{App: App{Token: "from-json"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.App.Token)
}

// TestBuild_AppliesDefaults verifies that fields left unset by every source
// receive their defaults.
func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validConfig())

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 6, cfg.Adapter.DownloadConcurrency)
	assert.Equal(t, 3, cfg.Sync.RetryBudget)
	assert.Equal(t, time.Second, cfg.Sync.RetryBackoff)
	assert.Equal(t, 30*time.Minute, cfg.Sync.StaleCursorAfter)
	assert.Equal(t, time.Hour, cfg.Sync.DivergenceAfter)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SyncInterval)
}

// TestBuild_ExplicitValuesBeatDefaults verifies that defaults never clobber
// values a source actually set.
func TestBuild_ExplicitValuesBeatDefaults(t *testing.T) {
	b := newConfigBuilder()
	explicit := validConfig()
	explicit.Sync.RetryBudget = 7
	explicit.Workers.SyncInterval = time.Minute
	b.configs = append(b.configs, explicit)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Sync.RetryBudget)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_AppendsOneConfig verifies that withEnv appends exactly one entry.
func TestWithEnv_AppendsOneConfig(t *testing.T) {
	b := newConfigBuilder()
	b.withEnv()
	assert.Len(t, b.configs, 1)
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_DRIVE_TOKEN", "env-token")
	t.Setenv("ADAPTER_BASE_URL", "https://env.example.com")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-token", b.configs[0].App.Token)
	assert.Equal(t, "https://env.example.com", b.configs[0].Adapter.BaseURL)
}

// TestWithEnv_NoErrorOnEmptyEnv verifies that withEnv does not set b.err
// when no relevant env vars are present.
func TestWithEnv_NoErrorOnEmptyEnv(t *testing.T) {
	clearEnvVars(t)
	b := newConfigBuilder()
	b.withEnv()
	assert.NoError(t, b.err)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReturnsBuilder verifies the fluent interface.
func TestWithFlags_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags())
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_ReturnsBuilder verifies the fluent interface.
func TestWithJSON_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withJSON())
}

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &ClientConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := clientJSONConfig{}
	payload.App.Token = "json-token"
	payload.App.FolderPath = "/Apps/json"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &ClientConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-token", b.configs[1].App.Token)
	assert.Equal(t, "/Apps/json", b.configs[1].App.FolderPath)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &ClientConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := clientJSONConfig{}
	payload.App.Token = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&ClientConfig{JSONFilePath: ""},
		&ClientConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Token)
}
