package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "goaltrack", cfg.Name)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, "data/goaltrack.db", cfg.Database.Path)
	assert.Equal(t, "goaltrack_session", cfg.Auth.CookieName)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goaltrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9999"
llm:
  model: gemini-2.5-pro
  timeout: 30s
auth:
  session_ttl: 24h
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout())
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL())
	// Unmentioned sections keep their defaults
	assert.Equal(t, "data/goaltrack.db", cfg.Database.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key-from-env")
	t.Setenv("GOALTRACK_ADDR", ":7070")
	t.Setenv("GOALTRACK_DB", "/tmp/other.db")
	t.Setenv("GOALTRACK_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "key-from-env", cfg.LLM.APIKey)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_GoaltrackKeyWinsOverGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "generic")
	t.Setenv("GOALTRACK_API_KEY", "specific")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "specific", cfg.LLM.APIKey)
}

func TestDurationFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Timeout = "not-a-duration"
	cfg.Auth.SessionTTL = ""
	cfg.Server.ShutdownTimeout = "-5s"

	assert.Equal(t, 60*time.Second, cfg.LLMTimeout())
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "goaltrack.yaml")
	cfg := DefaultConfig()
	cfg.Server.Addr = ":4242"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":4242", loaded.Server.Addr)
}

func TestWatcher_ReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "goaltrack.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path)
	require.NoError(t, err)

	reloaded := make(chan *Config, 1)
	w.OnReload = func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}

	require.NoError(t, w.Start(t.Context()))
	defer w.Stop()

	cfg := DefaultConfig()
	cfg.Logging.Level = "debug"
	require.NoError(t, cfg.Save(path))

	select {
	case got := <-reloaded:
		assert.Equal(t, "debug", got.Logging.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("config reload never fired")
	}
}
