package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/subnav/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subnav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "badger", cfg.Store.Driver)
	assert.Equal(t, 1, cfg.Pipeline.MaxAttempts)
	assert.False(t, cfg.Pipeline.FailFast)
	assert.Equal(t, ai.DefaultConfig().Model, cfg.AI.Model)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
store:
  driver: sqlite
  path: /tmp/subnav.db
ai:
  host: https://generativelanguage.googleapis.com/v1beta/openai
  model: gemini-2.5-flash
  request_timeout: 45s
pipeline:
  fail_fast: true
  max_attempts: 3
  retry_delay: 500ms
  run_timeout: 10m
source:
  file: listings.yaml
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/tmp/subnav.db", cfg.Store.Path)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 45*time.Second, cfg.AI.RequestTimeout)
	assert.True(t, cfg.Pipeline.FailFast)
	assert.Equal(t, 3, cfg.Pipeline.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Pipeline.RetryDelay)
	assert.Equal(t, 10*time.Minute, cfg.Pipeline.RunTimeout)
	assert.Equal(t, "listings.yaml", cfg.Source.File)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// untouched keys keep their defaults
	assert.Equal(t, 0.3, cfg.AI.ClientTemperature)
	assert.Equal(t, "none", cfg.AI.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
store:
  driver: mongo
pipeline:
  max_attempts: 0
logging:
  level: verbose
`))
		assert.ErrorIs(t, err, ErrInvalidDriver)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
		assert.ErrorIs(t, err, ErrInvalidLogLevel)
	})
}

func TestRead_SkipsValidation(t *testing.T) {
	path := writeConfig(t, "store:\n  path: \"\"\n")

	cfg, err := Read(path)
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrStorePathRequired)

	cfg.Store.InMemory = true
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = " " }, ErrServerAddrRequired},
		{"no path on disk", func(c *Config) { c.Store.Path = "" }, ErrStorePathRequired},
		{"negative retry delay", func(c *Config) { c.Pipeline.RetryDelay = -time.Second }, ErrInvalidRetryDelay},
		{"negative run timeout", func(c *Config) { c.Pipeline.RunTimeout = -time.Second }, ErrInvalidRunTimeout},
		{"bad temperature", func(c *Config) { c.AI.TaggingTemperature = 3 }, ai.ErrInvalidTemperature},
		{"no model", func(c *Config) { c.AI.Model = "" }, ErrInvalidAI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}

	t.Run("in memory needs no path", func(t *testing.T) {
		cfg := Default()
		cfg.Store.Path = ""
		cfg.Store.InMemory = true
		assert.NoError(t, cfg.Validate())
	})
}

func TestToAIConfig(t *testing.T) {
	cfg := Default()
	cfg.AI.Host = "http://localhost:11434"
	cfg.AI.Model = "llama3"

	aiCfg := cfg.ToAIConfig()
	require.NoError(t, aiCfg.Validate())
	assert.Equal(t, "http://localhost:11434/v1", aiCfg.Host)
	assert.Equal(t, "llama3", aiCfg.Model)
	assert.Equal(t, cfg.AI.RequestTimeout, aiCfg.RequestTimeout)
}

func TestDatabaseOptions(t *testing.T) {
	assert.Len(t, Default().DatabaseOptions(), 4)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("trace")
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}
