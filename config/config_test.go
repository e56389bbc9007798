package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libdb-finder/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, 2, cfg.Extract.MinLength)
	assert.Equal(t, 60, cfg.Extract.MaxLength)
	assert.Equal(t, 5, cfg.Extract.DenseThreshold)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
logging:
  level: debug
fetch:
  mode: dynamic
  settle_delay: 5s
  static_timeout: 1500ms
extract:
  max_length: 50
  blacklist: ["首页", "登录"]
search:
  provider: brave
  query_templates: ["%s 数据库"]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "dynamic", cfg.Fetch.Mode)
	assert.Equal(t, 5*time.Second, cfg.Fetch.SettleDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.Fetch.StaticTimeout)
	assert.Equal(t, 30*time.Second, cfg.Fetch.NavigationTimeout, "unset keys keep defaults")
	assert.Equal(t, 50, cfg.Extract.MaxLength)
	assert.Equal(t, 2, cfg.Extract.MinLength)
	assert.Equal(t, []string{"首页", "登录"}, cfg.Extract.Blacklist)
	assert.Equal(t, "brave", cfg.Search.Provider)
	assert.Equal(t, []string{"%s 数据库"}, cfg.Search.QueryTemplates)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetch: [unterminated"), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestSecretsComeFromEnvironment(t *testing.T) {
	t.Setenv("SEARCH_API_KEY", "serp-key")
	t.Setenv("GEMINI_API_KEY", "")

	assert.Equal(t, "serp-key", config.SearchAPIKey())
	assert.Empty(t, config.GeminiAPIKey())
}

func TestInitLoggerDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		config.InitLogger(config.LoggingConfig{Level: "warn"})
		config.Logger.Debugf("hidden %d", 1)
		config.InfoWithFields("with fields", config.Fields{"k": "v"})
		config.InitLogger(config.LoggingConfig{})
	})
}
