package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnvVars = []string{
	EnvBonusConfigPath,
	EnvLogLevel,
	EnvLogFormat,
	EnvEnvironment,
	EnvServiceName,
	EnvVersion,
	EnvAdminPort,
	EnvAdminAPIKey,
	EnvWatchConfig,
	EnvPermissionCacheSize,
	EnvPermissionCacheTTL,
	EnvHostCatalog,
	EnvLangDir,
	EnvDeadLetterPath,
	EnvWatchDebounce,
}

// clearEnvVars unsets every variable Load reads and restores them afterwards
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, ConfigPathGatherBonuses, cfg.BonusConfigPath)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, 8090, cfg.AdminPort)
		assert.True(t, cfg.WatchConfig)
		assert.Equal(t, 0, cfg.PermissionCacheSize, "permission cache is opt-in")
		assert.Equal(t, 30*time.Second, cfg.PermissionCacheTTL)
		assert.Empty(t, cfg.HostCatalog)
		assert.Equal(t, 250*time.Millisecond, cfg.WatchDebounce)
		assert.Equal(t, ConfigPathLangDir, cfg.LangDir)
		assert.Equal(t, DeadLetterPathDefault, cfg.DeadLetterPath)
		assert.True(t, cfg.IsDevelopment())
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvBonusConfigPath, "/etc/gather/bonuses.json")
		t.Setenv(EnvLogLevel, "DEBUG")
		t.Setenv(EnvLogFormat, "json")
		t.Setenv(EnvEnvironment, "prod")
		t.Setenv(EnvAdminPort, "0")
		t.Setenv(EnvAdminAPIKey, "secret")
		t.Setenv(EnvWatchConfig, "false")
		t.Setenv(EnvPermissionCacheSize, "16")
		t.Setenv(EnvPermissionCacheTTL, "5m")
		t.Setenv(EnvHostCatalog, "paper, wood ,,stones")
		t.Setenv(EnvWatchDebounce, "1s")
		t.Setenv(EnvDeadLetterPath, "/var/log/gather/dead.jsonl")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "/etc/gather/bonuses.json", cfg.BonusConfigPath)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, 0, cfg.AdminPort)
		assert.Equal(t, "secret", cfg.AdminAPIKey)
		assert.False(t, cfg.WatchConfig)
		assert.Equal(t, 16, cfg.PermissionCacheSize)
		assert.Equal(t, 5*time.Minute, cfg.PermissionCacheTTL)
		assert.Equal(t, []string{"paper", "wood", "stones"}, cfg.HostCatalog)
		assert.Equal(t, time.Second, cfg.WatchDebounce)
		assert.Equal(t, "/var/log/gather/dead.jsonl", cfg.DeadLetterPath)
		assert.False(t, cfg.IsDevelopment())
	})

	invalid := []struct {
		name  string
		key   string
		value string
	}{
		{"port not a number", EnvAdminPort, "not-a-number"},
		{"negative port", EnvAdminPort, "-1"},
		{"bad watch flag", EnvWatchConfig, "sometimes"},
		{"negative cache size", EnvPermissionCacheSize, "-1"},
		{"bad ttl", EnvPermissionCacheTTL, "forever"},
		{"negative debounce", EnvWatchDebounce, "-1s"},
		{"empty config path", EnvBonusConfigPath, "  "},
	}
	for _, tt := range invalid {
		t.Run("returns error for "+tt.name, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
