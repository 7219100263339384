package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process configuration. The bonus rules themselves live in
// the JSON document at BonusConfigPath.
type Config struct {
	BonusConfigPath string
	LogLevel        string
	LogFormat       string
	Environment     string
	ServiceName     string
	Version         string

	AdminPort   int    // 0 disables the admin server
	AdminAPIKey string // optional; when set, /admin routes require X-API-Key

	WatchConfig   bool
	WatchDebounce time.Duration

	PermissionCacheSize int
	PermissionCacheTTL  time.Duration

	HostCatalog []string // extra item shortnames known to the in-memory host

	LangDir        string // directory of <language>.json message overrides
	DeadLetterPath string // events that could not be decoded or handled
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		BonusConfigPath: getEnv(EnvBonusConfigPath, ConfigPathGatherBonuses),
		LogLevel:        strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:       strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment:     getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName:     getEnv(EnvServiceName, DefaultServiceName),
		Version:         getEnv(EnvVersion, DefaultVersion),
		AdminAPIKey:     getEnv(EnvAdminAPIKey, ""),
		HostCatalog:     splitList(getEnv(EnvHostCatalog, "")),
		LangDir:         getEnv(EnvLangDir, ConfigPathLangDir),
		DeadLetterPath:  getEnv(EnvDeadLetterPath, DeadLetterPathDefault),
	}

	port, err := strconv.Atoi(getEnv(EnvAdminPort, DefaultAdminPort))
	if err != nil || port < 0 {
		return nil, fmt.Errorf("invalid %s value: %q", EnvAdminPort, getEnv(EnvAdminPort, DefaultAdminPort))
	}
	cfg.AdminPort = port

	watch, err := strconv.ParseBool(getEnv(EnvWatchConfig, DefaultWatchConfig))
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", EnvWatchConfig, err)
	}
	cfg.WatchConfig = watch

	debounce, err := time.ParseDuration(getEnv(EnvWatchDebounce, DefaultWatchDebounce))
	if err != nil || debounce < 0 {
		return nil, fmt.Errorf("invalid %s value: %q", EnvWatchDebounce, getEnv(EnvWatchDebounce, DefaultWatchDebounce))
	}
	cfg.WatchDebounce = debounce

	size, err := strconv.Atoi(getEnv(EnvPermissionCacheSize, DefaultPermissionCacheSize))
	if err != nil || size < 0 {
		return nil, fmt.Errorf("invalid %s value: must be a non-negative integer", EnvPermissionCacheSize)
	}
	cfg.PermissionCacheSize = size

	ttl, err := time.ParseDuration(getEnv(EnvPermissionCacheTTL, DefaultPermissionCacheTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", EnvPermissionCacheTTL, err)
	}
	cfg.PermissionCacheTTL = ttl

	if strings.TrimSpace(cfg.BonusConfigPath) == "" {
		return nil, fmt.Errorf("%s must not be empty", EnvBonusConfigPath)
	}

	return cfg, nil
}

// IsDevelopment reports whether the process runs in a dev environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
