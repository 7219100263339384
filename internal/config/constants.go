package config

const (
	// Configuration file paths
	ConfigPathGatherBonuses = "configs/gather_bonuses.json"
	ConfigPathLangDir       = "configs/lang"
	DeadLetterPathDefault   = "logs/gather_deadletter.jsonl"
)

// Environment variable names
const (
	EnvBonusConfigPath     = "BONUS_CONFIG_PATH"
	EnvLogLevel            = "LOG_LEVEL"
	EnvLogFormat           = "LOG_FORMAT"
	EnvEnvironment         = "ENVIRONMENT"
	EnvServiceName         = "SERVICE_NAME"
	EnvVersion             = "VERSION"
	EnvAdminPort           = "ADMIN_PORT"
	EnvAdminAPIKey         = "ADMIN_API_KEY"
	EnvWatchConfig         = "WATCH_CONFIG"
	EnvPermissionCacheSize = "PERMISSION_CACHE_SIZE"
	EnvPermissionCacheTTL  = "PERMISSION_CACHE_TTL"
	EnvHostCatalog         = "HOST_CATALOG"
	EnvLangDir             = "LANG_DIR"
	EnvDeadLetterPath      = "DEAD_LETTER_PATH"
	EnvWatchDebounce       = "WATCH_DEBOUNCE"
)

// Defaults
const (
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
	DefaultEnvironment         = "dev"
	DefaultServiceName         = "gather-bonus"
	DefaultVersion             = "dev"
	DefaultAdminPort           = "8090"
	DefaultWatchConfig         = "true"
	DefaultPermissionCacheSize = "0"
	DefaultPermissionCacheTTL  = "30s"
	DefaultWatchDebounce       = "250ms"
)
