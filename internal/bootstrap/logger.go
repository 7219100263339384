package bootstrap

import (
	"io"
	"log/slog"

	"github.com/osse101/GatherBonus_Go/internal/config"
	"github.com/osse101/GatherBonus_Go/internal/logger"
)

// SetupLogger initializes the process logger from cfg, writing to w.
// Source locations are only added in development.
func SetupLogger(cfg *config.Config, w io.Writer) {
	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		cfg.IsDevelopment(),
	)
	logger.InitLoggerWithWriter(loggerConfig, w)

	slog.Info(LogMsgLoggingInitialized, "level", loggerConfig.LogLevel())
	slog.Info(LogMsgStartingGatherBonus,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"bonus_config", cfg.BonusConfigPath,
		"admin_port", cfg.AdminPort,
		"watch_config", cfg.WatchConfig,
		"lang_dir", cfg.LangDir,
		"deadletter_path", cfg.DeadLetterPath)
}
