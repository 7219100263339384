package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/GatherBonus_Go/internal/event"
	"github.com/osse101/GatherBonus_Go/internal/reload"
	"github.com/osse101/GatherBonus_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil components are skipped.
type ShutdownComponents struct {
	Server     *server.Server
	Watcher    *reload.Watcher
	DeadLetter *event.DeadLetterWriter
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down components in the correct order:
// 1. Admin server (stop accepting new requests)
// 2. Config watcher (no reloads after this point)
// 3. Dead-letter file (flush and close)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Watcher != nil {
		slog.Info(LogMsgShuttingDownWatcher)
		components.Watcher.Stop()
	}

	if components.DeadLetter != nil {
		slog.Info(LogMsgShuttingDownDeadLetter)
		if err := components.DeadLetter.Close(); err != nil {
			slog.Error(LogMsgDeadLetterCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
