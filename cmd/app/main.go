// Command app runs the gather bonus plugin against an in-memory host. Host
// events are read from stdin as JSON lines and every chat message the plugin
// sends to a player is written to stdout as a JSON line.
package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/osse101/GatherBonus_Go/internal/bootstrap"
	"github.com/osse101/GatherBonus_Go/internal/config"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	app, err := bootstrap.NewApp(cfg, bootstrap.Options{ChatSink: chatWriter(os.Stdout)})
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		slog.Error("Failed to start", "error", err)
		app.Shutdown(context.Background())
		os.Exit(1)
	}

	done := make(chan error, 1)
	go func() {
		done <- consume(ctx, os.Stdin, app, app.DeadLetter)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-done:
		if err != nil {
			slog.Error("Event input failed", "error", err)
		} else {
			slog.Info("Event input closed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	app.Shutdown(shutdownCtx)
}

// chatLine is what the host sees for each chat message
type chatLine struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// chatWriter returns a chat sink that writes one JSON object per line to w
func chatWriter(w io.Writer) func(userID, message string) {
	var mu sync.Mutex
	enc := json.NewEncoder(w)
	return func(userID, message string) {
		mu.Lock()
		defer mu.Unlock()
		if err := enc.Encode(chatLine{UserID: userID, Message: message}); err != nil {
			slog.Warn("Failed to write chat line", "user_id", userID, "error", err)
		}
	}
}
