package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/GatherBonus_Go/internal/config"
	"github.com/osse101/GatherBonus_Go/internal/event"
)

// InitializeEventSystem creates the event bus and the dead-letter writer that
// records input the bus could not accept. The dead-letter directory is created
// when missing. Caller must close the writer.
func InitializeEventSystem(cfg *config.Config) (*event.MemoryBus, *event.DeadLetterWriter, error) {
	eventBus := event.NewMemoryBus()

	deadLetterPath := cfg.DeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = config.DeadLetterPathDefault
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	deadLetter, err := event.NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedOpenDeadLetter, err)
	}

	slog.Info(LogMsgEventSystemInitialized, "deadletter_path", deadLetterPath)

	return eventBus, deadLetter, nil
}
