package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/osse101/GatherBonus_Go/internal/bonus"
	"github.com/osse101/GatherBonus_Go/internal/event"
	"github.com/osse101/GatherBonus_Go/internal/gather"
	"github.com/osse101/GatherBonus_Go/internal/host"
	"github.com/osse101/GatherBonus_Go/internal/permission"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus      event.Bus
	GatherHandler *gather.Handler
	Host          *host.Memory
	Registry      *bonus.Registry
	Permissions   permission.Checker
}

// RegisterEventHandlers sets up all event handlers and subscribers.
// This includes:
// - Gather handler (the four host gather hooks)
// - Player directory (player.joined adds players and their grants to the host)
// - Catalog sync (config.reloaded makes new rule items creatable)
func RegisterEventHandlers(deps EventHandlerDependencies) {
	deps.GatherHandler.Register(deps.EventBus)

	deps.EventBus.Subscribe(event.PlayerJoined, func(ctx context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[event.PlayerJoinedPayloadV1](evt.Payload)
		if err != nil {
			return fmt.Errorf("failed to decode player joined payload: %w", err)
		}
		if payload.UserID == "" {
			return errors.New("player joined without user_id")
		}

		deps.Host.AddPlayer(payload.UserID, payload.Name, payload.Language)
		for _, perm := range payload.Permissions {
			deps.Host.Grant(payload.UserID, perm)
		}
		// Cached denials for this player are stale now
		deps.Permissions.Invalidate()

		slog.Debug(LogMsgPlayerJoined,
			"user_id", payload.UserID,
			"language", payload.Language,
			"permissions", len(payload.Permissions))
		return nil
	})

	deps.EventBus.Subscribe(event.ConfigReloaded, func(ctx context.Context, evt event.Event) error {
		SyncCatalog(deps.Host, deps.Registry)
		return nil
	})
}
