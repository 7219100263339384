// Package gather adapts the host's gather hooks to the bonus resolver. Every
// hook runs inside a boundary that keeps failures away from the host.
package gather

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/GatherBonus_Go/internal/domain"
	"github.com/osse101/GatherBonus_Go/internal/event"
	"github.com/osse101/GatherBonus_Go/internal/host"
	"github.com/osse101/GatherBonus_Go/internal/logger"
	"github.com/osse101/GatherBonus_Go/internal/metrics"
)

// Resolver rolls the bonus table for one gathered resource
type Resolver interface {
	Resolve(ctx context.Context, player host.Player, resource string) (domain.GatherResult, error)
}

// Handler turns hook callbacks and gather events into resolver calls
type Handler struct {
	resolver Resolver
	players  host.Directory
}

// NewHandler creates a gather handler. players is only needed for bus events,
// which carry a user id instead of a player.
func NewHandler(resolver Resolver, players host.Directory) *Handler {
	return &Handler{resolver: resolver, players: players}
}

// OnCollectiblePickup resolves once for every item the collectible yields
func (h *Handler) OnCollectiblePickup(ctx context.Context, player host.Player, items []host.Item) []domain.GatherResult {
	var results []domain.GatherResult
	h.guard(ctx, domain.HookCollectiblePickup, func(ctx context.Context) error {
		names := make([]string, len(items))
		for i, item := range items {
			if item != nil {
				names[i] = item.Shortname()
			}
		}
		var err error
		results, err = h.resolveAll(ctx, player, names)
		return err
	})
	return results
}

// OnCropGather resolves a crop harvested from a planter
func (h *Handler) OnCropGather(ctx context.Context, player host.Player, item host.Item) *domain.GatherResult {
	return h.single(ctx, domain.HookCropGather, player, item)
}

// OnGrowableGathered resolves a growable picked by hand
func (h *Handler) OnGrowableGathered(ctx context.Context, player host.Player, item host.Item) *domain.GatherResult {
	return h.single(ctx, domain.HookGrowableGathered, player, item)
}

// OnDispenserBonus resolves the final bonus of a depleted dispenser
func (h *Handler) OnDispenserBonus(ctx context.Context, player host.Player, item host.Item) *domain.GatherResult {
	return h.single(ctx, domain.HookDispenserBonus, player, item)
}

func (h *Handler) single(ctx context.Context, hook domain.Hook, player host.Player, item host.Item) *domain.GatherResult {
	var result *domain.GatherResult
	h.guard(ctx, hook, func(ctx context.Context) error {
		if item == nil {
			return domain.ErrMissingItem
		}
		r, err := h.resolve(ctx, player, item.Shortname())
		if err != nil {
			return err
		}
		result = &r
		return nil
	})
	return result
}

// resolveAll resolves each name in order. A bad entry does not stop the rest.
func (h *Handler) resolveAll(ctx context.Context, player host.Player, names []string) ([]domain.GatherResult, error) {
	results := make([]domain.GatherResult, 0, len(names))
	var errs []error
	for _, name := range names {
		r, err := h.resolve(ctx, player, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, r)
	}
	return results, errors.Join(errs...)
}

func (h *Handler) resolve(ctx context.Context, player host.Player, resource string) (domain.GatherResult, error) {
	if resource == "" {
		return domain.GatherResult{}, domain.ErrMissingItem
	}
	if player == nil {
		return domain.GatherResult{}, domain.ErrNilPlayer
	}
	result, err := h.resolver.Resolve(ctx, player, resource)
	if err != nil {
		return result, fmt.Errorf("resolve %s: %w", resource, err)
	}
	if result.Granted() > 0 {
		logger.FromContext(ctx).Debug(LogMsgResolved,
			LogFieldPlayer, player.UserID(),
			LogFieldResource, resource,
			LogFieldGranted, result.Granted())
	}
	return result, nil
}

// guard is the host boundary: it tags the context with a gather id, counts
// the event and turns errors and panics into a debug line and a metric.
func (h *Handler) guard(ctx context.Context, hook domain.Hook, fn func(ctx context.Context) error) {
	metrics.GatherEvents.WithLabelValues(string(hook)).Inc()
	ctx = logger.WithGatherID(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			metrics.GatherBoundaryFailures.WithLabelValues(string(hook)).Inc()
			logger.FromContext(ctx).Debug(LogMsgHookPanic, LogFieldHook, hook, LogFieldError, fmt.Sprint(rec))
		}
	}()

	if err := fn(ctx); err != nil {
		metrics.GatherBoundaryFailures.WithLabelValues(string(hook)).Inc()
		logger.FromContext(ctx).Debug(LogMsgHookFailed, LogFieldHook, hook, LogFieldError, err)
	}
}

// Register subscribes the handler to the gather events
func (h *Handler) Register(bus event.Bus) {
	bus.Subscribe(event.GatherCollectiblePickup, h.HandleCollectiblePickup)
	bus.Subscribe(event.GatherCrop, h.HandleCropGather)
	bus.Subscribe(event.GatherGrowable, h.HandleGrowableGathered)
	bus.Subscribe(event.GatherDispenserBonus, h.HandleDispenserBonus)
}

// HandleCollectiblePickup handles gather.collectible_pickup events
func (h *Handler) HandleCollectiblePickup(ctx context.Context, evt event.Event) error {
	h.guard(ctx, domain.HookCollectiblePickup, func(ctx context.Context) error {
		payload, err := event.DecodePayload[event.CollectiblePickupPayloadV1](evt.Payload)
		if err != nil {
			return fmt.Errorf("failed to decode collectible pickup payload: %w", err)
		}
		player, err := h.lookup(payload.UserID)
		if err != nil {
			return err
		}
		_, err = h.resolveAll(ctx, player, payload.Items)
		return err
	})
	return nil
}

// HandleCropGather handles gather.crop events
func (h *Handler) HandleCropGather(ctx context.Context, evt event.Event) error {
	return handleSingle[event.CropGatherPayloadV1](ctx, h, domain.HookCropGather, evt,
		func(p event.CropGatherPayloadV1) (string, string) { return p.UserID, p.Item })
}

// HandleGrowableGathered handles gather.growable events
func (h *Handler) HandleGrowableGathered(ctx context.Context, evt event.Event) error {
	return handleSingle[event.GrowableGatheredPayloadV1](ctx, h, domain.HookGrowableGathered, evt,
		func(p event.GrowableGatheredPayloadV1) (string, string) { return p.UserID, p.Item })
}

// HandleDispenserBonus handles gather.dispenser_bonus events
func (h *Handler) HandleDispenserBonus(ctx context.Context, evt event.Event) error {
	return handleSingle[event.DispenserBonusPayloadV1](ctx, h, domain.HookDispenserBonus, evt,
		func(p event.DispenserBonusPayloadV1) (string, string) { return p.UserID, p.Item })
}

// handleSingle decodes a one-item payload and resolves it. Errors never
// reach the bus.
func handleSingle[T any](ctx context.Context, h *Handler, hook domain.Hook, evt event.Event, fields func(T) (string, string)) error {
	h.guard(ctx, hook, func(ctx context.Context) error {
		payload, err := event.DecodePayload[T](evt.Payload)
		if err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", evt.Type, err)
		}
		userID, item := fields(payload)
		player, err := h.lookup(userID)
		if err != nil {
			return err
		}
		_, err = h.resolve(ctx, player, item)
		return err
	})
	return nil
}

func (h *Handler) lookup(userID string) (host.Player, error) {
	if h.players == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, userID)
	}
	player, ok := h.players.Player(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, userID)
	}
	return player, nil
}
