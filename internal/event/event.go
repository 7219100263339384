package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from map metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Gather event types, one per host hook
const (
	GatherCollectiblePickup Type = "gather.collectible_pickup"
	GatherCrop              Type = "gather.crop"
	GatherGrowable          Type = "gather.growable"
	GatherDispenserBonus    Type = "gather.dispenser_bonus"
)

// Config event types
const (
	ConfigReloaded Type = "config.reloaded"
)

// Player event types
const (
	PlayerJoined Type = "player.joined"
)

// GatherTypes lists every gather event type
var GatherTypes = []Type{
	GatherCollectiblePickup,
	GatherCrop,
	GatherGrowable,
	GatherDispenserBonus,
}

// IsGatherType reports whether t is one of the gather hook events
func IsGatherType(t Type) bool {
	for _, g := range GatherTypes {
		if g == t {
			return true
		}
	}
	return false
}

// Typed event payloads for type safety

// CollectiblePickupPayloadV1 is a world collectible being picked up. It can
// yield several items, each of which counts as a separate gather.
type CollectiblePickupPayloadV1 struct {
	UserID string   `json:"user_id"`
	Items  []string `json:"items"`
}

// CropGatherPayloadV1 is a crop harvested from a planter
type CropGatherPayloadV1 struct {
	UserID string `json:"user_id"`
	Item   string `json:"item"`
}

// GrowableGatheredPayloadV1 is a wild growable picked by hand
type GrowableGatheredPayloadV1 struct {
	UserID string `json:"user_id"`
	Item   string `json:"item"`
}

// DispenserBonusPayloadV1 is the final bonus of a depleted resource dispenser
type DispenserBonusPayloadV1 struct {
	UserID string `json:"user_id"`
	Item   string `json:"item"`
}

// ConfigReloadedPayloadV1 describes a completed config reload
type ConfigReloadedPayloadV1 struct {
	Rules        int    `json:"rules"`
	Hash         string `json:"hash"`
	UsedDefaults bool   `json:"used_defaults"`
	Timestamp    int64  `json:"timestamp"`
}

// PlayerJoinedPayloadV1 introduces a player to the host along with the
// permissions they have been granted.
type PlayerJoinedPayloadV1 struct {
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	Language    string   `json:"language,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// Type-safe event constructors

// NewCollectiblePickupEvent creates a collectible pickup event
func NewCollectiblePickupEvent(userID string, items ...string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GatherCollectiblePickup,
		Payload: CollectiblePickupPayloadV1{UserID: userID, Items: items},
	}
}

// NewCropGatherEvent creates a crop gather event
func NewCropGatherEvent(userID, item string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GatherCrop,
		Payload: CropGatherPayloadV1{UserID: userID, Item: item},
	}
}

// NewGrowableGatheredEvent creates a growable gathered event
func NewGrowableGatheredEvent(userID, item string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GatherGrowable,
		Payload: GrowableGatheredPayloadV1{UserID: userID, Item: item},
	}
}

// NewDispenserBonusEvent creates a dispenser bonus event
func NewDispenserBonusEvent(userID, item string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GatherDispenserBonus,
		Payload: DispenserBonusPayloadV1{UserID: userID, Item: item},
	}
}

// NewConfigReloadedEvent creates a config reloaded event
func NewConfigReloadedEvent(rules int, hash string, usedDefaults bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ConfigReloaded,
		Payload: ConfigReloadedPayloadV1{
			Rules:        rules,
			Hash:         hash,
			UsedDefaults: usedDefaults,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewPlayerJoinedEvent creates a player joined event
func NewPlayerJoinedEvent(userID, name, lang string, perms ...string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlayerJoined,
		Payload: PlayerJoinedPayloadV1{UserID: userID, Name: name, Language: lang, Permissions: perms},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of event.Type synchronously, in subscription order
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe registers handler for eventType
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// HasSubscribers reports whether anything listens for eventType
func (b *MemoryBus) HasSubscribers(eventType Type) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType]) > 0
}
