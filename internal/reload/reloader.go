// Package reload swaps freshly loaded bonus tables into the registry, either
// on demand or when the config file changes on disk.
package reload

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/GatherBonus_Go/internal/bonus"
	"github.com/osse101/GatherBonus_Go/internal/event"
	"github.com/osse101/GatherBonus_Go/internal/logger"
	"github.com/osse101/GatherBonus_Go/internal/metrics"
	"github.com/osse101/GatherBonus_Go/internal/permission"
)

// Result describes one reload
type Result struct {
	Rules        int      `json:"rules"`
	Hash         string   `json:"hash"`
	UsedDefaults bool     `json:"used_defaults"`
	Changed      bool     `json:"changed"`
	Warnings     []string `json:"warnings,omitempty"`
}

// Reloader loads the config file and installs it as the active table
type Reloader struct {
	path     string
	loader   bonus.Loader
	registry *bonus.Registry
	perms    permission.Checker
	bus      event.Bus

	mu sync.Mutex
}

// NewReloader creates a Reloader. bus may be nil.
func NewReloader(path string, loader bonus.Loader, registry *bonus.Registry, perms permission.Checker, bus event.Bus) *Reloader {
	return &Reloader{
		path:     path,
		loader:   loader,
		registry: registry,
		perms:    perms,
		bus:      bus,
	}
}

// Path returns the watched config path
func (r *Reloader) Path() string { return r.path }

// Reload reads the file and swaps it in when its content differs from the
// active snapshot. Bad content falls back to defaults and is not an error.
func (r *Reloader) Reload(ctx context.Context) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := logger.FromContext(ctx)

	cfg, report, err := r.loader.Load(r.path)
	if err != nil {
		log.Warn(LogMsgSaveFailed, LogFieldPath, r.path, LogFieldError, err)
	}

	result := Result{
		Rules:        len(cfg.Rules),
		Hash:         report.Hash,
		UsedDefaults: report.UsedDefaults,
		Warnings:     report.Warnings,
	}

	if report.Hash != "" && report.Hash == r.registry.Current().Hash() {
		metrics.ConfigReloads.WithLabelValues(metrics.ResultUnchanged).Inc()
		log.Debug(LogMsgReloadUnchanged, LogFieldPath, r.path, LogFieldHash, report.Hash)
		return result, nil
	}

	snap, err := bonus.BuildSnapshot(cfg, report.Hash)
	if err != nil {
		metrics.ConfigReloads.WithLabelValues(metrics.ResultError).Inc()
		log.Error(LogMsgReloadFailed, LogFieldPath, r.path, LogFieldError, err)
		return result, fmt.Errorf("build snapshot: %w", err)
	}

	r.registry.Swap(snap)
	result.Changed = true

	if err := r.perms.RegisterAll(cfg.Permissions()); err != nil {
		log.Warn(LogMsgPermissionsFailed, LogFieldError, err)
	}

	outcome := metrics.ResultOK
	if report.UsedDefaults {
		outcome = metrics.ResultDefaults
	}
	metrics.ConfigReloads.WithLabelValues(outcome).Inc()

	log.Info(LogMsgReloaded,
		LogFieldPath, r.path,
		LogFieldRules, result.Rules,
		LogFieldHash, result.Hash,
		LogFieldUsedDefaults, result.UsedDefaults)

	if r.bus != nil {
		evt := event.NewConfigReloadedEvent(result.Rules, result.Hash, result.UsedDefaults)
		if err := r.bus.Publish(ctx, evt); err != nil {
			log.Warn(LogMsgPublishFailed, LogFieldError, err)
		}
	}
	return result, nil
}
