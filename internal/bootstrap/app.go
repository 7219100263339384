package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/text/language"

	"github.com/osse101/GatherBonus_Go/internal/bonus"
	"github.com/osse101/GatherBonus_Go/internal/config"
	"github.com/osse101/GatherBonus_Go/internal/event"
	"github.com/osse101/GatherBonus_Go/internal/gather"
	"github.com/osse101/GatherBonus_Go/internal/host"
	"github.com/osse101/GatherBonus_Go/internal/lang"
	"github.com/osse101/GatherBonus_Go/internal/permission"
	"github.com/osse101/GatherBonus_Go/internal/reload"
	"github.com/osse101/GatherBonus_Go/internal/server"
)

// Options tweak how the app is wired. The zero value is production wiring.
type Options struct {
	Rand     bonus.RandomSource           // nil uses the process RNG
	ChatSink func(userID, message string) // receives every chat line sent to a player
}

// App is the fully wired plugin running against the in-memory host
type App struct {
	Config      *config.Config
	Host        *host.Memory
	Registry    *bonus.Registry
	Loader      bonus.Loader
	Localizer   *lang.Localizer
	Permissions permission.Checker
	Resolver    *bonus.Resolver
	Gather      *gather.Handler
	Reloader    *reload.Reloader
	Bus         *event.MemoryBus
	DeadLetter  *event.DeadLetterWriter

	// Set by Start when enabled
	Watcher *reload.Watcher
	Server  *server.Server
}

// NewApp wires every component. Nothing touches the bonus config file until Start.
func NewApp(cfg *config.Config, opts Options) (*App, error) {
	bus, deadLetter, err := InitializeEventSystem(cfg)
	if err != nil {
		return nil, err
	}

	mem := host.NewMemory(cfg.HostCatalog...)
	if opts.ChatSink != nil {
		mem.SetChatSink(opts.ChatSink)
	}

	localizer := lang.NewLocalizer(language.English)
	if tags, err := localizer.LoadDir(cfg.LangDir); err != nil {
		slog.Warn(LogMsgLanguagesFailed, "dir", cfg.LangDir, "error", err)
	} else if len(tags) > 0 {
		slog.Info(LogMsgLanguagesLoaded, "dir", cfg.LangDir, "languages", len(tags))
	}

	perms := permission.NewChecker(mem, cfg.PermissionCacheSize, cfg.PermissionCacheTTL)
	registry := bonus.NewRegistry(nil)
	loader := bonus.NewLoader()
	resolver := bonus.NewResolver(registry, perms, mem, localizer, opts.Rand)
	gatherHandler := gather.NewHandler(resolver, mem)
	reloader := reload.NewReloader(cfg.BonusConfigPath, loader, registry, perms, bus)

	RegisterEventHandlers(EventHandlerDependencies{
		EventBus:      bus,
		GatherHandler: gatherHandler,
		Host:          mem,
		Registry:      registry,
		Permissions:   perms,
	})

	return &App{
		Config:      cfg,
		Host:        mem,
		Registry:    registry,
		Loader:      loader,
		Localizer:   localizer,
		Permissions: perms,
		Resolver:    resolver,
		Gather:      gatherHandler,
		Reloader:    reloader,
		Bus:         bus,
		DeadLetter:  deadLetter,
	}, nil
}

// Start loads the bonus config, then starts the watcher and admin server
// when they are enabled. The server runs until Shutdown.
func (a *App) Start(ctx context.Context) error {
	if _, err := a.Reloader.Reload(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedInitialLoad, err)
	}

	if a.Config.WatchConfig {
		w, err := reload.NewWatcher(a.Config.BonusConfigPath, a.Config.WatchDebounce, a.Reloader)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedCreateWatcher, err)
		}
		a.Watcher = w
		a.Watcher.Start(ctx)
	} else {
		slog.Info(LogMsgWatcherDisabled)
	}

	if a.Config.AdminPort > 0 {
		a.Server = server.NewServer(a.Config.AdminPort, a.Config.AdminAPIKey, a.Config.Version, a.Registry, a.Reloader)
		go func() {
			if err := a.Server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error(LogMsgAdminServerFailed, "error", err)
			}
		}()
	} else {
		slog.Info(LogMsgAdminDisabled)
	}

	return nil
}

// Publish hands evt to the bus. Events nobody handles, and events a handler
// rejects, go to the dead-letter file.
func (a *App) Publish(ctx context.Context, evt event.Event) error {
	if !a.Bus.HasSubscribers(evt.Type) {
		return a.DeadLetter.Write(evt, fmt.Errorf("no handler for event type %q", evt.Type))
	}
	if err := a.Bus.Publish(ctx, evt); err != nil {
		return a.DeadLetter.Write(evt, err)
	}
	return nil
}

// Shutdown stops everything Start started and closes the dead-letter file
func (a *App) Shutdown(ctx context.Context) {
	GracefulShutdown(ctx, ShutdownComponents{
		Server:     a.Server,
		Watcher:    a.Watcher,
		DeadLetter: a.DeadLetter,
	})
}
