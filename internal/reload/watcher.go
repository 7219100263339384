package reload

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/osse101/GatherBonus_Go/internal/logger"
)

// Target is what the watcher triggers on file changes
type Target interface {
	Reload(ctx context.Context) (Result, error)
}

// Watcher reloads the config when its file changes. The parent directory is
// watched so editors that replace the file by rename are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	target   Target
	fs       *fsnotify.Watcher

	quit chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewWatcher starts watching the directory holding path
func NewWatcher(path string, debounce time.Duration, target Target) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		target:   target,
		fs:       fw,
		quit:     make(chan struct{}),
	}, nil
}

// Start runs the event loop until ctx is done or Stop is called
func (w *Watcher) Start(ctx context.Context) {
	logger.Info(LogMsgWatching, LogFieldPath, w.path)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.loop(ctx)
	}()
}

func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn(LogMsgWatchError, LogFieldError, err)
		case <-fire:
			fire = nil
			if _, err := w.target.Reload(ctx); err != nil {
				logger.Warn(LogMsgReloadFailed, LogFieldPath, w.path, LogFieldError, err)
			}
		case <-ctx.Done():
			return
		case <-w.quit:
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

// Stop ends the loop and releases the OS watch. Safe to call more than once.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.quit)
		w.wg.Wait()
		w.fs.Close()
	})
}
