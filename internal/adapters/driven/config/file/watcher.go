package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/jukebox-cli/internal/logger"
)

// DefaultDebounce batches the burst of events editors emit on save.
const DefaultDebounce = 250 * time.Millisecond

// Reloader is implemented by stores that cache file contents.
type Reloader interface {
	Reload()
}

// Watcher reloads a store when prompt files in its directory change.
type Watcher struct {
	dir      string
	target   Reloader
	debounce time.Duration
	onReload func()
}

// NewWatcher watches dir and calls target.Reload after changes settle.
func NewWatcher(dir string, target Reloader) *Watcher {
	return &Watcher{dir: dir, target: target, debounce: DefaultDebounce}
}

// OnReload registers a callback fired after each reload.
func (w *Watcher) OnReload(fn func()) {
	w.onReload = fn
}

// Run blocks until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// The prompt store creates its directory lazily.
	if err := os.MkdirAll(w.dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", w.dir, err)
	}
	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("watching prompts in %s", w.dir)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("prompt file %s: %s", event.Op, filepath.Base(event.Name))
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("prompt watcher: %v", err)

		case <-timer.C:
			w.target.Reload()
			logger.Info("prompts reloaded")
			if w.onReload != nil {
				w.onReload()
			}
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, PromptFileExt) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
