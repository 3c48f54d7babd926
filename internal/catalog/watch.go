package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"playground/internal/models"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 250 * time.Millisecond

// Watch re-reads a filesystem manifest whenever it changes and passes each
// successfully loaded catalog to onLoad. A failed reload keeps the current
// catalog. Watch blocks until ctx is done.
func (l *Loader) Watch(ctx context.Context, debounce time.Duration, onLoad func(*models.Catalog)) error {
	if l.IsRemote() {
		return errors.New("watch: remote manifests cannot be watched")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	// Watch the directory so atomic rename-over saves are still seen.
	path := filepath.Clean(l.Path())
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	l.Logger.Info("watching manifest", "path", path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.Logger.Warn("manifest watcher error", "error", err)
		case <-fire:
			fire = nil
			c, err := l.Fetch(ctx)
			if err != nil {
				l.Logger.Warn("manifest reload failed, keeping current catalog", "path", path, "error", err)
				continue
			}
			l.Logger.Info("catalog reloaded", "entries", len(c.Entries), "version", c.Version)
			onLoad(c)
		}
	}
}
