package garden

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/eringen/garden/logfields"
)

const watchDebounce = 300 * time.Millisecond

// Watch re-ingests the content directory whenever a file under it changes,
// until ctx is cancelled. Bursts of events collapse into one ingest.
func (a *App) Watch(ctx context.Context) error {
	root, err := filepath.Abs(a.Config.ContentDir)
	if err != nil {
		return fmt.Errorf("garden: watch %s: %w", a.Config.ContentDir, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("garden: fsnotify: %w", err)
	}
	defer watcher.Close()
	a.addDirsRecursive(watcher, root)

	reingest := make(chan struct{}, 1)
	trigger := debounce(watchDebounce, func() {
		select {
		case reingest <- struct{}{}:
		default:
		}
	})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-reingest:
				if _, err := a.Ingest(ctx); err != nil {
					a.Logger.Warn("re-ingest failed", logfields.Error(err))
				}
			}
		}
	}()

	a.Logger.Info("watching content", logfields.Path(root))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					a.addDirsRecursive(watcher, ev.Name)
				}
			}
			a.Logger.Debug("content changed", logfields.Path(ev.Name))
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.Logger.Warn("watcher error", logfields.Error(err))
		}
	}
}

// debounce returns a trigger that runs fn once the triggers stop for d.
func debounce(d time.Duration, fn func()) func() {
	var mu sync.Mutex
	var timer *time.Timer
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, fn)
	}
}

func (a *App) addDirsRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			a.Logger.Warn("watch add failed", logfields.Path(p), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent skips hidden, editor swap and OS metadata files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."),
		strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"),
		base == "Thumbs.db":
		return true
	}
	return false
}
