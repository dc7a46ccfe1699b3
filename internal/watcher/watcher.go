package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/lamb-russell/transcript-summary-ai/internal/logger"
)

type implWatcher struct {
	opts       Options
	handler    EventHandler
	logger     logger.Logger
	watcher    *fsnotify.Watcher
	extensions map[string]bool
	ignore     []string
	semaphore  chan struct{}
	wg         sync.WaitGroup

	// recent is only touched from the Start loop.
	recent map[string]time.Time
}

const dedupWindow = 2 * time.Second

// Start begins monitoring the transcript tree. It returns ctx.Err() once ctx is
// cancelled and every in-flight handler has returned.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.opts.MaxConcurrent, w.opts.Root)
	w.logger.Info(ctx, "Transcript extensions: %s", strings.Join(w.opts.Extensions, ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if !event.Has(fsnotify.Create) {
				continue
			}

			info, err := os.Stat(event.Name)
			if err != nil {
				w.logger.Debug(ctx, "Created path vanished: %s", event.Name)
				continue
			}

			if info.IsDir() {
				if w.isIgnored(event.Name) {
					continue
				}
				// Files may land in a new directory before it is watched.
				found, err := w.addTree(event.Name)
				if err != nil {
					w.logger.Error(ctx, "Failed to watch %s: %v", event.Name, err)
					continue
				}
				w.logger.Debug(ctx, "Watching new directory: %s", event.Name)
				for _, path := range found {
					if err := w.dispatch(ctx, path); err != nil {
						return err
					}
				}
				continue
			}

			if !w.isTranscript(event.Name) || w.isIgnored(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-transcript file: %s", event.Name)
				continue
			}
			if err := w.dispatch(ctx, event.Name); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// dispatch blocks until a processing slot is free, then handles path in a goroutine.
func (w *implWatcher) dispatch(ctx context.Context, path string) error {
	// A file written into a fresh directory can be seen both by the walk and by its own event.
	if at, ok := w.recent[path]; ok && time.Since(at) < dedupWindow {
		return nil
	}
	w.remember(path)

	w.logger.Info(ctx, "New transcript detected: %s", path)

	// Acquire semaphore slot (blocks if max concurrent reached)
	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		w.wg.Wait()
		return ctx.Err()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		// Give the writer a moment to finish the file.
		if w.opts.SettleDelay > 0 {
			select {
			case <-time.After(w.opts.SettleDelay):
			case <-ctx.Done():
				return
			}
		}

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return nil
}

func (w *implWatcher) remember(path string) {
	now := time.Now()
	if len(w.recent) > 256 {
		for p, at := range w.recent {
			if now.Sub(at) >= dedupWindow {
				delete(w.recent, p)
			}
		}
	}
	w.recent[path] = now
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// addTree watches root and every directory below it and returns the transcripts
// already present in those directories.
func (w *implWatcher) addTree(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && w.isIgnored(path) {
				return filepath.SkipDir
			}
			return w.watcher.Add(path)
		}
		if w.isTranscript(path) && !w.isIgnored(path) {
			found = append(found, path)
		}
		return nil
	})
	return found, err
}

// isTranscript checks if the file has a configured transcript extension
func (w *implWatcher) isTranscript(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

func (w *implWatcher) isIgnored(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.ignore {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
