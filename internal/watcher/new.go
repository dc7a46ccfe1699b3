package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/lamb-russell/transcript-summary-ai/internal/logger"
)

type Options struct {
	Root          string
	Extensions    []string
	SettleDelay   time.Duration
	MaxConcurrent int
	// Ignore lists directories whose contents are never dispatched, typically the output dir.
	Ignore []string
}

// New creates a Watcher over opts.Root and every directory below it.
func New(opts Options, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Default to 2 concurrent if not specified
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}

	var ignore []string
	for _, dir := range opts.Ignore {
		if abs, err := filepath.Abs(dir); err == nil {
			ignore = append(ignore, abs)
		}
	}

	w := &implWatcher{
		opts:       opts,
		handler:    handler,
		logger:     log,
		watcher:    watcher,
		extensions: exts,
		ignore:     ignore,
		semaphore:  make(chan struct{}, opts.MaxConcurrent),
		recent:     make(map[string]time.Time),
	}

	if _, err := w.addTree(opts.Root); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return w, nil
}
