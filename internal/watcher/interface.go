package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is called once per new transcript file. Directories never reach it.
type EventHandler func(ctx context.Context, filePath string) error
