package main

import (
	"context"
	"errors"
	"os"

	"github.com/lamb-russell/transcript-summary-ai/internal/logger"
	"github.com/lamb-russell/transcript-summary-ai/internal/watcher"
)

// serve runs w until a signal arrives or the watcher fails, then cancels ctx and
// waits for the watcher to drain its in-flight handlers. A second signal stops
// the wait early.
func serve(ctx context.Context, cancel context.CancelFunc, w watcher.Watcher, signals <-chan os.Signal, log logger.Logger) error {
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	var runErr error
	select {
	case <-signals:
		log.Info(ctx, "Shutdown signal received")
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, "Watcher error: %v", err)
			runErr = err
		}
		cancel()
		return runErr
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	select {
	case <-done:
	case <-signals:
		log.Warn(ctx, "Second signal received, abandoning in-flight work")
		return errors.New("shutdown interrupted")
	}
	return nil
}
