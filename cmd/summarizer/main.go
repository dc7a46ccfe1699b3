package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/lamb-russell/transcript-summary-ai/internal/config"
	"github.com/lamb-russell/transcript-summary-ai/internal/gdocs"
	"github.com/lamb-russell/transcript-summary-ai/internal/logger"
	"github.com/lamb-russell/transcript-summary-ai/internal/watcher"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	file := flag.String("file", "", "summarize a single transcript and exit")
	authorize := flag.Bool("authorize", false, "run the Google Docs consent flow, cache the token and exit")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "Transcript summarizer starting")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Provider: %s (map %s, reduce %s)", cfg.Models.Provider, cfg.Models.Map, cfg.Models.Reduce)

	if *authorize {
		if err := runAuthorize(ctx, cfg, log); err != nil {
			log.Error(ctx, "Authorization failed: %v", err)
			os.Exit(1)
		}
		return
	}

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Initialize dependencies
	proc, err := buildProcessor(ctx, cfg, log)
	if err != nil {
		var cerr *config.ConfigurationError
		if errors.As(err, &cerr) {
			log.Error(ctx, "Configuration error: %v", err)
		} else {
			log.Error(ctx, "Failed to initialize: %v", err)
		}
		os.Exit(1)
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if *file != "" {
		go func() {
			<-sigChan
			cancel()
		}()
		if err := proc.Process(ctx, *file); err != nil {
			log.Error(ctx, "Failed to process %s: %v", *file, err)
			os.Exit(1)
		}
		return
	}

	// Create watcher with processor as handler and concurrency control
	w, err := watcher.New(watcher.Options{
		Root:          cfg.Paths.Input,
		Extensions:    cfg.Watcher.Extensions,
		SettleDelay:   cfg.Watcher.SettleDelay,
		MaxConcurrent: cfg.Performance.MaxConcurrent,
		Ignore:        []string{cfg.Paths.Output},
	}, proc.Process, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	log.Info(ctx, "Transcript summarizer is ready")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s (%s, remote %t)", cfg.Paths.Output, cfg.Output.Format, cfg.Output.Remote.Enabled)
	log.Info(ctx, "Press Ctrl+C to stop")

	// Run until a signal or watcher failure, then wait for in-flight work
	if err := serve(ctx, cancel, w, sigChan, log); err != nil {
		w.Stop()
		os.Exit(1)
	}

	log.Info(ctx, "Transcript summarizer stopped")
}

func runAuthorize(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	creds, err := cfg.RemoteCredentials()
	if err != nil {
		return err
	}
	conf, err := gdocs.OAuthConfig(creds)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return gdocs.Authorize(ctx, conf, cfg.Output.Remote.TokenPath, func(url string) {
		fmt.Printf("Open this URL in your browser to grant access to Google Docs:\n\n%s\n\n", url)
	}, log)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
