package main

import (
	"context"
	"fmt"

	"github.com/lamb-russell/transcript-summary-ai/internal/chunker"
	"github.com/lamb-russell/transcript-summary-ai/internal/config"
	"github.com/lamb-russell/transcript-summary-ai/internal/gdocs"
	"github.com/lamb-russell/transcript-summary-ai/internal/llm"
	"github.com/lamb-russell/transcript-summary-ai/internal/logger"
	"github.com/lamb-russell/transcript-summary-ai/internal/output"
	"github.com/lamb-russell/transcript-summary-ai/internal/processor"
	"github.com/lamb-russell/transcript-summary-ai/internal/summarizer"
	"github.com/lamb-russell/transcript-summary-ai/internal/tokenizer"
)

// buildProcessor wires every pipeline stage from cfg. Any error here is fatal.
func buildProcessor(ctx context.Context, cfg *config.Config, log logger.Logger) (processor.Processor, error) {
	apiKey, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}

	counter := tokenizer.New()
	if _, err := counter.Count("", cfg.Chunking.TokenizerModel); err != nil {
		return nil, &config.ConfigurationError{
			Field:  "chunking.tokenizer_model",
			Reason: "no known encoding for " + cfg.Chunking.TokenizerModel,
			Err:    err,
		}
	}

	ch, err := chunker.New(chunker.Options{
		Mode:       chunker.Mode(cfg.Chunking.Mode),
		MaxTokens:  cfg.Chunking.MaxTokens,
		Model:      cfg.Chunking.TokenizerModel,
		WordWindow: cfg.Chunking.WordWindow,
	}, counter)
	if err != nil {
		return nil, &config.ConfigurationError{Field: "chunking", Reason: "invalid chunker settings", Err: err}
	}

	gen, err := llm.New(ctx, llm.Settings{
		Provider:     cfg.Models.Provider,
		APIKey:       apiKey,
		BaseURL:      cfg.Models.BaseURL,
		SessionLimit: cfg.Models.SharedSessionLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", cfg.Models.Provider, err)
	}

	sum := summarizer.New(summarizer.Options{
		DetailedRole:   cfg.Roles.Detailed,
		ExecutiveRole:  cfg.Roles.Executive,
		MapModel:       cfg.Models.Map,
		ReduceModel:    cfg.Models.Reduce,
		MapConcurrency: cfg.Performance.MapConcurrency,
		CallTimeout:    cfg.Performance.CallTimeout,
	}, gen, log)

	var store output.DocumentStore
	if cfg.Output.Remote.Enabled {
		creds, err := cfg.RemoteCredentials()
		if err != nil {
			return nil, err
		}
		docs, err := gdocs.New(ctx, gdocs.Options{
			CredentialsJSON: creds,
			TokenPath:       cfg.Output.Remote.TokenPath,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("connect google docs: %w", err)
		}
		store = docs
	}

	sink, err := output.New(output.Options{
		Dir:    cfg.Paths.Output,
		Format: cfg.Output.Format,
	}, store, log)
	if err != nil {
		return nil, err
	}

	return processor.New(processor.Options{
		TokenizerModel: cfg.Chunking.TokenizerModel,
	}, counter, ch, sum, sink, log), nil
}
