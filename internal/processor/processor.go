package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lamb-russell/transcript-summary-ai/internal/logger"
	"github.com/lamb-russell/transcript-summary-ai/internal/output"
)

// Process runs read → split → map/reduce → persist for one transcript.
func (p *implProcessor) Process(ctx context.Context, path string) error {
	ctx = logger.WithRunID(ctx, uuid.NewString())
	startTime := time.Now()

	p.logger.Info(ctx, "New transcript found: %s", path)

	text, err := p.readTranscript(path)
	if err != nil {
		return err
	}
	if err := p.logSize(ctx, "transcript", text); err != nil {
		return err
	}

	chunks, err := p.chunker.Split(text)
	if err != nil {
		return fmt.Errorf("split transcript: %w", err)
	}
	p.logger.Info(ctx, "Split transcript into %d chunks", len(chunks))

	res, err := p.summarizer.Summarize(ctx, chunks)
	if err != nil {
		return fmt.Errorf("summarize %s: %w", path, err)
	}

	details := make([]string, len(res.Details))
	for i, d := range res.Details {
		details[i] = d.Text
	}

	result := output.Result{
		Source:    path,
		Timestamp: p.now(),
		Executive: res.Executive,
		Details:   details,
	}
	if err := p.logSize(ctx, "summary", output.RawText(result)); err != nil {
		return err
	}

	receipt, err := p.sink.Persist(ctx, result)
	if err != nil {
		if receipt != nil {
			p.logger.Warn(ctx, "Local summary kept at %s", receipt.LocalPath)
		}
		return fmt.Errorf("persist summary: %w", err)
	}

	p.logger.Info(ctx, "Processed %s in %s -> %s", path, time.Since(startTime).Round(time.Millisecond), receipt.LocalPath)
	return nil
}
