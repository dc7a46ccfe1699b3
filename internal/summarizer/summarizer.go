package summarizer

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lamb-russell/transcript-summary-ai/internal/chunker"
)

// Summarize summarizes each chunk with the detailed role, then combines the chunk
// summaries into one executive summary. Any failed call aborts the whole run.
func (s *implSummarizer) Summarize(ctx context.Context, chunks []chunker.Chunk) (*Result, error) {
	if len(chunks) == 0 {
		s.logger.Info(ctx, "No chunks to summarize")
		return &Result{}, nil
	}

	details, err := s.mapChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	executive, err := s.reduce(ctx, details)
	if err != nil {
		return nil, err
	}

	return &Result{
		Executive: executive,
		Details:   details,
	}, nil
}

// mapChunks runs at most MapConcurrency calls at once. Results land in a slice
// addressed by chunk position, so completion order never affects output order.
func (s *implSummarizer) mapChunks(ctx context.Context, chunks []chunker.Chunk) ([]ChunkSummary, error) {
	details := make([]ChunkSummary, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MapConcurrency)

	for i, ch := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &SummarizationError{Stage: StageMap, ChunkIndex: ch.Index, Err: err}
			}

			s.logger.Info(gctx, "[%d/%d] Summarizing chunk (%d tokens)", i+1, len(chunks), ch.Tokens)
			text, err := s.call(gctx, s.opts.MapModel, s.opts.DetailedRole, ch.Text)
			if err != nil {
				return &SummarizationError{Stage: StageMap, ChunkIndex: ch.Index, Err: err}
			}

			details[i] = ChunkSummary{Index: ch.Index, Text: text}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *implSummarizer) reduce(ctx context.Context, details []ChunkSummary) (string, error) {
	combined := CombineDetails(details)

	s.logger.Info(ctx, "Combining %d chunk summaries into executive summary", len(details))
	text, err := s.call(ctx, s.opts.ReduceModel, s.opts.ExecutiveRole, combined)
	if err != nil {
		return "", &SummarizationError{Stage: StageReduce, ChunkIndex: -1, Err: err}
	}
	return text, nil
}

// call bounds a single external call with the configured timeout. The call runs
// in its own goroutine so a backend that ignores ctx still cannot stall the run.
func (s *implSummarizer) call(ctx context.Context, model, role, content string) (string, error) {
	if s.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.CallTimeout)
		defer cancel()
	}

	type reply struct {
		text string
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		text, err := s.llm.Generate(ctx, model, role, content)
		done <- reply{text: text, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// CombineDetails joins chunk summaries in order, one per line.
func CombineDetails(details []ChunkSummary) string {
	texts := make([]string, len(details))
	for i, d := range details {
		texts[i] = d.Text
	}
	return strings.Join(texts, "\n")
}
