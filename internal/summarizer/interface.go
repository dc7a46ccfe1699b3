package summarizer

import (
	"context"

	"github.com/lamb-russell/transcript-summary-ai/internal/chunker"
)

// Summarizer runs the map/reduce pipeline over one transcript's chunks.
type Summarizer interface {
	Summarize(ctx context.Context, chunks []chunker.Chunk) (*Result, error)
}

// ChunkSummary is the map-stage output for the chunk with the same Index.
type ChunkSummary struct {
	Index int
	Text  string
}

// Result holds the executive summary and the ordered chunk summaries it was built from.
type Result struct {
	Executive string
	Details   []ChunkSummary
}
