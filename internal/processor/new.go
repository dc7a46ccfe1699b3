package processor

import (
	"time"

	"github.com/lamb-russell/transcript-summary-ai/internal/chunker"
	"github.com/lamb-russell/transcript-summary-ai/internal/logger"
	"github.com/lamb-russell/transcript-summary-ai/internal/output"
	"github.com/lamb-russell/transcript-summary-ai/internal/summarizer"
	"github.com/lamb-russell/transcript-summary-ai/internal/tokenizer"
)

type Options struct {
	// TokenizerModel selects the encoding used for the token counts in the logs.
	TokenizerModel string
}

type implProcessor struct {
	opts       Options
	counter    tokenizer.Counter
	chunker    chunker.Chunker
	summarizer summarizer.Summarizer
	sink       output.Sink
	logger     logger.Logger
	now        func() time.Time
}

// New creates a Processor wired to the given pipeline stages.
func New(opts Options, counter tokenizer.Counter, ch chunker.Chunker, sum summarizer.Summarizer, sink output.Sink, log logger.Logger) Processor {
	return &implProcessor{
		opts:       opts,
		counter:    counter,
		chunker:    ch,
		summarizer: sum,
		sink:       sink,
		logger:     log,
		now:        time.Now,
	}
}
