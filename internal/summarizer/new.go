package summarizer

import (
	"time"

	"github.com/lamb-russell/transcript-summary-ai/internal/llm"
	"github.com/lamb-russell/transcript-summary-ai/internal/logger"
)

// Options is the immutable pipeline configuration.
type Options struct {
	DetailedRole   string
	ExecutiveRole  string
	MapModel       string
	ReduceModel    string
	MapConcurrency int
	CallTimeout    time.Duration
}

type implSummarizer struct {
	opts   Options
	llm    llm.Generator
	logger logger.Logger
}

// New creates a Summarizer that sends every call through gen.
func New(opts Options, gen llm.Generator, log logger.Logger) Summarizer {
	if opts.MapConcurrency <= 0 {
		opts.MapConcurrency = 1
	}
	return &implSummarizer{
		opts:   opts,
		llm:    gen,
		logger: log,
	}
}
