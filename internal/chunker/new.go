package chunker

import (
	"fmt"

	"github.com/lamb-russell/transcript-summary-ai/internal/tokenizer"
)

// Options configures a Chunker.
type Options struct {
	Mode       Mode
	MaxTokens  int
	Model      string
	WordWindow int
}

type implChunker struct {
	opts    Options
	counter tokenizer.Counter
}

// New creates a Chunker. The model must have a known encoding.
func New(opts Options, counter tokenizer.Counter) (Chunker, error) {
	switch opts.Mode {
	case ModeToken:
		if opts.MaxTokens <= 0 {
			return nil, fmt.Errorf("max tokens must be positive, got %d", opts.MaxTokens)
		}
	case ModeWord:
		if opts.WordWindow <= 0 {
			return nil, fmt.Errorf("word window must be positive, got %d", opts.WordWindow)
		}
	default:
		return nil, fmt.Errorf("unknown chunk mode %q", opts.Mode)
	}

	if _, err := counter.Count("", opts.Model); err != nil {
		return nil, err
	}

	return &implChunker{
		opts:    opts,
		counter: counter,
	}, nil
}
