package output

import (
	"fmt"

	"github.com/lamb-russell/transcript-summary-ai/internal/config"
	"github.com/lamb-russell/transcript-summary-ai/internal/logger"
)

type Options struct {
	Dir    string
	Format string
}

type implSink struct {
	opts   Options
	store  DocumentStore
	logger logger.Logger
	locks  *keyedMutex
}

// New creates a Sink writing into opts.Dir. A nil store disables remote output.
func New(opts Options, store DocumentStore, log logger.Logger) (Sink, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.Format == "" {
		opts.Format = config.FormatText
	}
	if _, ok := renderers[opts.Format]; !ok {
		return nil, fmt.Errorf("unsupported output format %q", opts.Format)
	}

	return &implSink{
		opts:   opts,
		store:  store,
		logger: log,
		locks:  newKeyedMutex(),
	}, nil
}
