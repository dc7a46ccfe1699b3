package processor

import "context"

// Processor handles one newly detected transcript end to end.
type Processor interface {
	// Process reads, chunks, summarizes and persists the transcript at path.
	// Any failure aborts only this transcript.
	Process(ctx context.Context, path string) error
}
