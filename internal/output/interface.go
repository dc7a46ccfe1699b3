package output

import (
	"context"
	"time"
)

// Sink formats a finished summary and persists it locally and, when enabled, remotely.
type Sink interface {
	// Persist writes exactly one new local file and at most one new remote document.
	// If the local write succeeded but the remote store failed, the receipt is returned
	// alongside the error so the caller can report the local path.
	Persist(ctx context.Context, res Result) (*Receipt, error)
}

// DocumentStore is the remote document capability.
type DocumentStore interface {
	CreateDocument(ctx context.Context, title string) (string, error)
	InsertText(ctx context.Context, documentID string, offset int64, text string) error
}

// Result is everything the sink needs to render one summary.
type Result struct {
	Source    string
	Timestamp time.Time
	Executive string
	Details   []string
}

// Receipt records where a summary ended up.
type Receipt struct {
	Name      string
	LocalPath string
	RemoteID  string
}
