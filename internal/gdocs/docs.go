package gdocs

import (
	"context"
	"fmt"

	docs "google.golang.org/api/docs/v1"
)

// CreateDocument creates an empty document and returns its id.
func (s *implStore) CreateDocument(ctx context.Context, title string) (string, error) {
	doc, err := s.svc.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create document %q: %w", title, err)
	}

	s.logger.Debug(ctx, "Created google doc %s (%s)", title, doc.DocumentId)
	return doc.DocumentId, nil
}

// InsertText inserts text at the body index offset.
func (s *implStore) InsertText(ctx context.Context, documentID string, offset int64, text string) error {
	req := &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				InsertText: &docs.InsertTextRequest{
					Location: &docs.Location{Index: offset},
					Text:     text,
				},
			},
		},
	}

	if _, err := s.svc.Documents.BatchUpdate(documentID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("insert text into %s: %w", documentID, err)
	}
	return nil
}
