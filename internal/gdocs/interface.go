package gdocs

import (
	"context"
	"errors"
)

// Store creates Google Docs and writes text into them.
type Store interface {
	CreateDocument(ctx context.Context, title string) (string, error)
	InsertText(ctx context.Context, documentID string, offset int64, text string) error
}

var (
	// ErrNotAuthorized means no usable token is cached and the user must authorize again.
	ErrNotAuthorized = errors.New("google docs: not authorized, run with -authorize")
	// ErrTokenRevoked means the refresh token was rejected; the cached token has been discarded.
	ErrTokenRevoked = errors.New("google docs: refresh token rejected")
)
