package gdocs

import (
	"context"
	"fmt"

	"github.com/lamb-russell/transcript-summary-ai/internal/logger"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

type Options struct {
	// CredentialsJSON is the OAuth client definition downloaded from the Google console.
	CredentialsJSON []byte
	TokenPath       string
}

type implStore struct {
	svc    *docs.Service
	logger logger.Logger
}

// OAuthConfig parses the client definition with the documents scope.
func OAuthConfig(credentialsJSON []byte) (*oauth2.Config, error) {
	conf, err := google.ConfigFromJSON(credentialsJSON, docs.DocumentsScope)
	if err != nil {
		return nil, fmt.Errorf("parse google credentials: %w", err)
	}
	return conf, nil
}

// New creates a Store authenticated by the cached token at opts.TokenPath.
func New(ctx context.Context, opts Options, log logger.Logger) (Store, error) {
	conf, err := OAuthConfig(opts.CredentialsJSON)
	if err != nil {
		return nil, err
	}

	ts, err := newFileTokenSource(ctx, conf, opts.TokenPath, log)
	if err != nil {
		return nil, err
	}

	svc, err := docs.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create docs service: %w", err)
	}

	return newWithService(svc, log), nil
}

func newWithService(svc *docs.Service, log logger.Logger) Store {
	return &implStore{
		svc:    svc,
		logger: log,
	}
}
