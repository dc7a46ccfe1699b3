package gdocs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/lamb-russell/transcript-summary-ai/internal/logger"
	"golang.org/x/oauth2"
)

// loadToken reads a cached token. A missing file yields ErrNotAuthorized.
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotAuthorized
	}
	if err != nil {
		return nil, fmt.Errorf("read token %s: %w", path, err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decode token %s: %w", path, err)
	}
	if tok.RefreshToken == "" && !tok.Valid() {
		return nil, ErrNotAuthorized
	}
	return &tok, nil
}

// saveToken writes tok atomically with owner-only permissions.
func saveToken(path string, tok *oauth2.Token) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create token dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write token %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace token %s: %w", path, err)
	}
	return nil
}

// fileTokenSource refreshes through conf and keeps the cache file in step with the
// current token. A rejected refresh deletes the cache so the next start asks to reauthorize.
type fileTokenSource struct {
	ctx    context.Context
	conf   *oauth2.Config
	path   string
	logger logger.Logger

	mu      sync.Mutex
	current *oauth2.Token
}

func newFileTokenSource(ctx context.Context, conf *oauth2.Config, path string, log logger.Logger) (*fileTokenSource, error) {
	tok, err := loadToken(path)
	if err != nil {
		return nil, err
	}
	return &fileTokenSource{
		ctx:     ctx,
		conf:    conf,
		path:    path,
		logger:  log,
		current: tok,
	}, nil
}

func (s *fileTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNotAuthorized
	}
	if s.current.Valid() {
		return s.current, nil
	}

	tok, err := s.conf.TokenSource(s.ctx, s.current).Token()
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && refreshRejected(rerr) {
			s.current = nil
			if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				s.logger.Warn(s.ctx, "Failed to discard token cache %s: %v", s.path, rmErr)
			}
			return nil, fmt.Errorf("%w: %v", ErrTokenRevoked, err)
		}
		return nil, fmt.Errorf("refresh google token: %w", err)
	}

	s.current = tok
	if err := saveToken(s.path, tok); err != nil {
		s.logger.Warn(s.ctx, "Refreshed token not cached: %v", err)
	} else {
		s.logger.Debug(s.ctx, "Refreshed google token cached at %s", s.path)
	}
	return tok, nil
}

// refreshRejected reports whether the token endpoint refused the refresh token
// itself. Server errors and throttling leave the cached token usable.
func refreshRejected(rerr *oauth2.RetrieveError) bool {
	if rerr.ErrorCode == "invalid_grant" {
		return true
	}
	if rerr.Response == nil {
		return false
	}
	switch rerr.Response.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return true
	}
	return false
}
