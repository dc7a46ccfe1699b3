package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds. Every ProviderError matches exactly one of them with errors.Is.
var (
	ErrAuth          = errors.New("authentication failed")
	ErrRateLimited   = errors.New("rate limited")
	ErrTransport     = errors.New("transport failure")
	ErrEmptyResponse = errors.New("empty response")
)

// ProviderError is a classified failure from a summarization backend.
type ProviderError struct {
	Provider   string
	Kind       error
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %v (status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// kindForStatus maps an HTTP status from a provider to a failure kind.
func kindForStatus(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return ErrTransport
	}
}

func providerError(provider string, status int, err error) error {
	return &ProviderError{
		Provider:   provider,
		Kind:       kindForStatus(status),
		StatusCode: status,
		Err:        err,
	}
}
