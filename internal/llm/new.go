package llm

import (
	"context"
	"fmt"
)

// Settings selects and authenticates a backend.
type Settings struct {
	Provider string
	APIKey   string
	BaseURL  string
	// SessionLimit caps concurrent calls through the shared client. 0 means unlimited.
	SessionLimit int
}

// New creates the Generator for s.Provider.
func New(ctx context.Context, s Settings) (Generator, error) {
	var gen Generator
	var err error

	switch s.Provider {
	case providerOpenAI:
		gen, err = NewOpenAI(s.APIKey, s.BaseURL)
	case providerGemini:
		gen, err = NewGemini(ctx, s.APIKey)
	case providerAnthropic:
		gen, err = NewAnthropic(s.APIKey, s.BaseURL)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", s.Provider)
	}
	if err != nil {
		return nil, err
	}

	if s.SessionLimit > 0 {
		gen = Serialize(gen, s.SessionLimit)
	}
	return gen, nil
}
