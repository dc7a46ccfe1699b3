package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
)

const (
	providerAnthropic = "anthropic"

	anthropicMaxTokens = 4096
)

type anthropicGenerator struct {
	client anthropic.Client
}

// NewAnthropic creates a Generator on the Anthropic messages API.
func NewAnthropic(apiKey, baseURL string) (Generator, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key missing")
	}
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(apiKey),
		anthropicoption.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, anthropicoption.WithBaseURL(baseURL))
	}
	return &anthropicGenerator{client: anthropic.NewClient(opts...)}, nil
}

func (g *anthropicGenerator) Generate(ctx context.Context, model, systemPrompt, userContent string) (string, error) {
	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: anthropicMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userContent)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", providerError(providerAnthropic, apiErr.StatusCode, err)
		}
		return "", providerError(providerAnthropic, 0, err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", &ProviderError{Provider: providerAnthropic, Kind: ErrEmptyResponse, Err: errors.New("no text blocks")}
	}
	return strings.TrimSpace(text.String()), nil
}
