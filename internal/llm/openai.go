package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	oaoption "github.com/openai/openai-go/option"
)

const providerOpenAI = "openai"

type openAIGenerator struct {
	client openai.Client
}

// NewOpenAI creates a Generator on the chat completions API. baseURL may point at
// any OpenAI-compatible endpoint. SDK retries are disabled.
func NewOpenAI(apiKey, baseURL string) (Generator, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	opts := []oaoption.RequestOption{
		oaoption.WithAPIKey(apiKey),
		oaoption.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, oaoption.WithBaseURL(baseURL))
	}
	return &openAIGenerator{client: openai.NewClient(opts...)}, nil
}

func (g *openAIGenerator) Generate(ctx context.Context, model, systemPrompt, userContent string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userContent),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", providerError(providerOpenAI, apiErr.StatusCode, err)
		}
		return "", providerError(providerOpenAI, 0, err)
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: providerOpenAI, Kind: ErrEmptyResponse, Err: errors.New("no choices")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
