package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const providerGemini = "gemini"

type geminiGenerator struct {
	client *genai.Client
}

// NewGemini creates a Generator on the Gemini API.
func NewGemini(ctx context.Context, apiKey string) (Generator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key missing")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &geminiGenerator{client: client}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, model, systemPrompt, userContent string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, model, genai.Text(userContent), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", providerError(providerGemini, apiErr.Code, err)
		}
		return "", providerError(providerGemini, 0, err)
	}

	return geminiText(result)
}

// geminiText joins the text parts of the first candidate. A reply without
// any text is an empty response, not an empty summary.
func geminiText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", &ProviderError{Provider: providerGemini, Kind: ErrEmptyResponse, Err: errors.New("no candidates")}
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	out := strings.TrimSpace(text.String())
	if out == "" {
		return "", &ProviderError{Provider: providerGemini, Kind: ErrEmptyResponse, Err: errors.New("candidate has no text")}
	}
	return out, nil
}
