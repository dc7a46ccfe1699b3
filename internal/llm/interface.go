package llm

import "context"

// Generator is the external summarization capability: one synchronous call per
// (model, system prompt, user content) triple.
type Generator interface {
	Generate(ctx context.Context, model, systemPrompt, userContent string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, model, systemPrompt, userContent string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, model, systemPrompt, userContent string) (string, error) {
	return f(ctx, model, systemPrompt, userContent)
}
