package processor

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/lamb-russell/transcript-summary-ai/internal/output"
	"github.com/lamb-russell/transcript-summary-ai/internal/tokenizer"
)

// readTranscript loads the whole transcript. Invalid UTF-8 is rejected rather than
// handed to the tokenizer.
func (p *implProcessor) readTranscript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &output.FileIOError{Op: "read", Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &output.FileIOError{Op: "read", Path: path, Err: fmt.Errorf("not valid UTF-8")}
	}
	return string(data), nil
}

// logSize reports token and word counts for text.
func (p *implProcessor) logSize(ctx context.Context, what, text string) error {
	tokens, err := p.counter.Count(text, p.opts.TokenizerModel)
	if err != nil {
		return fmt.Errorf("count %s tokens: %w", what, err)
	}
	p.logger.Info(ctx, "%s size %d tokens, %d words", what, tokens, tokenizer.Words(text))
	return nil
}
