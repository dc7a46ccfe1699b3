package tokenizer

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Count returns the number of tokens text encodes to under model's encoding.
// Special-token markers inside text are counted as ordinary text.
func (c *implCounter) Count(text, model string) (int, error) {
	enc, err := c.encoding(model)
	if err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}
	return len(enc.EncodeOrdinary(text)), nil
}

func (c *implCounter) encoding(model string) (*tiktoken.Tiktoken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if enc, ok := c.encodings[model]; ok {
		return enc, nil
	}

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, &EncodingError{Model: model, Err: err}
	}
	c.encodings[model] = enc
	return enc, nil
}

// Words returns the whitespace-separated word count of text.
func Words(text string) int {
	return len(strings.Fields(text))
}
