package chunker

import (
	"strings"
)

// Split partitions text according to the configured mode. Identical input always
// yields an identical chunk sequence; empty text yields no chunks.
func (c *implChunker) Split(text string) ([]Chunk, error) {
	var parts []string
	var err error

	switch c.opts.Mode {
	case ModeWord:
		parts = c.splitWords(text)
	default:
		parts, err = c.splitSentences(text)
		if err != nil {
			return nil, err
		}
	}

	chunks := make([]Chunk, 0, len(parts))
	for i, part := range parts {
		n, err := c.counter.Count(part, c.opts.Model)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, Chunk{Index: i, Text: part, Tokens: n})
	}
	return chunks, nil
}

// splitSentences accumulates whole sentences while the running token sum stays
// within MaxTokens. A sentence over budget on its own becomes a chunk by itself.
func (c *implChunker) splitSentences(text string) ([]string, error) {
	var parts []string
	var current []string
	running := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		parts = append(parts, strings.TrimSpace(strings.Join(current, " ")))
		current = nil
		running = 0
	}

	for _, sentence := range Sentences(text) {
		n, err := c.counter.Count(sentence, c.opts.Model)
		if err != nil {
			return nil, err
		}

		if running+n > c.opts.MaxTokens {
			flush()
		}
		current = append(current, sentence)
		running += n
	}
	flush()

	return parts, nil
}

func (c *implChunker) splitWords(text string) []string {
	words := strings.Fields(text)

	var parts []string
	for start := 0; start < len(words); start += c.opts.WordWindow {
		end := start + c.opts.WordWindow
		if end > len(words) {
			end = len(words)
		}
		parts = append(parts, strings.Join(words[start:end], " "))
	}
	return parts
}
