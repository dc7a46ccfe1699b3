package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentences segments text at end punctuation (. ! ?) followed by whitespace.
// The punctuation stays with its sentence and the whitespace run is dropped.
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		if i >= len(text) {
			break
		}
		if next, _ := utf8.DecodeRuneInString(text[i:]); !unicode.IsSpace(next) {
			continue
		}

		sentences = append(sentences, text[start:i])
		for i < len(text) {
			ws, wsize := utf8.DecodeRuneInString(text[i:])
			if !unicode.IsSpace(ws) {
				break
			}
			i += wsize
		}
		start = i
	}

	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}
