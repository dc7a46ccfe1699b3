package chunker

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/lamb-russell/transcript-summary-ai/internal/tokenizer"
)

const dinosaurText = "In the realm of scientific exploration, the idea of cloning dinosaurs has always stirred " +
	"a mix of awe and controversy. With advancements in biotechnology, the potential to extract " +
	"and utilize ancient DNA from well-preserved amber fossils is becoming increasingly feasible. " +
	"Scientists envision resurrecting these colossal creatures, offering humanity a chance to witness " +
	"the Mesozoic era's majestic beasts firsthand." +
	"\n\n" +
	"However, this pursuit is riddled with ethical and ecological questions. Would a cloned dinosaur, " +
	"born millions of years after its natural era, truly belong in our contemporary world? Modern " +
	"ecosystems are vastly different, and these creatures might find no niche or face unforeseen health " +
	"issues. There's also the moral quandary of creating life for mere spectacle. Would we be subjecting " +
	"these animals to a life of confinement, far from the wild landscapes they were adapted to?" +
	"\n\n" +
	"While the dream of seeing a Tyrannosaurus rex or a Brachiosaurus up close is thrilling, the " +
	"responsibility that comes with such power is immense. The technology is advancing, but the global " +
	"community must weigh the profound consequences. As we stand on the brink of making science fiction " +
	"a reality, intense debate ensures that we proceed with caution and respect for life."

// wordCounter counts one token per whitespace-separated word.
type wordCounter struct{}

func (wordCounter) Count(text, model string) (int, error) {
	if model != "words" {
		return 0, &tokenizer.EncodingError{Model: model, Err: errors.New("not registered")}
	}
	return len(strings.Fields(text)), nil
}

func newTestChunker(t *testing.T, opts Options, counter tokenizer.Counter) Chunker {
	t.Helper()
	c, err := New(opts, counter)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func texts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \n\t ", nil},
		{"single without terminator", "no punctuation here", []string{"no punctuation here"}},
		{"mixed terminators", "One. Two! Three? Four", []string{"One.", "Two!", "Three?", "Four"}},
		{"newlines between", "First.\n\nSecond.", []string{"First.", "Second."}},
		{"punctuation inside token", "Version 2.5 shipped. e.g.this stays", []string{"Version 2.5 shipped.", "e.g.this stays"}},
		{"ellipsis", "Wait... what?  Yes.", []string{"Wait...", "what?", "Yes."}},
		{"unicode space", "Hola.\u00a0Adiós.", []string{"Hola.", "Adiós."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sentences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitSingleChunk(t *testing.T) {
	c := newTestChunker(t, Options{Mode: ModeToken, MaxTokens: 1000, Model: "words"}, wordCounter{})

	chunks, err := c.Split("The meeting started late. Budget was approved! Any questions?")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("len(chunks) = %d, want 1", len(chunks))
	}
	if chunks[0].Text != "The meeting started late. Budget was approved! Any questions?" {
		t.Errorf("chunk = %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 || chunks[0].Tokens != 9 {
		t.Errorf("chunk = %+v, want index 0 and 9 tokens", chunks[0])
	}
}

func TestSplitDinosaurText(t *testing.T) {
	counter := tokenizer.New()
	c := newTestChunker(t, Options{Mode: ModeToken, MaxTokens: 100, Model: "gpt-3.5-turbo"}, counter)

	want := []string{
		"In the realm of scientific exploration, the idea of cloning dinosaurs has always stirred " +
			"a mix of awe and controversy. With advancements in biotechnology, the potential to extract " +
			"and utilize ancient DNA from well-preserved amber fossils is becoming increasingly feasible. " +
			"Scientists envision resurrecting these colossal creatures, offering humanity a chance to witness " +
			"the Mesozoic era's majestic beasts firsthand. However, this pursuit is riddled with ethical and " +
			"ecological questions.",
		"Would a cloned dinosaur, born millions of years after its natural era, truly belong in our " +
			"contemporary world? Modern ecosystems are vastly different, and these creatures might find no " +
			"niche or face unforeseen health issues. There's also the moral quandary of creating life for mere " +
			"spectacle. Would we be subjecting these animals to a life of confinement, far from the wild " +
			"landscapes they were adapted to?",
		"While the dream of seeing a Tyrannosaurus rex or a Brachiosaurus up close is thrilling, the " +
			"responsibility that comes with such power is immense. The technology is advancing, but the global " +
			"community must weigh the profound consequences. As we stand on the brink of making science fiction " +
			"a reality, intense debate ensures that we proceed with caution and respect for life.",
	}

	chunks, err := c.Split(dinosaurText)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if got := texts(chunks); !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() =\n%q\nwant\n%q", got, want)
	}

	for _, ch := range chunks {
		n, err := counter.Count(ch.Text, "gpt-3.5-turbo")
		if err != nil {
			t.Fatal(err)
		}
		if n > 100 {
			t.Errorf("chunk %d has %d tokens, over budget", ch.Index, n)
		}
		if ch.Tokens != n {
			t.Errorf("chunk %d Tokens = %d, measured %d", ch.Index, ch.Tokens, n)
		}
	}
}

func TestSplitOversizedSentence(t *testing.T) {
	c := newTestChunker(t, Options{Mode: ModeToken, MaxTokens: 5, Model: "words"}, wordCounter{})

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lone oversized sentence",
			text: "this single sentence has far more than five words in it.",
			want: []string{"this single sentence has far more than five words in it."},
		},
		{
			name: "oversized between small sentences",
			text: "Short one. this sentence is definitely longer than the budget allows. Tiny.",
			want: []string{
				"Short one.",
				"this sentence is definitely longer than the budget allows.",
				"Tiny.",
			},
		},
		{
			name: "oversized first sentence emits no empty chunk",
			text: "one two three four five six seven. eight.",
			want: []string{"one two three four five six seven.", "eight."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := c.Split(tt.text)
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if got := texts(chunks); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitEmpty(t *testing.T) {
	c := newTestChunker(t, Options{Mode: ModeToken, MaxTokens: 10, Model: "words"}, wordCounter{})

	for _, text := range []string{"", "   ", "\n\n"} {
		chunks, err := c.Split(text)
		if err != nil {
			t.Fatalf("Split(%q) error = %v", text, err)
		}
		if len(chunks) != 0 {
			t.Errorf("Split(%q) = %v, want no chunks", text, chunks)
		}
	}
}

func TestSplitProperties(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString(strings.Repeat("word ", 1+i%7))
		switch i % 3 {
		case 0:
			b.WriteString("end. ")
		case 1:
			b.WriteString("end!\n")
		default:
			b.WriteString("end?\n\n")
		}
	}
	text := b.String()

	const max = 12
	c := newTestChunker(t, Options{Mode: ModeToken, MaxTokens: max, Model: "words"}, wordCounter{})

	first, err := c.Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	second, err := c.Split(text)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	t.Run("idempotent", func(t *testing.T) {
		if !reflect.DeepEqual(first, second) {
			t.Error("Split() returned different chunks for identical input")
		}
	})

	t.Run("coverage", func(t *testing.T) {
		joined := strings.Join(texts(first), " ")
		if !reflect.DeepEqual(Sentences(joined), Sentences(text)) {
			t.Error("joined chunks do not reconstruct the sentence sequence")
		}
	})

	t.Run("budget", func(t *testing.T) {
		for _, ch := range first {
			if ch.Tokens > max && len(Sentences(ch.Text)) > 1 {
				t.Errorf("chunk %d has %d tokens over %d sentences", ch.Index, ch.Tokens, len(Sentences(ch.Text)))
			}
		}
	})

	t.Run("indices", func(t *testing.T) {
		for i, ch := range first {
			if ch.Index != i {
				t.Errorf("chunk %d has Index %d", i, ch.Index)
			}
		}
	})
}

func TestSplitWordWindows(t *testing.T) {
	c := newTestChunker(t, Options{Mode: ModeWord, WordWindow: 4, Model: "words"}, wordCounter{})

	chunks, err := c.Split("one two three. four five\nsix seven eight nine ten")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	want := []string{"one two three. four", "five six seven eight", "nine ten"}
	if got := texts(chunks); !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %q, want %q", got, want)
	}
	if chunks[2].Tokens != 2 {
		t.Errorf("last chunk Tokens = %d, want 2", chunks[2].Tokens)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"unknown mode", Options{Mode: "paragraph", MaxTokens: 10, Model: "words"}},
		{"zero budget", Options{Mode: ModeToken, MaxTokens: 0, Model: "words"}},
		{"zero word window", Options{Mode: ModeWord, WordWindow: 0, Model: "words"}},
		{"unknown encoding", Options{Mode: ModeToken, MaxTokens: 10, Model: "mystery"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts, wordCounter{}); err == nil {
				t.Error("New() should return an error")
			}
		})
	}

	_, err := New(Options{Mode: ModeToken, MaxTokens: 10, Model: "mystery"}, wordCounter{})
	if !errors.Is(err, tokenizer.ErrUnknownEncoding) {
		t.Errorf("New() error = %v, want ErrUnknownEncoding", err)
	}
}
