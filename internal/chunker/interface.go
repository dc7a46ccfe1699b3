package chunker

// Chunker splits raw transcript text into ordered, bounded-size chunks.
type Chunker interface {
	Split(text string) ([]Chunk, error)
}

// Chunk is one contiguous span of transcript text.
type Chunk struct {
	Index  int
	Text   string
	Tokens int
}

// Mode selects how text is partitioned. It is fixed at construction.
type Mode string

const (
	// ModeToken groups whole sentences under a token budget.
	ModeToken Mode = "token"
	// ModeWord cuts fixed-size word windows with no sentence awareness.
	ModeWord Mode = "word"
)
