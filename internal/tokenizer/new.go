package tokenizer

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tokenloader "github.com/pkoukk/tiktoken-go-loader"
)

var loaderOnce sync.Once

type implCounter struct {
	mu        sync.Mutex
	encodings map[string]*tiktoken.Tiktoken
}

// New creates a Counter backed by tiktoken BPE ranks embedded in the binary,
// so counting never downloads vocabulary files.
func New() Counter {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tokenloader.NewOfflineLoader())
	})
	return &implCounter{
		encodings: make(map[string]*tiktoken.Tiktoken),
	}
}
