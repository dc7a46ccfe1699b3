package tokenizer

// Counter counts tokens with the exact vocabulary encoding of a model.
type Counter interface {
	Count(text, model string) (int, error)
}
