package tokenizer

import (
	"errors"
	"fmt"
)

// ErrUnknownEncoding is matched by every EncodingError.
var ErrUnknownEncoding = errors.New("unknown model encoding")

// EncodingError reports a model with no known token encoding.
type EncodingError struct {
	Model string
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("token encoding for model %q: %v", e.Model, e.Err)
}

func (e *EncodingError) Is(target error) bool {
	return target == ErrUnknownEncoding
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
