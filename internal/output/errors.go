package output

import "fmt"

// FileIOError reports a failed transcript read or summary write.
type FileIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileIOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileIOError) Unwrap() error {
	return e.Err
}
