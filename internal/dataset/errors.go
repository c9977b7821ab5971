package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a variable or dimension name absent from the file.
	ErrNotFound = errors.New("dataset: not found")

	// ErrNoDataVariable indicates that every variable is a coordinate variable.
	ErrNoDataVariable = errors.New("dataset: no data-bearing variable")

	// ErrNonNumeric indicates a value that cannot be read as a number.
	ErrNonNumeric = errors.New("dataset: value is not numeric")
)

// FileOpenError reports a path that could not be opened or whose header
// could not be parsed.
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error {
	return e.Err
}
