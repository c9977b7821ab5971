package export

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat indicates a conversion format other than json or csv.
var ErrUnknownFormat = errors.New("export: unknown format")

// OutputWriteError reports a document that could not be persisted.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}
