package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile assembles the whole document with fill before touching path,
// then replaces path through a temporary file in the same directory. A
// failure leaves any existing file unchanged.
func WriteFile(path string, fill func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}
	name := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(name)
		return &OutputWriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return &OutputWriteError{Path: path, Err: err}
	}
	if err := os.Chmod(name, 0644); err != nil {
		os.Remove(name)
		return &OutputWriteError{Path: path, Err: err}
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return &OutputWriteError{Path: path, Err: err}
	}
	return nil
}

// DefaultPath is input with its extension replaced by ext.
func DefaultPath(input, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}
