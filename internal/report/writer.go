package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteError indicates the rendered report could not be persisted. Permissions,
// a locked path, and a full disk all land here; none are recoverable within
// the run.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not write report to %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WriteFile writes the rendered report as UTF-8 text, overwriting any previous
// run's file, and returns the absolute path of what it wrote.
func WriteFile(path, content string) (string, error) {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
