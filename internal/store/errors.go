package store

import (
	"fmt"
	"strings"
)

// LoadError means the events file cannot be used at all: it could not be
// read or parsed, or required columns are missing. Nothing can be rendered.
type LoadError struct {
	Path    string
	Missing []string
	Err     error
}

func (e *LoadError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("load %s: missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// CategoryWarning is returned alongside the default category set when the
// categories file is missing, malformed or empty. It is not fatal.
type CategoryWarning struct {
	Path   string
	Reason string
	Err    error
}

func (w *CategoryWarning) Error() string {
	if w.Err != nil {
		return fmt.Sprintf("categories %s: %s: %v; using default categories", w.Path, w.Reason, w.Err)
	}
	return fmt.Sprintf("categories %s: %s; using default categories", w.Path, w.Reason)
}

func (w *CategoryWarning) Unwrap() error { return w.Err }

// PersistError means a validated submission could not be written back.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
