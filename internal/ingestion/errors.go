package ingestion

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorKind classifies why a measurements source could not be opened.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindPermission ErrorKind = "permission_denied"
	KindOther      ErrorKind = "other"
)

// OpenError is returned when the measurements file cannot be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open measurements %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Kind classifies the underlying cause.
func (e *OpenError) Kind() ErrorKind {
	switch {
	case errors.Is(e.Err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(e.Err, fs.ErrPermission):
		return KindPermission
	default:
		return KindOther
	}
}

// IsNotFound reports whether err means the measurements source does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// ReadError is returned when the source fails mid-stream. Everything read
// before Line is already aggregated and remains queryable.
type ReadError struct {
	Line int64 // 1-based number of the line being read when the failure occurred
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read measurements at line %d: %v", e.Line, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
