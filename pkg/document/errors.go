package document

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotFound signals that a template could not be opened for reading.
	ErrInputNotFound = errors.New("input not found")
	// ErrOutputWrite signals that the output directory or file could not be
	// written.
	ErrOutputWrite = errors.New("output write failure")
)

// PathError records a failed filesystem operation together with its kind.
type PathError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
}

// Unwrap exposes the underlying cause.
func (e *PathError) Unwrap() error {
	return e.Err
}

// Is matches the error kind so errors.Is(err, ErrInputNotFound) works.
func (e *PathError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

func inputError(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Kind: ErrInputNotFound, Err: err}
}

func outputError(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Kind: ErrOutputWrite, Err: err}
}

// FailedPath returns the path carried by err when it wraps a *PathError.
func FailedPath(err error) (string, bool) {
	var perr *PathError
	if errors.As(err, &perr) {
		return perr.Path, true
	}
	return "", false
}
