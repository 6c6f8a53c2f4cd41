package document

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Writer persists a rendered document at a path, creating the parent
// directory when it is missing.
type Writer interface {
	Write(ctx context.Context, path string, doc Document) error
}

// WriterOptions configures the filesystem writer.
type WriterOptions struct {
	// Atomic writes to a temp file in the target directory and renames it over
	// the destination. Defaults to true.
	Atomic bool
	// PermFile and PermDir default to 0o644 and 0o755.
	PermFile os.FileMode
	PermDir  os.FileMode
}

// WriterOption mutates WriterOptions prior to construction.
type WriterOption func(*WriterOptions)

// WithAtomic toggles temp file plus rename writes.
func WithAtomic(enabled bool) WriterOption {
	return func(opts *WriterOptions) {
		opts.Atomic = enabled
	}
}

// WithPermissions overrides the file and directory modes. Zero values keep the
// defaults.
func WithPermissions(file, dir os.FileMode) WriterOption {
	return func(opts *WriterOptions) {
		if file != 0 {
			opts.PermFile = file
		}
		if dir != 0 {
			opts.PermDir = dir
		}
	}
}

// NewWriter constructs the default filesystem Writer.
func NewWriter(options ...WriterOption) Writer {
	cfg := WriterOptions{
		Atomic:   true,
		PermFile: 0o644,
		PermDir:  0o755,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &fsWriter{options: cfg}
}

type fsWriter struct {
	options WriterOptions
}

func (w *fsWriter) Write(ctx context.Context, path string, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dest := filepath.Clean(strings.TrimSpace(path))
	if dest == "" || dest == "." {
		return outputError("write", path, errors.New("output path is required"))
	}

	if err := EnsureDir(filepath.Dir(dest), w.options.PermDir); err != nil {
		return err
	}

	if w.options.Atomic {
		return w.writeAtomic(dest, doc.Bytes())
	}
	if err := os.WriteFile(dest, doc.Bytes(), w.options.PermFile); err != nil {
		return outputError("write", dest, unwrapPathErr(err))
	}
	return nil
}

// EnsureDir creates dir and its parents. An existing directory is not an
// error.
func EnsureDir(dir string, perm os.FileMode) error {
	if dir == "" || dir == "." {
		return nil
	}
	if perm == 0 {
		perm = 0o755
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		return outputError("mkdir", dir, unwrapPathErr(err))
	}
	return nil
}

func (w *fsWriter) writeAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return outputError("write", dest, unwrapPathErr(err))
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, w.options.PermFile)

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return outputError("write", dest, unwrapPathErr(err))
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return outputError("write", dest, unwrapPathErr(err))
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return outputError("rename", dest, unwrapPathErr(err))
	}
	return nil
}
