package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Loader reads template documents fully into memory.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem backs fs sources created without an explicit fs.FS.
	FileSystem fs.FS
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects the fs.FS used by fs sources that do not carry
// their own.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// NewLoader constructs the default Loader.
func NewLoader(options ...LoaderOption) Loader {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &loader{options: cfg}
}

type loader struct {
	options LoaderOptions
}

func (l *loader) Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("document loader: source is required")
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch s := src.(type) {
	case fileSource:
		data, err = loadFile(s.path)
	case fsSource:
		data, err = l.loadFS(s)
	default:
		return Document{}, fmt.Errorf("document loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, err
	}
	return New(src, string(data))
}

func loadFile(path string) ([]byte, error) {
	if path == "" || path == "." {
		return nil, inputError("read", path, errors.New("file path is required"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, inputError("read", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, inputError("read", path, unwrapPathErr(err))
	}
	return data, nil
}

func (l *loader) loadFS(src fsSource) ([]byte, error) {
	fsys := src.fsys
	if fsys == nil {
		fsys = l.options.FileSystem
	}
	if fsys == nil {
		return nil, inputError("read", src.name, errors.New("no filesystem configured"))
	}

	data, err := fs.ReadFile(fsys, src.name)
	if err != nil {
		return nil, inputError("read", src.name, unwrapPathErr(err))
	}
	return data, nil
}

// unwrapPathErr drops the *fs.PathError wrapper so the path is not repeated in
// the message.
func unwrapPathErr(err error) error {
	var perr *fs.PathError
	if errors.As(err, &perr) && perr.Err != nil {
		return perr.Err
	}
	return err
}
