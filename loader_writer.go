package ahpgen

import (
	"github.com/goliatone/go-ahpgen/pkg/document"
)

// NewLoader constructs the template loader while keeping the concrete type
// hidden from consumers.
func NewLoader(options ...document.LoaderOption) document.Loader {
	return document.NewLoader(options...)
}

// NewWriter constructs the output writer (atomic by default).
func NewWriter(options ...document.WriterOption) document.Writer {
	return document.NewWriter(options...)
}
