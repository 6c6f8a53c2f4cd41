package template

import (
	"errors"
	"io"
)

// ErrFilterExists is returned by RegisterFilter when the name is taken.
// pongo2 filters are process-wide, so a second engine registering the same
// filter sees it.
var ErrFilterExists = errors.New("template: filter already registered")

// TemplateRenderer is the seam page renderers go through. The pongo2
// implementation lives in the gotemplate subpackage.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
