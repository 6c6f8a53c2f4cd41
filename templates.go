// Package ahpgen is the top-level entry point: it composes the comparison
// block into the index page and re-exports the embedded templates and assets.
package ahpgen

import (
	"io/fs"

	"github.com/goliatone/go-ahpgen/pkg/compose"
	"github.com/goliatone/go-ahpgen/pkg/document"
	"github.com/goliatone/go-ahpgen/pkg/templates"
)

// EmbeddedTemplates exposes the built-in templates (comparison.html,
// index.html, results.tpl) so callers can reuse or extend them without
// importing the templates package directly.
func EmbeddedTemplates() fs.FS {
	return templates.TemplatesFS()
}

// WithEmbeddedTemplates points a composer at the built-in comparison and index
// templates instead of files in the working directory.
func WithEmbeddedTemplates() compose.Option {
	fsys := templates.TemplatesFS()
	return func(c *compose.Composer) {
		compose.WithComparison(document.SourceFromFS(fsys, templates.ComparisonName))(c)
		compose.WithIndex(document.SourceFromFS(fsys, templates.IndexName))(c)
	}
}
