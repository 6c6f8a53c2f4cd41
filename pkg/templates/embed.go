package templates

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html templates/*.tpl
var embeddedTemplates embed.FS

//go:embed static/*
var embeddedStatic embed.FS

const (
	ComparisonName = "comparison.html"
	IndexName      = "index.html"
	ResultsName    = "results.tpl"
)

// TemplatesFS exposes the embedded template bundle rooted at the template
// names (comparison.html, index.html, results.tpl).
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// StaticFS exposes the embedded browser assets (scripts.js, styles.css) so
// callers can serve them over HTTP or copy them next to a rendered page.
func StaticFS() fs.FS {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		return embeddedStatic
	}
	return sub
}
