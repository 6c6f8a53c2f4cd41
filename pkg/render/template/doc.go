// Package template defines the renderer-agnostic interface used for pages that
// need loops and formatting (the results table), as opposed to the literal
// placeholder substitution done by package placeholder.
package template
