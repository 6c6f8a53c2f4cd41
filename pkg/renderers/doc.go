// Package renderers wires the built-in ranking renderers into a registry.
package renderers

import (
	"github.com/goliatone/go-ahpgen/pkg/render"
	"github.com/goliatone/go-ahpgen/pkg/renderers/structured"
	"github.com/goliatone/go-ahpgen/pkg/renderers/text"
	"github.com/goliatone/go-ahpgen/pkg/renderers/vanilla"
)

// NewRegistry registers the text, json, yaml and vanilla (HTML) renderers.
func NewRegistry(options ...vanilla.Option) (*render.Registry, error) {
	html, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	for _, r := range []render.Renderer{
		text.New(),
		structured.New(structured.FormatJSON),
		structured.New(structured.FormatYAML),
		html,
	} {
		if err := registry.Register(r); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
