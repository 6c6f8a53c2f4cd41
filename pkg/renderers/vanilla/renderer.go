// Package vanilla renders the ranking tables as an HTML fragment through the
// pongo2 results template.
package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"

	"github.com/goliatone/go-ahpgen/pkg/ahp"
	"github.com/goliatone/go-ahpgen/pkg/render"
	rendertemplate "github.com/goliatone/go-ahpgen/pkg/render/template"
	"github.com/goliatone/go-ahpgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-ahpgen/pkg/session"
	"github.com/goliatone/go-ahpgen/pkg/templates"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. It must
// contain results.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the renderer over the embedded templates unless overridden.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = templates.TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	if err := renderer.RegisterFilter(shareFilter, sharePercent); err != nil && !errors.Is(err, rendertemplate.ErrFilterExists) {
		return nil, fmt.Errorf("vanilla renderer: register %s filter: %w", shareFilter, err)
	}
	if err := renderer.GlobalContext(map[string]any{
		"consistency_threshold": ahp.ConsistencyThreshold,
	}); err != nil {
		return nil, fmt.Errorf("vanilla renderer: template globals: %w", err)
	}
	return &Renderer{templates: renderer}, nil
}

const shareFilter = "percent"

// sharePercent renders a 0..1 share as a whole percentage (0.4567 -> "46%").
func sharePercent(input any, _ any) (any, error) {
	var v float64
	switch n := input.(type) {
	case float64:
		v = n
	case int:
		v = float64(n)
	default:
		return "", nil
	}
	return fmt.Sprintf("%d%%", int(math.Round(v*100))), nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, eval session.Evaluation, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(templates.ResultsName, map[string]any{
		"ranking":        eval.Ranking,
		"criteria":       eval.Criteria,
		"criteria_ratio": eval.CriteriaRatio,
		"consistent":     eval.Consistent,
		"precision":      options.Decimals(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
