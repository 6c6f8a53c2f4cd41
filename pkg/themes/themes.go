package themes

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

const (
	DefaultTheme   = "ahpgen"
	DefaultVariant = "light"
)

var ErrUnknownTheme = errors.New("themes: unknown theme")

// DefaultManifest returns the built-in palette with a dark variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			"ahp-background": "#f7f7f5",
			"ahp-foreground": "#1f2933",
			"ahp-accent":     "#2f6f9f",
			"ahp-muted":      "#8a949e",
			"ahp-warning":    "#b7791f",
		},
		Assets: theme.Assets{
			Prefix: "/static",
			Files: map[string]string{
				"stylesheet": "styles.css",
				"script":     "scripts.js",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"ahp-background": "#15191d",
					"ahp-foreground": "#e6e9ec",
					"ahp-accent":     "#6fb3e0",
				},
			},
		},
	}
}

// Catalog is a ThemeSelector over a fixed set of manifests. Manifests are
// validated through a go-theme registry when added.
type Catalog struct {
	mu        sync.RWMutex
	registry  interface{ Register(*theme.Manifest) error }
	manifests map[string]*theme.Manifest
}

// NewCatalog registers the given manifests.
func NewCatalog(manifests ...*theme.Manifest) (*Catalog, error) {
	c := &Catalog{
		registry:  theme.NewRegistry(),
		manifests: make(map[string]*theme.Manifest),
	}
	for _, m := range manifests {
		if err := c.Add(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add registers a manifest, replacing none: names must be unique.
func (c *Catalog) Add(m *theme.Manifest) error {
	if m == nil {
		return fmt.Errorf("themes: nil manifest")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.registry.Register(m); err != nil {
		return fmt.Errorf("themes: register %q: %w", m.Name, err)
	}
	c.manifests[m.Name] = m
	return nil
}

// Select implements theme.ThemeSelector. An empty name picks DefaultTheme;
// variants the manifest does not define fall back to the base tokens.
func (c *Catalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultTheme
	}
	c.mu.RLock()
	m, ok := c.manifests[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}

var _ theme.ThemeSelector = (*Catalog)(nil)

// Resolver turns theme and variant names into renderer configuration.
type Resolver struct {
	selector       theme.ThemeSelector
	defaultTheme   string
	defaultVariant string
}

// NewResolver wraps a selector with default theme and variant names.
func NewResolver(selector theme.ThemeSelector, defaultTheme, defaultVariant string) *Resolver {
	return &Resolver{
		selector:       selector,
		defaultTheme:   defaultTheme,
		defaultVariant: defaultVariant,
	}
}

// Resolve selects a theme and derives its renderer configuration.
func (r *Resolver) Resolve(name, variant string) (*theme.RendererConfig, error) {
	if r == nil || r.selector == nil {
		return nil, fmt.Errorf("themes: no selector configured")
	}
	if name == "" {
		name = r.defaultTheme
	}
	if variant == "" {
		variant = r.defaultVariant
	}
	selection, err := r.selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return ConfigFromSelection(selection), nil
}

// ConfigFromSelection merges base and variant tokens, templates and assets.
func ConfigFromSelection(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	m := selection.Manifest

	tokens := merge(m.Tokens, nil)
	partials := merge(m.Templates, nil)
	files := merge(m.Assets.Files, nil)
	prefix := m.Assets.Prefix

	if v, ok := m.Variants[selection.Variant]; ok {
		tokens = merge(tokens, v.Tokens)
		partials = merge(partials, v.Templates)
		files = merge(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for k, v := range tokens {
		cssVars["--"+k] = v
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}
}

// Style renders the CSS variables as a :root rule, sorted by name.
func Style(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root{")
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(cssValue(cfg.CSSVars[name]))
		b.WriteByte(';')
	}
	b.WriteString("}")
	return b.String()
}

// cssValue drops characters that could close the style element or rule.
func cssValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '{', '}', ';':
			return -1
		}
		return r
	}, v)
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok {
			return ""
		}
		if prefix == "" {
			return file
		}
		return prefix + "/" + strings.TrimLeft(file, "/")
	}
}

func merge(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// WithTokens returns a copy of base whose tokens are overlaid by tokens.
// Variants are shared with base.
func WithTokens(base *theme.Manifest, tokens map[string]string) *theme.Manifest {
	if base == nil {
		return nil
	}
	out := *base
	out.Tokens = merge(base.Tokens, tokens)
	return &out
}
