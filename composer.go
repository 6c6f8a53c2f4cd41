package ahpgen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ahpgen/pkg/compose"
	"github.com/goliatone/go-ahpgen/pkg/themes"
)

// Request aliases compose.Request for callers using the top-level package.
type Request = compose.Request

// Result aliases compose.Result.
type Result = compose.Result

// NewComposer exposes the composer constructor from the top-level module.
func NewComposer(options ...compose.Option) *compose.Composer {
	return compose.New(options...)
}

// GenerateHTML substitutes the two choices into the comparison block, places
// the block into the index page and writes the page to output (test/test.html
// when empty). It is the simplest entry point for callers that just want the
// file.
func GenerateHTML(ctx context.Context, choice1, choice2, output string, options ...compose.Option) (Result, error) {
	return compose.New(options...).Generate(ctx, compose.Request{
		Choice1: choice1,
		Choice2: choice2,
		Output:  output,
	})
}

// ComposeHTML returns the combined page without writing it.
func ComposeHTML(ctx context.Context, choice1, choice2 string, options ...compose.Option) ([]byte, error) {
	doc, err := compose.New(options...).Compose(ctx, compose.Request{
		Choice1: choice1,
		Choice2: choice2,
	})
	if err != nil {
		return nil, err
	}
	return doc.Bytes(), nil
}

// ThemeStyle resolves a theme through selector and returns the inline CSS
// rule injected at {THEME_STYLE}. Empty names fall back to the built-in theme.
func ThemeStyle(selector theme.ThemeSelector, name, variant string) (string, error) {
	cfg, err := themes.NewResolver(selector, themes.DefaultTheme, themes.DefaultVariant).Resolve(name, variant)
	if err != nil {
		return "", err
	}
	return themes.Style(cfg), nil
}

// WithTheme resolves the theme up front and returns the composer option
// carrying its style.
func WithTheme(selector theme.ThemeSelector, name, variant string) (compose.Option, error) {
	style, err := ThemeStyle(selector, name, variant)
	if err != nil {
		return nil, err
	}
	return compose.WithThemeStyle(style), nil
}
