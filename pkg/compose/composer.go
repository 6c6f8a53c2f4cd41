package compose

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-ahpgen/pkg/document"
	"github.com/goliatone/go-ahpgen/pkg/placeholder"
)

// Default locations, relative to the working directory.
const (
	DefaultComparisonPath = "comparison.html"
	DefaultIndexPath      = "index.html"
	DefaultOutputPath     = "test/test.html"
)

// Option customises the Composer configuration.
type Option func(*Composer)

// WithLoader injects a custom template loader.
func WithLoader(loader document.Loader) Option {
	return func(c *Composer) {
		if loader != nil {
			c.loader = loader
		}
	}
}

// WithWriter injects a custom output writer.
func WithWriter(writer document.Writer) Option {
	return func(c *Composer) {
		if writer != nil {
			c.writer = writer
		}
	}
}

// WithComparison overrides the default comparison template source.
func WithComparison(src document.Source) Option {
	return func(c *Composer) {
		if src != nil {
			c.comparison = src
		}
	}
}

// WithIndex overrides the default index template source.
func WithIndex(src document.Source) Option {
	return func(c *Composer) {
		if src != nil {
			c.index = src
		}
	}
}

// WithSanitizer cleans choice values before substitution. Nil keeps values
// verbatim.
func WithSanitizer(s Sanitizer) Option {
	return func(c *Composer) {
		c.sanitizer = s
	}
}

// WithThemeStyle sets the CSS injected at the {THEME_STYLE} marker of the
// index page. Without it the marker is left in place.
func WithThemeStyle(css string) Option {
	return func(c *Composer) {
		c.themeStyle = css
		c.themed = true
	}
}

// Composer renders the combined comparison page.
type Composer struct {
	loader     document.Loader
	writer     document.Writer
	comparison document.Source
	index      document.Source
	sanitizer  Sanitizer
	themeStyle string
	themed     bool
}

// New constructs a Composer applying any provided options. Missing
// dependencies fall back to the filesystem loader and atomic writer reading
// comparison.html and index.html from the working directory.
func New(options ...Option) *Composer {
	c := &Composer{
		loader:     document.NewLoader(),
		writer:     document.NewWriter(),
		comparison: document.SourceFromFile(DefaultComparisonPath),
		index:      document.SourceFromFile(DefaultIndexPath),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Request describes one render.
type Request struct {
	// Choice1 and Choice2 replace {CHOICE1} and {CHOICE2}.
	Choice1 string
	Choice2 string

	// Comparison and Index override the configured template sources.
	Comparison document.Source
	Index      document.Source

	// Choices, when set, is substituted for {CHOICES} after the rendered
	// comparison block. It lets callers append extra markup such as a
	// ranking table.
	Choices string

	// Output is the destination path used by Generate. Defaults to
	// DefaultOutputPath.
	Output string
}

// Result reports what Generate produced.
type Result struct {
	Output     string
	Bytes      int
	Document   document.Document
	Unresolved []placeholder.Token
}

// Compose loads both templates and returns the combined document without
// writing it.
func (c *Composer) Compose(ctx context.Context, req Request) (document.Document, error) {
	if c == nil {
		return document.Document{}, errors.New("compose: composer is nil")
	}

	comparisonSrc := req.Comparison
	if comparisonSrc == nil {
		comparisonSrc = c.comparison
	}
	indexSrc := req.Index
	if indexSrc == nil {
		indexSrc = c.index
	}

	comparison, err := c.loader.Load(ctx, comparisonSrc)
	if err != nil {
		return document.Document{}, fmt.Errorf("compose: load comparison: %w", err)
	}
	index, err := c.loader.Load(ctx, indexSrc)
	if err != nil {
		return document.Document{}, fmt.Errorf("compose: load index: %w", err)
	}

	return c.Combine(comparison, index, req), nil
}

// Combine performs the substitutions on already loaded templates.
func (c *Composer) Combine(comparison, index document.Document, req Request) document.Document {
	block := comparison.Substitute(
		placeholder.With(placeholder.TokenChoice1, c.clean(req.Choice1)),
		placeholder.With(placeholder.TokenChoice2, c.clean(req.Choice2)),
	)

	subs := []placeholder.Substitution{
		placeholder.With(placeholder.TokenChoices, block.Text()+req.Choices),
	}
	if c.themed {
		subs = append(subs, placeholder.With(placeholder.TokenThemeStyle, c.themeStyle))
	}
	return index.Substitute(subs...)
}

// Generate composes the page and writes it to req.Output.
func (c *Composer) Generate(ctx context.Context, req Request) (Result, error) {
	doc, err := c.Compose(ctx, req)
	if err != nil {
		return Result{}, err
	}

	output := req.Output
	if output == "" {
		output = DefaultOutputPath
	}
	if err := c.writer.Write(ctx, output, doc); err != nil {
		return Result{}, fmt.Errorf("compose: write output: %w", err)
	}

	return Result{
		Output:     output,
		Bytes:      doc.Len(),
		Document:   doc,
		Unresolved: placeholder.Scan(doc.Text()),
	}, nil
}

func (c *Composer) clean(value string) string {
	if c.sanitizer == nil {
		return value
	}
	return c.sanitizer.Sanitize(value)
}
