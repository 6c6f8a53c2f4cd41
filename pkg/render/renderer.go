package render

import (
	"context"

	"github.com/goliatone/go-ahpgen/pkg/session"
)

// Renderer converts an Evaluation into a byte representation (text, JSON,
// HTML fragment).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, eval session.Evaluation, options RenderOptions) ([]byte, error)
}
