// Package text renders a ranking as aligned plain-text tables.
package text

import (
	"bytes"
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/goliatone/go-ahpgen/pkg/render"
	"github.com/goliatone/go-ahpgen/pkg/session"
)

type Renderer struct{}

func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, eval session.Evaluation, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := options.Decimals()

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tALTERNATIVE\tSCORE")
	for i, row := range eval.Ranking {
		fmt.Fprintf(tw, "%d\t%s\t%.*f\n", i+1, row.Name, p, row.Score)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "CRITERION\tWEIGHT\tCR")
	for _, row := range eval.Criteria {
		fmt.Fprintf(tw, "%s\t%.*f\t%.*f\n", row.Name, p, row.Weight, p, row.Ratio)
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("text renderer: %w", err)
	}

	fmt.Fprintf(&buf, "\ncriteria consistency ratio: %.*f", p, eval.CriteriaRatio)
	if !eval.Consistent {
		buf.WriteString(" (inconsistent judgements, please review)")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
