// Package structured renders a ranking as JSON or YAML.
package structured

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-ahpgen/pkg/render"
	"github.com/goliatone/go-ahpgen/pkg/session"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

type Renderer struct {
	format Format
}

// New returns a renderer for format; unknown formats fall back to JSON.
func New(format Format) *Renderer {
	if format != FormatYAML {
		format = FormatJSON
	}
	return &Renderer{format: format}
}

func (r *Renderer) Name() string {
	return string(r.format)
}

func (r *Renderer) ContentType() string {
	if r.format == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Render rounds scores to the requested precision and encodes the result
// with the winner name on top.
func (r *Renderer) Render(ctx context.Context, eval session.Evaluation, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload := newDocument(eval, options.Decimals())

	var (
		out []byte
		err error
	)
	if r.format == FormatYAML {
		out, err = yaml.Marshal(payload)
	} else {
		out, err = json.MarshalIndent(payload, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return nil, fmt.Errorf("%s renderer: %w", r.format, err)
	}
	return out, nil
}

type document struct {
	Winner             string `json:"winner" yaml:"winner"`
	session.Evaluation `yaml:",inline"`
}

func newDocument(eval session.Evaluation, decimals int) document {
	scale := math.Pow(10, float64(decimals))
	round := func(v float64) float64 { return math.Round(v*scale) / scale }

	out := session.Evaluation{
		Ranking:       make([]session.Score, len(eval.Ranking)),
		Criteria:      make([]session.CriterionScore, len(eval.Criteria)),
		CriteriaRatio: round(eval.CriteriaRatio),
		Consistent:    eval.Consistent,
	}
	for i, s := range eval.Ranking {
		out.Ranking[i] = session.Score{Name: s.Name, Score: round(s.Score)}
	}
	for i, c := range eval.Criteria {
		out.Criteria[i] = session.CriterionScore{Name: c.Name, Weight: round(c.Weight), Ratio: round(c.Ratio)}
	}

	winner, _ := eval.Winner()
	return document{Winner: winner.Name, Evaluation: out}
}
