package structured_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-ahpgen/pkg/render"
	"github.com/goliatone/go-ahpgen/pkg/renderers/structured"
	"github.com/goliatone/go-ahpgen/pkg/session"
	"github.com/goliatone/go-ahpgen/pkg/testsupport"
)

func loadEvaluation(t *testing.T) session.Evaluation {
	t.Helper()
	var eval session.Evaluation
	testsupport.MustLoadJSON(t, filepath.Join("..", "testdata", "evaluation.json"), &eval)
	return eval
}

func TestRenderer_JSON(t *testing.T) {
	r := structured.New(structured.FormatJSON)
	if r.Name() != "json" || r.ContentType() != "application/json" {
		t.Fatalf("unexpected renderer identity %s %s", r.Name(), r.ContentType())
	}

	output, err := r.Render(testsupport.Context(), loadEvaluation(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got struct {
		Winner        string          `json:"winner"`
		Ranking       []session.Score `json:"ranking"`
		CriteriaRatio float64         `json:"criteria_ratio"`
	}
	if err := json.Unmarshal(output, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Winner != "Alpha" || got.CriteriaRatio != 0.033 || len(got.Ranking) != 2 {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestRenderer_YAML(t *testing.T) {
	r := structured.New(structured.FormatYAML)
	output, err := r.Render(testsupport.Context(), loadEvaluation(t), render.RenderOptions{Precision: 2})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(output)
	for _, want := range []string{"winner: Alpha", "criteria_ratio: 0.03", "weight: 0.75", "consistent: true"} {
		if !strings.Contains(got, want) {
			t.Fatalf("yaml missing %q:\n%s", want, got)
		}
	}
}

func TestNew_UnknownFormatFallsBackToJSON(t *testing.T) {
	if structured.New("toml").Name() != "json" {
		t.Fatalf("expected json fallback")
	}
}
