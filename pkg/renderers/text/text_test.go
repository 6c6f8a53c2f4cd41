package text_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-ahpgen/pkg/render"
	"github.com/goliatone/go-ahpgen/pkg/renderers/text"
	"github.com/goliatone/go-ahpgen/pkg/session"
	"github.com/goliatone/go-ahpgen/pkg/testsupport"
)

func loadEvaluation(t *testing.T) session.Evaluation {
	t.Helper()
	var eval session.Evaluation
	testsupport.MustLoadJSON(t, filepath.Join("..", "testdata", "evaluation.json"), &eval)
	return eval
}

func TestRenderer_RenderContract(t *testing.T) {
	output, err := text.New().Render(testsupport.Context(), loadEvaluation(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	goldenPath := filepath.Join("..", "testdata", "text.golden")
	if testsupport.WriteMaybeGolden(t, goldenPath, output) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, string(output)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_FlagsInconsistency(t *testing.T) {
	eval := loadEvaluation(t)
	eval.Consistent = false

	output, err := text.New().Render(testsupport.Context(), eval, render.RenderOptions{Precision: 1})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(output)
	if !strings.Contains(got, "please review") || !strings.Contains(got, "Alpha        0.5") {
		t.Fatalf("unexpected output:\n%s", got)
	}
}
