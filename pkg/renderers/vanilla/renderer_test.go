package vanilla_test

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-ahpgen/pkg/render"
	"github.com/goliatone/go-ahpgen/pkg/renderers/vanilla"
	"github.com/goliatone/go-ahpgen/pkg/session"
	"github.com/goliatone/go-ahpgen/pkg/testsupport"
)

func loadEvaluation(t *testing.T) session.Evaluation {
	t.Helper()
	var eval session.Evaluation
	testsupport.MustLoadJSON(t, filepath.Join("..", "testdata", "evaluation.json"), &eval)
	return eval
}

func TestRenderer_RendersTables(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), loadEvaluation(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(output)
	for _, want := range []string{
		`<table class="ranking">`,
		"<td>1</td><td>Alpha</td><td>0.525</td>",
		"<td>2</td><td>Beta</td><td>0.475</td>",
		"<td>price</td><td>0.750</td>",
		"<td>0.525</td><td>53%</td>",
		`<p class="consistency" data-threshold="0.1">Criteria consistency ratio: 0.033</p>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "please review") {
		t.Fatalf("consistent evaluation should not warn")
	}
}

func TestNew_TwiceSharesFilter(t *testing.T) {
	for i := 0; i < 2; i++ {
		if _, err := vanilla.New(); err != nil {
			t.Fatalf("new renderer %d: %v", i, err)
		}
	}
}

func TestRenderer_PrecisionAndEscaping(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	eval := loadEvaluation(t)
	eval.Ranking[0].Name = "<script>x</script>"
	eval.Consistent = false

	output, err := renderer.Render(testsupport.Context(), eval, render.RenderOptions{Precision: 2})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(output)
	if strings.Contains(got, "<script>") {
		t.Fatalf("alternative names must be escaped:\n%s", got)
	}
	if !strings.Contains(got, "<td>price</td><td>0.75</td>") || !strings.Contains(got, "please review") {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

type stubTemplateRenderer struct {
	renderTemplateFunc func(name string, data any, out ...io.Writer) (string, error)
	filters            []string
	globals            map[string]any
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	return s.renderTemplateFunc(name, data, out...)
}

func (s *stubTemplateRenderer) RegisterFilter(name string, _ func(any, any) (any, error)) error {
	s.filters = append(s.filters, name)
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(data any) error {
	s.globals = data.(map[string]any)
	return nil
}

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	var gotName string
	stub := &stubTemplateRenderer{
		renderTemplateFunc: func(name string, data any, _ ...io.Writer) (string, error) {
			gotName = name
			if _, ok := data.(map[string]any)["ranking"]; !ok {
				return "", errors.New("ranking missing from context")
			}
			return "custom-output", nil
		},
	}

	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if len(stub.filters) != 1 || stub.filters[0] != "percent" {
		t.Fatalf("expected the percent filter to be registered, got %v", stub.filters)
	}
	if stub.globals["consistency_threshold"] != 0.1 {
		t.Fatalf("expected the consistency threshold in the template globals, got %v", stub.globals)
	}
	output, err := renderer.Render(testsupport.Context(), loadEvaluation(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(output) != "custom-output" || gotName != "results.tpl" {
		t.Fatalf("unexpected render %q via %q", output, gotName)
	}

	stub.renderTemplateFunc = func(string, any, ...io.Writer) (string, error) {
		return "", errors.New("boom")
	}
	if _, err := renderer.Render(testsupport.Context(), loadEvaluation(t), render.RenderOptions{}); err == nil {
		t.Fatalf("expected template error")
	}
}
