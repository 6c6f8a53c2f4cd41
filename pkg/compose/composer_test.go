package compose_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-ahpgen/pkg/compose"
	"github.com/goliatone/go-ahpgen/pkg/document"
	"github.com/goliatone/go-ahpgen/pkg/placeholder"
	"github.com/goliatone/go-ahpgen/pkg/templates"
	"github.com/goliatone/go-ahpgen/pkg/testsupport"
)

func TestComposer_Scenario(t *testing.T) {
	fsys := fstest.MapFS{
		"comparison.html": {Data: []byte("{CHOICE1} vs {CHOICE2}")},
		"index.html":      {Data: []byte("<p>{CHOICES}</p>")},
	}
	composer := compose.New(
		compose.WithComparison(document.SourceFromFS(fsys, "comparison.html")),
		compose.WithIndex(document.SourceFromFS(fsys, "index.html")),
	)

	doc, err := composer.Compose(context.Background(), compose.Request{
		Choice1: "Cracow University of Technology",
		Choice2: "Is better",
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	want := "<p>Cracow University of Technology vs Is better</p>"
	if doc.Text() != want {
		t.Fatalf("compose mismatch\nwant: %q\n got: %q", want, doc.Text())
	}
}

func TestComposer_GenerateWritesOutputTwice(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "comparison.html"), "{CHOICE1} vs {CHOICE2}")
	writeFile(t, filepath.Join(dir, "index.html"), "<p>{CHOICES}</p>")
	output := filepath.Join(dir, "test", "test.html")

	composer := compose.New(
		compose.WithComparison(document.SourceFromFile(filepath.Join(dir, "comparison.html"))),
		compose.WithIndex(document.SourceFromFile(filepath.Join(dir, "index.html"))),
	)
	req := compose.Request{Choice1: "A", Choice2: "B", Output: output}

	var outputs []string
	for i := 0; i < 2; i++ {
		res, err := composer.Generate(context.Background(), req)
		if err != nil {
			t.Fatalf("generate run %d: %v", i, err)
		}
		if res.Output != output {
			t.Fatalf("output path mismatch: %s", res.Output)
		}
		if res.Bytes != len("<p>A vs B</p>") {
			t.Fatalf("unexpected byte count %d", res.Bytes)
		}
		if len(res.Unresolved) != 0 {
			t.Fatalf("unexpected unresolved tokens %v", res.Unresolved)
		}
		data, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		outputs = append(outputs, string(data))
	}

	if outputs[0] != "<p>A vs B</p>" || outputs[0] != outputs[1] {
		t.Fatalf("outputs differ or are wrong: %q", outputs)
	}
}

func TestComposer_MissingInputLeavesOutputUntouched(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{name: "comparison", missing: "comparison.html"},
		{name: "index", missing: "index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range []string{"comparison.html", "index.html"} {
				if name == tt.missing {
					continue
				}
				writeFile(t, filepath.Join(dir, name), "{CHOICES}")
			}
			outDir := filepath.Join(dir, "test")
			composer := compose.New(
				compose.WithComparison(document.SourceFromFile(filepath.Join(dir, "comparison.html"))),
				compose.WithIndex(document.SourceFromFile(filepath.Join(dir, "index.html"))),
			)

			_, err := composer.Generate(context.Background(), compose.Request{Output: filepath.Join(outDir, "test.html")})
			if !errors.Is(err, document.ErrInputNotFound) {
				t.Fatalf("expected ErrInputNotFound, got %v", err)
			}
			missingPath := filepath.Join(dir, tt.missing)
			if path, ok := document.FailedPath(err); !ok || path != missingPath {
				t.Fatalf("expected failing path %s, got %q", missingPath, path)
			}
			if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
				t.Fatalf("output directory should not exist, stat err: %v", statErr)
			}
		})
	}
}

func TestComposer_OutputWriteFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "comparison.html"), "{CHOICE1}")
	writeFile(t, filepath.Join(dir, "index.html"), "{CHOICES}")
	writeFile(t, filepath.Join(dir, "test"), "blocks the output directory")

	composer := compose.New(
		compose.WithComparison(document.SourceFromFile(filepath.Join(dir, "comparison.html"))),
		compose.WithIndex(document.SourceFromFile(filepath.Join(dir, "index.html"))),
	)
	_, err := composer.Generate(context.Background(), compose.Request{Output: filepath.Join(dir, "test", "test.html")})
	if !errors.Is(err, document.ErrOutputWrite) {
		t.Fatalf("expected ErrOutputWrite, got %v", err)
	}
}

func TestComposer_ValuesAreNotReprocessed(t *testing.T) {
	comparison := document.FromString("[{CHOICE1}|{CHOICE2}]")
	index := document.FromString("<div>{CHOICES}</div>")

	doc := compose.New().Combine(comparison, index, compose.Request{
		Choice1: "{CHOICE2}",
		Choice2: "{CHOICES}",
	})

	want := "<div>[{CHOICE2}|{CHOICES}]</div>"
	if doc.Text() != want {
		t.Fatalf("combine mismatch\nwant: %q\n got: %q", want, doc.Text())
	}
}

func TestComposer_SanitizerAndThemeStyle(t *testing.T) {
	comparison := document.FromString("{CHOICE1} vs {CHOICE2}")
	index := document.FromString("<style>{THEME_STYLE}</style>{CHOICES}")

	composer := compose.New(
		compose.WithSanitizer(compose.StrictSanitizer()),
		compose.WithThemeStyle(":root{--brand:#123456;}"),
	)
	doc := composer.Combine(comparison, index, compose.Request{
		Choice1: `<script>alert(1)</script>Alpha`,
		Choice2: `<b>Beta</b>`,
		Choices: "<table></table>",
	})

	want := "<style>:root{--brand:#123456;}</style>Alpha vs Beta<table></table>"
	if doc.Text() != want {
		t.Fatalf("combine mismatch\nwant: %q\n got: %q", want, doc.Text())
	}
}

func TestComposer_ThemeStyleOnlyWhenConfigured(t *testing.T) {
	comparison := document.FromString("{CHOICE1}")
	index := document.FromString("<style>{THEME_STYLE}</style>{CHOICES}")
	req := compose.Request{Choice1: "Alpha"}

	if got := compose.New().Combine(comparison, index, req).Text(); got != "<style>{THEME_STYLE}</style>Alpha" {
		t.Fatalf("unthemed composer should keep the marker, got %q", got)
	}
	if got := compose.New(compose.WithThemeStyle("")).Combine(comparison, index, req).Text(); got != "<style></style>Alpha" {
		t.Fatalf("empty theme style should clear the marker, got %q", got)
	}
}

func TestComposer_EmbeddedTemplatesGolden(t *testing.T) {
	fsys := templates.TemplatesFS()
	composer := compose.New(
		compose.WithComparison(document.SourceFromFS(fsys, templates.ComparisonName)),
		compose.WithIndex(document.SourceFromFS(fsys, templates.IndexName)),
		compose.WithThemeStyle(""),
	)

	doc, err := composer.Compose(context.Background(), compose.Request{
		Choice1: "Cracow University of Technology",
		Choice2: "Is better",
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if rem := placeholder.Scan(doc.Text()); len(rem) != 0 {
		t.Fatalf("embedded templates left markers: %v", rem)
	}

	goldenPath := filepath.Join("testdata", "embedded.golden")
	if testsupport.WriteMaybeGolden(t, goldenPath, doc.Bytes()) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, doc.Text()); diff != "" {
		t.Fatalf("embedded output mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(doc.Text(), "Cracow University of Technology") {
		t.Fatalf("expected winner in output")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
