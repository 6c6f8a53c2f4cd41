package ahpgen

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-ahpgen/pkg/placeholder"
	"github.com/goliatone/go-ahpgen/pkg/themes"
)

func TestStaticAssetsFSContainsScripts(t *testing.T) {
	data, err := fs.ReadFile(StaticAssetsFS(), "scripts.js")
	if err != nil {
		t.Fatalf("expected scripts to be readable: %v", err)
	}
	if !strings.Contains(string(data), "/submitSetup") {
		t.Fatalf("expected scripts to post the setup")
	}
}

func TestEmbeddedTemplatesCarryPlaceholders(t *testing.T) {
	data, err := fs.ReadFile(EmbeddedTemplates(), "comparison.html")
	if err != nil {
		t.Fatalf("read comparison: %v", err)
	}
	if placeholder.Count(string(data), placeholder.TokenChoice1) != 1 {
		t.Fatalf("comparison template should hold one {CHOICE1}")
	}
}

func TestGenerateHTMLWithEmbeddedTemplates(t *testing.T) {
	catalog, err := themes.NewCatalog(themes.DefaultManifest())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	withTheme, err := WithTheme(catalog, "", "dark")
	if err != nil {
		t.Fatalf("theme: %v", err)
	}

	output := filepath.Join(t.TempDir(), "test", "test.html")
	result, err := GenerateHTML(context.Background(), "Alpha", "Is better", output, WithEmbeddedTemplates(), withTheme)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Output != output || len(result.Unresolved) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	page := string(data)
	for _, want := range []string{">Alpha</h2>", ">Is better</p>", "--ahp-accent:#6fb3e0;"} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestComposeHTMLDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	page, err := ComposeHTML(context.Background(), "A", "B", WithEmbeddedTemplates())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.Contains(string(page), ">A</h2>") {
		t.Fatalf("unexpected page")
	}
	if _, err := os.Stat(filepath.Join(dir, "test")); !os.IsNotExist(err) {
		t.Fatalf("compose must not create the output directory")
	}
}

func TestThemeStyleUnknownTheme(t *testing.T) {
	catalog, err := themes.NewCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if _, err := ThemeStyle(catalog, "missing", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}
