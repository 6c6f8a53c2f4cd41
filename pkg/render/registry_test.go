package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ahpgen/pkg/render"
	"github.com/goliatone/go-ahpgen/pkg/session"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string { return s.name }

func (s stubRenderer) ContentType() string {
	if s.contentType == "" {
		return "text/plain"
	}
	return s.contentType
}

func (s stubRenderer) Render(context.Context, session.Evaluation, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "b"})
	if err := registry.Register(stubRenderer{name: "a"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := registry.Register(stubRenderer{name: "a"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected missing name error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}

	if diff := cmp.Diff([]string{"a", "b"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has(" A ") || registry.Has("c") {
		t.Fatalf("unexpected Has results")
	}

	_, err := registry.Get("c")
	if err == nil || !strings.Contains(err.Error(), "have a, b") {
		t.Fatalf("expected unknown format error listing names, got %v", err)
	}
}

func TestRegistry_Negotiate(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "json", contentType: "application/json"})
	registry.MustRegister(stubRenderer{name: "yaml", contentType: "application/yaml"})
	registry.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})

	tests := []struct {
		accept string
		want   string
	}{
		{accept: "application/yaml", want: "yaml"},
		{accept: "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8", want: "vanilla"},
		{accept: "application/json;q=0.5, application/yaml", want: "yaml"},
		{accept: "application/yaml;q=0, application/json", want: "json"},
		{accept: "*/*", want: ""},
		{accept: "", want: ""},
		{accept: "image/png", want: ""},
	}
	for _, tt := range tests {
		got, ok := registry.Negotiate(tt.accept)
		if tt.want == "" {
			if ok {
				t.Fatalf("%q: expected no match, got %s", tt.accept, got.Name())
			}
			continue
		}
		if !ok || got.Name() != tt.want {
			t.Fatalf("%q: expected %s, got %v", tt.accept, tt.want, got)
		}
	}
}

func TestRenderOptionsDecimals(t *testing.T) {
	if (render.RenderOptions{}).Decimals() != render.DefaultPrecision {
		t.Fatalf("zero precision should use default")
	}
	if (render.RenderOptions{Precision: 5}).Decimals() != 5 {
		t.Fatalf("explicit precision ignored")
	}
}
