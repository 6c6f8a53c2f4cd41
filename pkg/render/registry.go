package render

import (
	"fmt"
	"mime"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Registry maps output format names to ranking renderers. Names are matched
// case-insensitively.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds a renderer under its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := formatKey(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: format %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer for a format name. The error lists the known
// formats so it can be shown to a CLI user as is.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[formatKey(name)]
	if !ok {
		return nil, fmt.Errorf("render: unknown format %q (have %s)", name, strings.Join(r.namesLocked(), ", "))
	}
	return renderer, nil
}

// Negotiate picks the renderer whose content type best matches an HTTP
// Accept header. Ranges are tried by descending q value; "*/*" and "type/*"
// ranges match nothing so callers fall back to their own default.
func (r *Registry) Negotiate(accept string) (Renderer, bool) {
	ranges := parseAccept(accept)
	if len(ranges) == 0 {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, want := range ranges {
		for _, name := range r.namesLocked() {
			renderer := r.renderers[name]
			mediaType, _, err := mime.ParseMediaType(renderer.ContentType())
			if err == nil && mediaType == want {
				return renderer, true
			}
		}
	}
	return nil, false
}

// List returns the registered format names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a format is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[formatKey(name)]
	return ok
}

func formatKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type acceptRange struct {
	mediaType string
	q         float64
}

func parseAccept(header string) []string {
	var ranges []acceptRange
	for _, part := range strings.Split(header, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil || strings.HasSuffix(mediaType, "/*") {
			continue
		}
		q := 1.0
		if raw, ok := params["q"]; ok {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
				q = parsed
			}
		}
		if q <= 0 {
			continue
		}
		ranges = append(ranges, acceptRange{mediaType: mediaType, q: q})
	}
	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].q > ranges[j].q
	})

	out := make([]string, len(ranges))
	for i, rg := range ranges {
		out[i] = rg.mediaType
	}
	return out
}
