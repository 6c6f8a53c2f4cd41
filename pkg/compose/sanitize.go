package compose

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans a value before it is substituted into markup.
type Sanitizer interface {
	Sanitize(value string) string
}

// SanitizerFunc adapts a function to the Sanitizer interface.
type SanitizerFunc func(string) string

// Sanitize calls f(value).
func (f SanitizerFunc) Sanitize(value string) string {
	return f(value)
}

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// StrictSanitizer strips every HTML element from values and escapes what is
// left, so choice labels coming from a browser cannot inject markup.
func StrictSanitizer() Sanitizer {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return SanitizerFunc(func(value string) string {
		return strings.TrimSpace(strictPolicy.Sanitize(value))
	})
}
