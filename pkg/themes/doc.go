// Package themes resolves go-theme manifests into renderer configuration and
// the inline CSS custom properties injected through the {THEME_STYLE}
// placeholder.
package themes
