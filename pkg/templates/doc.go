// Package templates embeds the default comparison, index and results
// templates together with the static browser assets served next to them.
package templates
