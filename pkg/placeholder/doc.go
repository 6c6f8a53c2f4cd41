// Package placeholder performs literal token substitution on template text.
//
// Tokens are plain substrings such as "{CHOICES}". Replacement is a single
// left-to-right pass: a substituted value is written verbatim and never
// scanned again, so values may safely contain text that looks like a token.
package placeholder
