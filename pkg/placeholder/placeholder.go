package placeholder

import (
	"regexp"
	"strings"
)

// Token is a literal marker embedded in a template.
type Token string

const (
	// TokenChoice1 marks the first choice inside the comparison template.
	TokenChoice1 Token = "{CHOICE1}"
	// TokenChoice2 marks the second choice inside the comparison template.
	TokenChoice2 Token = "{CHOICE2}"
	// TokenChoices marks where the rendered comparison lands in the index page.
	TokenChoices Token = "{CHOICES}"
	// TokenThemeStyle marks where theme CSS variables are injected.
	TokenThemeStyle Token = "{THEME_STYLE}"
)

// String returns the literal marker.
func (t Token) String() string {
	return string(t)
}

// Substitution pairs a token with the literal value that replaces it.
type Substitution struct {
	Token Token
	Value string
}

// With is a shorthand constructor for a Substitution.
func With(token Token, value string) Substitution {
	return Substitution{Token: token, Value: value}
}

// Replace substitutes every occurrence of each token in doc with its value.
//
// The scan is a single pass over doc. When two tokens match at the same
// offset the one listed first wins. Substitutions with an empty token are
// skipped, and a repeated token keeps its first value.
func Replace(doc string, subs ...Substitution) string {
	replacer := NewReplacer(subs...)
	if replacer == nil {
		return doc
	}
	return replacer.Replace(doc)
}

// NewReplacer builds a reusable strings.Replacer for the substitutions. It
// returns nil when no usable substitution is supplied.
func NewReplacer(subs ...Substitution) *strings.Replacer {
	if len(subs) == 0 {
		return nil
	}

	seen := make(map[Token]struct{}, len(subs))
	pairs := make([]string, 0, len(subs)*2)
	for _, sub := range subs {
		if sub.Token == "" {
			continue
		}
		if _, exists := seen[sub.Token]; exists {
			continue
		}
		seen[sub.Token] = struct{}{}
		pairs = append(pairs, string(sub.Token), sub.Value)
	}
	if len(pairs) == 0 {
		return nil
	}
	return strings.NewReplacer(pairs...)
}

// Remaining reports which of the supplied tokens still occur in doc, keeping
// the order in which they were passed.
func Remaining(doc string, tokens ...Token) []Token {
	var out []Token
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if strings.Contains(doc, string(token)) {
			out = append(out, token)
		}
	}
	return out
}

// Count returns how many times token occurs in doc.
func Count(doc string, token Token) int {
	if token == "" {
		return 0
	}
	return strings.Count(doc, string(token))
}

var markerPattern = regexp.MustCompile(`\{[A-Z][A-Z0-9_]*\}`)

// Scan returns every distinct upper-case marker ("{NAME}") found in doc, in
// order of first appearance. It is meant for diagnostics such as warning
// about placeholders nobody substituted.
func Scan(doc string) []Token {
	matches := markerPattern.FindAllString(doc, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	out := make([]Token, 0, len(matches))
	for _, match := range matches {
		if _, exists := seen[match]; exists {
			continue
		}
		seen[match] = struct{}{}
		out = append(out, Token(match))
	}
	return out
}
