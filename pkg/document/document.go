package document

import (
	"errors"

	"github.com/goliatone/go-ahpgen/pkg/placeholder"
)

// Document is an in-memory template buffer and the source it was read from.
// It is a value: Substitute returns a new Document and leaves the receiver
// untouched.
type Document struct {
	source Source
	text   string
}

// New wraps text read from src.
func New(src Source, text string) (Document, error) {
	if src == nil {
		return Document{}, errors.New("document: source is required")
	}
	return Document{source: src, text: text}, nil
}

// FromString builds a Document with no backing source, used for content that
// was produced in memory.
func FromString(text string) Document {
	return Document{text: text}
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Text returns the document contents.
func (d Document) Text() string {
	return d.text
}

// Bytes returns the document contents as a byte slice.
func (d Document) Bytes() []byte {
	return []byte(d.text)
}

// Len reports the size of the document in bytes.
func (d Document) Len() int {
	return len(d.text)
}

// Substitute returns a copy of d with the substitutions applied.
func (d Document) Substitute(subs ...placeholder.Substitution) Document {
	return Document{source: d.source, text: placeholder.Replace(d.text, subs...)}
}

// Remaining lists which of tokens are still present in the document.
func (d Document) Remaining(tokens ...placeholder.Token) []placeholder.Token {
	return placeholder.Remaining(d.text, tokens...)
}
