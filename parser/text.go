package parser

import "github.com/fwojciec/refparse"

// Ensure TextParser implements refparse.DocumentParser.
var _ refparse.DocumentParser = (*TextParser)(nil)

// TextParser handles documents with no structure to walk — scripts, plain
// text, anything that is not markup. Everything it recovers comes from the
// regex fallback; the structural capabilities stay at their empty defaults.
type TextParser struct {
	*Base
}

// NewTextParser builds a parser for an unstructured document and runs the
// regex extraction over its body.
func NewTextParser(doc *refparse.Document, opts ...Option) (*TextParser, error) {
	b, err := NewBase(doc, opts...)
	if err != nil {
		return nil, err
	}
	body := string(doc.Body)
	b.ExtractURLs(body)
	b.ExtractEmails(body)
	return &TextParser{Base: b}, nil
}
