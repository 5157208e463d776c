// Package etree implements the XML document parser. It covers feeds,
// sitemaps, and generic XML dialects: any element attribute or text node
// that carries a URL becomes a structural reference.
package etree

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/fwojciec/refparse"
	"github.com/fwojciec/refparse/parser"
)

// Ensure Parser implements refparse.DocumentParser.
var _ refparse.DocumentParser = (*Parser)(nil)

// refAttrs are attribute names that carry references in common XML dialects
// (Atom/RSS link, sitemap loc, generic href/src).
var refAttrs = map[string]bool{
	"href": true,
	"src":  true,
	"uri":  true,
	"url":  true,
	"loc":  true,
	"link": true,
}

// Parser extracts references from XML documents. XML has no notion of
// forms, scripts, or meta tags, so those capabilities stay at the empty
// defaults.
type Parser struct {
	*parser.Base

	refs *refparse.URLSet
}

// NewParser parses an XML document and extracts everything eagerly. A body
// that is not well-formed XML degrades to regex-only extraction.
func NewParser(doc *refparse.Document, opts ...parser.Option) (*Parser, error) {
	b, err := parser.NewBase(doc, opts...)
	if err != nil {
		return nil, err
	}
	p := &Parser{Base: b, refs: refparse.NewURLSet()}

	xdoc := etree.NewDocument()
	if err := xdoc.ReadFromBytes(doc.Body); err == nil && xdoc.Root() != nil {
		p.walk(xdoc.Root())
		p.refs.Normalize()
	}

	body := string(doc.Body)
	b.ExtractURLs(body)
	b.ExtractEmails(body)
	return p, nil
}

// References returns the structural URLs and the regex fallback URLs.
func (p *Parser) References() (parsed []*refparse.URL, regex []*refparse.URL) {
	return p.refs.Slice(), p.RegexURLs()
}

func (p *Parser) walk(el *etree.Element) {
	for _, attr := range el.Attr {
		if refAttrs[strings.ToLower(attr.Key)] {
			p.addRef(attr.Value)
		}
	}
	// Element text that is itself an absolute URL (sitemap <loc>, RSS
	// <link>) counts as structural.
	if text := strings.TrimSpace(el.Text()); isAbsoluteHTTP(text) {
		p.addRef(text)
	}
	for _, child := range el.ChildElements() {
		p.walk(child)
	}
}

func (p *Parser) addRef(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return
	}
	u, err := p.BaseURL().Resolve(raw)
	if err != nil {
		return // reference discarded
	}
	p.refs.Add(u)
}

func isAbsoluteHTTP(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
