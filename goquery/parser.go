// Package goquery implements the HTML document parser using CSS selectors.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/fwojciec/refparse"
	"github.com/fwojciec/refparse/parser"
)

// Ensure Parser implements refparse.DocumentParser.
var _ refparse.DocumentParser = (*Parser)(nil)

// refSelectors are the tag/attribute pairs that carry references, walked in
// this order.
var refSelectors = []struct {
	selector string
	attr     string
}{
	{"a[href]", "href"},
	{"area[href]", "href"},
	{"link[href]", "href"},
	{"img[src]", "src"},
	{"script[src]", "src"},
	{"iframe[src]", "src"},
	{"frame[src]", "src"},
	{"embed[src]", "src"},
	{"source[src]", "src"},
	{"form[action]", "action"},
}

// Parser extracts references and artifacts from HTML documents. Structural
// extraction walks the parsed tree; the regex fallback additionally scans
// the raw body so URLs outside any tag structure are still recovered.
type Parser struct {
	*parser.Base

	refs      *refparse.URLSet
	forms     []refparse.Form
	comments  []string
	scripts   []string
	metaRedir []*refparse.URL
	metaTags  []refparse.MetaTag
}

// NewParser parses an HTML document and extracts everything eagerly. A body
// that cannot be parsed as HTML degrades to regex-only extraction rather
// than failing; only an unknown charset is fatal.
func NewParser(doc *refparse.Document, opts ...parser.Option) (*Parser, error) {
	b, err := parser.NewBase(doc, opts...)
	if err != nil {
		return nil, err
	}
	p := &Parser{Base: b, refs: refparse.NewURLSet()}

	body := string(doc.Body)
	if root, err := html.Parse(bytes.NewReader(doc.Body)); err == nil {
		gq := goquery.NewDocumentFromNode(root)
		p.collectReferences(gq)
		p.collectForms(gq)
		p.collectScripts(gq)
		p.collectMeta(gq)
		p.collectComments(root)
		p.refs.Normalize()
	}

	b.ExtractURLs(body)
	b.ExtractEmails(body)
	return p, nil
}

// References returns the structural URLs and the regex fallback URLs. The
// second collection is less trustworthy.
func (p *Parser) References() (parsed []*refparse.URL, regex []*refparse.URL) {
	return p.refs.Slice(), p.RegexURLs()
}

// Forms returns the document's forms in document order.
func (p *Parser) Forms() []refparse.Form { return p.forms }

// Comments returns the document's comments in document order.
func (p *Parser) Comments() []string { return p.comments }

// Scripts returns inline script bodies in document order.
func (p *Parser) Scripts() []string { return p.scripts }

// MetaRedirects returns the targets of meta refresh redirections.
func (p *Parser) MetaRedirects() []*refparse.URL { return p.metaRedir }

// MetaTags returns the document's meta tags in document order.
func (p *Parser) MetaTags() []refparse.MetaTag { return p.metaTags }

func (p *Parser) collectReferences(doc *goquery.Document) {
	for _, rs := range refSelectors {
		attr := rs.attr
		doc.Find(rs.selector).Each(func(_ int, sel *goquery.Selection) {
			raw, ok := sel.Attr(attr)
			if !ok {
				return
			}
			p.addRef(raw)
		})
	}
}

func (p *Parser) addRef(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return
	}
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "mailto:"):
		addr := strings.TrimPrefix(raw, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		p.AddEmail(addr)
		return
	case strings.HasPrefix(lower, "javascript:"),
		strings.HasPrefix(lower, "tel:"),
		strings.HasPrefix(lower, "data:"):
		return
	}
	u, err := p.BaseURL().Resolve(raw)
	if err != nil {
		return // reference discarded
	}
	p.refs.Add(u)
}

func (p *Parser) collectForms(doc *goquery.Document) {
	doc.Find("form").Each(func(_ int, sel *goquery.Selection) {
		form := refparse.Form{Method: "GET"}
		if method, ok := sel.Attr("method"); ok && method != "" {
			form.Method = strings.ToUpper(strings.TrimSpace(method))
		}

		action, _ := sel.Attr("action")
		action = strings.TrimSpace(action)
		if action == "" {
			// A form without an action submits to the page itself.
			form.Action = p.BaseURL()
		} else if u, err := p.BaseURL().Resolve(action); err == nil {
			form.Action = u
		} else {
			return // unusable action, skip the form
		}

		sel.Find("input[name], select[name], textarea[name], button[name]").Each(func(_ int, in *goquery.Selection) {
			name, _ := in.Attr("name")
			typ, _ := in.Attr("type")
			if typ == "" {
				typ = defaultInputType(goquery.NodeName(in))
			}
			value, _ := in.Attr("value")
			form.Inputs = append(form.Inputs, refparse.FormInput{
				Name:  name,
				Type:  strings.ToLower(typ),
				Value: value,
			})
		})

		p.forms = append(p.forms, form)
	})
}

func defaultInputType(nodeName string) string {
	if nodeName == "input" {
		return "text"
	}
	return nodeName
}

func (p *Parser) collectScripts(doc *goquery.Document) {
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if _, external := sel.Attr("src"); external {
			return
		}
		if body := strings.TrimSpace(sel.Text()); body != "" {
			p.scripts = append(p.scripts, body)
		}
	})
}

func (p *Parser) collectMeta(doc *goquery.Document) {
	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		equiv, _ := sel.Attr("http-equiv")
		content, _ := sel.Attr("content")

		key := name
		if key == "" {
			key = equiv
		}
		if key != "" || content != "" {
			p.metaTags = append(p.metaTags, refparse.MetaTag{Name: key, Content: content})
		}

		if strings.EqualFold(equiv, "refresh") {
			if target := refreshTarget(content); target != "" {
				if u, err := p.BaseURL().Resolve(target); err == nil {
					p.metaRedir = append(p.metaRedir, u)
				}
			}
		}
	})
}

// refreshTarget pulls the URL out of a refresh content value like
// "5; url=/next" or "0;URL='http://example.com/'".
func refreshTarget(content string) string {
	for _, part := range strings.Split(content, ";") {
		part = strings.TrimSpace(part)
		if len(part) >= 4 && strings.EqualFold(part[:4], "url=") {
			return strings.Trim(part[4:], `"' `)
		}
	}
	return ""
}

func (p *Parser) collectComments(n *html.Node) {
	if n.Type == html.CommentNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			p.comments = append(p.comments, text)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.collectComments(c)
	}
}
