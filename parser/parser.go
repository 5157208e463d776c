// Package parser implements the shared per-document parser state and the
// regex fallback extraction every format-specific parser builds on. Format
// parsers embed Base to inherit its capability defaults and override only
// what their format supports.
package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/refparse"
	"github.com/fwojciec/refparse/charset"
)

// Compiled once at startup and never mutated; process-wide configuration.
var (
	// urlPattern matches URL-shaped substrings in raw text: an http(s)
	// scheme, a host portion of word characters plus :@-./ and then
	// anything up to whitespace or a quote/angle bracket.
	urlPattern = regexp.MustCompile(`(?:http|https)://[\w:@\-./]*?[^ \t\n\r"'<>]*`)

	emailPattern = regexp.MustCompile(`[\w.+-]+@[\w-]+(?:\.[\w-]+)+`)
)

// Ensure Base provides the full capability set at compile time.
var _ refparse.DocumentParser = (*Base)(nil)

// Base owns the state shared by every document parser: the effective base
// URL (redirect wins over the original), the page charset, and the set of
// URLs recovered by regex scanning. One Base serves exactly one document;
// instances are not safe for concurrent use, but independent instances
// need no coordination.
type Base struct {
	doc        *refparse.Document
	baseURL    *refparse.URL
	baseDomain string
	rootDomain string
	charset    string
	decoder    refparse.URLDecoder
	reURLs     *refparse.URLSet
	emails     map[string]struct{}
}

// Option configures Base construction.
type Option func(*options)

type options struct {
	validator refparse.EncodingValidator
	decoder   refparse.URLDecoder
}

// WithValidator overrides the default charset validator.
func WithValidator(v refparse.EncodingValidator) Option {
	return func(o *options) { o.validator = v }
}

// WithDecoder overrides the default URL decoder.
func WithDecoder(d refparse.URLDecoder) Option {
	return func(o *options) { o.decoder = d }
}

// NewBase validates the document's charset and builds the shared parser
// state. An unknown charset is fatal: no parser is created.
func NewBase(doc *refparse.Document, opts ...Option) (*Base, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	validator := o.validator
	if validator == nil {
		validator = charset.NewValidator()
	}
	if !validator.IsKnown(doc.Charset) {
		return nil, refparse.Errorf(refparse.EUNSUPPORTED, "unknown encoding: %s", doc.Charset)
	}

	decoder := o.decoder
	if decoder == nil {
		d, err := charset.NewDecoder(doc.Charset)
		if err != nil {
			return nil, err
		}
		decoder = d
	}

	base := doc.BaseURL()
	return &Base{
		doc:        doc,
		baseURL:    base,
		baseDomain: base.Domain(),
		rootDomain: base.RootDomain(),
		charset:    doc.Charset,
		decoder:    decoder,
		reURLs:     refparse.NewURLSet(),
		emails:     make(map[string]struct{}),
	}, nil
}

// Document returns the document this parser was built for.
func (b *Base) Document() *refparse.Document { return b.doc }

// BaseURL returns the effective base URL references resolve against.
func (b *Base) BaseURL() *refparse.URL { return b.baseURL }

// BaseDomain returns the effective base URL's domain.
func (b *Base) BaseDomain() string { return b.baseDomain }

// RootDomain returns the effective base URL's registered domain.
func (b *Base) RootDomain() string { return b.rootDomain }

// Charset returns the page charset all decoding uses.
func (b *Base) Charset() string { return b.charset }

// ExtractURLs scans raw text for URL-shaped substrings without relying on
// any tag structure and accumulates the survivors in the regex URL set.
// Candidates that fail decoding or construction are discarded; a malformed
// match never aborts the scan. The whole set is normalized after the scan.
func (b *Base) ExtractURLs(text string) {
	for _, match := range urlPattern.FindAllString(text, -1) {
		decoded, err := b.decoder.Decode(match)
		if err != nil {
			continue // candidate discarded
		}
		u, err := refparse.ParseURL(decoded, b.charset)
		if err != nil {
			continue // candidate discarded
		}
		b.reURLs.Add(u)
	}
	b.reURLs.Normalize()
}

// ExtractEmails scans raw text for email addresses and accumulates them.
func (b *Base) ExtractEmails(text string) {
	for _, match := range emailPattern.FindAllString(text, -1) {
		b.AddEmail(match)
	}
}

// AddEmail records a single address, e.g. from a mailto link.
func (b *Base) AddEmail(addr string) {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if addr == "" || !strings.Contains(addr, "@") {
		return
	}
	b.emails[addr] = struct{}{}
}

// RegexURLs returns the URLs recovered by regex scanning, sorted.
func (b *Base) RegexURLs() []*refparse.URL { return b.reURLs.Slice() }

// References returns no structural URLs and the regex fallback set. Format
// parsers with structural extraction override this.
func (b *Base) References() (parsed []*refparse.URL, regex []*refparse.URL) {
	return nil, b.RegexURLs()
}

// Emails returns the accumulated addresses, sorted. A non-empty domain
// restricts the result to addresses at that domain.
func (b *Base) Emails(domain string) []string {
	domain = strings.ToLower(domain)
	var out []string
	for addr := range b.emails {
		if domain != "" {
			at := strings.LastIndex(addr, "@")
			if addr[at+1:] != domain {
				continue
			}
		}
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}

// The remaining capabilities default to empty sequences: a format without a
// notion of the artifact reports nothing rather than failing.

// Forms returns no forms.
func (b *Base) Forms() []refparse.Form { return nil }

// Comments returns no comments.
func (b *Base) Comments() []string { return nil }

// Scripts returns no scripts.
func (b *Base) Scripts() []string { return nil }

// MetaRedirects returns no meta redirections.
func (b *Base) MetaRedirects() []*refparse.URL { return nil }

// MetaTags returns no meta tags.
func (b *Base) MetaTags() []refparse.MetaTag { return nil }
