package mock

import "github.com/fwojciec/refparse"

var _ refparse.DocumentParser = (*DocumentParser)(nil)

// DocumentParser is a mock implementation of refparse.DocumentParser.
type DocumentParser struct {
	ReferencesFn    func() (parsed []*refparse.URL, regex []*refparse.URL)
	FormsFn         func() []refparse.Form
	EmailsFn        func(domain string) []string
	CommentsFn      func() []string
	ScriptsFn       func() []string
	MetaRedirectsFn func() []*refparse.URL
	MetaTagsFn      func() []refparse.MetaTag
}

func (p *DocumentParser) References() (parsed []*refparse.URL, regex []*refparse.URL) {
	return p.ReferencesFn()
}

func (p *DocumentParser) Forms() []refparse.Form {
	return p.FormsFn()
}

func (p *DocumentParser) Emails(domain string) []string {
	return p.EmailsFn(domain)
}

func (p *DocumentParser) Comments() []string {
	return p.CommentsFn()
}

func (p *DocumentParser) Scripts() []string {
	return p.ScriptsFn()
}

func (p *DocumentParser) MetaRedirects() []*refparse.URL {
	return p.MetaRedirectsFn()
}

func (p *DocumentParser) MetaTags() []refparse.MetaTag {
	return p.MetaTagsFn()
}
