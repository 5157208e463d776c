package refparse

// FormInput describes one named control inside a form.
type FormInput struct {
	Name  string
	Type  string
	Value string
}

// Form describes a form found in a document.
type Form struct {
	// Method is the submission method, uppercased. Defaults to GET.
	Method string

	// Action is the submission target resolved against the document's
	// base URL.
	Action *URL

	// Inputs are the named controls in document order.
	Inputs []FormInput
}

// MetaTag is a single document metadata entry. Name holds the tag's name
// attribute, or its http-equiv attribute when no name is present.
type MetaTag struct {
	Name    string
	Content string
}

// DocumentParser extracts references and related artifacts from one fetched
// document. Implementations are format-specific (HTML, XML, plain text) and
// hold per-document state: each instance parses exactly one document.
//
// A capability the format has no notion of returns an empty sequence, never
// an error — absence of a feature in a document format is not a failure.
type DocumentParser interface {
	// References returns two collections: URLs recovered from document
	// structure (tag attributes and the like), and URLs recovered by
	// regex scanning of the raw text. Callers must treat the second
	// collection as less trustworthy.
	References() (parsed []*URL, regex []*URL)

	// Forms returns the document's forms in document order.
	Forms() []Form

	// Emails returns the email addresses found in the document. A
	// non-empty domain restricts the result to addresses at that domain.
	Emails(domain string) []string

	// Comments returns the document's comments in document order.
	Comments() []string

	// Scripts returns inline script bodies in document order.
	Scripts() []string

	// MetaRedirects returns the targets of meta refresh redirections.
	MetaRedirects() []*URL

	// MetaTags returns the document's meta tags in document order.
	MetaTags() []MetaTag
}

// EncodingValidator reports whether a declared charset name is a known,
// supported encoding.
type EncodingValidator interface {
	IsKnown(name string) bool
}

// URLDecoder converts a raw matched substring into a canonical Unicode
// string ready for URL construction. Implementations are bound to a single
// charset for their lifetime.
type URLDecoder interface {
	Decode(raw string) (string, error)
}
