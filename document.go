package refparse

// Document is the fetched response body handed to a parser, together with
// the metadata the fetch produced. It is immutable input: parsers read it,
// never modify it, and never share extraction state across documents.
type Document struct {
	// Body is the raw response body text.
	Body []byte

	// Charset is the charset the response declared (e.g. "utf-8",
	// "iso-8859-1"). Parser construction fails if it is not a known
	// encoding.
	Charset string

	// URL is the URL the document was fetched from.
	URL *URL

	// RedirectURL is the final URL after redirects, nil if the fetch was
	// not redirected. When present it takes precedence over URL as the
	// base for resolving references.
	RedirectURL *URL
}

// Validate returns an error if the document is missing required fields.
func (d *Document) Validate() error {
	if d.Charset == "" {
		return Errorf(EINVALID, "document charset required")
	}
	if d.URL == nil {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// BaseURL returns the URL references should be resolved against: the
// redirect URL when the fetch was redirected, the document URL otherwise.
func (d *Document) BaseURL() *URL {
	if d.RedirectURL != nil {
		return d.RedirectURL
	}
	return d.URL
}
