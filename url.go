package refparse

import (
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/net/publicsuffix"
)

// URL is a parsed, validated absolute URL together with the charset it was
// decoded under. The zero value is not usable; construct with ParseURL.
type URL struct {
	u       *url.URL
	charset string
}

// ParseURL constructs a URL from already-decoded text. The text must parse
// as an absolute URL with a host. The charset records which encoding the
// text was decoded under; it carries over to URLs resolved against this one.
func ParseURL(text string, charset string) (*URL, error) {
	u, err := url.Parse(strings.TrimSpace(text))
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL %q: %v", text, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, Errorf(EINVALID, "URL %q is not absolute", text)
	}
	return &URL{u: u, charset: charset}, nil
}

// MustParseURL is like ParseURL but panics on error. Intended for tests and
// fixtures with known-good input.
func MustParseURL(text string, charset string) *URL {
	u, err := ParseURL(text, charset)
	if err != nil {
		panic(err)
	}
	return u
}

// String returns the URL in its current (possibly unnormalized) form.
func (u *URL) String() string { return u.u.String() }

// Scheme returns the URL scheme, lowercased.
func (u *URL) Scheme() string { return strings.ToLower(u.u.Scheme) }

// Path returns the decoded URL path.
func (u *URL) Path() string { return u.u.Path }

// Charset returns the encoding the URL text was decoded under.
func (u *URL) Charset() string { return u.charset }

// Domain returns the host without any port.
func (u *URL) Domain() string { return strings.ToLower(u.u.Hostname()) }

// RootDomain returns the registered domain (effective TLD plus one). Hosts
// without a recognized public suffix (IPs, single labels) return the bare
// domain.
func (u *URL) RootDomain() string {
	domain := u.Domain()
	root, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return domain
	}
	return root
}

// Resolve interprets ref relative to u and returns the resulting absolute
// URL. The result inherits u's charset.
func (u *URL) Resolve(ref string) (*URL, error) {
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return nil, Errorf(EINVALID, "invalid reference %q: %v", ref, err)
	}
	resolved := u.u.ResolveReference(r)
	if !resolved.IsAbs() || resolved.Host == "" {
		return nil, Errorf(EINVALID, "reference %q does not resolve to an absolute URL", ref)
	}
	return &URL{u: resolved, charset: u.charset}, nil
}

// Normalize rewrites the URL into its canonical form in place: lowercase
// scheme and host, default port stripped, path cleaned (empty becomes "/"),
// fragment dropped. Normalizing never changes Key, so set membership is
// unaffected. Idempotent.
func (u *URL) Normalize() {
	u.u = u.normalized()
}

// Key returns a stable dedup key: the hash of the canonical form. Two URLs
// have equal keys iff they normalize to the same value.
func (u *URL) Key() uint64 {
	return xxhash.Sum64String(u.normalized().String())
}

// Equal reports whether the two URLs normalize to the same value.
func (u *URL) Equal(other *URL) bool {
	return other != nil && u.Key() == other.Key()
}

func (u *URL) normalized() *url.URL {
	n := *u.u
	n.Scheme = strings.ToLower(n.Scheme)
	n.Host = normalizeHost(n.Scheme, n.Host)
	n.Path = normalizePath(n.Path)
	n.RawPath = ""
	n.Fragment = ""
	n.RawFragment = ""
	return &n
}

func normalizeHost(scheme, host string) string {
	host = strings.ToLower(host)
	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}
	return host
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	trailing := strings.HasSuffix(p, "/") && p != "/"
	p = path.Clean(p)
	if trailing && p != "/" {
		p += "/"
	}
	return p
}

// URLSet is a set of URLs unique by canonical form. The zero value is not
// usable; construct with NewURLSet. Not safe for concurrent use.
type URLSet struct {
	m map[uint64]*URL
}

// NewURLSet returns an empty URL set.
func NewURLSet() *URLSet {
	return &URLSet{m: make(map[uint64]*URL)}
}

// Add inserts u into the set. Returns false if an equal URL was already
// present.
func (s *URLSet) Add(u *URL) bool {
	k := u.Key()
	if _, ok := s.m[k]; ok {
		return false
	}
	s.m[k] = u
	return true
}

// Contains reports whether an equal URL is in the set.
func (s *URLSet) Contains(u *URL) bool {
	_, ok := s.m[u.Key()]
	return ok
}

// Len returns the number of URLs in the set.
func (s *URLSet) Len() int { return len(s.m) }

// Normalize normalizes every member in place. Membership is unaffected
// because normalization preserves Key.
func (s *URLSet) Normalize() {
	for _, u := range s.m {
		u.Normalize()
	}
}

// Slice returns the members sorted by string form for deterministic output.
func (s *URLSet) Slice() []*URL {
	out := make([]*URL, 0, len(s.m))
	for _, u := range s.m {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
