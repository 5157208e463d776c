// Package charset implements encoding validation and URL candidate decoding
// on top of the x/text encoding indexes.
package charset

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/fwojciec/refparse"
)

// Ensure Validator implements refparse.EncodingValidator.
var _ refparse.EncodingValidator = (*Validator)(nil)

// Validator reports charset support using the WHATWG HTML index first and
// the IANA index second, covering both the names browsers send and the
// formally registered ones.
type Validator struct{}

// NewValidator returns a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// IsKnown reports whether name resolves to a supported encoding.
func (v *Validator) IsKnown(name string) bool {
	_, err := Lookup(name)
	return err == nil
}

// Lookup resolves a charset name to its encoding. Returns EUNSUPPORTED if
// the name is unknown to both indexes.
func Lookup(name string) (encoding.Encoding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, refparse.Errorf(refparse.EUNSUPPORTED, "empty encoding name")
	}
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	// The IANA index knows some registered names the HTML index rejects.
	// It can return a nil encoding for names it recognizes but x/text
	// cannot decode; treat those as unsupported too.
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	return nil, refparse.Errorf(refparse.EUNSUPPORTED, "unknown encoding: %s", name)
}

// Ensure Decoder implements refparse.URLDecoder.
var _ refparse.URLDecoder = (*Decoder)(nil)

// Decoder turns raw URL-shaped matches into canonical Unicode strings under
// a fixed page charset. Real documents mix encodings inconsistently — some
// percent-encode with the page charset, others assume UTF-8 — so Decode
// tries UTF-8 first and falls back to the page charset, tolerating loss on
// the fallback. The ambiguity is inherent; the two-stage policy mirrors it
// rather than solving it.
type Decoder struct {
	name string
	enc  encoding.Encoding
}

// NewDecoder returns a decoder bound to the named charset. Returns
// EUNSUPPORTED if the charset is unknown.
func NewDecoder(name string) (*Decoder, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return &Decoder{name: name, enc: enc}, nil
}

// Charset returns the charset name the decoder is bound to.
func (d *Decoder) Charset() string { return d.name }

// Decode converts a raw matched substring into a Unicode string ready for
// URL construction:
//
//  1. If the input is Unicode text, re-encode it with the page charset,
//     modeling the byte stream as it appeared on the wire before
//     percent-decoding. Input that is not valid UTF-8 is already wire
//     bytes and passes through untouched.
//  2. Percent-unescape the bytes. Malformed escapes stay verbatim.
//  3. Replace literal NUL bytes with the three-character escape "%00" so
//     embedded NUL stays visible instead of corrupting string handling.
//  4. Interpret the bytes as UTF-8, falling back to the page charset with
//     undecodable sequences substituted. The fallback never fails.
//
// Decode errors only when Unicode input cannot be represented in the page
// charset at all, in which case the candidate carries characters no
// browser would have produced under this charset.
func (d *Decoder) Decode(raw string) (string, error) {
	wire := []byte(raw)
	if utf8.Valid(wire) {
		var err error
		wire, err = d.enc.NewEncoder().Bytes(wire)
		if err != nil {
			return "", refparse.Errorf(refparse.EINVALID, "cannot represent candidate in %s: %v", d.name, err)
		}
	}

	decoded := percentUnescape(wire)
	decoded = bytes.ReplaceAll(decoded, []byte{0x00}, []byte("%00"))

	if utf8.Valid(decoded) {
		return string(decoded), nil
	}
	out, err := d.enc.NewDecoder().Bytes(decoded)
	if err != nil {
		// Last resort: keep what is valid UTF-8 and drop the rest.
		return string(bytes.ToValidUTF8(decoded, nil)), nil
	}
	return string(out), nil
}

// percentUnescape reverses %XX escapes. Unlike net/url it never fails:
// escapes without two hex digits pass through untouched, matching the
// lenient unquoting the rest of the web does.
func percentUnescape(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] == '%' && i+2 < len(b) && isHex(b[i+1]) && isHex(b[i+2]) {
			out = append(out, unhex(b[i+1])<<4|unhex(b[i+2]))
			i += 2
			continue
		}
		out = append(out, b[i])
	}
	return out
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
