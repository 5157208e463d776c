package mock

import "github.com/fwojciec/refparse"

var _ refparse.EncodingValidator = (*EncodingValidator)(nil)

// EncodingValidator is a mock implementation of refparse.EncodingValidator.
type EncodingValidator struct {
	IsKnownFn func(name string) bool
}

func (v *EncodingValidator) IsKnown(name string) bool {
	return v.IsKnownFn(name)
}

var _ refparse.URLDecoder = (*URLDecoder)(nil)

// URLDecoder is a mock implementation of refparse.URLDecoder.
type URLDecoder struct {
	DecodeFn func(raw string) (string, error)
}

func (d *URLDecoder) Decode(raw string) (string, error) {
	return d.DecodeFn(raw)
}
