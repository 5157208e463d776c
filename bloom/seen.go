// Package bloom provides probabilistic cross-document URL deduplication.
// Each parser instance deduplicates exactly within its own document; Seen is
// the cheap layer above it for crawl-session scale dedup across many
// documents.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Seen tracks URLs observed across a parsing session.
type Seen struct {
	f *bloom.BloomFilter
}

// NewSeen sizes the filter for n expected URLs at the given false positive
// rate.
func NewSeen(n uint, fpRate float64) *Seen {
	return &Seen{f: bloom.NewWithEstimates(n, fpRate)}
}

// Check records the URL and reports whether it had already been seen.
// False positives are possible; false negatives are not.
func (s *Seen) Check(url string) bool {
	return s.f.TestAndAddString(url)
}

// Count returns the approximate number of URLs recorded.
func (s *Seen) Count() uint {
	return uint(s.f.ApproximatedSize())
}
