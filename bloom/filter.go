// Package bloom provides a verse presence index using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/versefill"
)

// DefaultFalsePositiveRate is the false positive rate used by Build.
const DefaultFalsePositiveRate = 0.001

var _ versefill.VerseIndex = (*VerseIndex)(nil)

// VerseIndex records which verses exist in a datastore. Lookups may be
// issued concurrently once the index is built; Add may not.
type VerseIndex struct {
	f *bloom.BloomFilter
}

// NewVerseIndex creates an index sized for n verses with the given false
// positive rate.
func NewVerseIndex(n uint, fpRate float64) *VerseIndex {
	return &VerseIndex{
		f: bloom.NewWithEstimates(max(n, 1), fpRate),
	}
}

// Build creates an index holding refs.
func Build(refs []versefill.Reference) *VerseIndex {
	idx := NewVerseIndex(uint(len(refs)), DefaultFalsePositiveRate)
	for _, r := range refs {
		idx.Add(r)
	}
	return idx
}

// Add records a verse. Letter suffixes are ignored.
func (i *VerseIndex) Add(ref versefill.Reference) {
	i.f.AddString(ref.Canonical().Key())
}

// Contains returns true if the verse might be in the datastore.
// False positives are possible; false negatives are not.
func (i *VerseIndex) Contains(ref versefill.Reference) bool {
	return i.f.TestString(ref.Canonical().Key())
}

// EstimatedCount returns the approximate number of verses in the index.
func (i *VerseIndex) EstimatedCount() uint {
	return uint(i.f.ApproximatedSize())
}
