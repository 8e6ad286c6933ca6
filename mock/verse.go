package mock

import (
	"context"

	"github.com/fwojciec/versefill"
)

var _ versefill.VerseStore = (*VerseStore)(nil)

// VerseStore is a mock implementation of versefill.VerseStore.
type VerseStore struct {
	LookupFn func(ctx context.Context, book versefill.BookID, chapter, verseStart, verseEnd int) ([]versefill.VerseText, error)
}

func (s *VerseStore) Lookup(ctx context.Context, book versefill.BookID, chapter, verseStart, verseEnd int) ([]versefill.VerseText, error) {
	return s.LookupFn(ctx, book, chapter, verseStart, verseEnd)
}

var _ versefill.VerseWriter = (*VerseWriter)(nil)

// VerseWriter is a mock implementation of versefill.VerseWriter.
type VerseWriter struct {
	CreateVersesFn func(ctx context.Context, records []versefill.VerseRecord) error
}

func (w *VerseWriter) CreateVerses(ctx context.Context, records []versefill.VerseRecord) error {
	return w.CreateVersesFn(ctx, records)
}

var _ versefill.VerseIndex = (*VerseIndex)(nil)

// VerseIndex is a mock implementation of versefill.VerseIndex.
type VerseIndex struct {
	ContainsFn func(ref versefill.Reference) bool
}

func (i *VerseIndex) Contains(ref versefill.Reference) bool {
	return i.ContainsFn(ref)
}
