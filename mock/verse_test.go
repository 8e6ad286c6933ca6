package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/versefill"
	"github.com/fwojciec/versefill/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerseStore_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("delegates to LookupFn", func(t *testing.T) {
		t.Parallel()

		var gotBook versefill.BookID
		var gotRange [3]int
		s := &mock.VerseStore{
			LookupFn: func(_ context.Context, book versefill.BookID, chapter, verseStart, verseEnd int) ([]versefill.VerseText, error) {
				gotBook = book
				gotRange = [3]int{chapter, verseStart, verseEnd}
				return []versefill.VerseText{{Verse: 2, Text: "For the law of the Spirit of life"}}, nil
			},
		}

		got, err := s.Lookup(context.Background(), 45, 8, 2, 2)

		require.NoError(t, err)
		assert.Equal(t, versefill.BookID(45), gotBook)
		assert.Equal(t, [3]int{8, 2, 2}, gotRange)
		assert.Len(t, got, 1)
	})
}

func TestVerseWriter_CreateVerses(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CreateVersesFn", func(t *testing.T) {
		t.Parallel()

		var calledWith []versefill.VerseRecord
		w := &mock.VerseWriter{
			CreateVersesFn: func(_ context.Context, records []versefill.VerseRecord) error {
				calledWith = records
				return nil
			},
		}

		records := []versefill.VerseRecord{{
			Reference: versefill.Reference{Book: 43, Chapter: 3, Verse: 16},
			Text:      "For God so loved the world",
		}}

		err := w.CreateVerses(context.Background(), records)

		require.NoError(t, err)
		assert.Equal(t, records, calledWith)
	})
}
