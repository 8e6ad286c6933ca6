package versefill_test

import (
	"testing"

	"github.com/fwojciec/versefill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	romans    versefill.BookID = 45
	ephesians versefill.BookID = 49
)

func TestReference_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ref     versefill.Reference
		wantErr bool
	}{
		{"single verse", versefill.Reference{Book: romans, Chapter: 8, Verse: 2}, false},
		{"whole chapter", versefill.Reference{Book: romans, Chapter: 8}, false},
		{"range", versefill.Reference{Book: romans, Chapter: 8, Verse: 31, VerseEnd: 39}, false},
		{"unknown book", versefill.Reference{Book: 99, Chapter: 1, Verse: 1}, true},
		{"zero chapter", versefill.Reference{Book: romans, Chapter: 0, Verse: 1}, true},
		{"chapter beyond book", versefill.Reference{Book: romans, Chapter: 17, Verse: 1}, true},
		{"reversed range", versefill.Reference{Book: romans, Chapter: 8, Verse: 9, VerseEnd: 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.ref.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, versefill.EINVALID, versefill.ErrorCode(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestReference_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Romans 8:2", versefill.Reference{Book: romans, Chapter: 8, Verse: 2}.String())
	assert.Equal(t, "Rom. 8:31-39", versefill.Reference{Book: romans, Chapter: 8, Verse: 31, VerseEnd: 39}.Short())
	assert.Equal(t, "Rom. 8", versefill.Reference{Book: romans, Chapter: 8}.Short())
	assert.Equal(t, "John 14:6a", versefill.Reference{Book: 43, Chapter: 14, Verse: 6, Letter: "a"}.Short())
}

func TestReference_Key(t *testing.T) {
	t.Parallel()

	plain := versefill.Reference{Book: 43, Chapter: 14, Verse: 6}
	lettered := versefill.Reference{Book: 43, Chapter: 14, Verse: 6, Letter: "a"}

	assert.Equal(t, "43:14:6", plain.Key())
	assert.Equal(t, plain.Key(), lettered.Key())
	assert.Equal(t, plain, lettered.Canonical())
}

func TestReference_Verses(t *testing.T) {
	t.Parallel()

	t.Run("range expands ascending", func(t *testing.T) {
		t.Parallel()

		got := versefill.Reference{Book: ephesians, Chapter: 4, Verse: 7, VerseEnd: 16}.Verses()
		require.Len(t, got, 10)
		assert.Equal(t, 7, got[0].Verse)
		assert.Equal(t, 16, got[9].Verse)
	})

	t.Run("whole chapter expands with registry count", func(t *testing.T) {
		t.Parallel()

		got := versefill.Reference{Book: romans, Chapter: 8}.Verses()
		require.Len(t, got, 39)
		assert.Equal(t, 1, got[0].Verse)
	})

	t.Run("single verse keeps its letter", func(t *testing.T) {
		t.Parallel()

		ref := versefill.Reference{Book: 43, Chapter: 14, Verse: 6, Letter: "a"}
		assert.Equal(t, []versefill.Reference{ref}, ref.Verses())
	})
}

func TestCollapse(t *testing.T) {
	t.Parallel()

	t.Run("inverts expansion of contiguous ranges", func(t *testing.T) {
		t.Parallel()

		for _, r := range []versefill.Reference{
			{Book: ephesians, Chapter: 4, Verse: 7, VerseEnd: 16},
			{Book: ephesians, Chapter: 6, Verse: 10, VerseEnd: 20},
			{Book: romans, Chapter: 8, Verse: 31, VerseEnd: 39},
			{Book: romans, Chapter: 8, Verse: 2},
		} {
			assert.Equal(t, []versefill.Reference{r}, versefill.Collapse(r.Verses()), r.String())
		}
	})

	t.Run("keeps discrete verses apart", func(t *testing.T) {
		t.Parallel()

		refs := []versefill.Reference{
			{Book: romans, Chapter: 16, Verse: 1},
			{Book: romans, Chapter: 16, Verse: 4},
			{Book: romans, Chapter: 16, Verse: 5},
			{Book: romans, Chapter: 16, Verse: 16},
		}
		got := versefill.Collapse(refs)
		assert.Equal(t, []versefill.Reference{
			{Book: romans, Chapter: 16, Verse: 1},
			{Book: romans, Chapter: 16, Verse: 4, VerseEnd: 5},
			{Book: romans, Chapter: 16, Verse: 16},
		}, got)
	})

	t.Run("does not merge across chapters", func(t *testing.T) {
		t.Parallel()

		refs := []versefill.Reference{
			{Book: romans, Chapter: 8, Verse: 39},
			{Book: romans, Chapter: 9, Verse: 1},
		}
		assert.Equal(t, refs, versefill.Collapse(refs))
	})
}

func TestSortReferences(t *testing.T) {
	t.Parallel()

	refs := []versefill.Reference{
		{Book: ephesians, Chapter: 1, Verse: 1},
		{Book: romans, Chapter: 8, Verse: 31},
		{Book: romans, Chapter: 8, Verse: 2},
	}
	versefill.SortReferences(refs)

	assert.Equal(t, []versefill.Reference{
		{Book: romans, Chapter: 8, Verse: 2},
		{Book: romans, Chapter: 8, Verse: 31},
		{Book: ephesians, Chapter: 1, Verse: 1},
	}, refs)
}
