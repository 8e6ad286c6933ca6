package detect_test

import (
	"testing"

	"github.com/fwojciec/versefill"
	"github.com/fwojciec/versefill/detect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	rom := versefill.BookByID(romans)
	eph := versefill.BookByID(ephesians)

	t.Run("ranges expand ascending", func(t *testing.T) {
		t.Parallel()

		refs, discards := detect.Expand(eph, 0, []versefill.Clause{
			{Chapter: 4, Items: []versefill.VerseItem{{Start: 7, End: 16}}},
			{Chapter: 6, Items: []versefill.VerseItem{{Start: 10, End: 20}}},
		})

		assert.Empty(t, discards)
		require.Len(t, refs, 21)
		assert.Equal(t, versefill.Reference{Book: ephesians, Chapter: 4, Verse: 7}, refs[0])
		assert.Equal(t, versefill.Reference{Book: ephesians, Chapter: 4, Verse: 16}, refs[9])
		assert.Equal(t, versefill.Reference{Book: ephesians, Chapter: 6, Verse: 10}, refs[10])
		assert.Equal(t, versefill.Reference{Book: ephesians, Chapter: 6, Verse: 20}, refs[20])
	})

	t.Run("lists keep input order", func(t *testing.T) {
		t.Parallel()

		refs, _ := detect.Expand(rom, 0, []versefill.Clause{{Chapter: 16, Items: []versefill.VerseItem{
			{Start: 20}, {Start: 1}, {Start: 4, End: 5},
		}}})

		assert.Equal(t, verses(romans, 16, 20, 1, 4, 5), refs)
	})

	t.Run("multi-chapter range uses registry counts", func(t *testing.T) {
		t.Parallel()

		refs, discards := detect.Expand(rom, 0, []versefill.Clause{
			{Chapter: 7, Items: []versefill.VerseItem{{Start: 24, End: 2, EndChapter: 8}}},
		})

		assert.Empty(t, discards)
		assert.Equal(t, append(verses(romans, 7, 24, 25), verses(romans, 8, 1, 2)...), refs)
	})

	t.Run("open range runs to chapter end", func(t *testing.T) {
		t.Parallel()

		refs, _ := detect.Expand(rom, 0, []versefill.Clause{
			{Chapter: 8, Items: []versefill.VerseItem{{Start: 37, ToEnd: true}}},
		})

		assert.Equal(t, verses(romans, 8, 37, 38, 39), refs)
	})

	t.Run("standalone clause takes the given chapter", func(t *testing.T) {
		t.Parallel()

		refs, _ := detect.Expand(rom, 8, []versefill.Clause{{Items: []versefill.VerseItem{{Start: 2}}}})

		assert.Equal(t, verses(romans, 8, 2), refs)
	})

	t.Run("letter suffix is kept", func(t *testing.T) {
		t.Parallel()

		refs, _ := detect.Expand(versefill.BookByID(john), 0, []versefill.Clause{
			{Chapter: 14, Items: []versefill.VerseItem{{Start: 6, Letter: "a"}}},
		})

		require.Len(t, refs, 1)
		assert.Equal(t, "a", refs[0].Letter)
	})

	t.Run("chapter-only clauses stay unexpanded", func(t *testing.T) {
		t.Parallel()

		refs, _ := detect.Expand(versefill.BookByID(1), 0, []versefill.Clause{{Chapter: 1, ChapterEnd: 2}})

		assert.Equal(t, []versefill.Reference{{Book: 1, Chapter: 1}, {Book: 1, Chapter: 2}}, refs)
	})

	t.Run("reversed and out of range items are discarded", func(t *testing.T) {
		t.Parallel()

		refs, discards := detect.Expand(rom, 0, []versefill.Clause{
			{Chapter: 8, Items: []versefill.VerseItem{{Start: 9, End: 3}, {Start: 40}, {Start: 38, End: 41}, {Start: 1}}},
			{Chapter: 17, Items: []versefill.VerseItem{{Start: 1}}},
		})

		assert.Equal(t, verses(romans, 8, 1), refs)
		assert.Len(t, discards, 4)
	})

	t.Run("expansion collapses back to the cited ranges", func(t *testing.T) {
		t.Parallel()

		refs, _ := detect.Expand(eph, 0, []versefill.Clause{
			{Chapter: 4, Items: []versefill.VerseItem{{Start: 7, End: 16}}},
			{Chapter: 6, Items: []versefill.VerseItem{{Start: 10, End: 20}}},
		})

		assert.Equal(t, []versefill.Reference{
			{Book: ephesians, Chapter: 4, Verse: 7, VerseEnd: 16},
			{Book: ephesians, Chapter: 6, Verse: 10, VerseEnd: 20},
		}, versefill.Collapse(refs))
	})
}
