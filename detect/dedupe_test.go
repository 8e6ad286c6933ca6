package detect_test

import (
	"testing"

	"github.com/fwojciec/versefill"
	"github.com/fwojciec/versefill/detect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cand(start, end int, shape versefill.CandidateKind) *versefill.Candidate {
	return &versefill.Candidate{Span: versefill.Span{Start: start, End: end}, Kind: shape, Shape: shape}
}

func TestResolveOverlaps(t *testing.T) {
	t.Parallel()

	t.Run("more specific shape wins", func(t *testing.T) {
		t.Parallel()

		standalone := cand(0, 20, versefill.KindStandalone)
		chapter := cand(5, 12, versefill.KindChapterOnly)
		standard := cand(10, 18, versefill.KindStandard)

		got := detect.ResolveOverlaps([]*versefill.Candidate{standalone, chapter, standard})

		assert.Equal(t, []*versefill.Candidate{standard}, got)
	})

	t.Run("longer span wins a tie", func(t *testing.T) {
		t.Parallel()

		short := cand(0, 8, versefill.KindStandard)
		long := cand(4, 20, versefill.KindList)

		got := detect.ResolveOverlaps([]*versefill.Candidate{short, long})

		assert.Equal(t, []*versefill.Candidate{long}, got)
	})

	t.Run("earlier span wins a full tie", func(t *testing.T) {
		t.Parallel()

		a := cand(0, 8, versefill.KindStandard)
		b := cand(4, 12, versefill.KindStandard)

		got := detect.ResolveOverlaps([]*versefill.Candidate{b, a})

		assert.Equal(t, []*versefill.Candidate{a}, got)
	})

	t.Run("render hints do not change specificity", func(t *testing.T) {
		t.Parallel()

		paren := &versefill.Candidate{Span: versefill.Span{Start: 0, End: 6}, Kind: versefill.KindParenthetical, Shape: versefill.KindStandalone}
		chapter := cand(2, 8, versefill.KindChapterOnly)

		got := detect.ResolveOverlaps([]*versefill.Candidate{paren, chapter})

		assert.Equal(t, []*versefill.Candidate{chapter}, got)
	})

	t.Run("disjoint candidates are kept in span order", func(t *testing.T) {
		t.Parallel()

		a := cand(0, 4, versefill.KindStandalone)
		b := cand(10, 14, versefill.KindStandard)

		got := detect.ResolveOverlaps([]*versefill.Candidate{b, a})

		assert.Equal(t, []*versefill.Candidate{a, b}, got)
	})
}

func TestAttachLines(t *testing.T) {
	t.Parallel()

	ref := versefill.Reference{Book: acts, Chapter: 10, Verse: 43}
	line := &versefill.OutlineNode{Level: versefill.LevelLetter, Line: 4}
	other := &versefill.OutlineNode{Level: versefill.LevelLetter, Line: 5}
	paren := &versefill.Candidate{Span: versefill.Span{Start: 10, End: 20}, Line: 4, References: []versefill.Reference{ref}}
	inline := &versefill.Candidate{Span: versefill.Span{Start: 30, End: 40}, Line: 4, References: []versefill.Reference{ref}}
	again := &versefill.Candidate{Span: versefill.Span{Start: 50, End: 60}, Line: 5, References: []versefill.Reference{ref}}

	got := detect.AttachLines([]*versefill.OutlineNode{line, other}, []*versefill.Candidate{inline, again, paren})

	require.Equal(t, []*versefill.Candidate{paren, again}, got)
	assert.Equal(t, []versefill.Reference{ref}, line.References)
	assert.Equal(t, []versefill.Reference{ref}, other.References)
	assert.Equal(t, []versefill.Reference{ref}, detect.UniqueReferences(got))
}
