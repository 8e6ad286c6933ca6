package versefill_test

import (
	"testing"

	"github.com/fwojciec/versefill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutlineNode_Attach(t *testing.T) {
	t.Parallel()

	acts := versefill.Reference{Book: 44, Chapter: 10, Verse: 43}

	t.Run("attaches a reference to a line only once", func(t *testing.T) {
		t.Parallel()

		node := &versefill.OutlineNode{Level: versefill.LevelLetter}
		paren := &versefill.Candidate{Kind: versefill.KindParenthetical, References: []versefill.Reference{acts}}
		inline := &versefill.Candidate{Kind: versefill.KindStandard, References: []versefill.Reference{acts}}

		assert.True(t, node.Attach(paren))
		assert.False(t, node.Attach(inline))
		assert.Equal(t, []versefill.Reference{acts}, node.References)
		assert.Len(t, node.Citations, 1)
	})

	t.Run("keeps only the new references of a partly seen citation", func(t *testing.T) {
		t.Parallel()

		next := versefill.Reference{Book: 44, Chapter: 10, Verse: 44}
		node := &versefill.OutlineNode{}
		require.True(t, node.Attach(&versefill.Candidate{References: []versefill.Reference{acts}}))

		c := &versefill.Candidate{References: []versefill.Reference{acts, next}}
		require.True(t, node.Attach(c))
		assert.Equal(t, []versefill.Reference{next}, c.References)
		assert.Equal(t, []versefill.Reference{acts, next}, node.References)
	})

	t.Run("a lettered verse counts as the same reference", func(t *testing.T) {
		t.Parallel()

		node := &versefill.OutlineNode{}
		lettered := acts
		lettered.Letter = "a"
		require.True(t, node.Attach(&versefill.Candidate{References: []versefill.Reference{acts}}))
		assert.False(t, node.Attach(&versefill.Candidate{References: []versefill.Reference{lettered}}))
	})
}

func TestOutline_Walk(t *testing.T) {
	t.Parallel()

	child := &versefill.OutlineNode{Level: versefill.LevelLetter, Text: "child"}
	outline := &versefill.Outline{Nodes: []*versefill.OutlineNode{
		{Level: versefill.LevelTitle, Text: "title"},
		{Level: versefill.LevelRoman, Text: "root", Children: []*versefill.OutlineNode{child}},
	}}

	var texts []string
	var depths []int
	outline.Walk(func(n *versefill.OutlineNode, depth int) {
		texts = append(texts, n.Text)
		depths = append(depths, depth)
	})

	assert.Equal(t, []string{"title", "root", "child"}, texts)
	assert.Equal(t, []int{0, 0, 1}, depths)
	assert.Len(t, outline.Lines(), 3)
}

func TestLevel(t *testing.T) {
	t.Parallel()

	assert.True(t, versefill.LevelScriptureReading.IsHeader())
	assert.False(t, versefill.LevelRoman.IsHeader())

	l, ok := versefill.ParseLevel("scripture_reading")
	require.True(t, ok)
	assert.Equal(t, versefill.LevelScriptureReading, l)

	_, ok = versefill.ParseLevel("chapter")
	assert.False(t, ok)
}
