package detect_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/versefill"
	"github.com/fwojciec/versefill/detect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutline = `The Spirit of Life
Message One

Scripture Reading: Rom. 8:2, 31-39
I. The law of the Spirit of life frees us - v. 2
  A. Nothing separates us from the love of God - vv. 31-39
    1. Who shall separate us? (John 10:28)
      a. Neither death nor life
II. Walking according to the spirit - Gal. 5:16, 25
`

func TestParseOutline(t *testing.T) {
	t.Parallel()

	outline := detect.ParseOutline(sampleOutline)
	lines := outline.Lines()

	require.Len(t, lines, 8)
	levels := make([]versefill.Level, len(lines))
	for i, n := range lines {
		levels[i] = n.Level
	}
	assert.Equal(t, []versefill.Level{
		versefill.LevelTitle,
		versefill.LevelSubtitle,
		versefill.LevelScriptureReading,
		versefill.LevelRoman,
		versefill.LevelLetter,
		versefill.LevelNumber,
		versefill.LevelPlain,
		versefill.LevelRoman,
	}, levels)

	t.Run("strips markers and keeps line numbers", func(t *testing.T) {
		t.Parallel()

		sr := lines[2]
		assert.Equal(t, "Rom. 8:2, 31-39", sr.Text)
		assert.Equal(t, 3, sr.Line)

		roman := lines[3]
		assert.Equal(t, "I", roman.Marker)
		assert.Equal(t, "The law of the Spirit of life frees us - v. 2", roman.Text)

		sub := lines[6]
		assert.Equal(t, "a", sub.Marker)
		assert.Equal(t, "Neither death nor life", sub.Text)
	})

	t.Run("text offsets point into the document", func(t *testing.T) {
		t.Parallel()

		for _, n := range lines {
			assert.Equal(t, n.Text, sampleOutline[n.TextOffset:n.TextOffset+len(n.Text)])
		}
	})

	t.Run("builds the tree by level", func(t *testing.T) {
		t.Parallel()

		require.Len(t, outline.Nodes, 5)
		first := outline.Nodes[3]
		require.Len(t, first.Children, 1)
		letter := first.Children[0]
		require.Len(t, letter.Children, 1)
		number := letter.Children[0]
		require.Len(t, number.Children, 1)
		assert.Equal(t, versefill.LevelPlain, number.Children[0].Level)
		assert.Empty(t, outline.Nodes[4].Children)
	})
}

func TestParseOutline_ScriptureReadingContinuation(t *testing.T) {
	t.Parallel()

	text := "Title\nScripture Reading: Rom. 8:2\nEph. 4:7-16\nI. Point\n"

	lines := detect.ParseOutline(text).Lines()

	require.Len(t, lines, 4)
	assert.Equal(t, versefill.LevelScriptureReading, lines[2].Level)
	assert.True(t, lines[2].Continuation)
	assert.Equal(t, "Eph. 4:7-16", lines[2].Text)
}

func TestParseOutline_LetterI(t *testing.T) {
	t.Parallel()

	text := "I. Point\nH. Eighth\nI. Ninth\nII. Next point\n"

	lines := detect.ParseOutline(text).Lines()

	require.Len(t, lines, 4)
	assert.Equal(t, versefill.LevelRoman, lines[0].Level)
	assert.Equal(t, versefill.LevelLetter, lines[1].Level)
	assert.Equal(t, versefill.LevelLetter, lines[2].Level)
	assert.Equal(t, "I", lines[2].Marker)
	assert.Equal(t, versefill.LevelRoman, lines[3].Level)
}

func TestParseOutline_UnmarkedBodyLinesArePlain(t *testing.T) {
	t.Parallel()

	text := "I. Point\nsome continuing prose\n"

	outline := detect.ParseOutline(text)

	require.Len(t, outline.Nodes, 1)
	require.Len(t, outline.Nodes[0].Children, 1)
	assert.Equal(t, versefill.LevelPlain, outline.Nodes[0].Children[0].Level)
	assert.True(t, strings.HasPrefix(outline.Nodes[0].Children[0].Text, "some"))
}

func TestCheckStructure(t *testing.T) {
	t.Parallel()

	t.Run("header after body", func(t *testing.T) {
		t.Parallel()

		var diag versefill.Diagnostics
		detect.CheckStructure(detect.ParseOutline("Title\nI. Point\nScripture Reading: Acts 1:1\n"), &diag)

		require.Len(t, diag.Issues, 1)
		assert.Equal(t, versefill.IssueStructuralInconsistency, diag.Issues[0].Kind)
		assert.Equal(t, 2, diag.Issues[0].Line)
	})

	t.Run("well formed outline", func(t *testing.T) {
		t.Parallel()

		var diag versefill.Diagnostics
		detect.CheckStructure(detect.ParseOutline("Title\nScripture Reading: Acts 1:1\nI. Point\n"), &diag)

		assert.Empty(t, diag.Issues)
	})

	t.Run("unknown level", func(t *testing.T) {
		t.Parallel()

		var diag versefill.Diagnostics
		detect.CheckStructure(&versefill.Outline{Nodes: []*versefill.OutlineNode{{Level: versefill.Level(42), Text: "odd line"}}}, &diag)

		require.Len(t, diag.Issues, 1)
		assert.Equal(t, "unrecognized outline level", diag.Issues[0].Reason)
	})
}
