package render_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/fwojciec/versefill"
	"github.com/fwojciec/versefill/detect"
	"github.com/fwojciec/versefill/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	romans    versefill.BookID = 45
	ephesians versefill.BookID = 49
)

func detectText(t *testing.T, text string) *versefill.Detection {
	t.Helper()
	det, err := (&detect.Detector{}).Detect(context.Background(), text)
	require.NoError(t, err)
	return det
}

func verseSet(book versefill.BookID, chapter int, texts map[int]string) *versefill.VerseSet {
	set := versefill.NewVerseSet()
	for v, text := range texts {
		set.Put(versefill.VerseRecord{Reference: versefill.Reference{Book: book, Chapter: chapter, Verse: v}, Text: text})
	}
	return set
}

func renderString(t *testing.T, r *render.Renderer, det *versefill.Detection, set *versefill.VerseSet) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, det, set))
	return buf.String()
}

func TestParseLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want render.Layout
	}{
		{"", render.LayoutInline},
		{"inline", render.LayoutInline},
		{"Margin", render.LayoutMargin},
	}
	for _, tt := range tests {
		got, err := render.ParseLayout(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := render.ParseLayout("sidebar")
	assert.Equal(t, versefill.EINVALID, versefill.ErrorCode(err))
}

func TestRenderer_Inline(t *testing.T) {
	t.Parallel()

	t.Run("verse text follows the citation", func(t *testing.T) {
		t.Parallel()

		det := detectText(t, "Title\nI. Life - Rom. 8:2 frees us\n")
		set := verseSet(romans, 8, map[int]string{2: "For the law of the Spirit of life"})

		got := renderString(t, &render.Renderer{}, det, set)

		assert.Equal(t, "Title\nI. Life - Rom. 8:2 [For the law of the Spirit of life] frees us\n", got)
	})

	t.Run("one missing verse in a range still renders the other nine", func(t *testing.T) {
		t.Parallel()

		det := detectText(t, "I. The armor - Eph. 6:10-19\n")
		texts := make(map[int]string)
		for v := 10; v <= 19; v++ {
			if v != 14 {
				texts[v] = fmt.Sprintf("t%d", v)
			}
		}

		got := renderString(t, &render.Renderer{Layout: render.LayoutInline}, det, verseSet(ephesians, 6, texts))

		assert.Equal(t, "I. The armor - Eph. 6:10-19"+
			" [10 t10 11 t11 12 t12 13 t13]"+
			" [verse text unavailable: Eph. 6:14]"+
			" [15 t15 16 t16 17 t17 18 t18 19 t19]\n", got)
	})

	t.Run("nested levels are indented", func(t *testing.T) {
		t.Parallel()

		det := detectText(t, "I. Point\nA. Sub point\n1. Detail\n")

		got := renderString(t, &render.Renderer{}, det, nil)

		assert.Equal(t, "I. Point\n  A. Sub point\n    1. Detail\n", got)
	})

	t.Run("resolver citations render at the end of the line", func(t *testing.T) {
		t.Parallel()

		ref := versefill.Reference{Book: 62, Chapter: 4, Verse: 7}
		node := &versefill.OutlineNode{Level: versefill.LevelRoman, Marker: "I", Text: "Love one another", TextOffset: 3}
		node.Attach(&versefill.Candidate{
			Span:       versefill.Span{Start: 19, End: 19},
			Text:       "1 John 4:7",
			References: []versefill.Reference{ref},
		})
		det := &versefill.Detection{Outline: &versefill.Outline{Nodes: []*versefill.OutlineNode{node}}}
		set := versefill.NewVerseSet(versefill.VerseRecord{Reference: ref, Text: "Beloved, let us love one another"})

		got := renderString(t, &render.Renderer{}, det, set)

		assert.Equal(t, "I. Love one another (1 John 4:7) [Beloved, let us love one another]\n", got)
	})
}

func TestRenderer_Margin(t *testing.T) {
	t.Parallel()

	t.Run("scripture reading verses are listed beneath the header", func(t *testing.T) {
		t.Parallel()

		det := detectText(t, "Title\nScripture Reading: Rom. 8:2\nI. Life - v. 2\n")
		set := verseSet(romans, 8, map[int]string{2: "For the law"})

		got := renderString(t, &render.Renderer{Layout: render.LayoutMargin, MarginWidth: 10}, det, set)

		assert.Equal(t, ""+
			"          Title\n"+
			"          Scripture Reading: Rom. 8:2\n"+
			"Rom. 8:2  For the law\n"+
			"          I. Life - v. 2\n"+
			"Rom. 8:2  For the law\n", got)
	})

	t.Run("ranges expand to one verse per line", func(t *testing.T) {
		t.Parallel()

		det := detectText(t, "I. Love - Rom. 8:38-39\n")
		set := verseSet(romans, 8, map[int]string{38: "For I am persuaded"})

		got := renderString(t, &render.Renderer{Layout: render.LayoutMargin}, det, set)

		assert.Equal(t, ""+
			"              I. Love - Rom. 8:38-39\n"+
			"Rom. 8:38     For I am persuaded\n"+
			"Rom. 8:39     [verse text unavailable: Rom. 8:39]\n", got)
	})
}

func TestRenderer_StructuralInconsistency(t *testing.T) {
	t.Parallel()

	t.Run("header after body renders as plain text", func(t *testing.T) {
		t.Parallel()

		det := detectText(t, "I. Point\nScripture Reading: Rom. 8:2\n")

		require.Equal(t, 1, det.Diagnostics.Count(versefill.IssueStructuralInconsistency))

		got := renderString(t, &render.Renderer{}, det, nil)
		assert.Equal(t, "I. Point\nScripture Reading: Rom. 8:2 [verse text unavailable: Rom. 8:2]\n", got)

		// Rendering the same detection again in another layout leaves it unchanged.
		renderString(t, &render.Renderer{Layout: render.LayoutMargin}, det, nil)
		assert.Equal(t, 1, det.Diagnostics.Count(versefill.IssueStructuralInconsistency))
	})

	t.Run("unknown level renders as plain text", func(t *testing.T) {
		t.Parallel()

		det := &versefill.Detection{Outline: &versefill.Outline{Nodes: []*versefill.OutlineNode{
			{Level: versefill.Level(42), Text: "odd line"},
		}}}

		got := renderString(t, &render.Renderer{}, det, nil)

		assert.Equal(t, "odd line\n", got)
		assert.Empty(t, det.Diagnostics.Issues)
	})

	t.Run("rejects unknown layout", func(t *testing.T) {
		t.Parallel()

		det := detectText(t, "John 3:16")
		err := (&render.Renderer{Layout: "sidebar"}).Render(&bytes.Buffer{}, det, nil)
		assert.Equal(t, versefill.EINVALID, versefill.ErrorCode(err))
	})
}

func TestWriteReferences(t *testing.T) {
	t.Parallel()

	det := detectText(t, "I. Greetings (Rom. 16:1, 4-5)\n")

	var buf bytes.Buffer
	require.NoError(t, render.WriteReferences(&buf, det))

	var got struct {
		Fingerprint string `json:"fingerprint"`
		Citations   []struct {
			Text       string   `json:"text"`
			Kind       string   `json:"kind"`
			Sources    []string `json:"sources"`
			References []string `json:"references"`
		} `json:"citations"`
		References []string `json:"references"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, det.Fingerprint, got.Fingerprint)
	require.Len(t, got.Citations, 1)
	assert.Equal(t, "Rom. 16:1, 4-5", got.Citations[0].Text)
	assert.Equal(t, "parenthetical", got.Citations[0].Kind)
	assert.Equal(t, []string{"pattern"}, got.Citations[0].Sources)
	assert.Equal(t, []string{"Rom. 16:1", "Rom. 16:4-5"}, got.Citations[0].References)
	assert.Equal(t, []string{"Rom. 16:1", "Rom. 16:4", "Rom. 16:5"}, got.References)
}
