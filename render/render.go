// Package render writes a detected outline back out with verse text attached.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fwojciec/versefill"
)

// Layout selects where verse text is placed.
type Layout string

// Layout constants.
const (
	LayoutInline Layout = "inline"
	LayoutMargin Layout = "margin"
)

// DefaultMarginWidth is the width of the margin column.
const DefaultMarginWidth = 14

// ParseLayout maps a layout name to a Layout. Empty means inline.
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(s)) {
	case "", LayoutInline:
		return LayoutInline, nil
	case LayoutMargin:
		return LayoutMargin, nil
	}
	return "", versefill.Errorf(versefill.EINVALID, "unknown layout %q", s)
}

// Renderer writes annotated outlines.
type Renderer struct {
	Layout      Layout
	MarginWidth int
}

// state is the position of a render in the document structure. Header
// lines may only be emitted before the first body line.
type state int

const (
	stateNotStarted state = iota
	stateTitleEmitted
	stateBodyEmitted
	stateFinalized
)

type session struct {
	r      *Renderer
	det    *versefill.Detection
	verses *versefill.VerseSet
	state  state
	b      strings.Builder
}

// Render writes the outline of det with verse text from verses. Verses
// absent from the set render as placeholders. Header lines found after the
// body has started, and lines of unknown level, render as plain text. Render
// does not modify det.
func (r *Renderer) Render(w io.Writer, det *versefill.Detection, verses *versefill.VerseSet) error {
	if det == nil || det.Outline == nil {
		return versefill.Errorf(versefill.EINVALID, "nothing to render")
	}
	if verses == nil {
		verses = versefill.NewVerseSet()
	}
	switch r.Layout {
	case "", LayoutInline, LayoutMargin:
	default:
		return versefill.Errorf(versefill.EINVALID, "unknown layout %q", r.Layout)
	}

	s := &session{r: r, det: det, verses: verses}
	det.Outline.Walk(s.node)
	s.state = stateFinalized

	_, err := io.WriteString(w, s.b.String())
	return err
}

func (s *session) node(n *versefill.OutlineNode, depth int) {
	level := n.Level
	switch {
	case level < versefill.LevelTitle || level > versefill.LevelPlain:
		level = versefill.LevelPlain
	case level.IsHeader() && s.state == stateBodyEmitted:
		level = versefill.LevelPlain
	}

	if level.IsHeader() {
		s.state = stateTitleEmitted
		depth = 0
	} else {
		s.state = stateBodyEmitted
	}

	indent := strings.Repeat("  ", depth)
	prefix := s.prefix(n)
	if s.r.Layout == LayoutMargin {
		s.b.WriteString(strings.Repeat(" ", s.marginWidth()))
		s.b.WriteString(indent + prefix + n.Text + "\n")
		for _, c := range n.Citations {
			for _, rec := range s.records(c) {
				s.b.WriteString(s.label(rec.Reference) + indent + verseText(rec) + "\n")
			}
		}
		return
	}
	s.b.WriteString(indent + prefix + s.inline(n) + "\n")
}

// prefix returns the structural marker of a line as written in the source
// document, falling back to a canonical marker.
func (s *session) prefix(n *versefill.OutlineNode) string {
	if text := s.det.Text; n.TextOffset > 0 && n.TextOffset <= len(text) {
		start := strings.LastIndexByte(text[:n.TextOffset], '\n') + 1
		return strings.TrimLeft(text[start:n.TextOffset], " \t")
	}
	switch {
	case n.Level == versefill.LevelScriptureReading && !n.Continuation:
		return "Scripture Reading: "
	case n.Marker != "":
		return n.Marker + ". "
	}
	return ""
}

// inline returns the text of n with verse text inserted after each citation.
func (s *session) inline(n *versefill.OutlineNode) string {
	cites := make([]*versefill.Candidate, len(n.Citations))
	copy(cites, n.Citations)
	sort.SliceStable(cites, func(i, j int) bool { return cites[i].Span.End < cites[j].Span.End })

	var b strings.Builder
	pos := 0
	for _, c := range cites {
		end := c.Span.End - n.TextOffset
		end = min(max(end, pos), len(n.Text))
		b.WriteString(n.Text[pos:end])
		pos = end
		if c.Span.Len() == 0 {
			b.WriteString(" (" + c.Text + ")")
		}
		for _, seg := range segments(s.records(c)) {
			b.WriteString(" " + seg)
		}
	}
	b.WriteString(n.Text[pos:])
	return b.String()
}

func (s *session) records(c *versefill.Candidate) []versefill.VerseRecord {
	var out []versefill.VerseRecord
	for _, ref := range c.References {
		out = append(out, s.verses.Records(ref)...)
	}
	return out
}

func (s *session) label(ref versefill.Reference) string {
	label := ref.Short()
	width := s.marginWidth()
	if len(label) >= width {
		return label + " "
	}
	return label + strings.Repeat(" ", width-len(label))
}

func (s *session) marginWidth() int {
	if s.r.MarginWidth > 0 {
		return s.r.MarginWidth
	}
	return DefaultMarginWidth
}

// segments groups consecutive fetched verses into one bracketed run each,
// with a placeholder for every missing verse. Verse numbers are shown
// when a citation covers more than one verse.
func segments(records []versefill.VerseRecord) []string {
	numbered := len(records) > 1
	var out []string
	var run []string
	flush := func() {
		if len(run) > 0 {
			out = append(out, "["+strings.Join(run, " ")+"]")
			run = nil
		}
	}
	for _, rec := range records {
		if rec.Missing {
			flush()
			out = append(out, verseText(rec))
			continue
		}
		if numbered {
			run = append(run, fmt.Sprintf("%d %s", rec.Reference.Verse, rec.Text))
		} else {
			run = append(run, rec.Text)
		}
	}
	flush()
	return out
}

func verseText(rec versefill.VerseRecord) string {
	if rec.Missing {
		return "[verse text unavailable: " + rec.Reference.Short() + "]"
	}
	return rec.Text
}
