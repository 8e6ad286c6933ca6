package detect

import (
	"strings"
	"unicode"

	"github.com/fwojciec/versefill"
)

// confidenceResolver is the base confidence of a resolver-only reference.
const confidenceResolver = 0.6

// minMatchLen is the shortest squashed text that may match an outline line.
const minMatchLen = 4

// Reconcile merges a Resolver result into the pattern candidates of lines.
// It never modifies its inputs. Resolver nodes are matched to outline lines
// by normalized text containment in document order. A resolver reference
// already found by the pattern path on the same line merges into that
// candidate: sources are
// united, confidences combined and the pattern span kept. Other references
// become new resolver candidates placed at the end of the matched line.
// References that cannot be placed or resolved are counted as unmatched.
func Reconcile(lines []*versefill.OutlineNode, pattern []*versefill.Candidate, result versefill.ResolverResult) ([]*versefill.Candidate, versefill.ResolverStats) {
	stats := versefill.ResolverStats{Status: result.Status}
	if result.Err != nil {
		stats.Error = result.Err.Error()
	}

	out := make([]*versefill.Candidate, len(pattern))
	for i, c := range pattern {
		cp := *c
		cp.References = append([]versefill.Reference(nil), c.References...)
		out[i] = &cp
	}
	if result.Status != versefill.ResolverOK || result.Resolution == nil {
		return out, stats
	}

	r := &reconciler{
		lines:  lines,
		keys:   make([]string, len(lines)),
		merged: make(map[*versefill.Candidate]bool),
		stats:  &stats,
	}
	for i, n := range lines {
		r.keys[i] = squash(n.Text)
	}
	r.index(out)

	for _, node := range result.Resolution.Nodes {
		if len(node.References) == 0 {
			continue
		}
		i, ok := r.match(node.Text)
		if !ok {
			stats.Unmatched += len(node.References)
			continue
		}
		for _, ref := range node.References {
			if c := r.add(lines[i], ref); c != nil {
				out = append(out, c)
			}
		}
	}
	sortBySpan(out)
	return out, stats
}

type reconciler struct {
	lines  []*versefill.OutlineNode
	keys   []string
	cursor int

	byLine map[int]map[string]*versefill.Candidate
	merged map[*versefill.Candidate]bool
	stats  *versefill.ResolverStats
}

func (r *reconciler) index(cands []*versefill.Candidate) {
	r.byLine = make(map[int]map[string]*versefill.Candidate)
	for _, c := range cands {
		r.indexCandidate(c)
	}
}

func (r *reconciler) indexCandidate(c *versefill.Candidate) {
	m := r.byLine[c.Line]
	if m == nil {
		m = make(map[string]*versefill.Candidate)
		r.byLine[c.Line] = m
	}
	for _, ref := range c.References {
		if _, ok := m[ref.Key()]; !ok {
			m[ref.Key()] = c
		}
	}
}

// match finds the outline line a resolver node describes, searching forward
// from the previous match first and then from the top.
func (r *reconciler) match(text string) (int, bool) {
	key := squash(text)
	if len(key) < minMatchLen {
		return 0, false
	}
	n := len(r.lines)
	for k := 0; k < n; k++ {
		i := (r.cursor + k) % n
		if len(r.keys[i]) < minMatchLen {
			continue
		}
		if strings.Contains(r.keys[i], key) || strings.Contains(key, r.keys[i]) {
			r.cursor = i + 1
			return i, true
		}
	}
	return 0, false
}

// add merges one resolver reference on line and returns a new candidate
// for the verses the pattern path did not find, or nil.
func (r *reconciler) add(line *versefill.OutlineNode, rr versefill.ResolvedReference) *versefill.Candidate {
	refs, ok := resolvedRefs(rr)
	if !ok {
		r.stats.Unmatched++
		return nil
	}

	var fresh []versefill.Reference
	for _, ref := range refs {
		c := r.byLine[line.Line][ref.Key()]
		if c == nil {
			fresh = append(fresh, ref)
			continue
		}
		r.stats.Merged++
		if !r.merged[c] {
			r.merged[c] = true
			c.Sources |= versefill.SourceResolver
			c.Confidence = versefill.Combine(c.Confidence, confidenceResolver)
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	end := line.TextOffset + len(line.Text)
	kind := versefill.KindStandard
	switch {
	case fresh[0].IsChapter():
		kind = versefill.KindChapterOnly
	case len(fresh) > 1:
		kind = versefill.KindList
	}
	text := rr.Citation
	if text == "" {
		text = versefill.Collapse(fresh)[0].Short()
	}
	c := &versefill.Candidate{
		Span:       versefill.Span{Start: end, End: end},
		Text:       text,
		Kind:       kind,
		Shape:      kind,
		Line:       line.Line,
		References: fresh,
		Confidence: confidenceResolver,
		Sources:    versefill.SourceResolver,
		Book:       fresh[0].Book,
	}
	r.stats.Added += len(fresh)
	r.indexCandidate(c)
	return c
}

// resolvedRefs converts a resolver reference into canonical references.
// References naming an unknown book, chapter or verse are rejected.
func resolvedRefs(rr versefill.ResolvedReference) ([]versefill.Reference, bool) {
	book, ok := versefill.LookupBook(rr.Book)
	if !ok || book.VerseCount(rr.Chapter) == 0 {
		return nil, false
	}
	if rr.VerseStart <= 0 {
		return []versefill.Reference{{Book: book.ID, Chapter: rr.Chapter}}, true
	}
	item := versefill.VerseItem{Start: rr.VerseStart}
	if rr.VerseEnd > rr.VerseStart {
		item.End = rr.VerseEnd
	}
	refs, discards := Expand(book, rr.Chapter, []versefill.Clause{{Chapter: rr.Chapter, Items: []versefill.VerseItem{item}}})
	return refs, len(discards) == 0 && len(refs) > 0
}

// squash lowercases s and keeps only letters and digits, so line matching
// ignores punctuation, spacing and markers.
func squash(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
