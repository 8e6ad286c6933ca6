package detect

import (
	"sort"

	"github.com/fwojciec/versefill"
)

// ResolveOverlaps keeps a non-overlapping subset of candidates. Among
// overlapping candidates the more specific shape wins, then the longer span,
// then the earlier one. The result is ordered by span start.
func ResolveOverlaps(cands []*versefill.Candidate) []*versefill.Candidate {
	if len(cands) < 2 {
		return cands
	}
	ranked := make([]*versefill.Candidate, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if sa, sb := a.Shape.Specificity(), b.Shape.Specificity(); sa != sb {
			return sa > sb
		}
		if a.Span.Len() != b.Span.Len() {
			return a.Span.Len() > b.Span.Len()
		}
		return a.Span.Start < b.Span.Start
	})

	var kept []*versefill.Candidate
	for _, c := range ranked {
		if c.Span.Len() > 0 && overlapsAny(c, kept) {
			continue
		}
		kept = append(kept, c)
	}
	sortBySpan(kept)
	return kept
}

func overlapsAny(c *versefill.Candidate, kept []*versefill.Candidate) bool {
	for _, k := range kept {
		if c.Span.Overlaps(k.Span) {
			return true
		}
	}
	return false
}

func sortBySpan(cands []*versefill.Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Line != cands[j].Line {
			return cands[i].Line < cands[j].Line
		}
		return cands[i].Span.Start < cands[j].Span.Start
	})
}

// AttachLines attaches resolved candidates to their outline lines. A
// reference already attached to a line is dropped from later candidates of
// that line; a candidate left with no references is discarded. The attached
// candidates are returned in document order.
func AttachLines(lines []*versefill.OutlineNode, cands []*versefill.Candidate) []*versefill.Candidate {
	byLine := make(map[int]*versefill.OutlineNode, len(lines))
	for _, n := range lines {
		n.Citations = nil
		n.References = nil
		byLine[n.Line] = n
	}
	sortBySpan(cands)

	var out []*versefill.Candidate
	for _, c := range cands {
		n, ok := byLine[c.Line]
		if !ok || len(c.References) == 0 {
			continue
		}
		if n.Attach(c) {
			out = append(out, c)
		}
	}
	return out
}

// UniqueReferences returns the references of cands with duplicates removed,
// keeping the first occurrence.
func UniqueReferences(cands []*versefill.Candidate) []versefill.Reference {
	seen := make(map[string]bool)
	var out []versefill.Reference
	for _, c := range cands {
		for _, r := range c.References {
			if seen[r.Key()] {
				continue
			}
			seen[r.Key()] = true
			out = append(out, r)
		}
	}
	return out
}
