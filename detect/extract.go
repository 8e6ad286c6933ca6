package detect

import (
	"strings"

	"github.com/fwojciec/versefill"
)

// Base confidences per shape for pattern-based candidates.
const (
	confidenceBooked     = 0.95
	confidenceChapter    = 0.7
	confidenceStandalone = 0.8
	confidenceBare       = 0.6
)

// Extract scans one outline line and returns its raw candidates in span
// order. Spans are document offsets: offset is the position of line in the
// normalized text. Book-less candidates carry no Book and are resolved later
// against the context. Invalid citations are recorded as ParseDiscard issues.
func Extract(line string, offset, lineNo int, diag *versefill.Diagnostics) []*versefill.Candidate {
	e := &extractor{line: line, offset: offset, lineNo: lineNo, diag: diag}
	e.scanBooked()
	e.scanStandalone()
	e.scanBare()
	return ResolveOverlaps(e.out)
}

type extractor struct {
	line   string
	offset int
	lineNo int
	diag   *versefill.Diagnostics
	out    []*versefill.Candidate

	// rejected holds line-relative spans of discarded booked citations.
	rejected []versefill.Span
}

func (e *extractor) discard(text, reason string) {
	if e.diag != nil {
		e.diag.Add(versefill.IssueParseDiscard, e.lineNo, text, reason)
	}
}

// scanBooked finds "<Book> <chapter>..." citations. A failed match advances
// past its first word only, so "book of Acts 2:4" still finds "Acts 2:4".
func (e *extractor) scanBooked() {
	pos := 0
	for pos < len(e.line) {
		loc := bookRe.FindStringSubmatchIndex(e.line[pos:])
		if loc == nil {
			return
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += pos
			}
		}
		start, digit := loc[0], loc[1]-1
		tokenStart := loc[4]
		if loc[2] >= 0 {
			tokenStart = loc[2]
		}
		token, name := e.line[tokenStart:loc[5]], e.line[loc[4]:loc[5]]

		book, ok := e.lookup(token, digit)
		if !ok && strings.Contains(name, " ") {
			// "gift of Acts 2:4": retry with the last word of the token.
			last := strings.LastIndexAny(name, " \t") + loc[4] + 1
			if book, ok = e.lookup(e.line[last:loc[5]], digit); ok {
				start, tokenStart, name = last, last, e.line[last:loc[5]]
			}
		}
		if !ok {
			// Lowercase words before a "c:v" are prose ("and 5:3"), not books.
			if len(name) >= 3 && !isLower(token[0]) && (&cursor{s: e.line, i: digit}).lookingAtChapterVerse() {
				e.discard(token, "unknown book")
			}
			pos = nextWord(e.line, start)
			continue
		}

		c := &cursor{s: e.line, i: digit}
		clauses, err := parseChain(c, false)
		if err != nil {
			e.discard(e.line[tokenStart:c.i], err.Error())
			e.rejected = append(e.rejected, versefill.Span{Start: tokenStart, End: c.i})
			pos = c.i
			continue
		}
		if len(clauses[0].Items) == 0 && !e.chapterOnlyBook(book, e.line[tokenStart:loc[5]], name) {
			pos = c.i
			continue
		}

		cand := e.candidate(tokenStart, c.i, clauses, true)
		cand.Book = book.ID
		e.out = append(e.out, cand)
		pos = c.i
	}
}

// lookup resolves a book token. Prefix matching is only allowed when the
// tail is a chapter:verse, since a bare word followed by a number is too
// weak a signal.
func (e *extractor) lookup(token string, digit int) (*versefill.Book, bool) {
	c := &cursor{s: e.line, i: digit}
	if !c.lookingAtChapterVerse() {
		return versefill.LookupBookExact(token)
	}
	return versefill.LookupBook(token)
}

// chapterOnlyBook reports whether a chapter-only citation names its book
// firmly enough: capitalized, and an exact registry name or alias. token
// includes any ordinal; name is the word part.
func (e *extractor) chapterOnlyBook(book *versefill.Book, token, name string) bool {
	if name == "" || !(name[0] >= 'A' && name[0] <= 'Z') {
		return false
	}
	exact, ok := versefill.LookupBookExact(token)
	return ok && exact.ID == book.ID
}

// scanStandalone finds "v. 5" and "vv. 31-39".
func (e *extractor) scanStandalone() {
	for _, loc := range standaloneRe.FindAllStringIndex(e.line, -1) {
		c := &cursor{s: e.line, i: loc[1] - 1}
		items, err := parseItems(c)
		if err != nil {
			e.discard(e.line[loc[0]:c.i], err.Error())
			continue
		}
		e.out = append(e.out, e.candidate(loc[0], c.i, []versefill.Clause{{Items: items}}, false))
	}
}

// scanBare finds book-less "12:14-22" citations not already covered by a
// booked candidate.
func (e *extractor) scanBare() {
	pos := 0
	for pos < len(e.line) {
		loc := bareRe.FindStringSubmatchIndex(e.line[pos:])
		if loc == nil {
			return
		}
		start := loc[2] + pos
		if e.covered(start) {
			pos = start + 1
			continue
		}
		c := &cursor{s: e.line, i: start}
		clauses, err := parseChain(c, true)
		if err != nil {
			e.discard(e.line[start:c.i], err.Error())
			pos = c.i + 1
			continue
		}
		cand := e.candidate(start, c.i, clauses, false)
		cand.Confidence = confidenceBare
		e.out = append(e.out, cand)
		pos = c.i
	}
}

func (e *extractor) covered(at int) bool {
	for _, c := range e.out {
		if at >= c.Span.Start-e.offset && at < c.Span.End-e.offset {
			return true
		}
	}
	for _, s := range e.rejected {
		if at >= s.Start && at < s.End {
			return true
		}
	}
	return false
}

// candidate builds a candidate for line[start:end], widening the span over
// a leading "cf." and tagging the render kind.
func (e *extractor) candidate(start, end int, clauses []versefill.Clause, booked bool) *versefill.Candidate {
	shape := versefill.KindStandalone
	if booked {
		shape = shapeOf(clauses)
	}
	kind := shape
	if loc := crossRefRe.FindStringIndex(e.line[:start]); loc != nil {
		start = loc[0]
		kind = versefill.KindCrossRef
	} else if parenDepth(e.line[:start]) > 0 {
		kind = versefill.KindParenthetical
	}

	confidence := confidenceBooked
	switch shape {
	case versefill.KindChapterOnly:
		confidence = confidenceChapter
	case versefill.KindStandalone:
		confidence = confidenceStandalone
	}

	return &versefill.Candidate{
		Span:       versefill.Span{Start: e.offset + start, End: e.offset + end},
		Text:       e.line[start:end],
		Kind:       kind,
		Shape:      shape,
		Line:       e.lineNo,
		Confidence: confidence,
		Sources:    versefill.SourcePattern,
		Clauses:    clauses,
	}
}

// shapeOf classifies the clauses of a booked citation.
func shapeOf(clauses []versefill.Clause) versefill.CandidateKind {
	items := 0
	for _, cl := range clauses {
		items += len(cl.Items)
	}
	switch {
	case items == 0:
		return versefill.KindChapterOnly
	case items > 1 || len(clauses) > 1:
		return versefill.KindList
	default:
		return versefill.KindStandard
	}
}

func parenDepth(s string) int {
	return strings.Count(s, "(") - strings.Count(s, ")")
}

// nextWord returns the index just past the first word starting at i.
func nextWord(s string, i int) int {
	for i < len(s) && !isLetter(s[i]) {
		i++
	}
	for i < len(s) && (isLetter(s[i]) || isDigit(s[i])) {
		i++
	}
	return i
}
