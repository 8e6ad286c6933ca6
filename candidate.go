package versefill

// CandidateKind tags how a citation appeared in the text.
type CandidateKind int

// CandidateKind constants. Parenthetical and CrossRef are render hints; the
// underlying syntax of such a candidate is recorded in Candidate.Shape.
const (
	KindStandard CandidateKind = iota
	KindList
	KindParenthetical
	KindStandalone
	KindChapterOnly
	KindCrossRef
)

var kindNames = [...]string{"standard", "list", "parenthetical", "standalone", "chapter", "crossref"}

// String returns the lowercase kind name.
func (k CandidateKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k CandidateKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Specificity ranks shapes for overlap resolution: Standard and List beat
// ChapterOnly, which beats Standalone.
func (k CandidateKind) Specificity() int {
	switch k {
	case KindStandard, KindList, KindParenthetical, KindCrossRef:
		return 3
	case KindChapterOnly:
		return 2
	default:
		return 1
	}
}

// Source is a bit set naming the strategies that produced a candidate.
type Source uint8

// Source bits.
const (
	SourcePattern Source = 1 << iota
	SourceResolver
)

// Has reports whether s includes o.
func (s Source) Has(o Source) bool {
	return s&o != 0
}

// Names returns the source names for display.
func (s Source) Names() []string {
	var out []string
	if s.Has(SourcePattern) {
		out = append(out, "pattern")
	}
	if s.Has(SourceResolver) {
		out = append(out, "resolver")
	}
	return out
}

// Span is a half-open byte range [Start, End) of the normalized document text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the span length.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether two spans share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Candidate is a textual match that may become one or more references.
// References holds the expanded per-verse references once resolution has
// run; an unresolved candidate has none.
type Candidate struct {
	Span       Span          `json:"span"`
	Text       string        `json:"text"`
	Kind       CandidateKind `json:"kind"`
	Shape      CandidateKind `json:"-"`
	Line       int           `json:"line"`
	References []Reference   `json:"references"`
	Confidence float64       `json:"confidence"`
	Sources    Source        `json:"-"`

	// Parsed but unresolved payload, filled by the extractor.
	Book    BookID   `json:"-"`
	Clauses []Clause `json:"-"`
}

// Clause is one chapter-scoped part of a citation: a chapter plus a list of
// verse items. Chapter is 0 for standalone verse citations. A clause with no
// items cites whole chapters, Chapter through ChapterEnd ("Gen. 1-2").
type Clause struct {
	Chapter    int
	ChapterEnd int
	Items      []VerseItem
}

// VerseItem is a single verse or range inside a clause. EndChapter is set
// when the range crosses into a later chapter ("1:30-2:3"). ToEnd marks an
// open range ("16ff") running to the end of the chapter.
type VerseItem struct {
	Start      int
	End        int
	EndChapter int
	Letter     string
	ToEnd      bool
}

// Combine returns the confidence of two independent sources agreeing.
func Combine(a, b float64) float64 {
	return 1 - (1-a)*(1-b)
}
