package detect

import (
	"strings"

	"github.com/fwojciec/versefill"
)

// ScopePolicy decides how Scripture Reading headers govern standalone
// verse citations when a document has more than one of them.
type ScopePolicy int

// ScopePolicy constants.
const (
	// ScopeLatest lets each Scripture Reading header replace the scope
	// opened by the previous one.
	ScopeLatest ScopePolicy = iota
	// ScopeFirst keeps the first Scripture Reading header in force until a
	// title or subtitle; later ones only update the nearest context.
	ScopeFirst
	// ScopeNearest ignores section scopes entirely.
	ScopeNearest
)

var scopePolicyNames = [...]string{"latest", "first", "nearest"}

// String returns the policy name.
func (p ScopePolicy) String() string {
	if p >= 0 && int(p) < len(scopePolicyNames) {
		return scopePolicyNames[p]
	}
	return "unknown"
}

// ParseScopePolicy parses a policy name. An empty name selects ScopeLatest.
func ParseScopePolicy(s string) (ScopePolicy, error) {
	if s == "" {
		return ScopeLatest, nil
	}
	for i, name := range scopePolicyNames {
		if strings.EqualFold(name, s) {
			return ScopePolicy(i), nil
		}
	}
	return ScopeLatest, versefill.Errorf(versefill.EINVALID, "unknown scope policy %q", s)
}

// SectionScope is the context opened by a Scripture Reading header: the
// references it cites.
type SectionScope struct {
	Line int
	Refs []versefill.Reference
}

// chapterFor returns the book and chapter that govern a standalone verse
// inside the scope: the cited chapter whose verses include it, else the
// first cited chapter.
func (s SectionScope) chapterFor(verse int) (versefill.BookID, int, bool) {
	for _, r := range s.Refs {
		if r.IsChapter() || (verse >= r.Verse && verse <= max(r.Verse, r.VerseEnd)) {
			return r.Book, r.Chapter, true
		}
	}
	if len(s.Refs) == 0 {
		return 0, 0, false
	}
	return s.Refs[0].Book, s.Refs[0].Chapter, true
}

// ContextState is the book and chapter context threaded through one scan.
// Methods return an updated copy; a state is never shared between runs.
type ContextState struct {
	Book    versefill.BookID
	Chapter int
	Policy  ScopePolicy

	scopes []SectionScope
	open   bool // the previous line opened the top scope
}

// NewContextState returns an empty state using policy.
func NewContextState(policy ScopePolicy) ContextState {
	return ContextState{Policy: policy}
}

// Scopes returns the section scope stack, innermost last.
func (s ContextState) Scopes() []SectionScope {
	return s.scopes
}

// EnterLine prepares the state for a new outline line. A header pops every
// scope of equal or lower rank; under ScopeFirst only titles and subtitles
// pop. Scripture Reading continuation lines leave the scope open.
func (s ContextState) EnterLine(n *versefill.OutlineNode) ContextState {
	if n.Continuation {
		return s
	}
	s.open = false
	if !n.Level.IsHeader() || len(s.scopes) == 0 {
		return s
	}
	if s.Policy == ScopeFirst && n.Level == versefill.LevelScriptureReading {
		return s
	}
	// Every scope is opened at LevelScriptureReading, the lowest header rank.
	s.scopes = nil
	return s
}

// LeaveLine records the references cited on a finished line. A Scripture
// Reading header opens a scope with them; its continuation lines extend it.
func (s ContextState) LeaveLine(n *versefill.OutlineNode, refs []versefill.Reference) ContextState {
	if n.Level != versefill.LevelScriptureReading || s.Policy == ScopeNearest {
		return s
	}
	if n.Continuation {
		if s.open {
			top := s.scopes[len(s.scopes)-1]
			top.Refs = append(top.Refs[:len(top.Refs):len(top.Refs)], refs...)
			s.scopes = append(s.scopes[:len(s.scopes)-1:len(s.scopes)-1], top)
		}
		return s
	}
	if s.Policy == ScopeFirst && len(s.scopes) > 0 {
		return s
	}
	scope := SectionScope{Line: n.Line, Refs: append([]versefill.Reference(nil), refs...)}
	s.scopes = append(s.scopes[:len(s.scopes):len(s.scopes)], scope)
	s.open = true
	return s
}

// Observe makes ref the nearest-preceding context.
func (s ContextState) Observe(ref versefill.Reference) ContextState {
	s.Book, s.Chapter = ref.Book, ref.Chapter
	return s
}

// Resolve returns the book and chapter governing a standalone citation of
// verse: the innermost section scope first, then the nearest context.
func (s ContextState) Resolve(verse int) (versefill.BookID, int, bool) {
	if n := len(s.scopes); n > 0 && s.Policy != ScopeNearest {
		if book, chapter, ok := s.scopes[n-1].chapterFor(verse); ok {
			return book, chapter, true
		}
	}
	if s.Book != 0 && s.Chapter != 0 {
		return s.Book, s.Chapter, true
	}
	return 0, 0, false
}

// ResolveBook returns the book for a book-less "chapter:verse" citation:
// the nearest context first, then the innermost section scope.
func (s ContextState) ResolveBook() (versefill.BookID, bool) {
	if s.Book != 0 {
		return s.Book, true
	}
	if n := len(s.scopes); n > 0 && s.Policy != ScopeNearest && len(s.scopes[n-1].Refs) > 0 {
		return s.scopes[n-1].Refs[0].Book, true
	}
	return 0, false
}
