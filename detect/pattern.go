package detect

import (
	"regexp"

	"github.com/fwojciec/versefill"
)

// Pattern library. Book-anchored citations are located with bookRe and
// their numeric tail is parsed with a cursor, which lets a single grammar
// cover standard, list, multi-chapter and semicolon-chained shapes.
var (
	// bookRe matches an optional ordinal, a book token (possibly dotted,
	// "S.S.", or "X of Y") and the first digit of the chapter.
	bookRe = regexp.MustCompile(`(?i)\b((?:[123]|(?:iii|ii|i)\b)\.?\s*|(?:first|second|third)\s+)?([a-z]+(?:\.[a-z]+)*(?:\s+of\s+[a-z]+)?)\.?\s*\d`)

	// standaloneRe matches "v. 5", "vv. 31-39", "ver. 2", "verses 3, 5".
	standaloneRe = regexp.MustCompile(`(?i)\b(?:vv|vs|v|ver|verses|verse)\b\.?\s*\d`)

	// bareRe matches a book-less "12:14".
	bareRe = regexp.MustCompile(`(?:^|[^\w:.])(\d{1,3}:\d)`)

	// crossRefRe matches a trailing "cf." before a citation.
	crossRefRe = regexp.MustCompile(`(?i)\bcf\.?\s*$`)
)

// maxDigits bounds chapter and verse numbers; longer digit runs are
// transcription noise, not citations.
const maxDigits = 3

// cursor walks the numeric tail of a citation.
type cursor struct {
	s string
	i int
}

func (c *cursor) peek() byte {
	if c.i < len(c.s) {
		return c.s[c.i]
	}
	return 0
}

func (c *cursor) peekAt(n int) byte {
	if c.i+n < len(c.s) {
		return c.s[c.i+n]
	}
	return 0
}

func (c *cursor) skipSpaces() {
	for c.i < len(c.s) && (c.s[c.i] == ' ' || c.s[c.i] == '\t') {
		c.i++
	}
}

// number reads a run of digits. ok is false when there is no digit;
// malformed is true for runs longer than maxDigits or a zero value.
func (c *cursor) number() (n int, ok, malformed bool) {
	start := c.i
	for c.i < len(c.s) && isDigit(c.s[c.i]) {
		n = n*10 + int(c.s[c.i]-'0')
		c.i++
	}
	if c.i == start {
		return 0, false, false
	}
	return n, true, c.i-start > maxDigits || n == 0
}

// lookingAtChapterVerse reports whether the cursor sits on "<digits>:<digit>".
func (c *cursor) lookingAtChapterVerse() bool {
	j := c.i
	for j < len(c.s) && isDigit(c.s[j]) {
		j++
	}
	return j > c.i && j+1 < len(c.s) && c.s[j] == ':' && isDigit(c.s[j+1])
}

// parseError marks a citation whose tail is syntactically invalid.
type parseError string

func (e parseError) Error() string { return string(e) }

// parseChain parses one or more clauses joined by ';' or ',' where each
// joined clause restates its chapter ("4:7-16; 6:10-20"). When requireVerse
// is set, a clause without ":verse" is not accepted.
func parseChain(c *cursor, requireVerse bool) ([]versefill.Clause, error) {
	first, err := parseClause(c, requireVerse)
	if err != nil {
		return nil, err
	}
	clauses := []versefill.Clause{first}
	for {
		save := c.i
		c.skipSpaces()
		if sep := c.peek(); sep != ';' && sep != ',' {
			c.i = save
			break
		}
		c.i++
		c.skipSpaces()
		if !c.lookingAtChapterVerse() {
			c.i = save
			break
		}
		next, err := parseClause(c, true)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, next)
	}
	return clauses, nil
}

// parseClause parses "<chapter>[:<items>]" or a chapter range "<c1>-<c2>".
func parseClause(c *cursor, requireVerse bool) (versefill.Clause, error) {
	chapter, ok, malformed := c.number()
	if !ok {
		return versefill.Clause{}, parseError("missing chapter")
	}
	if malformed {
		return versefill.Clause{}, parseError("malformed chapter number")
	}
	clause := versefill.Clause{Chapter: chapter}

	if c.peek() == ':' && isDigit(c.peekAt(1)) {
		c.i++
		items, err := parseItems(c)
		if err != nil {
			return versefill.Clause{}, err
		}
		clause.Items = items
		return clause, nil
	}
	if requireVerse {
		return versefill.Clause{}, parseError("missing verse")
	}
	if isLetter(c.peek()) {
		return versefill.Clause{}, parseError("chapter followed by letters")
	}
	if c.peek() == '-' && isDigit(c.peekAt(1)) {
		save := c.i
		c.i++
		end, _, malformed := c.number()
		if malformed || c.peek() == ':' {
			c.i = save
		} else {
			clause.ChapterEnd = end
		}
	}
	return clause, nil
}

// parseItems parses a comma list of verses and ranges sharing one chapter.
// The list stops before a comma that introduces a new "c:v" clause or a
// number that starts a book name ("3 John").
func parseItems(c *cursor) ([]versefill.VerseItem, error) {
	var items []versefill.VerseItem
	for {
		item, err := parseItem(c)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		save := c.i
		c.skipSpaces()
		if c.peek() != ',' {
			c.i = save
			return items, nil
		}
		c.i++
		c.skipSpaces()
		if !isDigit(c.peek()) || c.lookingAtChapterVerse() || startsBook(c) {
			c.i = save
			return items, nil
		}
	}
}

// parseItem parses "<v>[letter|f|ff][-<v>|-<c>:<v>]".
func parseItem(c *cursor) (versefill.VerseItem, error) {
	start, ok, malformed := c.number()
	if !ok {
		return versefill.VerseItem{}, parseError("missing verse")
	}
	if malformed {
		return versefill.VerseItem{}, parseError("malformed verse number")
	}
	item := versefill.VerseItem{Start: start}

	switch {
	case c.peek() == 'f' && c.peekAt(1) == 'f' && !isLetter(c.peekAt(2)):
		c.i += 2
		item.ToEnd = true
		return item, nil
	case c.peek() == 'f' && !isLetter(c.peekAt(1)):
		c.i++
		item.End = start + 1
		return item, nil
	case isSuffix(c.peek()) && !isLetter(c.peekAt(1)):
		item.Letter = string(c.peek())
		c.i++
	}

	if c.peek() != '-' || !isDigit(c.peekAt(1)) {
		return item, nil
	}
	save := c.i
	c.i++
	end, _, malformed := c.number()
	if malformed {
		return versefill.VerseItem{}, parseError("malformed range end")
	}
	if c.peek() == ':' && isDigit(c.peekAt(1)) {
		c.i++
		endVerse, _, malformed := c.number()
		if malformed {
			return versefill.VerseItem{}, parseError("malformed range end")
		}
		item.EndChapter = end
		item.End = endVerse
	} else if isLetter(c.peek()) && !(isSuffix(c.peek()) && !isLetter(c.peekAt(1))) {
		c.i = save
		return item, nil
	} else {
		item.End = end
	}
	if isSuffix(c.peek()) && !isLetter(c.peekAt(1)) {
		c.i++
	}
	return item, nil
}

// startsBook reports whether the digits at the cursor are the ordinal of a
// book name ("3 John").
func startsBook(c *cursor) bool {
	loc := bookRe.FindStringSubmatchIndex(c.s[c.i:])
	if loc == nil || loc[0] != 0 || loc[2] < 0 {
		return false
	}
	_, ok := versefill.LookupBookExact(c.s[c.i+loc[2] : c.i+loc[5]])
	return ok
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func isLower(b byte) bool { return b >= 'a' && b <= 'z' }

func isSuffix(b byte) bool { return b >= 'a' && b <= 'e' }
