package versefill

import (
	"strconv"
	"strings"
	"unicode"
)

// BookID identifies one of the 66 books by canonical position (1 = Genesis).
type BookID int

// String returns the canonical book name, or "" for an unknown id.
func (id BookID) String() string {
	if b := BookByID(id); b != nil {
		return b.Name
	}
	return ""
}

// Book is a registry entry.
type Book struct {
	ID      BookID   `json:"id"`
	Name    string   `json:"name"`
	Abbrev  string   `json:"abbrev"`
	Aliases []string `json:"-"`
	Verses  []int    `json:"-"`
}

// ChapterCount returns the number of chapters in the book.
func (b *Book) ChapterCount() int {
	return len(b.Verses)
}

// VerseCount returns the number of verses in the chapter, or 0 when the
// chapter does not exist.
func (b *Book) VerseCount(chapter int) int {
	if chapter < 1 || chapter > len(b.Verses) {
		return 0
	}
	return b.Verses[chapter-1]
}

// Numbered reports whether the book name carries a leading ordinal (1 John).
func (b *Book) Numbered() bool {
	return b.Name[0] >= '1' && b.Name[0] <= '3'
}

// aliasIndex maps normalized tokens to book ids. Built once from Books.
var aliasIndex = func() map[string]BookID {
	m := make(map[string]BookID, len(Books)*6)
	for i := range Books {
		b := &Books[i]
		prefix := ""
		if b.Numbered() {
			prefix = b.Name[:1]
		}
		m[NormalizeBookToken(b.Name)] = b.ID
		m[NormalizeBookToken(b.Abbrev)] = b.ID
		for _, a := range b.Aliases {
			m[prefix+a] = b.ID
		}
	}
	return m
}()

// BookByID returns the registry entry for id, or nil.
func BookByID(id BookID) *Book {
	if id < 1 || int(id) > len(Books) {
		return nil
	}
	return &Books[id-1]
}

// NormalizeBookToken lowercases a book token, drops periods and whitespace
// and rewrites a leading ordinal (I, II, III, First, Second, Third) to its
// digit, so "II Cor." and "2 cor" both become "2cor".
func NormalizeBookToken(token string) string {
	fields := strings.FieldsFunc(strings.ToLower(token), func(r rune) bool {
		return unicode.IsSpace(r) || r == '.'
	})
	if len(fields) > 1 {
		switch fields[0] {
		case "i", "first", "1st":
			fields[0] = "1"
		case "ii", "second", "2nd":
			fields[0] = "2"
		case "iii", "third", "3rd":
			fields[0] = "3"
		}
	}
	return strings.Join(fields, "")
}

// LookupBookExact resolves a token against the full names, display
// abbreviations and aliases of the registry.
func LookupBookExact(token string) (*Book, bool) {
	id, ok := aliasIndex[NormalizeBookToken(token)]
	if !ok {
		return nil, false
	}
	return BookByID(id), true
}

// LookupBook resolves a token that may be an irregular abbreviation.
// An exact alias wins; otherwise the longest alias that prefixes the token
// wins ("Ephes" → "eph"), then the first book in canonical order whose name
// starts with the token ("Phili" → Philippians). Prefix matching needs at
// least three letters after any ordinal.
func LookupBook(token string) (*Book, bool) {
	key := NormalizeBookToken(token)
	if id, ok := aliasIndex[key]; ok {
		return BookByID(id), true
	}

	ordinal, letters := splitOrdinal(key)
	if len(letters) < 3 {
		return nil, false
	}

	var best BookID
	bestLen := 0
	for alias, id := range aliasIndex {
		if len(alias) <= bestLen || !strings.HasPrefix(key, alias) {
			continue
		}
		if o, l := splitOrdinal(alias); o != ordinal || len(l) < 3 {
			continue
		}
		best, bestLen = id, len(alias)
	}
	if best != 0 {
		return BookByID(best), true
	}

	for i := range Books {
		name := NormalizeBookToken(Books[i].Name)
		if strings.HasPrefix(name, key) {
			return &Books[i], true
		}
	}
	return nil, false
}

// splitOrdinal splits a normalized token into its leading digit and the rest.
func splitOrdinal(key string) (string, string) {
	if key != "" && key[0] >= '1' && key[0] <= '3' {
		return key[:1], key[1:]
	}
	return "", key
}

// ParseBookID parses a decimal book id, returning 0 when invalid.
func ParseBookID(s string) BookID {
	n, err := strconv.Atoi(s)
	if err != nil || BookByID(BookID(n)) == nil {
		return 0
	}
	return BookID(n)
}
