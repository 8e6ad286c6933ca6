package versefill

import (
	"fmt"
	"sort"
	"strconv"
)

// Reference is a canonical scripture address. Verse == 0 addresses a whole
// chapter; VerseEnd == 0 addresses a single verse. Letter carries a partial
// verse suffix ("14:6a") and does not take part in identity.
type Reference struct {
	Book     BookID `json:"book"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse,omitempty"`
	VerseEnd int    `json:"verseEnd,omitempty"`
	Letter   string `json:"letter,omitempty"`
}

// Validate returns an error if the reference breaks the data model.
func (r Reference) Validate() error {
	book := BookByID(r.Book)
	if book == nil {
		return Errorf(EINVALID, "unknown book %d", r.Book)
	}
	if r.Chapter < 1 {
		return Errorf(EINVALID, "chapter must be positive")
	}
	if r.Chapter > book.ChapterCount() {
		return Errorf(EINVALID, "%s has no chapter %d", book.Name, r.Chapter)
	}
	if r.Verse < 0 {
		return Errorf(EINVALID, "verse must not be negative")
	}
	if r.VerseEnd != 0 && r.VerseEnd < r.Verse {
		return Errorf(EINVALID, "verse range %d-%d is reversed", r.Verse, r.VerseEnd)
	}
	return nil
}

// IsChapter reports whether the reference addresses a whole chapter.
func (r Reference) IsChapter() bool {
	return r.Verse == 0
}

// Key returns the canonical identity of a single-verse reference.
func (r Reference) Key() string {
	return strconv.Itoa(int(r.Book)) + ":" + strconv.Itoa(r.Chapter) + ":" + strconv.Itoa(r.Verse)
}

// Canonical returns the reference without its letter suffix.
func (r Reference) Canonical() Reference {
	r.Letter = ""
	return r
}

// String returns the reference using the full book name ("Romans 8:2").
func (r Reference) String() string {
	return r.format(r.Book.String())
}

// Short returns the reference using the outline abbreviation ("Rom. 8:2").
func (r Reference) Short() string {
	book := BookByID(r.Book)
	if book == nil {
		return r.String()
	}
	return r.format(book.Abbrev)
}

func (r Reference) format(book string) string {
	if r.IsChapter() {
		return fmt.Sprintf("%s %d", book, r.Chapter)
	}
	s := fmt.Sprintf("%s %d:%d", book, r.Chapter, r.Verse)
	if r.VerseEnd > r.Verse {
		s += "-" + strconv.Itoa(r.VerseEnd)
	}
	return s + r.Letter
}

// Verses expands a range into one reference per verse, ascending. A whole
// chapter expands using the registry verse count. A single verse returns
// itself.
func (r Reference) Verses() []Reference {
	if r.IsChapter() {
		book := BookByID(r.Book)
		if book == nil {
			return nil
		}
		n := book.VerseCount(r.Chapter)
		out := make([]Reference, 0, n)
		for v := 1; v <= n; v++ {
			out = append(out, Reference{Book: r.Book, Chapter: r.Chapter, Verse: v})
		}
		return out
	}
	if r.VerseEnd <= r.Verse {
		single := r
		single.VerseEnd = 0
		return []Reference{single}
	}
	out := make([]Reference, 0, r.VerseEnd-r.Verse+1)
	for v := r.Verse; v <= r.VerseEnd; v++ {
		out = append(out, Reference{Book: r.Book, Chapter: r.Chapter, Verse: v})
	}
	return out
}

// Less orders references canonically by book, chapter and verse.
func (r Reference) Less(o Reference) bool {
	if r.Book != o.Book {
		return r.Book < o.Book
	}
	if r.Chapter != o.Chapter {
		return r.Chapter < o.Chapter
	}
	return r.Verse < o.Verse
}

// Collapse merges runs of consecutive single verses within one chapter into
// ranges, preserving the input order of the runs. It is the inverse of
// Verses for contiguous input. Letter-suffixed verses are never merged.
func Collapse(refs []Reference) []Reference {
	var out []Reference
	for _, r := range refs {
		if n := len(out); n > 0 {
			last := &out[n-1]
			end := last.VerseEnd
			if end == 0 {
				end = last.Verse
			}
			if last.Book == r.Book && last.Chapter == r.Chapter && !r.IsChapter() && !last.IsChapter() &&
				last.Letter == "" && r.Letter == "" && r.Verse == end+1 && r.VerseEnd == 0 {
				last.VerseEnd = r.Verse
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// SortReferences sorts references canonically in place.
func SortReferences(refs []Reference) {
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
}
