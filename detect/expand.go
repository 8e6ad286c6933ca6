package detect

import (
	"fmt"

	"github.com/fwojciec/versefill"
)

// Expand turns parsed clauses into canonical per-verse references in input
// order. chapter is used for clauses without one (standalone citations).
// Whole-chapter clauses yield one Verse == 0 reference per chapter. Items
// that fall outside the registry or run backwards are skipped and returned
// as discard reasons.
func Expand(book *versefill.Book, chapter int, clauses []versefill.Clause) ([]versefill.Reference, []string) {
	var refs []versefill.Reference
	var discards []string
	for _, cl := range clauses {
		ch := cl.Chapter
		if ch == 0 {
			ch = chapter
		}
		if book.VerseCount(ch) == 0 {
			discards = append(discards, fmt.Sprintf("%s has no chapter %d", book.Name, ch))
			continue
		}

		if len(cl.Items) == 0 {
			last := max(cl.ChapterEnd, ch)
			if cl.ChapterEnd != 0 && cl.ChapterEnd < ch {
				discards = append(discards, fmt.Sprintf("reversed chapter range %d-%d", ch, cl.ChapterEnd))
				continue
			}
			if last > book.ChapterCount() {
				discards = append(discards, fmt.Sprintf("%s has no chapter %d", book.Name, last))
				continue
			}
			for c := ch; c <= last; c++ {
				refs = append(refs, versefill.Reference{Book: book.ID, Chapter: c})
			}
			continue
		}

		for _, item := range cl.Items {
			out, err := expandItem(book, ch, item)
			if err != "" {
				discards = append(discards, err)
				continue
			}
			refs = append(refs, out...)
		}
	}
	return refs, discards
}

func expandItem(book *versefill.Book, ch int, item versefill.VerseItem) ([]versefill.Reference, string) {
	count := book.VerseCount(ch)
	if item.Start > count {
		return nil, fmt.Sprintf("%s %d has no verse %d", book.Name, ch, item.Start)
	}

	end, endChapter := item.End, item.EndChapter
	switch {
	case item.ToEnd:
		end, endChapter = count, ch
	case end == 0:
		return []versefill.Reference{{Book: book.ID, Chapter: ch, Verse: item.Start, Letter: item.Letter}}, ""
	case endChapter == 0:
		endChapter = ch
	}

	if endChapter < ch || (endChapter == ch && end < item.Start) {
		return nil, fmt.Sprintf("reversed range %d:%d-%d:%d", ch, item.Start, endChapter, end)
	}
	if book.VerseCount(endChapter) == 0 {
		return nil, fmt.Sprintf("%s has no chapter %d", book.Name, endChapter)
	}
	if end > book.VerseCount(endChapter) {
		return nil, fmt.Sprintf("%s %d has no verse %d", book.Name, endChapter, end)
	}

	var refs []versefill.Reference
	for c := ch; c <= endChapter; c++ {
		first, last := 1, book.VerseCount(c)
		if c == ch {
			first = item.Start
		}
		if c == endChapter {
			last = end
		}
		for v := first; v <= last; v++ {
			refs = append(refs, versefill.Reference{Book: book.ID, Chapter: c, Verse: v})
		}
	}
	refs[0].Letter = item.Letter
	return refs, ""
}
