package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/versefill"
)

// Compile-time interface verification.
var (
	_ versefill.VerseStore  = (*VerseService)(nil)
	_ versefill.VerseWriter = (*VerseService)(nil)
)

// VerseService implements versefill.VerseStore and versefill.VerseWriter using SQLite.
type VerseService struct {
	db *DB
}

// NewVerseService creates a new VerseService.
func NewVerseService(db *DB) *VerseService {
	return &VerseService{db: db}
}

// Lookup returns the stored verses from verseStart to verseEnd of one chapter.
func (s *VerseService) Lookup(ctx context.Context, book versefill.BookID, chapter, verseStart, verseEnd int) ([]versefill.VerseText, error) {
	if verseEnd < verseStart {
		return nil, versefill.Errorf(versefill.EINVALID, "verse range %d-%d is reversed", verseStart, verseEnd)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT verse, text
		FROM verses
		WHERE book = ? AND chapter = ? AND verse BETWEEN ? AND ?
		ORDER BY verse ASC
	`, int(book), chapter, verseStart, verseEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []versefill.VerseText
	for rows.Next() {
		var vt versefill.VerseText
		if err := rows.Scan(&vt.Verse, &vt.Text); err != nil {
			return nil, err
		}
		out = append(out, vt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, versefill.Errorf(versefill.ENOTFOUND, "no verses in %s %d:%d-%d", book, chapter, verseStart, verseEnd)
	}
	return out, nil
}

// CreateVerses stores records in one transaction, replacing the text of
// verses already present.
func (s *VerseService) CreateVerses(ctx context.Context, records []versefill.VerseRecord) error {
	for _, rec := range records {
		ref := rec.Reference
		if err := ref.Validate(); err != nil {
			return err
		}
		if ref.Verse == 0 || ref.VerseEnd != 0 {
			return versefill.Errorf(versefill.EINVALID, "%s does not address a single verse", ref)
		}
		if strings.TrimSpace(rec.Text) == "" {
			return versefill.Errorf(versefill.EINVALID, "%s has no text", ref)
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO verses (book, chapter, verse, text)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (book, chapter, verse) DO UPDATE SET text = excluded.text
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		ref := rec.Reference
		if _, err := stmt.ExecContext(ctx, int(ref.Book), ref.Chapter, ref.Verse, rec.Text); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// VerseReferences returns the reference of every stored verse in canonical order.
func (s *VerseService) VerseReferences(ctx context.Context) ([]versefill.Reference, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT book, chapter, verse FROM verses ORDER BY book, chapter, verse")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []versefill.Reference
	for rows.Next() {
		var ref versefill.Reference
		var book int
		if err := rows.Scan(&book, &ref.Chapter, &ref.Verse); err != nil {
			return nil, err
		}
		ref.Book = versefill.BookID(book)
		out = append(out, ref)
	}
	return out, rows.Err()
}

// CountVerses returns the number of stored verses.
func (s *VerseService) CountVerses(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM verses").Scan(&n)
	return n, err
}
