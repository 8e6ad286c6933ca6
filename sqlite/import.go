package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/versefill"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ versefill.ImportService = (*ImportService)(nil)

// ImportService implements versefill.ImportService using SQLite.
type ImportService struct {
	db *DB
}

// NewImportService creates a new ImportService.
func NewImportService(db *DB) *ImportService {
	return &ImportService{db: db}
}

// Checksum computes the xxHash of imported content as a hex string.
func Checksum(content []byte) string {
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, xxhash.Sum64(content)))
}

// CreateImport records an import.
func (s *ImportService) CreateImport(ctx context.Context, imp *versefill.Import) error {
	if err := imp.Validate(); err != nil {
		return err
	}

	imp.ID = uuid.New().String()
	imp.ImportedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO imports (id, source, verse_count, checksum, imported_at)
		VALUES (?, ?, ?, ?, ?)
	`, imp.ID, imp.Source, imp.VerseCount, imp.Checksum, imp.ImportedAt.Format(time.RFC3339Nano))

	return err
}

// FindImports retrieves imports matching the filter.
func (s *ImportService) FindImports(ctx context.Context, filter versefill.ImportFilter) ([]*versefill.Import, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source, verse_count, checksum, imported_at FROM imports WHERE 1=1")

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.Checksum != nil {
		query.WriteString(" AND checksum = ?")
		args = append(args, *filter.Checksum)
	}
	query.WriteString(" ORDER BY imported_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var imports []*versefill.Import
	for rows.Next() {
		var imp versefill.Import
		var importedAt string

		if err := rows.Scan(&imp.ID, &imp.Source, &imp.VerseCount, &imp.Checksum, &importedAt); err != nil {
			return nil, err
		}
		if imp.ImportedAt, err = parseTimestamp(importedAt, "imported_at"); err != nil {
			return nil, err
		}

		imports = append(imports, &imp)
	}

	return imports, rows.Err()
}
