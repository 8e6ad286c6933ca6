package versefill

import (
	"context"
	"time"
)

// Import records one load of verse text into the datastore.
type Import struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	VerseCount int       `json:"verseCount"`
	Checksum   string    `json:"checksum"`
	ImportedAt time.Time `json:"importedAt"`
}

// Validate returns an error if the import contains invalid fields.
func (i *Import) Validate() error {
	if i.Source == "" {
		return Errorf(EINVALID, "import source required")
	}
	if i.VerseCount < 0 {
		return Errorf(EINVALID, "import verse count must not be negative")
	}
	return nil
}

// ImportService represents a service for managing the import log.
type ImportService interface {
	// CreateImport records an import, assigning its ID and timestamp.
	CreateImport(ctx context.Context, imp *Import) error

	// FindImports retrieves imports matching the filter, newest first.
	FindImports(ctx context.Context, filter ImportFilter) ([]*Import, error)
}

// ImportFilter represents a filter for FindImports.
type ImportFilter struct {
	Source   *string `json:"source"`
	Checksum *string `json:"checksum"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
