package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/versefill"
)

// Ensure LoggingVerseStore implements versefill.VerseStore.
var _ versefill.VerseStore = (*LoggingVerseStore)(nil)

// LoggingVerseStore wraps a VerseStore with debug logging.
type LoggingVerseStore struct {
	next   versefill.VerseStore
	logger *slog.Logger
}

// NewLoggingVerseStore creates a new LoggingVerseStore.
func NewLoggingVerseStore(next versefill.VerseStore, logger *slog.Logger) *LoggingVerseStore {
	return &LoggingVerseStore{next: next, logger: logger}
}

// Lookup delegates to the wrapped store and logs the lookup.
func (s *LoggingVerseStore) Lookup(ctx context.Context, book versefill.BookID, chapter, verseStart, verseEnd int) (verses []versefill.VerseText, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("verse lookup",
			"ref", versefill.Reference{Book: book, Chapter: chapter, Verse: verseStart, VerseEnd: verseEnd}.Short(),
			"count", len(verses),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Lookup(ctx, book, chapter, verseStart, verseEnd)
}
