package versefill

import "context"

// VerseText is one verse as returned by a VerseStore.
type VerseText struct {
	Verse int    `json:"verse"`
	Text  string `json:"text"`
}

// VerseStore is the verse datastore.
type VerseStore interface {
	// Lookup returns the verses from verseStart to verseEnd inclusive of one
	// chapter, ascending. Verses missing from the store are skipped.
	// Returns ENOTFOUND if none of the requested verses exist.
	Lookup(ctx context.Context, book BookID, chapter, verseStart, verseEnd int) ([]VerseText, error)
}

// VerseIndex answers whether a verse may exist in the datastore. False
// positives are allowed; false negatives are not.
type VerseIndex interface {
	Contains(ref Reference) bool
}

// VerseRecord is the fetched text of one verse. Missing marks a verse
// whose text could not be fetched.
type VerseRecord struct {
	Reference Reference `json:"reference"`
	Text      string    `json:"text"`
	Missing   bool      `json:"missing,omitempty"`
}

// VerseSet holds the records fetched during one run, keyed by Reference.Key.
type VerseSet struct {
	records map[string]VerseRecord
}

// NewVerseSet returns a VerseSet over the given records.
func NewVerseSet(records ...VerseRecord) *VerseSet {
	s := &VerseSet{records: make(map[string]VerseRecord, len(records))}
	for _, r := range records {
		s.Put(r)
	}
	return s
}

// Put stores a record, replacing any previous record of the same verse.
func (s *VerseSet) Put(r VerseRecord) {
	r.Reference = r.Reference.Canonical()
	s.records[r.Reference.Key()] = r
}

// Records returns one record per verse addressed by ref. Whole chapters and
// ranges expand to every verse; verses never fetched come back Missing.
func (s *VerseSet) Records(ref Reference) []VerseRecord {
	verses := ref.Verses()
	out := make([]VerseRecord, 0, len(verses))
	for _, v := range verses {
		rec, ok := s.records[v.Canonical().Key()]
		if !ok {
			rec = VerseRecord{Reference: v.Canonical(), Missing: true}
		}
		rec.Reference.Letter = v.Letter
		out = append(out, rec)
	}
	return out
}

// Len returns the number of records.
func (s *VerseSet) Len() int {
	return len(s.records)
}

// Missing returns the references of all records marked Missing, sorted.
func (s *VerseSet) Missing() []Reference {
	var out []Reference
	for _, r := range s.records {
		if r.Missing {
			out = append(out, r.Reference)
		}
	}
	SortReferences(out)
	return out
}

// VerseWriter loads verse text into the datastore.
type VerseWriter interface {
	// CreateVerses stores records, replacing existing text of the same verse.
	// Returns EINVALID if a record has an invalid reference or empty text.
	CreateVerses(ctx context.Context, records []VerseRecord) error
}
