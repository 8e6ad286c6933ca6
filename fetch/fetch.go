// Package fetch retrieves verse text for detected references.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fwojciec/versefill"
	"golang.org/x/sync/errgroup"
)

// DefaultFanout is the number of concurrent datastore lookups.
const DefaultFanout = 8

// Fetcher looks up the text of references in a VerseStore.
type Fetcher struct {
	Store versefill.VerseStore

	// Index, when set, skips verses known to be absent from Store.
	Index versefill.VerseIndex

	Fanout int

	// RetryDelays are the backoff delays for failed lookups. Nil means
	// DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration
}

// batch is one contiguous run of verses in a single chapter.
type batch struct {
	book    versefill.BookID
	chapter int
	start   int
	end     int
}

func (b batch) String() string {
	return versefill.Reference{Book: b.book, Chapter: b.chapter, Verse: b.start, VerseEnd: b.end}.Short()
}

type batchResult struct {
	verses []versefill.VerseText
	err    error
}

// Fetch returns a record for every verse addressed by refs. Whole-chapter
// references expand to every verse of the chapter. Verses that could not be
// fetched come back as Missing records. Returns EUNAVAILABLE only when every
// lookup failed for a reason other than not-found.
func (f *Fetcher) Fetch(ctx context.Context, refs []versefill.Reference) (*versefill.VerseSet, error) {
	set := versefill.NewVerseSet()

	// Cache of verses already planned in this run.
	seen := make(map[string]bool)
	var wanted []versefill.Reference
	for _, ref := range refs {
		for _, v := range ref.Verses() {
			v = v.Canonical()
			if seen[v.Key()] {
				continue
			}
			seen[v.Key()] = true
			if f.Index != nil && !f.Index.Contains(v) {
				set.Put(versefill.VerseRecord{Reference: v, Missing: true})
				continue
			}
			wanted = append(wanted, v)
		}
	}

	batches := plan(wanted)
	if len(batches) == 0 {
		return set, nil
	}

	results := make([]batchResult, len(batches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.fanout())
	for i, b := range batches {
		g.Go(func() error {
			verses, err := LookupWithRetry(ctx, func(ctx context.Context) ([]versefill.VerseText, error) {
				return f.Store.Lookup(ctx, b.book, b.chapter, b.start, b.end)
			}, f.retryDelays())
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			results[i] = batchResult{verses: verses, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	var lastErr error
	for i, b := range batches {
		res := results[i]
		if res.err != nil && versefill.ErrorCode(res.err) != versefill.ENOTFOUND {
			failed++
			lastErr = fmt.Errorf("lookup %s: %w", b, res.err)
		}
		found := make(map[int]string, len(res.verses))
		for _, vt := range res.verses {
			found[vt.Verse] = vt.Text
		}
		for v := b.start; v <= b.end; v++ {
			ref := versefill.Reference{Book: b.book, Chapter: b.chapter, Verse: v}
			text, ok := found[v]
			set.Put(versefill.VerseRecord{Reference: ref, Text: text, Missing: !ok})
		}
	}
	if failed == len(batches) {
		return nil, versefill.Errorf(versefill.EUNAVAILABLE, "verse datastore unavailable: %v", lastErr)
	}
	return set, nil
}

func (f *Fetcher) fanout() int {
	if f.Fanout > 0 {
		return f.Fanout
	}
	return DefaultFanout
}

func (f *Fetcher) retryDelays() []time.Duration {
	if f.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return f.RetryDelays
}

// plan groups verses into contiguous per-chapter batches.
func plan(verses []versefill.Reference) []batch {
	sorted := make([]versefill.Reference, len(verses))
	copy(sorted, verses)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	var out []batch
	for _, v := range sorted {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.book == v.Book && last.chapter == v.Chapter && last.end+1 == v.Verse {
				last.end = v.Verse
				continue
			}
		}
		out = append(out, batch{book: v.Book, chapter: v.Chapter, start: v.Verse, end: v.Verse})
	}
	return out
}

// ReportMisses records one FetchMiss issue per missing verse of set.
func ReportMisses(set *versefill.VerseSet, diag *versefill.Diagnostics) {
	for _, ref := range set.Missing() {
		diag.Add(versefill.IssueFetchMiss, -1, ref.Short(), "verse text unavailable")
	}
}
