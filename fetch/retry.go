package fetch

import (
	"context"
	"time"

	"github.com/fwojciec/versefill"
)

// LookupFunc is the signature of one datastore lookup.
type LookupFunc func(ctx context.Context) ([]versefill.VerseText, error)

// DefaultRetryDelays returns the backoff delays for lookup retries: 50ms, 100ms, 200ms.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{50 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond}
}

// LookupWithRetry calls lookup until it succeeds, waiting delays[i] before
// retry i+1. Not-found and invalid errors are final and never retried.
func LookupWithRetry(ctx context.Context, lookup LookupFunc, delays []time.Duration) ([]versefill.VerseText, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		verses, err := lookup(ctx)
		if err == nil {
			return verses, nil
		}
		lastErr = err

		switch versefill.ErrorCode(err) {
		case versefill.ENOTFOUND, versefill.EINVALID:
			return nil, err
		}
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
