package fetch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/versefill"
	"github.com/fwojciec/versefill/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupWithRetry(t *testing.T) {
	t.Parallel()

	delays := []time.Duration{0, 0, 0}

	t.Run("retries transient errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		got, err := fetch.LookupWithRetry(context.Background(), func(context.Context) ([]versefill.VerseText, error) {
			attempts++
			if attempts < 3 {
				return nil, errors.New("database is locked")
			}
			return []versefill.VerseText{{Verse: 1, Text: "In the beginning"}}, nil
		}, delays)

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
		assert.Len(t, got, 1)
	})

	t.Run("gives up after the last delay", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		_, err := fetch.LookupWithRetry(context.Background(), func(context.Context) ([]versefill.VerseText, error) {
			attempts++
			return nil, errors.New("database is locked")
		}, delays)

		require.Error(t, err)
		assert.Equal(t, 4, attempts)
	})

	t.Run("not found is final", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		_, err := fetch.LookupWithRetry(context.Background(), func(context.Context) ([]versefill.VerseText, error) {
			attempts++
			return nil, versefill.Errorf(versefill.ENOTFOUND, "no verses")
		}, delays)

		assert.Equal(t, versefill.ENOTFOUND, versefill.ErrorCode(err))
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops waiting when the context ends", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		_, err := fetch.LookupWithRetry(ctx, func(context.Context) ([]versefill.VerseText, error) {
			cancel()
			return nil, errors.New("database is locked")
		}, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
