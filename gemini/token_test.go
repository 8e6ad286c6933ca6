package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/versefill/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)

	t.Run("counts tokens in an outline", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "I. The law of the Spirit of life - Rom. 8:2")
		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		shortCount, err := tc.CountTokens(ctx, "Rom. 8:2")
		require.NoError(t, err)
		longCount, err := tc.CountTokens(ctx, "Scripture Reading: Rom. 8:2, 31-39; Eph. 4:7-16; 6:10-20")
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})
}
