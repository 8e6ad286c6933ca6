package mock

import (
	"context"

	"github.com/fwojciec/versefill"
)

var _ versefill.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of versefill.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, text string) (*versefill.Resolution, error)
}

func (r *Resolver) Resolve(ctx context.Context, text string) (*versefill.Resolution, error) {
	return r.ResolveFn(ctx, text)
}

var _ versefill.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of versefill.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
