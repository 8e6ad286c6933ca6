package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/versefill"
)

// Ensure LoggingResolver implements versefill.Resolver.
var _ versefill.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with logging.
type LoggingResolver struct {
	next   versefill.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next versefill.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the call.
func (r *LoggingResolver) Resolve(ctx context.Context, text string) (res *versefill.Resolution, err error) {
	defer func(begin time.Time) {
		nodes := 0
		if res != nil {
			nodes = len(res.Nodes)
		}
		r.logger.Info("resolve",
			"bytes", len(text),
			"nodes", nodes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Resolve(ctx, text)
}
