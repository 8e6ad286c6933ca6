// Package slog provides logging decorators for versefill services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/versefill"
)

// Ensure LoggingDetector implements versefill.Detector.
var _ versefill.Detector = (*LoggingDetector)(nil)

// LoggingDetector wraps a Detector with run logging.
type LoggingDetector struct {
	next   versefill.Detector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next versefill.Detector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the run summary. Every
// unresolved citation is logged as a warning.
func (d *LoggingDetector) Detect(ctx context.Context, text string) (det *versefill.Detection, err error) {
	defer func(begin time.Time) {
		if err != nil {
			d.logger.Error("detect", "bytes", len(text), "duration", time.Since(begin), "err", err)
			return
		}
		for _, is := range det.Diagnostics.Issues {
			if is.Kind == versefill.IssueUnresolvedContext {
				d.logger.Warn("unresolved citation", "run", det.RunID, "line", is.Line+1, "text", is.Text)
			}
		}
		d.logger.Info("detect",
			"run", det.RunID,
			"fingerprint", det.Fingerprint,
			"candidates", len(det.Candidates),
			"references", len(det.References),
			"discards", det.Diagnostics.Count(versefill.IssueParseDiscard),
			"unresolved", det.Diagnostics.Count(versefill.IssueUnresolvedContext),
			"resolver", det.Resolver.Status,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return d.next.Detect(ctx, text)
}
