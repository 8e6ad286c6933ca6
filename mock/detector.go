package mock

import (
	"context"

	"github.com/fwojciec/versefill"
)

var _ versefill.Detector = (*Detector)(nil)

// Detector is a mock implementation of versefill.Detector.
type Detector struct {
	DetectFn func(ctx context.Context, text string) (*versefill.Detection, error)
}

func (d *Detector) Detect(ctx context.Context, text string) (*versefill.Detection, error) {
	return d.DetectFn(ctx, text)
}
