package mock

import (
	"context"

	"github.com/pagecap/pagecap"
)

var _ pagecap.Capturer = (*Capturer)(nil)

// Capturer is a mock implementation of pagecap.Capturer.
type Capturer struct {
	CaptureFn func(ctx context.Context, snap *pagecap.PageSnapshot) (*pagecap.CaptureReport, error)
}

func (c *Capturer) Capture(ctx context.Context, snap *pagecap.PageSnapshot) (*pagecap.CaptureReport, error) {
	return c.CaptureFn(ctx, snap)
}
