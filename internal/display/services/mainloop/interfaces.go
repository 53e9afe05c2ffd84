package mainloop

import (
	"context"
	"image"
	"time"

	"github.com/haukened/overhead-display/internal/display/domain"
	"github.com/haukened/overhead-display/internal/display/services/dashboard"
)

// Poller produces a fresh FetchResult on every call.
type Poller interface {
	Poll(ctx context.Context) domain.FetchResult
}

// Renderer draws the frame for a result.
type Renderer interface {
	Render(surf dashboard.Surface, result domain.FetchResult)
}

// Frame is the drawing surface the loop owns and reuses each tick.
type Frame interface {
	dashboard.Surface
	Image() *image.RGBA
}

// Sink receives packed frames.
type Sink interface {
	WriteFrame(buf []byte) error
}

// PackFunc converts a drawn frame to device bytes.
type PackFunc func(img *image.RGBA) []byte

// SleepFunc waits for d or until ctx is done, returning ctx.Err() in the latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error
