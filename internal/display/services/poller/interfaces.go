package poller

import (
	"context"

	"github.com/haukened/overhead-display/internal/display/domain"
)

// Source fetches the two halves of a poll. Each call bounds itself with its
// own timeout.
type Source interface {
	FetchStats(ctx context.Context) (domain.StatSnapshot, error)
	FetchPeak(ctx context.Context) (domain.PeakSeries, error)
}
