package poller

import (
	"context"

	"github.com/haukened/overhead-display/internal/display/common/log"
	"github.com/haukened/overhead-display/internal/display/domain"
)

// Poller turns the two fetches of a poll into a single FetchResult.
// Partial success is reported as Unreachable.
type Poller struct {
	source Source
	logger log.Logger
}

// Options configures a Poller.
type Options struct {
	Source Source
	Logger log.Logger
}

// New returns a Poller. A nil logger uses the global logger.
func New(opts Options) *Poller {
	if opts.Logger == nil {
		opts.Logger = log.GetLogger()
	}
	return &Poller{source: opts.Source, logger: opts.Logger}
}

// Poll fetches stats then peak, sequentially and without retry.
func (p *Poller) Poll(ctx context.Context) domain.FetchResult {
	stats, err := p.source.FetchStats(ctx)
	if err != nil {
		p.logger.Warn(map[string]any{"endpoint": "stats", "error": err.Error()}, "Stats fetch failed")
		return domain.Unreachable()
	}
	peak, err := p.source.FetchPeak(ctx)
	if err != nil {
		p.logger.Warn(map[string]any{"endpoint": "peak", "error": err.Error()}, "Peak fetch failed")
		return domain.Unreachable()
	}
	p.logger.Debug(map[string]any{
		"total_requests": stats.TotalRequests,
		"errors":         stats.Errors,
	}, "Poll succeeded")
	return domain.Available(stats, peak)
}
