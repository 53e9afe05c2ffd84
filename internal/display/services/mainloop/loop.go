package mainloop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/haukened/overhead-display/internal/display/common/clock"
	"github.com/haukened/overhead-display/internal/display/common/log"
	"github.com/haukened/overhead-display/internal/display/domain"
)

const (
	DefaultRefreshInterval = 10 * time.Second
	DefaultTickInterval    = 1 * time.Second
)

var ErrTickNotShorter = errors.New("tick interval must be shorter than refresh interval")

// State is everything the loop carries from one tick to the next.
type State struct {
	LastPoll time.Time
	Polled   bool
	Latest   domain.FetchResult
	Frames   uint64
	digest   uint64
}

// Options configures a Loop. Clock, Logger and Sleep have defaults.
type Options struct {
	Poller          Poller
	Renderer        Renderer
	Frame           Frame
	Pack            PackFunc
	Sink            Sink
	Clock           clock.Clock
	Logger          log.Logger
	RefreshInterval time.Duration
	TickInterval    time.Duration
	Sleep           SleepFunc
}

// Loop polls on the refresh interval and redraws on every tick.
type Loop struct {
	poller   Poller
	renderer Renderer
	frame    Frame
	pack     PackFunc
	sink     Sink
	clock    clock.Clock
	logger   log.Logger
	refresh  time.Duration
	tick     time.Duration
	sleep    SleepFunc
	state    State
}

// New validates opts and returns a Loop in its initial state: never polled,
// latest result Unreachable.
func New(opts Options) (*Loop, error) {
	if opts.Poller == nil || opts.Renderer == nil || opts.Frame == nil || opts.Pack == nil || opts.Sink == nil {
		return nil, errors.New("poller, renderer, frame, pack and sink are required")
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.TickInterval >= opts.RefreshInterval {
		return nil, fmt.Errorf("%w: tick %v, refresh %v", ErrTickNotShorter, opts.TickInterval, opts.RefreshInterval)
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.GetLogger()
	}
	if opts.Sleep == nil {
		opts.Sleep = Sleep
	}
	return &Loop{
		poller:   opts.Poller,
		renderer: opts.Renderer,
		frame:    opts.Frame,
		pack:     opts.Pack,
		sink:     opts.Sink,
		clock:    opts.Clock,
		logger:   opts.Logger,
		refresh:  opts.RefreshInterval,
		tick:     opts.TickInterval,
		sleep:    opts.Sleep,
	}, nil
}

// State returns a copy of the loop state.
func (l *Loop) State() State { return l.state }

// Run ticks until ctx is cancelled. Cancellation is observed between ticks
// and while sleeping, never in the middle of a frame. Run returns nil on
// cancellation and the error of a failed device write otherwise.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info(map[string]any{
		"refresh": l.refresh.String(),
		"tick":    l.tick.String(),
	}, "Display loop started")
	for {
		if ctx.Err() != nil {
			break
		}
		if err := l.Tick(ctx); err != nil {
			return err
		}
		if err := l.sleep(ctx, l.tick); err != nil {
			break
		}
	}
	l.logger.Info(map[string]any{"frames": l.state.Frames}, "Display loop stopped")
	return nil
}

// Tick polls if the refresh interval has elapsed, then draws, packs and
// writes one frame.
func (l *Loop) Tick(ctx context.Context) error {
	now := l.clock.Now()
	if !l.state.Polled || now.Sub(l.state.LastPoll) >= l.refresh {
		// an in-flight poll is bounded by its own timeouts and is not cut short by shutdown
		result := l.poller.Poll(context.WithoutCancel(ctx))
		if !l.state.Polled || result.IsAvailable() != l.state.Latest.IsAvailable() {
			l.logger.Info(map[string]any{"status": result.String()}, "Stats service status changed")
		}
		l.state.Latest = result
		l.state.LastPoll = now
		l.state.Polled = true
	}

	l.renderer.Render(l.frame, l.state.Latest)
	buf := l.pack(l.frame.Image())

	if err := l.sink.WriteFrame(buf); err != nil {
		return fmt.Errorf("write frame %d: %w", l.state.Frames+1, err)
	}
	l.state.Frames++

	if digest := xxh3.Hash(buf); digest != l.state.digest {
		l.state.digest = digest
		l.logger.Debug(map[string]any{
			"frame":  l.state.Frames,
			"digest": fmt.Sprintf("%016x", digest),
		}, "Frame content changed")
	}
	return nil
}

// Sleep waits for d unless ctx ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
