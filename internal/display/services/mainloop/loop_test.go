package mainloop

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/overhead-display/internal/display/common/clock"
	"github.com/haukened/overhead-display/internal/display/common/log"
	"github.com/haukened/overhead-display/internal/display/domain"
	"github.com/haukened/overhead-display/internal/display/infra/canvas"
	"github.com/haukened/overhead-display/internal/display/infra/pixel"
	"github.com/haukened/overhead-display/internal/display/services/dashboard"
	"github.com/haukened/overhead-display/internal/display/services/layout"
)

// scriptedPoller returns results in order, repeating the last one.
type scriptedPoller struct {
	results []domain.FetchResult
	calls   int
}

func (p *scriptedPoller) Poll(ctx context.Context) domain.FetchResult {
	p.calls++
	if len(p.results) == 0 {
		return domain.Unreachable()
	}
	i := p.calls - 1
	if i >= len(p.results) {
		i = len(p.results) - 1
	}
	return p.results[i]
}

type recordingRenderer struct {
	rendered []domain.FetchResult
}

func (r *recordingRenderer) Render(_ dashboard.Surface, result domain.FetchResult) {
	r.rendered = append(r.rendered, result)
}

type memorySink struct {
	frames [][]byte
	err    error
}

func (s *memorySink) WriteFrame(buf []byte) error {
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, append([]byte(nil), buf...))
	return nil
}

type debugLogger struct {
	log.Logger
	debug []string
	info  []string
}

func (l *debugLogger) Debug(_ map[string]any, msg string) { l.debug = append(l.debug, msg) }
func (l *debugLogger) Info(_ map[string]any, msg string)  { l.info = append(l.info, msg) }

func newFrame(t *testing.T) *canvas.Canvas {
	t.Helper()
	c, err := canvas.New(canvas.Options{Width: layout.Width, Height: layout.Height})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func available(t *testing.T) domain.FetchResult {
	t.Helper()
	buckets := make([]domain.HourBucket, domain.HoursPerDay)
	for h := range buckets {
		buckets[h] = domain.HourBucket{Hour: h, Count: h + 1, Current: h == 14}
	}
	series, err := domain.NewPeakSeries(buckets)
	require.NoError(t, err)
	return domain.Available(domain.StatSnapshot{Uptime: "2h", TotalRequests: 120, CacheHitRate: "80%"}, series)
}

type fixture struct {
	loop     *Loop
	poller   *scriptedPoller
	renderer *recordingRenderer
	sink     *memorySink
	clock    *clock.MockClock
}

func newFixture(t *testing.T, results ...domain.FetchResult) *fixture {
	t.Helper()
	f := &fixture{
		poller:   &scriptedPoller{results: results},
		renderer: &recordingRenderer{},
		sink:     &memorySink{},
		clock:    &clock.MockClock{CurrentTime: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)},
	}
	loop, err := New(Options{
		Poller:          f.poller,
		Renderer:        f.renderer,
		Frame:           newFrame(t),
		Pack:            pixel.Pack,
		Sink:            f.sink,
		Clock:           f.clock,
		Logger:          log.NewNoopLogger(),
		RefreshInterval: 10 * time.Second,
		TickInterval:    time.Second,
	})
	require.NoError(t, err)
	f.loop = loop
	return f
}

func TestNew_Validation(t *testing.T) {
	frame := newFrame(t)
	base := Options{
		Poller:   &scriptedPoller{},
		Renderer: &recordingRenderer{},
		Frame:    frame,
		Pack:     pixel.Pack,
		Sink:     &memorySink{},
	}

	l, err := New(base)
	require.NoError(t, err)
	assert.Equal(t, DefaultRefreshInterval, l.refresh)
	assert.Equal(t, DefaultTickInterval, l.tick)
	assert.False(t, l.State().Polled)
	assert.False(t, l.State().Latest.IsAvailable())

	bad := base
	bad.TickInterval = 10 * time.Second
	bad.RefreshInterval = 10 * time.Second
	_, err = New(bad)
	assert.ErrorIs(t, err, ErrTickNotShorter)

	missing := base
	missing.Sink = nil
	_, err = New(missing)
	assert.Error(t, err)
}

func TestTick_PollCadence(t *testing.T) {
	f := newFixture(t, available(t))
	ctx := context.Background()

	require.NoError(t, f.loop.Tick(ctx))
	assert.Equal(t, 1, f.poller.calls, "first tick always polls")

	for i := 0; i < 9; i++ {
		f.clock.Advance(time.Second)
		require.NoError(t, f.loop.Tick(ctx))
	}
	assert.Equal(t, 1, f.poller.calls, "no poll before the refresh interval")

	f.clock.Advance(time.Second)
	require.NoError(t, f.loop.Tick(ctx))
	assert.Equal(t, 2, f.poller.calls)
	assert.Equal(t, f.clock.Now(), f.loop.State().LastPoll)

	assert.Len(t, f.renderer.rendered, 11, "every tick renders")
	assert.Len(t, f.sink.frames, 11, "every tick writes")
	assert.Equal(t, uint64(11), f.loop.State().Frames)
	for _, frame := range f.sink.frames {
		assert.Len(t, frame, pixel.FrameSize(layout.Width, layout.Height))
	}
}

func TestTick_FailedPollDiscardsPreviousSnapshot(t *testing.T) {
	f := newFixture(t, available(t), domain.Unreachable(), available(t))
	ctx := context.Background()

	require.NoError(t, f.loop.Tick(ctx))
	assert.True(t, f.loop.State().Latest.IsAvailable())

	f.clock.Advance(10 * time.Second)
	require.NoError(t, f.loop.Tick(ctx))
	assert.False(t, f.loop.State().Latest.IsAvailable())
	assert.False(t, f.renderer.rendered[1].IsAvailable())

	f.clock.Advance(time.Second)
	require.NoError(t, f.loop.Tick(ctx))
	assert.False(t, f.renderer.rendered[2].IsAvailable(), "unreachable persists until the next poll")

	f.clock.Advance(9 * time.Second)
	require.NoError(t, f.loop.Tick(ctx))
	assert.True(t, f.renderer.rendered[3].IsAvailable())
}

func TestTick_WriteFailureIsReturned(t *testing.T) {
	f := newFixture(t, available(t))
	f.sink.err = errors.New("device gone")

	err := f.loop.Tick(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "device gone")
	assert.Equal(t, uint64(0), f.loop.State().Frames)
}

func TestTick_LogsFrameChangesOnly(t *testing.T) {
	f := newFixture(t, available(t))
	logger := &debugLogger{Logger: log.NewNoopLogger()}
	f.loop.logger = logger
	f.loop.renderer = dashboard.NewRenderer(dashboard.DefaultPalette)

	ctx := context.Background()
	require.NoError(t, f.loop.Tick(ctx))
	f.clock.Advance(time.Second)
	require.NoError(t, f.loop.Tick(ctx))

	assert.Equal(t, []string{"Frame content changed"}, logger.debug)
	assert.Equal(t, []string{"Stats service status changed"}, logger.info)
	assert.Equal(t, f.sink.frames[0], f.sink.frames[1])
}

func TestRun_StopsBetweenTicksOnCancel(t *testing.T) {
	f := newFixture(t, available(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sleeps := 0
	f.loop.sleep = func(ctx context.Context, d time.Duration) error {
		assert.Equal(t, time.Second, d)
		sleeps++
		f.clock.Advance(d)
		if sleeps == 3 {
			cancel()
			return ctx.Err()
		}
		return nil
	}

	require.NoError(t, f.loop.Run(ctx))
	assert.Equal(t, uint64(3), f.loop.State().Frames)
	assert.Len(t, f.sink.frames, 3)
}

func TestRun_AlreadyCancelled(t *testing.T) {
	f := newFixture(t, available(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.loop.Run(ctx))
	assert.Zero(t, f.poller.calls)
	assert.Empty(t, f.sink.frames)
}

func TestRun_ReturnsWriteError(t *testing.T) {
	f := newFixture(t, available(t))
	f.sink.err = errors.New("no such device")

	err := f.loop.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such device")
}

func TestTick_UnreachableFrameHasNoChart(t *testing.T) {
	f := newFixture(t, available(t), domain.Unreachable())
	f.loop.renderer = dashboard.NewRenderer(dashboard.DefaultPalette)
	ctx := context.Background()

	bar := dashboard.Compose(available(t)).Bars[14].Fill()
	at := image.Pt((bar.Min.X+bar.Max.X)/2, (bar.Min.Y+bar.Max.Y)/2)
	pixelAt := func(frame []byte) uint16 {
		off := (at.Y*layout.Width + at.X) * pixel.BytesPerPixel
		return uint16(frame[off]) | uint16(frame[off+1])<<8
	}
	c := dashboard.DefaultPalette.Current
	bg := dashboard.DefaultPalette.Background

	require.NoError(t, f.loop.Tick(ctx))
	assert.Equal(t, pixel.Pack565(c.R, c.G, c.B), pixelAt(f.sink.frames[0]))

	f.clock.Advance(10 * time.Second)
	require.NoError(t, f.loop.Tick(ctx))
	assert.Equal(t, pixel.Pack565(bg.R, bg.G, bg.B), pixelAt(f.sink.frames[1]))
}

func TestSleep(t *testing.T) {
	require.NoError(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	err := Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
