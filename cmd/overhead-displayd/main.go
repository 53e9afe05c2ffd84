package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haukened/overhead-display/internal/display/common/clock"
	"github.com/haukened/overhead-display/internal/display/common/log"
	"github.com/haukened/overhead-display/internal/display/config"
	"github.com/haukened/overhead-display/internal/display/gateways/framebuffer"
	"github.com/haukened/overhead-display/internal/display/gateways/statsapi"
	"github.com/haukened/overhead-display/internal/display/infra/canvas"
	"github.com/haukened/overhead-display/internal/display/infra/pixel"
	"github.com/haukened/overhead-display/internal/display/repos/textcache"
	"github.com/haukened/overhead-display/internal/display/services/dashboard"
	"github.com/haukened/overhead-display/internal/display/services/layout"
	"github.com/haukened/overhead-display/internal/display/services/mainloop"
	"github.com/haukened/overhead-display/internal/display/services/poller"
)

const (
	version = "0.1.0-dev"
	appName = "overhead-displayd"
)

// Application holds the wired components of the display.
type Application struct {
	config *config.AppConfig
	loop   *mainloop.Loop
	canvas *canvas.Canvas
	device *framebuffer.Device
	widths *textcache.Cache
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	err = log.Configure(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"app":       appName,
		"version":   version,
		"env":       cfg.Env,
		"log_level": cfg.LogLevel,
		"device":    cfg.Device,
		"stats_url": cfg.StatsURL,
		"peak_url":  cfg.PeakURL,
		"refresh":   cfg.RefreshInterval.String(),
		"tick":      cfg.TickInterval.String(),
	}, "Starting overhead display")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err}, "Display failed")
	}

	log.Info(nil, "Overhead display stopped")
}

// buildApplication constructs all components and wires them together. The
// framebuffer is opened last so a failure earlier never leaves it open.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()

	widths, err := textcache.New(textcache.DefaultSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create text width cache: %w", err)
	}

	surface, err := canvas.New(canvas.Options{
		Width:  layout.Width,
		Height: layout.Height,
		Widths: widths,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas: %w", err)
	}

	client, err := statsapi.NewClient(statsapi.Options{
		StatsURL: cfg.StatsURL,
		PeakURL:  cfg.PeakURL,
		Timeout:  cfg.FetchTimeout,
	})
	if err != nil {
		_ = surface.Close()
		return nil, fmt.Errorf("failed to create stats client: %w", err)
	}

	log.Info(map[string]any{
		"stats_url": client.StatsURL(),
		"peak_url":  client.PeakURL(),
		"timeout":   cfg.FetchTimeout.String(),
	}, "Stats client configured")

	device, err := framebuffer.Open(cfg.Device, pixel.FrameSize(layout.Width, layout.Height))
	if err != nil {
		_ = surface.Close()
		return nil, fmt.Errorf("failed to open framebuffer: %w", err)
	}

	loop, err := mainloop.New(mainloop.Options{
		Poller: poller.New(poller.Options{
			Source: client,
			Logger: logger,
		}),
		Renderer:        dashboard.NewRenderer(dashboard.DefaultPalette),
		Frame:           surface,
		Pack:            pixel.Pack,
		Sink:            device,
		Clock:           clock.RealClock{},
		Logger:          logger,
		RefreshInterval: cfg.RefreshInterval,
		TickInterval:    cfg.TickInterval,
	})
	if err != nil {
		_ = device.Close()
		_ = surface.Close()
		return nil, fmt.Errorf("failed to create display loop: %w", err)
	}

	return &Application{
		config: cfg,
		loop:   loop,
		canvas: surface,
		device: device,
		widths: widths,
	}, nil
}

// Run drives the display loop until ctx is cancelled, then releases the
// device and the canvas.
func (app *Application) Run(ctx context.Context) error {
	runErr := app.loop.Run(ctx)

	hits, misses := app.widths.Stats()
	log.Debug(map[string]any{
		"entries": app.widths.Len(),
		"hits":    hits,
		"misses":  misses,
	}, "Text width cache usage")

	closeErr := errors.Join(app.device.Close(), app.canvas.Close())
	if closeErr != nil {
		log.Warn(map[string]any{
			"device": app.config.Device,
			"error":  closeErr,
		}, "Error releasing display resources")
	} else {
		log.Info(map[string]any{"device": app.config.Device}, "Display resources released")
	}
	if runErr != nil {
		return runErr
	}
	return closeErr
}
