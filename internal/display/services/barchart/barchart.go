package barchart

import (
	"image"
	"math/bits"

	"github.com/haukened/overhead-display/internal/display/domain"
	"github.com/haukened/overhead-display/internal/display/services/layout"
)

// Style is the highlight applied to a bar.
type Style uint8

const (
	StyleDefault Style = iota
	StylePeak
	StyleCurrent
)

func (s Style) String() string {
	switch s {
	case StylePeak:
		return "peak"
	case StyleCurrent:
		return "current"
	default:
		return "default"
	}
}

// Bar is the fill and highlight decision for one hour bucket.
type Bar struct {
	Hour     int
	Count    int
	Geometry layout.BarGeometry
	Filled   int
	Style    Style
}

// Track returns the background rectangle of the bar slot.
func (b Bar) Track() image.Rectangle { return b.Geometry.Track() }

// Fill returns the filled part of the bar, anchored to the bottom of the track.
// It is empty when the bar has no fill.
func (b Bar) Fill() image.Rectangle {
	bottom := b.Geometry.ChartY + b.Geometry.ChartHeight
	return image.Rect(b.Geometry.X, bottom-b.Filled, b.Geometry.X+b.Geometry.Width, bottom)
}

// MaxCount returns the largest count in buckets, or 0 when there are none.
func MaxCount(buckets []domain.HourBucket) int {
	maxCount := 0
	for _, b := range buckets {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	return maxCount
}

// FilledHeight scales count against maxCount into [0, chartHeight], rounding
// down. The product is taken in 128 bits so counts near MaxInt64 stay exact.
func FilledHeight(count, maxCount, chartHeight int) int {
	if maxCount <= 0 || count <= 0 || chartHeight <= 0 {
		return 0
	}
	if count >= maxCount {
		return chartHeight
	}
	// count < maxCount keeps hi < maxCount, as Div64 requires
	hi, lo := bits.Mul64(uint64(count), uint64(chartHeight))
	filled, _ := bits.Div64(hi, lo, uint64(maxCount))
	return int(filled)
}

// SelectStyle picks the bar highlight. The current hour always wins; any
// other bucket sitting at a non-zero maximum is a peak, so ties yield
// several peaks.
func SelectStyle(b domain.HourBucket, maxCount int) Style {
	switch {
	case b.Current:
		return StyleCurrent
	case maxCount > 0 && b.Count == maxCount:
		return StylePeak
	default:
		return StyleDefault
	}
}

// Plan computes one Bar per bucket of series, ordered by hour.
func Plan(series domain.PeakSeries) []Bar {
	buckets := series.Buckets()
	maxCount := MaxCount(buckets)

	bars := make([]Bar, 0, len(buckets))
	for _, b := range buckets {
		geom := layout.BarGeometryAt(b.Hour)
		bars = append(bars, Bar{
			Hour:     b.Hour,
			Count:    b.Count,
			Geometry: geom,
			Filled:   FilledHeight(b.Count, maxCount, geom.ChartHeight),
			Style:    SelectStyle(b, maxCount),
		})
	}
	return bars
}
