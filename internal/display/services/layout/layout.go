// Package layout holds the fixed geometry of the dashboard. Every function is
// pure and depends only on the constants below, so positions can be verified
// without a drawing surface.
package layout

import (
	"errors"
	"fmt"
	"image"

	"github.com/haukened/overhead-display/internal/display/domain"
)

// Canvas dimensions of the target display.
const (
	Width  = 480
	Height = 320
)

// Title bar.
const (
	TitleY          = 8
	TitleRuleY      = 36
	RuleMargin      = 10
	IndicatorInset  = 14
	IndicatorRadius = 6
)

// Stat grid: two rows of three cells below the title bar.
const (
	GridColumns   = 3
	GridRows      = 2
	GridCells     = GridColumns * GridRows
	GridTop       = 40
	GridRowHeight = 52
	LabelOffset   = 16 // label top sits this far above the cell center
	GridRuleY     = 162
)

// Hourly bar chart.
const (
	ChartHeaderX = 10
	ChartHeaderY = 168
	ChartMargin  = 10 // left and right margin of the bar slots
	ChartTop     = 185
	ChartFooter  = 23 // band below the chart holding the hour axis labels
	BarGap       = 1
	AxisLabelY   = Height - 18
)

// AxisHours are the hours labelled under the bar chart.
var AxisHours = []int{0, 6, 12, 18}

var (
	ErrCellIndex = errors.New("grid cell index out of range")
	ErrBarHour   = errors.New("bar hour out of range")
)

// ColumnWidth is the width of one stat grid column.
func ColumnWidth() int { return Width / GridColumns }

// GridCellPosition returns the center of stat grid cell index, counted
// row-major from the top-left cell.
func GridCellPosition(index int) (image.Point, error) {
	if index < 0 || index >= GridCells {
		return image.Point{}, fmt.Errorf("%w: %d", ErrCellIndex, index)
	}
	col, row := index%GridColumns, index/GridColumns
	colW := ColumnWidth()
	return image.Point{
		X: col*colW + colW/2,
		Y: GridTop + row*GridRowHeight + GridRowHeight/2,
	}, nil
}

// BarGeometry is the placement of one hour's bar.
type BarGeometry struct {
	X           int
	Width       int
	ChartHeight int
	ChartY      int
}

// Track returns the full slot rectangle of the bar.
func (g BarGeometry) Track() image.Rectangle {
	return image.Rect(g.X, g.ChartY, g.X+g.Width, g.ChartY+g.ChartHeight)
}

// SlotWidth is the horizontal pitch between neighbouring bars.
func SlotWidth() int { return (Width - 2*ChartMargin) / domain.HoursPerDay }

// ChartHeight is the vertical extent available to bars.
func ChartHeight() int { return Height - ChartTop - ChartFooter }

// BarX returns the left edge of the slot for hour without range checking;
// used for axis labels that share the bar positions.
func BarX(hour int) int { return ChartMargin + hour*SlotWidth() }

// BarGeometryFor returns the placement of the bar for hour.
func BarGeometryFor(hour int) (BarGeometry, error) {
	if hour < 0 || hour >= domain.HoursPerDay {
		return BarGeometry{}, fmt.Errorf("%w: %d", ErrBarHour, hour)
	}
	return BarGeometryAt(hour), nil
}

// BarGeometryAt is BarGeometryFor without range checking, for hours already
// validated by a PeakSeries.
func BarGeometryAt(hour int) BarGeometry {
	return BarGeometry{
		X:           BarX(hour),
		Width:       SlotWidth() - BarGap,
		ChartHeight: ChartHeight(),
		ChartY:      ChartTop,
	}
}

// IndicatorCenter is the center of the reachability dot in the title bar.
func IndicatorCenter() image.Point {
	return image.Point{X: Width - IndicatorInset, Y: IndicatorInset}
}
