package dashboard

import (
	"image"
	"image/color"

	"github.com/haukened/overhead-display/internal/display/domain"
	"github.com/haukened/overhead-display/internal/display/services/barchart"
)

// Surface is the drawing capability the dashboard needs from a canvas.
type Surface interface {
	Clear(col color.RGBA)
	FillRect(r image.Rectangle, col color.RGBA)
	FillCircle(center image.Point, radius int, col color.RGBA)
	HLine(x0, x1, y int, col color.RGBA)
	DrawText(s string, size domain.FontSize, at image.Point, align domain.Align, col color.RGBA)
}

// Palette maps styles to colors.
type Palette struct {
	Background color.RGBA
	Accent     color.RGBA
	OK         color.RGBA
	Current    color.RGBA
	Alert      color.RGBA
	Dim        color.RGBA
	Normal     color.RGBA
	Track      color.RGBA
}

// DefaultPalette is the dark theme of the device.
var DefaultPalette = Palette{
	Background: rgb(15, 15, 25),
	Accent:     rgb(0, 180, 255),
	OK:         rgb(0, 220, 100),
	Current:    rgb(255, 180, 0),
	Alert:      rgb(255, 80, 80),
	Dim:        rgb(80, 90, 110),
	Normal:     rgb(230, 235, 245),
	Track:      rgb(40, 45, 60),
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

// Text returns the color for a text style.
func (p Palette) Text(s TextStyle) color.RGBA {
	switch s {
	case TextDim:
		return p.Dim
	case TextAccent:
		return p.Accent
	case TextAlert:
		return p.Alert
	default:
		return p.Normal
	}
}

// Bar returns the fill color for a bar style.
func (p Palette) Bar(s barchart.Style) color.RGBA {
	switch s {
	case barchart.StyleCurrent:
		return p.Current
	case barchart.StylePeak:
		return p.OK
	default:
		return p.Accent
	}
}

// Indicator returns the reachability dot color.
func (p Palette) Indicator(reachable bool) color.RGBA {
	if reachable {
		return p.OK
	}
	return p.Alert
}

// Paint clears surf and draws scene onto it.
func Paint(surf Surface, scene Scene, p Palette) {
	surf.Clear(p.Background)

	drawText(surf, scene.Title, p)
	surf.FillCircle(scene.Indicator.Center, scene.Indicator.Radius, p.Indicator(scene.Indicator.Reachable))
	for _, r := range scene.Rules {
		surf.HLine(r.X0, r.X1, r.Y, p.Dim)
	}
	if scene.Message != nil {
		drawText(surf, *scene.Message, p)
	}
	for _, c := range scene.Cells {
		drawText(surf, c.Label, p)
		drawText(surf, c.Value, p)
	}
	if scene.Header != nil {
		drawText(surf, *scene.Header, p)
	}
	for _, b := range scene.Bars {
		surf.FillRect(b.Track(), p.Track)
		if b.Filled > 0 {
			surf.FillRect(b.Fill(), p.Bar(b.Style))
		}
	}
	for _, t := range scene.Axis {
		drawText(surf, t, p)
	}
}

func drawText(surf Surface, t Text, p Palette) {
	surf.DrawText(t.Value, t.Size, t.At, t.Align, p.Text(t.Style))
}

// Renderer composes and paints frames with a fixed palette.
type Renderer struct {
	palette Palette
}

// NewRenderer returns a Renderer using p.
func NewRenderer(p Palette) *Renderer {
	return &Renderer{palette: p}
}

// Render draws the frame for result onto surf.
func (r *Renderer) Render(surf Surface, result domain.FetchResult) {
	Paint(surf, Compose(result), r.palette)
}
