// Package canvas is the offscreen drawing surface of the display. It owns an
// RGBA image of fixed size and draws onto it through a gg context; nothing
// here knows about windows or input.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/haukened/overhead-display/internal/display/domain"
	"github.com/haukened/overhead-display/internal/display/repos/textcache"
)

var ErrInvalidSize = errors.New("canvas dimensions must be positive")

// WidthCache remembers text widths between frames.
type WidthCache interface {
	Width(size domain.FontSize, text string, measure func() int) int
}

// Canvas is a W x H grid of RGB pixels with simple drawing primitives.
type Canvas struct {
	img    *image.RGBA
	dc     *gg.Context
	faces  Faces
	widths WidthCache
}

// Options configures a Canvas. Widths and Faces default to a fresh cache and
// the embedded fonts.
type Options struct {
	Width  int
	Height int
	Faces  Faces
	Widths WidthCache
}

// New allocates a canvas.
func New(opts Options) (*Canvas, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	if opts.Faces == nil {
		faces, err := LoadFaces()
		if err != nil {
			return nil, err
		}
		opts.Faces = faces
	}
	if opts.Widths == nil {
		cache, err := textcache.New(textcache.DefaultSize)
		if err != nil {
			return nil, fmt.Errorf("create width cache: %w", err)
		}
		opts.Widths = cache
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	return &Canvas{
		img:    img,
		dc:     gg.NewContextForRGBA(img),
		faces:  opts.Faces,
		widths: opts.Widths,
	}, nil
}

// Image exposes the backing pixels. The image is reused across frames.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Clear paints every pixel with col.
func (c *Canvas) Clear(col color.RGBA) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

// FillRect fills r. Empty rectangles draw nothing.
func (c *Canvas) FillRect(r image.Rectangle, col color.RGBA) {
	r = r.Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	c.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	c.dc.SetColor(col)
	c.dc.Fill()
}

// FillCircle fills a disc around center.
func (c *Canvas) FillCircle(center image.Point, radius int, col color.RGBA) {
	if radius <= 0 {
		return
	}
	c.dc.DrawCircle(float64(center.X), float64(center.Y), float64(radius))
	c.dc.SetColor(col)
	c.dc.Fill()
}

// HLine draws a one pixel horizontal line from x0 to x1 inclusive.
func (c *Canvas) HLine(x0, x1, y int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	c.FillRect(image.Rect(x0, y, x1+1, y+1), col)
}

// DrawText draws s with its top edge at at.Y. With AlignCenter, at.X is the
// horizontal middle of the text; with AlignLeft it is the left edge.
func (c *Canvas) DrawText(s string, size domain.FontSize, at image.Point, align domain.Align, col color.RGBA) {
	face, ok := c.faces[size]
	if !ok || s == "" {
		return
	}
	c.dc.SetFontFace(face)
	x := at.X
	if align == domain.AlignCenter {
		x -= c.TextWidth(s, size) / 2
	}
	baseline := at.Y + face.Metrics().Ascent.Ceil()
	c.dc.SetColor(col)
	c.dc.DrawString(s, float64(x), float64(baseline))
}

// TextWidth returns the rendered width of s in pixels.
func (c *Canvas) TextWidth(s string, size domain.FontSize) int {
	face, ok := c.faces[size]
	if !ok {
		return 0
	}
	return c.widths.Width(size, s, func() int {
		c.dc.SetFontFace(face)
		w, _ := c.dc.MeasureString(s)
		return int(math.Ceil(w))
	})
}

// Close releases the font faces.
func (c *Canvas) Close() error {
	return c.faces.Close()
}
