package canvas

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"

	"github.com/haukened/overhead-display/internal/display/domain"
)

// Point sizes at 72 DPI, so one point is one pixel.
const (
	largePoints  = 26
	mediumPoints = 18
	smallPoints  = 13
)

// Faces holds one font face per domain.FontSize.
type Faces map[domain.FontSize]font.Face

// LoadFaces parses the embedded Go Mono fonts: bold for the title, regular for
// everything else.
func LoadFaces() (Faces, error) {
	regular, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go mono: %w", err)
	}
	bold, err := truetype.Parse(gomonobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go mono bold: %w", err)
	}
	face := func(f *truetype.Font, points float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{
			Size:    points,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	return Faces{
		domain.FontLarge:  face(bold, largePoints),
		domain.FontMedium: face(regular, mediumPoints),
		domain.FontSmall:  face(regular, smallPoints),
	}, nil
}

// Close releases every face.
func (f Faces) Close() error {
	var first error
	for _, face := range f {
		if err := face.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
