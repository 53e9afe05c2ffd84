package domain

// FontSize selects one of the fixed font faces of the display.
type FontSize uint8

const (
	FontSmall FontSize = iota
	FontMedium
	FontLarge
)

func (s FontSize) String() string {
	switch s {
	case FontSmall:
		return "small"
	case FontMedium:
		return "medium"
	case FontLarge:
		return "large"
	default:
		return "unknown"
	}
}

// Align is the horizontal anchoring of a text item relative to its x coordinate.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
)
