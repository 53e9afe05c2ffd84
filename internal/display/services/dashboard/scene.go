package dashboard

import (
	"image"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/haukened/overhead-display/internal/display/domain"
	"github.com/haukened/overhead-display/internal/display/services/barchart"
	"github.com/haukened/overhead-display/internal/display/services/layout"
)

const (
	Title              = "OVERHEAD TRACKER"
	UnreachableMessage = "-- proxy unreachable --"
	ChartHeader        = "TRAFFIC BY HOUR"
)

// Stat grid labels in cell order.
const (
	LabelUptime   = "UPTIME"
	LabelRequests = "REQUESTS"
	LabelCacheHit = "CACHE HIT"
	LabelErrors   = "ERRORS"
	LabelClients  = "CLIENTS"
	LabelCached   = "CACHED"
)

// TextStyle is the color role of a text item.
type TextStyle uint8

const (
	TextNormal TextStyle = iota
	TextDim
	TextAccent
	TextAlert
)

func (s TextStyle) String() string {
	switch s {
	case TextDim:
		return "dim"
	case TextAccent:
		return "accent"
	case TextAlert:
		return "alert"
	default:
		return "normal"
	}
}

// Text is a string placed on the frame; At is the top edge and, depending on
// Align, the left edge or horizontal middle.
type Text struct {
	Value string
	At    image.Point
	Size  domain.FontSize
	Align domain.Align
	Style TextStyle
}

// Cell is one stat grid entry.
type Cell struct {
	Center image.Point
	Label  Text
	Value  Text
}

// Rule is a one pixel horizontal separator.
type Rule struct {
	X0, X1, Y int
}

// Indicator is the reachability dot in the title bar.
type Indicator struct {
	Center    image.Point
	Radius    int
	Reachable bool
}

// Scene is everything one frame shows, decided without touching a surface.
type Scene struct {
	Title     Text
	Indicator Indicator
	Rules     []Rule
	Message   *Text
	Cells     []Cell
	Header    *Text
	Bars      []barchart.Bar
	Axis      []Text
}

// Texts returns every text item of the scene in draw order.
func (s Scene) Texts() []Text {
	out := []Text{s.Title}
	if s.Message != nil {
		out = append(out, *s.Message)
	}
	for _, c := range s.Cells {
		out = append(out, c.Label, c.Value)
	}
	if s.Header != nil {
		out = append(out, *s.Header)
	}
	return append(out, s.Axis...)
}

// Find returns the first text item showing value.
func (s Scene) Find(value string) (Text, bool) {
	for _, t := range s.Texts() {
		if t.Value == value {
			return t, true
		}
	}
	return Text{}, false
}

// Cell returns the grid cell with the given label.
func (s Scene) Cell(label string) (Cell, bool) {
	for _, c := range s.Cells {
		if c.Label.Value == label {
			return c, true
		}
	}
	return Cell{}, false
}

// Compose decides the frame for result. An Unreachable result yields only
// the title bar and the unreachable message.
func Compose(result domain.FetchResult) Scene {
	scene := Scene{
		Title: Text{
			Value: Title,
			At:    image.Pt(layout.Width/2, layout.TitleY),
			Size:  domain.FontLarge,
			Align: domain.AlignCenter,
			Style: TextAccent,
		},
		Indicator: Indicator{
			Center:    layout.IndicatorCenter(),
			Radius:    layout.IndicatorRadius,
			Reachable: result.IsAvailable(),
		},
		Rules: []Rule{fullWidthRule(layout.TitleRuleY)},
	}

	snapshot, peak, ok := result.Data()
	if !ok {
		scene.Message = &Text{
			Value: UnreachableMessage,
			At:    image.Pt(layout.Width/2, layout.Height/2),
			Size:  domain.FontMedium,
			Align: domain.AlignCenter,
			Style: TextAlert,
		}
		return scene
	}

	scene.Cells = composeGrid(snapshot)
	scene.Rules = append(scene.Rules, fullWidthRule(layout.GridRuleY))
	scene.Header = &Text{
		Value: ChartHeader,
		At:    image.Pt(layout.ChartHeaderX, layout.ChartHeaderY),
		Size:  domain.FontSmall,
		Align: domain.AlignLeft,
		Style: TextDim,
	}
	scene.Bars = barchart.Plan(peak)
	for _, h := range layout.AxisHours {
		scene.Axis = append(scene.Axis, Text{
			Value: strconv.Itoa(h),
			At:    image.Pt(layout.BarX(h), layout.AxisLabelY),
			Size:  domain.FontSmall,
			Align: domain.AlignLeft,
			Style: TextDim,
		})
	}
	return scene
}

type gridEntry struct {
	label string
	value string
	style TextStyle
}

func gridEntries(s domain.StatSnapshot) []gridEntry {
	errStyle := TextNormal
	if s.HasErrors() {
		errStyle = TextAlert
	}
	return []gridEntry{
		{label: LabelUptime, value: s.Uptime},
		{label: LabelRequests, value: humanize.Comma(s.TotalRequests)},
		{label: LabelCacheHit, value: s.CacheHitRate},
		{label: LabelErrors, value: humanize.Comma(s.Errors), style: errStyle},
		{label: LabelClients, value: humanize.Comma(s.UniqueClients)},
		{label: LabelCached, value: humanize.Comma(s.CacheEntries) + " entries"},
	}
}

func composeGrid(s domain.StatSnapshot) []Cell {
	entries := gridEntries(s)
	cells := make([]Cell, 0, len(entries))
	for i, e := range entries {
		center, err := layout.GridCellPosition(i)
		if err != nil {
			break
		}
		cells = append(cells, Cell{
			Center: center,
			Label: Text{
				Value: e.label,
				At:    image.Pt(center.X, center.Y-layout.LabelOffset),
				Size:  domain.FontSmall,
				Align: domain.AlignCenter,
				Style: TextDim,
			},
			Value: Text{
				Value: e.value,
				At:    center,
				Size:  domain.FontMedium,
				Align: domain.AlignCenter,
				Style: e.style,
			},
		})
	}
	return cells
}

func fullWidthRule(y int) Rule {
	return Rule{X0: layout.RuleMargin, X1: layout.Width - layout.RuleMargin, Y: y}
}
