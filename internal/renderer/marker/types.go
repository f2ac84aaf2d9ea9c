// Package marker provides buffer-anchored visual annotations: tooltips,
// underlines and highlighted spans that the renderer draws on top of text.
//
// Markers are created and mutated by their owner (for example the completion
// controller) and registered with a Store, which the renderer reads.
package marker

import (
	"github.com/google/uuid"

	"github.com/dshills/sigcomplete/internal/engine/buffer"
	"github.com/dshills/sigcomplete/internal/renderer/theme"
)

// DisplayType is how a marker is drawn.
type DisplayType uint8

const (
	// DisplayHidden markers are tracked but not drawn.
	DisplayHidden DisplayType = iota

	// DisplayTooltip draws the description in a box next to the range.
	DisplayTooltip

	// DisplayUnderline underlines the range.
	DisplayUnderline

	// DisplayBackground fills the range background.
	DisplayBackground
)

// String returns the string representation of the display type.
func (d DisplayType) String() string {
	switch d {
	case DisplayHidden:
		return "hidden"
	case DisplayTooltip:
		return "tooltip"
	case DisplayUnderline:
		return "underline"
	case DisplayBackground:
		return "background"
	default:
		return "unknown"
	}
}

// TooltipPos is where a tooltip sits relative to its line.
type TooltipPos uint8

const (
	TooltipBelowLine TooltipPos = iota
	TooltipAboveLine
	TooltipRightLine
)

// String returns the string representation of the tooltip position.
func (p TooltipPos) String() string {
	switch p {
	case TooltipBelowLine:
		return "below"
	case TooltipAboveLine:
		return "above"
	case TooltipRightLine:
		return "right"
	default:
		return "unknown"
	}
}

// Colors is the three colour roles a marker is drawn with.
type Colors struct {
	Background theme.Color
	Text       theme.Color
	Accent     theme.Color
}

// DefaultColors returns the colours new markers start with.
func DefaultColors() Colors {
	return Colors{
		Background: theme.Background,
		Text:       theme.Text,
		Accent:     theme.Highlight,
	}
}

// ScreenPoint is a host-supplied screen position hint, in cells.
type ScreenPoint struct {
	X int
	Y int
}

// RangeMarker is a visual annotation over a byte range.
type RangeMarker struct {
	id          string
	rng         buffer.Range
	name        string
	description string
	displayType DisplayType
	tipPos      TooltipPos
	colors      Colors
	anchor      ScreenPoint
}

// New creates a hidden marker over rng with a fresh identity.
func New(rng buffer.Range) *RangeMarker {
	return &RangeMarker{
		id:     uuid.NewString(),
		rng:    rng,
		colors: DefaultColors(),
	}
}

// ID returns the marker's unique identifier.
func (m *RangeMarker) ID() string { return m.id }

// Range returns the marked byte range.
func (m *RangeMarker) Range() buffer.Range { return m.rng }

// SetRange moves the marker.
func (m *RangeMarker) SetRange(rng buffer.Range) { m.rng = rng }

// Name returns the marker's short title.
func (m *RangeMarker) Name() string { return m.name }

// SetName sets the marker's short title.
func (m *RangeMarker) SetName(name string) { m.name = name }

// Description returns the text drawn by tooltip markers.
func (m *RangeMarker) Description() string { return m.description }

// SetDescription replaces the text drawn by tooltip markers.
func (m *RangeMarker) SetDescription(desc string) { m.description = desc }

// DisplayType returns how the marker is drawn.
func (m *RangeMarker) DisplayType() DisplayType { return m.displayType }

// SetDisplayType sets how the marker is drawn.
func (m *RangeMarker) SetDisplayType(d DisplayType) { m.displayType = d }

// TooltipPos returns the tooltip placement.
func (m *RangeMarker) TooltipPos() TooltipPos { return m.tipPos }

// SetTooltipPos sets the tooltip placement.
func (m *RangeMarker) SetTooltipPos(p TooltipPos) { m.tipPos = p }

// Colors returns the marker's colour roles.
func (m *RangeMarker) Colors() Colors { return m.colors }

// SetColors sets the background, text and accent roles.
func (m *RangeMarker) SetColors(background, text, accent theme.Color) {
	m.colors = Colors{Background: background, Text: text, Accent: accent}
}

// Anchor returns the screen position hint.
func (m *RangeMarker) Anchor() ScreenPoint { return m.anchor }

// SetAnchor sets the screen position hint.
func (m *RangeMarker) SetAnchor(p ScreenPoint) { m.anchor = p }
