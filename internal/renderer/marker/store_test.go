package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/sigcomplete/internal/engine/buffer"
	"github.com/dshills/sigcomplete/internal/renderer/theme"
)

func TestNewMarker(t *testing.T) {
	m := New(buffer.NewRange(3, 4))

	assert.NotEmpty(t, m.ID())
	assert.NotEqual(t, m.ID(), New(buffer.NewRange(3, 4)).ID())
	assert.Equal(t, buffer.NewRange(3, 4), m.Range())
	assert.Equal(t, DisplayHidden, m.DisplayType())
	assert.Equal(t, TooltipBelowLine, m.TooltipPos())
	assert.Equal(t, DefaultColors(), m.Colors())
}

func TestMarkerSetters(t *testing.T) {
	m := New(buffer.NewRange(0, 1))

	m.SetName("Completions")
	m.SetDescription("> clk")
	m.SetDisplayType(DisplayTooltip)
	m.SetTooltipPos(TooltipRightLine)
	m.SetColors(theme.Background, theme.Text, theme.Info)
	m.SetAnchor(ScreenPoint{X: 4, Y: 2})
	m.SetRange(buffer.NewRange(5, 6))

	assert.Equal(t, "Completions", m.Name())
	assert.Equal(t, "> clk", m.Description())
	assert.Equal(t, DisplayTooltip, m.DisplayType())
	assert.Equal(t, TooltipRightLine, m.TooltipPos())
	assert.Equal(t, Colors{Background: theme.Background, Text: theme.Text, Accent: theme.Info}, m.Colors())
	assert.Equal(t, ScreenPoint{X: 4, Y: 2}, m.Anchor())
	assert.Equal(t, buffer.NewRange(5, 6), m.Range())
}

func TestDisplayTypeString(t *testing.T) {
	assert.Equal(t, "tooltip", DisplayTooltip.String())
	assert.Equal(t, "hidden", DisplayHidden.String())
	assert.Equal(t, "unknown", DisplayType(77).String())
	assert.Equal(t, "below", TooltipBelowLine.String())
	assert.Equal(t, "unknown", TooltipPos(9).String())
}

func TestStoreAddRemove(t *testing.T) {
	s := NewStore()
	m := New(buffer.NewRange(0, 1))

	s.AddRangeMarker(m)
	s.AddRangeMarker(m)
	s.AddRangeMarker(nil)
	require.Equal(t, 1, s.Count())

	got, ok := s.Get(m.ID())
	require.True(t, ok)
	assert.Same(t, m, got)

	assert.True(t, s.ClearRangeMarker(m))
	assert.False(t, s.ClearRangeMarker(m))
	assert.False(t, s.ClearRangeMarker(nil))
	assert.Equal(t, 0, s.Count())

	_, ok = s.Get(m.ID())
	assert.False(t, ok)
}

func TestStoreOrdering(t *testing.T) {
	s := NewStore()
	late := New(buffer.NewRange(10, 11))
	early := New(buffer.NewRange(2, 3))
	tie := New(buffer.NewRange(10, 12))

	s.AddRangeMarker(late)
	s.AddRangeMarker(early)
	s.AddRangeMarker(tie)

	assert.Equal(t, []*RangeMarker{early, late, tie}, s.Markers())
	assert.Equal(t, []*RangeMarker{late, tie}, s.MarkersInRange(buffer.NewRange(9, 11)))
	assert.Empty(t, s.MarkersInRange(buffer.NewRange(4, 9)))
}

func TestStoreMarkersOfTypeAndClear(t *testing.T) {
	s := NewStore()
	tip := New(buffer.NewRange(0, 1))
	tip.SetDisplayType(DisplayTooltip)
	s.AddRangeMarker(tip)
	s.AddRangeMarker(New(buffer.NewRange(1, 2)))

	assert.Equal(t, []*RangeMarker{tip}, s.MarkersOfType(DisplayTooltip))

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Markers())
}
