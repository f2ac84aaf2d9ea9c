package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"

	"github.com/dshills/sigcomplete/internal/renderer/marker"
	"github.com/dshills/sigcomplete/internal/renderer/theme"
)

// selectedTint is how far the selected popup row leans toward the accent.
const selectedTint = 0.35

// Draw renders the buffer, caret and tooltip markers, then shows the screen.
func (t *Terminal) Draw() {
	th := t.currentTheme()
	base := styleFor(th, theme.Text, theme.Background)

	t.screen.SetStyle(base)
	t.screen.Clear()

	t.drawText(base)
	t.drawCaret()
	for _, m := range t.session.Markers().MarkersOfType(marker.DisplayTooltip) {
		t.drawTooltip(th, m)
	}

	t.screen.Show()
}

func (t *Terminal) drawText(style tcell.Style) {
	buf := t.session.Buffer()
	_, height := t.screen.Size()

	lines := strings.Split(buf.Text(), "\n")
	for y := 0; y < len(lines) && y < height; y++ {
		drawString(t.screen, 0, y, lines[y], style)
	}
}

func (t *Terminal) drawCaret() {
	buf := t.session.Buffer()
	caret := t.session.Caret()
	pt := buf.OffsetToPoint(caret)
	lineStart := caret - int64(pt.Column)
	t.screen.ShowCursor(uniseg.StringWidth(buf.TextRange(lineStart, caret)), int(pt.Line))
}

// drawTooltip draws a marker's description as a box at its anchor.
// The completion popup is drawn one row per candidate so the tinted row
// is always the selected one, whatever the configured line separator.
func (t *Terminal) drawTooltip(th *theme.Theme, m *marker.RangeMarker) {
	rows := strings.Split(m.Description(), "\n")
	sel := -1
	if ctrl := t.session.Controller(); ctrl.Marker() == m {
		rows = ctrl.Lines()
		sel = ctrl.SelectedIndex()
	}
	if len(rows) == 0 {
		return
	}

	width := 0
	for _, row := range rows {
		width = max(width, uniseg.StringWidth(row))
	}
	width += 2 // one cell of padding each side

	screenW, screenH := t.screen.Size()
	x, y := tooltipOrigin(m, len(rows))
	if x+width > screenW {
		x = max(0, screenW-width)
	}

	colors := m.Colors()
	plain := styleFor(th, colors.Text, colors.Background)
	selected := plain.Background(toTcell(th.Tint(colors.Background, colors.Accent, selectedTint)))

	for i, row := range rows {
		ry := y + i
		if ry < 0 || ry >= screenH {
			continue
		}
		style := plain
		if i == sel {
			style = selected
		}
		for cx := x; cx < x+width && cx < screenW; cx++ {
			t.screen.SetContent(cx, ry, ' ', nil, style)
		}
		drawString(t.screen, x+1, ry, row, style)
	}
}

// tooltipOrigin returns the top-left cell for a tooltip of n rows.
// The anchor is the cell just below the marked character.
func tooltipOrigin(m *marker.RangeMarker, n int) (x, y int) {
	a := m.Anchor()
	switch m.TooltipPos() {
	case marker.TooltipAboveLine:
		return a.X, a.Y - 1 - n
	case marker.TooltipRightLine:
		return a.X + 1, a.Y - 1
	default:
		return a.X, a.Y
	}
}

// drawString draws s one grapheme cluster at a time and returns the
// column after the last cell written.
func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	w, _ := screen.Size()
	state := -1
	for len(s) > 0 && x < w {
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		runes := []rune(cluster)
		if width == 0 {
			continue
		}
		if x >= 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += width
	}
	return x
}

func styleFor(th *theme.Theme, fg, bg theme.Color) tcell.Style {
	return tcell.StyleDefault.
		Foreground(toTcell(th.Get(fg))).
		Background(toTcell(th.Get(bg)))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
