package completion

import (
	"github.com/dshills/sigcomplete/internal/engine/buffer"
	"github.com/dshills/sigcomplete/internal/input/key"
	"github.com/dshills/sigcomplete/internal/logger"
	"github.com/dshills/sigcomplete/internal/renderer/marker"
	"github.com/dshills/sigcomplete/internal/renderer/theme"
)

// MarkerName is the name given to the popup marker.
const MarkerName = "Completions"

// MarkerHost registers and unregisters markers on behalf of a buffer.
// marker.Store implements it.
type MarkerHost interface {
	AddRangeMarker(m *marker.RangeMarker)
	ClearRangeMarker(m *marker.RangeMarker) bool
}

// markerLease owns the popup marker for one session. release unregisters
// it from the host at most once.
type markerLease struct {
	host   MarkerHost
	marker *marker.RangeMarker
}

func acquireMarker(host MarkerHost, m *marker.RangeMarker) *markerLease {
	host.AddRangeMarker(m)
	return &markerLease{host: host, marker: m}
}

func (l *markerLease) release() {
	if l == nil || l.marker == nil {
		return
	}
	l.host.ClearRangeMarker(l.marker)
	l.marker = nil
}

// Controller drives the completion popup.
//
// It is Hidden until Show receives a non-empty list, and returns to Hidden
// on Hide, Escape, or when the list becomes empty. While Visible it holds
// one tooltip marker anchored at the trigger position and keeps the
// selection inside the candidate list, wrapping at both ends.
type Controller struct {
	host   MarkerHost
	log    *logger.Logger
	style  RenderStyle
	colors marker.Colors

	visible  bool
	items    []Item
	selected int
	trigger  buffer.ByteOffset
	anchor   marker.ScreenPoint
	lease    *markerLease
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for session tracing.
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRenderStyle sets how candidates are rendered into the marker.
func WithRenderStyle(s RenderStyle) Option {
	return func(c *Controller) {
		c.style = s
	}
}

// WithColors sets the popup marker's colour roles.
func WithColors(colors marker.Colors) Option {
	return func(c *Controller) {
		c.colors = colors
	}
}

// NewController creates a hidden controller whose popup markers are
// registered with host.
func NewController(host MarkerHost, opts ...Option) *Controller {
	c := &Controller{
		host:  host,
		log:   logger.Discard(),
		style: DefaultRenderStyle(),
		colors: marker.Colors{
			Background: theme.Background,
			Text:       theme.Text,
			Accent:     theme.Info,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show opens the popup with items, anchored at the trigger position.
// An empty list hides the popup instead.
func (c *Controller) Show(anchor marker.ScreenPoint, items []Item, trigger buffer.ByteOffset) {
	if len(items) == 0 {
		c.Hide()
		return
	}

	// A session restarted while visible must not leave its old marker behind.
	c.lease.release()
	c.lease = nil

	c.items = append([]Item(nil), items...)
	c.trigger = trigger
	c.anchor = anchor
	c.selected = 0
	c.visible = true

	c.createMarker()

	c.log.Debug().
		Int64("trigger", trigger).
		Int("candidates", len(c.items)).
		Msg("completion shown")
}

func (c *Controller) createMarker() {
	m := marker.New(buffer.NewRange(c.trigger, c.trigger+1))
	m.SetDisplayType(marker.DisplayTooltip)
	m.SetTooltipPos(marker.TooltipBelowLine)
	m.SetName(MarkerName)
	m.SetAnchor(c.anchor)
	m.SetColors(c.colors.Background, c.colors.Text, c.colors.Accent)
	m.SetDescription(c.render())
	c.lease = acquireMarker(c.host, m)
}

// Hide closes the popup and releases its marker. Hiding a hidden
// controller is a no-op.
func (c *Controller) Hide() {
	wasVisible := c.visible

	c.lease.release()
	c.lease = nil
	c.visible = false
	c.items = nil
	c.selected = 0

	if wasVisible {
		c.log.Debug().Int64("trigger", c.trigger).Msg("completion hidden")
	}
}

// Close hides the popup. Call it when the controller's owner goes away.
func (c *Controller) Close() {
	c.Hide()
}

// IsVisible reports whether the popup is showing.
func (c *Controller) IsVisible() bool {
	return c.visible
}

// UpdateCompletions replaces the candidates after the prefix changed.
// It does nothing while hidden and hides the popup when items is empty.
func (c *Controller) UpdateCompletions(items []Item) {
	if !c.visible {
		return
	}

	c.items = append([]Item(nil), items...)
	c.clampSelection()

	if len(c.items) == 0 {
		c.Hide()
		return
	}

	c.refresh()
	c.log.Debug().Int("candidates", len(c.items)).Int("selected", c.selected).Msg("completion updated")
}

// HandleKeyPress applies a navigation key to the popup.
//
// Up and Down move the selection, Escape hides, and Tab or Enter report
// acceptance: the caller inserts SelectedItem and hides. Any other key,
// or any key while hidden, is left unhandled. Modifiers are not
// interpreted.
func (c *Controller) HandleKeyPress(k key.Key, _ key.Modifier) bool {
	if !c.visible || len(c.items) == 0 {
		return false
	}

	switch k {
	case key.KeyUp:
		c.selectPrevious()
		return true
	case key.KeyDown:
		c.selectNext()
		return true
	case key.KeyTab, key.KeyEnter:
		return true
	case key.KeyEscape:
		c.Hide()
		return true
	default:
		return false
	}
}

// SelectedItem returns the highlighted candidate. ok is false while hidden.
func (c *Controller) SelectedItem() (item Item, ok bool) {
	if !c.visible || c.selected < 0 || c.selected >= len(c.items) {
		return Item{}, false
	}
	return c.items[c.selected], true
}

// SelectedIndex returns the selection index; 0 while hidden.
func (c *Controller) SelectedIndex() int {
	return c.selected
}

// Candidates returns a copy of the candidate list in display order.
func (c *Controller) Candidates() []Item {
	return append([]Item(nil), c.items...)
}

// TriggerPosition returns where the current session was triggered.
func (c *Controller) TriggerPosition() buffer.ByteOffset {
	return c.trigger
}

// Anchor returns the screen anchor the current session was shown at.
func (c *Controller) Anchor() marker.ScreenPoint {
	return c.anchor
}

// Marker returns the live popup marker, or nil while hidden.
func (c *Controller) Marker() *marker.RangeMarker {
	if c.lease == nil {
		return nil
	}
	return c.lease.marker
}

// Text returns the rendered popup text for the current state.
func (c *Controller) Text() string {
	if !c.visible {
		return ""
	}
	return c.render()
}

// Lines returns the popup text split per candidate, aligned with
// Candidates and SelectedIndex. It is nil while hidden.
func (c *Controller) Lines() []string {
	if !c.visible {
		return nil
	}
	return RenderLines(c.items, c.selected, c.style)
}

func (c *Controller) selectPrevious() {
	c.selected--
	c.clampSelection()
	c.refresh()
}

func (c *Controller) selectNext() {
	c.selected++
	c.clampSelection()
	c.refresh()
}

// clampSelection wraps an out-of-range selection to the opposite end.
func (c *Controller) clampSelection() {
	n := len(c.items)
	switch {
	case n == 0:
		c.selected = 0
	case c.selected < 0:
		c.selected = n - 1
	case c.selected >= n:
		c.selected = 0
	}
}

func (c *Controller) refresh() {
	if m := c.Marker(); m != nil {
		m.SetDescription(c.render())
	}
}

func (c *Controller) render() string {
	return Render(c.items, c.selected, c.style)
}
