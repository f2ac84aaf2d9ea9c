// Package theme maps semantic colour roles to concrete colours.
package theme

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownColor is returned when a colour role name is not recognized.
var ErrUnknownColor = errors.New("unknown theme color")

// Color identifies a semantic colour role. Markers reference roles, never
// concrete colours; the host theme resolves them at draw time.
type Color uint8

const (
	Background Color = iota
	Text
	TextDim
	Info
	Highlight
	Warning
	Error

	colorCount
)

var colorNames = [...]string{
	Background: "background",
	Text:       "text",
	TextDim:    "text_dim",
	Info:       "info",
	Highlight:  "highlight",
	Warning:    "warning",
	Error:      "error",
}

// String returns the configuration name of the role.
func (c Color) String() string {
	if c < colorCount {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", c)
}

// ColorFromName returns the role for a configuration name (case-insensitive).
func ColorFromName(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

// Theme resolves colour roles.
type Theme struct {
	colors [colorCount]colorful.Color
}

// Default returns a dark theme.
func Default() *Theme {
	t := &Theme{}
	defaults := map[Color]string{
		Background: "#1e1e2e",
		Text:       "#cdd6f4",
		TextDim:    "#7f849c",
		Info:       "#89b4fa",
		Highlight:  "#f9e2af",
		Warning:    "#fab387",
		Error:      "#f38ba8",
	}
	for role, hex := range defaults {
		c, _ := colorful.Hex(hex)
		t.colors[role] = c
	}
	return t
}

// Set assigns a hex colour ("#rrggbb") to a role.
func (t *Theme) Set(role Color, hex string) error {
	if role >= colorCount {
		return fmt.Errorf("%w: %s", ErrUnknownColor, role)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("theme %s: %w", role, err)
	}
	t.colors[role] = c
	return nil
}

// SetAll applies a name→hex map, such as the [theme] config section.
// Names are applied in sorted order, so the first error is deterministic.
func (t *Theme) SetAll(colors map[string]string) error {
	for _, name := range slices.Sorted(maps.Keys(colors)) {
		hex := colors[name]
		role, err := ColorFromName(name)
		if err != nil {
			return err
		}
		if err := t.Set(role, hex); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the colour for a role.
func (t *Theme) Get(role Color) colorful.Color {
	if role >= colorCount {
		return t.colors[Text]
	}
	return t.colors[role]
}

// RGB returns the 8-bit components of a role's colour.
func (t *Theme) RGB(role Color) (r, g, b uint8) {
	return t.Get(role).RGB255()
}

// Hex returns the "#rrggbb" form of a role's colour.
func (t *Theme) Hex(role Color) string {
	return t.Get(role).Hex()
}

// Tint blends accent into base by amount (0..1) in Lab space.
// Used for the selected row of a popup.
func (t *Theme) Tint(base, accent Color, amount float64) colorful.Color {
	return t.Get(base).BlendLab(t.Get(accent), amount).Clamped()
}
