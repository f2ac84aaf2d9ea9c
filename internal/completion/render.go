package completion

import "strings"

// RenderStyle controls how the candidate list is flattened into the text
// shown by the popup marker.
type RenderStyle struct {
	// SelectedPrefix starts the selected line.
	SelectedPrefix string

	// UnselectedPrefix starts every other line.
	UnselectedPrefix string

	// DescriptionSeparator joins Display and a non-empty Description.
	DescriptionSeparator string

	// LineSeparator joins lines. No separator follows the last line.
	LineSeparator string
}

// DefaultRenderStyle returns the "> " marker style.
func DefaultRenderStyle() RenderStyle {
	return RenderStyle{
		SelectedPrefix:       "> ",
		UnselectedPrefix:     "  ",
		DescriptionSeparator: " - ",
		LineSeparator:        "\n",
	}
}

// lineBreaks flattens line breaks inside a single candidate's text.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// RenderLines returns one line per item, in item order, without separators.
// Line breaks inside Display or Description become spaces, so line i
// always belongs to items[i].
func RenderLines(items []Item, selected int, style RenderStyle) []string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		var sb strings.Builder
		if i == selected {
			sb.WriteString(style.SelectedPrefix)
		} else {
			sb.WriteString(style.UnselectedPrefix)
		}
		sb.WriteString(lineBreaks.Replace(item.Display))
		if item.Description != "" {
			sb.WriteString(style.DescriptionSeparator)
			sb.WriteString(lineBreaks.Replace(item.Description))
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// Render builds the popup text for items with selected highlighted.
func Render(items []Item, selected int, style RenderStyle) string {
	return strings.Join(RenderLines(items, selected, style), style.LineSeparator)
}
