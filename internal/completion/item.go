package completion

// Kind classifies an item for display. It never affects filtering or order.
type Kind string

const (
	KindSignal   Kind = "signal"
	KindVariable Kind = "variable"
	KindFunction Kind = "function"
	KindKeyword  Kind = "keyword"
)

// Item is a single completion suggestion.
type Item struct {
	// Text is inserted when the item is accepted.
	Text string

	// Display is shown in the popup; usually equal to Text.
	Display string

	// Description is optional detail shown after Display.
	Description string

	// Kind is an informational tag.
	Kind Kind
}

// NewItem creates a signal item whose display is its text.
func NewItem(text string) Item {
	return Item{Text: text, Display: text, Kind: KindSignal}
}

// NewDetailedItem creates an item with explicit display metadata.
// An empty display falls back to text.
func NewDetailedItem(text, display, description string, kind Kind) Item {
	if display == "" {
		display = text
	}
	return Item{Text: text, Display: display, Description: description, Kind: kind}
}
