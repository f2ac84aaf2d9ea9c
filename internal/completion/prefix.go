package completion

import (
	"sort"
	"strings"

	"github.com/dshills/sigcomplete/internal/engine/buffer"
)

// DefaultTrigger is the trigger character PrefixProvider uses by default.
const DefaultTrigger = '$'

// PrefixProvider completes from an in-memory catalogue of signal names.
//
// Matching is a case-insensitive "starts with" on Item.Text. Results are
// ranked by text length, then byte-wise, so the same query always yields
// the same order.
type PrefixProvider struct {
	trigger rune
	signals []Item

	// folded[i] is Fold(signals[i].Text).
	folded []string
}

var _ Provider = (*PrefixProvider)(nil)

// NewPrefixProvider creates an empty provider triggered by trigger.
// A zero trigger selects DefaultTrigger.
func NewPrefixProvider(trigger rune) *PrefixProvider {
	if trigger == 0 {
		trigger = DefaultTrigger
	}
	return &PrefixProvider{trigger: trigger}
}

// Trigger returns the configured trigger character.
func (p *PrefixProvider) Trigger() rune {
	return p.trigger
}

// SetTriggerCharacter changes the trigger character. Zero is ignored.
func (p *PrefixProvider) SetTriggerCharacter(trigger rune) {
	if trigger != 0 {
		p.trigger = trigger
	}
}

// SetSignalList replaces the catalogue.
func (p *PrefixProvider) SetSignalList(signals []string) {
	p.signals = make([]Item, 0, len(signals))
	p.folded = make([]string, 0, len(signals))
	for _, s := range signals {
		p.add(NewItem(s))
	}
}

// AddSignal appends one signal to the catalogue.
func (p *PrefixProvider) AddSignal(signal, description string) {
	p.add(NewDetailedItem(signal, signal, description, KindSignal))
}

func (p *PrefixProvider) add(item Item) {
	p.signals = append(p.signals, item)
	p.folded = append(p.folded, Fold(item.Text))
}

// ClearSignals empties the catalogue.
func (p *PrefixProvider) ClearSignals() {
	p.signals = nil
	p.folded = nil
}

// Signals returns a copy of the catalogue in insertion order.
func (p *PrefixProvider) Signals() []Item {
	return append([]Item(nil), p.signals...)
}

// ShouldTrigger reports whether trigger is the configured character.
func (p *PrefixProvider) ShouldTrigger(trigger rune, _ buffer.ByteOffset, _ buffer.Reader) bool {
	return trigger == p.trigger
}

// TriggerCharacters returns the single configured trigger.
func (p *PrefixProvider) TriggerCharacters() []rune {
	return []rune{p.trigger}
}

// Completions filters the catalogue by prefix.
//
// One leading trigger character is stripped from prefix before matching.
// An empty remainder returns the whole catalogue in insertion order.
func (p *PrefixProvider) Completions(prefix string, _ buffer.ByteOffset, _ buffer.Reader) []Item {
	search, _ := strings.CutPrefix(prefix, string(p.trigger))
	return p.filterByPrefix(search)
}

func (p *PrefixProvider) filterByPrefix(prefix string) []Item {
	if prefix == "" {
		return p.Signals()
	}

	folded := Fold(prefix)
	var results []Item
	for i, item := range p.signals {
		if strings.HasPrefix(p.folded[i], folded) {
			results = append(results, item)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Text, results[j].Text
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return results
}
