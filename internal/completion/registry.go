package completion

import (
	"slices"

	"github.com/dshills/sigcomplete/internal/engine/buffer"
)

// Registry composes providers and dispatches by trigger character.
type Registry struct {
	providers []Provider
}

// NewRegistry creates a registry holding providers in the given order.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register appends a provider. Nil providers are ignored.
func (r *Registry) Register(p Provider) {
	if p == nil {
		return
	}
	r.providers = append(r.providers, p)
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []Provider {
	return append([]Provider(nil), r.providers...)
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	return len(r.providers)
}

// TriggerCharacters returns every provider's triggers, deduplicated, in
// registration order.
func (r *Registry) TriggerCharacters() []rune {
	var out []rune
	for _, p := range r.providers {
		for _, ch := range p.TriggerCharacters() {
			if !slices.Contains(out, ch) {
				out = append(out, ch)
			}
		}
	}
	return out
}

// IsTrigger reports whether any provider declares ch as a trigger.
func (r *Registry) IsTrigger(ch rune) bool {
	for _, p := range r.providers {
		if slices.Contains(p.TriggerCharacters(), ch) {
			return true
		}
	}
	return false
}

// ProvidersFor returns the providers that declare trigger and agree to
// activate for it at pos.
func (r *Registry) ProvidersFor(trigger rune, pos buffer.ByteOffset, buf buffer.Reader) []Provider {
	var out []Provider
	for _, p := range r.providers {
		if !slices.Contains(p.TriggerCharacters(), trigger) {
			continue
		}
		if p.ShouldTrigger(trigger, pos, buf) {
			out = append(out, p)
		}
	}
	return out
}

// Complete queries every provider active for trigger and concatenates
// their results in registration order.
func (r *Registry) Complete(trigger rune, prefix string, pos buffer.ByteOffset, buf buffer.Reader) []Item {
	return Merge(r.ProvidersFor(trigger, pos, buf), prefix, pos, buf)
}

// Merge queries providers in order and concatenates their results.
func Merge(providers []Provider, prefix string, pos buffer.ByteOffset, buf buffer.Reader) []Item {
	var out []Item
	for _, p := range providers {
		out = append(out, p.Completions(prefix, pos, buf)...)
	}
	return out
}
