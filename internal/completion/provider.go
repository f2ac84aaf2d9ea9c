package completion

import "github.com/dshills/sigcomplete/internal/engine/buffer"

// Provider is a source of completions.
//
// Implementations must be synchronous and must not modify the buffer.
// An empty result means "no suggestions"; providers do not report errors.
type Provider interface {
	// ShouldTrigger reports whether typing trigger at pos should open a
	// completion session with this provider.
	ShouldTrigger(trigger rune, pos buffer.ByteOffset, buf buffer.Reader) bool

	// TriggerCharacters returns the characters this provider reacts to.
	TriggerCharacters() []rune

	// Completions returns suggestions for prefix, the text typed since the
	// session started (it may still carry the trigger character).
	Completions(prefix string, pos buffer.ByteOffset, buf buffer.Reader) []Item
}
