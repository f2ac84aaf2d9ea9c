package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/sigcomplete/internal/engine/buffer"
)

// lineStartProvider only activates at the start of a line.
type lineStartProvider struct {
	items []Item
}

func (p *lineStartProvider) ShouldTrigger(_ rune, pos buffer.ByteOffset, buf buffer.Reader) bool {
	return buf.OffsetToPoint(pos).Column == 0
}

func (p *lineStartProvider) TriggerCharacters() []rune { return []rune{'$', '`'} }

func (p *lineStartProvider) Completions(string, buffer.ByteOffset, buffer.Reader) []Item {
	return p.items
}

func TestRegistryTriggerCharacters(t *testing.T) {
	r := NewRegistry(newSignalProvider("clk"), nil, &lineStartProvider{})

	assert.Equal(t, 2, r.Len())
	assert.Len(t, r.Providers(), 2)
	assert.Equal(t, []rune{'$', '`'}, r.TriggerCharacters())
	assert.True(t, r.IsTrigger('`'))
	assert.False(t, r.IsTrigger('@'))
}

func TestRegistryProvidersFor(t *testing.T) {
	signals := newSignalProvider("clk", "clk_en")
	macros := &lineStartProvider{items: []Item{NewDetailedItem("define", "`define", "", KindKeyword)}}
	r := NewRegistry(signals, macros)

	buf := buffer.NewBufferFromString("x\n$")

	assert.Equal(t, []Provider{signals, macros}, r.ProvidersFor('$', 2, buf))
	assert.Equal(t, []Provider{signals}, r.ProvidersFor('$', 1, buf))
	assert.Equal(t, []Provider{macros}, r.ProvidersFor('`', 2, buf))
	assert.Empty(t, r.ProvidersFor('@', 2, buf))
}

func TestRegistryComplete(t *testing.T) {
	signals := newSignalProvider("clk", "clk_en", "reset")
	macros := &lineStartProvider{items: []Item{NewItem("celldefine")}}
	r := NewRegistry(signals, macros)
	buf := buffer.NewBufferFromString("$c")

	assert.Equal(t, []string{"clk", "clk_en", "celldefine"}, texts(r.Complete('$', "$c", 0, buf)))
	assert.Equal(t, []string{"clk", "clk_en"}, texts(r.Complete('$', "$c", 1, buf)))
	assert.Empty(t, r.Complete('#', "#c", 0, buf))
}
