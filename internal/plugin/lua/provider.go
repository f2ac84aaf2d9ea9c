package lua

import (
	"fmt"
	"strings"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/sigcomplete/internal/completion"
	"github.com/dshills/sigcomplete/internal/engine/buffer"
	"github.com/dshills/sigcomplete/internal/logger"
)

// GlobalName is the global table a script must define.
const GlobalName = "provider"

// Provider adapts a Lua script to completion.Provider.
type Provider struct {
	state *State
	name  string
	log   *logger.Logger

	complete      lua.LValue
	shouldTrigger lua.LValue
	triggers      []rune
}

// ProviderOption configures a Provider.
type ProviderOption func(*providerConfig)

type providerConfig struct {
	log   *logger.Logger
	state []StateOption
}

// WithLogger sets the logger used for script failures.
func WithLogger(l *logger.Logger) ProviderOption {
	return func(c *providerConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithStateOptions passes options through to NewState.
func WithStateOptions(opts ...StateOption) ProviderOption {
	return func(c *providerConfig) {
		c.state = append(c.state, opts...)
	}
}

// LoadProvider runs the script at path and binds its provider table.
func LoadProvider(path string, opts ...ProviderOption) (*Provider, error) {
	return newProvider(path, func(s *State) error { return s.DoFile(path) }, opts)
}

// NewProviderFromString runs code and binds its provider table.
// name identifies the provider in logs.
func NewProviderFromString(name, code string, opts ...ProviderOption) (*Provider, error) {
	return newProvider(name, func(s *State) error { return s.DoString(code) }, opts)
}

func newProvider(name string, load func(*State) error, opts []ProviderOption) (*Provider, error) {
	cfg := providerConfig{log: logger.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}

	state := NewState(cfg.state...)
	if err := load(state); err != nil {
		_ = state.Close()
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}

	p, err := bind(state, name, cfg.log)
	if err != nil {
		_ = state.Close()
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return p, nil
}

func bind(state *State, name string, log *logger.Logger) (*Provider, error) {
	tbl, ok := state.GetGlobal(GlobalName).(*lua.LTable)
	if !ok {
		return nil, ErrNoProvider
	}

	p := &Provider{
		state:         state,
		name:          name,
		log:           log,
		complete:      tbl.RawGetString("complete"),
		shouldTrigger: tbl.RawGetString("should_trigger"),
	}
	if p.complete.Type() != lua.LTFunction {
		return nil, ErrNoComplete
	}
	if p.shouldTrigger.Type() != lua.LTFunction {
		p.shouldTrigger = lua.LNil
	}

	if triggers, ok := tbl.RawGetString("triggers").(*lua.LTable); ok {
		triggers.ForEach(func(_, v lua.LValue) {
			s, ok := v.(lua.LString)
			if !ok {
				return
			}
			if r, size := utf8.DecodeRuneInString(string(s)); size > 0 && size == len(s) {
				p.triggers = append(p.triggers, r)
			}
		})
	}

	return p, nil
}

// Name returns the script name or path.
func (p *Provider) Name() string {
	return p.name
}

// TriggerCharacters returns the characters listed in the script's triggers.
func (p *Provider) TriggerCharacters() []rune {
	return append([]rune(nil), p.triggers...)
}

// ShouldTrigger calls the script's should_trigger, or checks the
// trigger list when the script does not define one.
func (p *Provider) ShouldTrigger(trigger rune, pos buffer.ByteOffset, _ buffer.Reader) bool {
	if p.shouldTrigger == lua.LNil {
		for _, r := range p.triggers {
			if r == trigger {
				return true
			}
		}
		return false
	}

	ret, err := p.state.CallFunction(p.shouldTrigger, lua.LString(string(trigger)), lua.LNumber(pos))
	if err != nil {
		p.log.Warn().Str("script", p.name).Err(err).Msg("should_trigger failed")
		return false
	}
	return len(ret) > 0 && lua.LVAsBool(ret[0])
}

// Completions calls the script's complete function. Script errors are
// logged and produce no items.
func (p *Provider) Completions(prefix string, pos buffer.ByteOffset, buf buffer.Reader) []completion.Item {
	ret, err := p.state.CallFunction(p.complete, lua.LString(prefix), lua.LNumber(pos), lua.LString(lineBefore(buf, pos)))
	if err != nil {
		p.log.Warn().Str("script", p.name).Err(err).Msg("complete failed")
		return nil
	}
	if len(ret) == 0 {
		return nil
	}

	tbl, ok := ret[0].(*lua.LTable)
	if !ok {
		if ret[0] != lua.LNil {
			p.log.Warn().Str("script", p.name).Str("type", ret[0].Type().String()).Msg("complete returned a non-table")
		}
		return nil
	}

	var items []completion.Item
	for i := 1; i <= tbl.Len(); i++ {
		if item, ok := toItem(tbl.RawGetInt(i)); ok {
			items = append(items, item)
		}
	}
	return items
}

// Close releases the script's Lua state.
func (p *Provider) Close() error {
	return p.state.Close()
}

// toItem accepts a string or a {text, display, description, kind} table.
func toItem(v lua.LValue) (completion.Item, bool) {
	switch v := v.(type) {
	case lua.LString:
		if v == "" {
			return completion.Item{}, false
		}
		return completion.NewItem(string(v)), true
	case *lua.LTable:
		text := lua.LVAsString(v.RawGetString("text"))
		if text == "" {
			return completion.Item{}, false
		}
		kind := completion.Kind(lua.LVAsString(v.RawGetString("kind")))
		if kind == "" {
			kind = completion.KindSignal
		}
		return completion.NewDetailedItem(
			text,
			lua.LVAsString(v.RawGetString("display")),
			lua.LVAsString(v.RawGetString("description")),
			kind,
		), true
	}
	return completion.Item{}, false
}

// lineBefore returns the text from the start of pos's line up to pos.
func lineBefore(buf buffer.Reader, pos buffer.ByteOffset) string {
	if buf == nil {
		return ""
	}
	text := buf.TextRange(0, pos)
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		return text[i+1:]
	}
	return text
}

var _ completion.Provider = (*Provider)(nil)
