package app

import (
	"errors"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/sigcomplete/internal/completion"
	"github.com/dshills/sigcomplete/internal/config"
	"github.com/dshills/sigcomplete/internal/engine/buffer"
	"github.com/dshills/sigcomplete/internal/input/key"
	"github.com/dshills/sigcomplete/internal/logger"
	"github.com/dshills/sigcomplete/internal/plugin/lua"
	"github.com/dshills/sigcomplete/internal/renderer/marker"
)

// Session is a single buffer being edited with completion attached.
//
// It detects trigger characters as they are typed, asks the registered
// providers for candidates, and applies the accepted candidate to the
// buffer. A Session is not safe for concurrent use; hosts drive it from
// one goroutine.
type Session struct {
	buf     *buffer.Buffer
	markers *marker.Store
	caret   buffer.ByteOffset

	prefix   *completion.PrefixProvider
	scripts  []*lua.Provider
	registry *completion.Registry
	ctrl     *completion.Controller

	// active holds the providers that opened the current popup.
	active         []completion.Provider
	replaceTrigger bool

	log    *logger.Logger
	closed bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithText sets the initial buffer contents. The caret is placed at the end.
func WithText(text string) Option {
	return func(s *Session) {
		s.buf = buffer.NewBufferFromString(text)
		s.caret = s.buf.Len()
	}
}

// NewSession creates a session configured by cfg. A nil cfg means
// config.Default(). Scripts that fail to load are reported as an error.
func NewSession(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Session{
		buf:     buffer.NewBuffer(),
		markers: marker.NewStore(),
		prefix:  completion.NewPrefixProvider(0),
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.apply(cfg); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// ApplyConfig replaces the catalogue, trigger, render style and scripts.
// An open popup is hidden. Scripts that fail to load are skipped and
// reported in the returned error; the rest of cfg is still applied.
func (s *Session) ApplyConfig(cfg *config.Config) error {
	if s.closed {
		return ErrClosed
	}
	err := s.apply(cfg)
	s.log.Info().
		Str("trigger", string(s.prefix.Trigger())).
		Int("signals", len(s.prefix.Signals())).
		Int("scripts", len(s.scripts)).
		Msg("configuration applied")
	return err
}

func (s *Session) apply(cfg *config.Config) error {
	s.log.SetLevel(cfg.LogLevel)

	if s.ctrl != nil {
		s.ctrl.Close()
	}
	s.active = nil
	s.ctrl = completion.NewController(s.markers,
		completion.WithLogger(s.log),
		completion.WithRenderStyle(cfg.RenderStyle()),
	)

	cfg.ApplySignals(s.prefix)
	s.replaceTrigger = cfg.Completion.ReplaceTrigger

	s.closeScripts()
	var errs []error
	for _, path := range cfg.Scripts {
		p, err := lua.LoadProvider(path, lua.WithLogger(s.log))
		if err != nil {
			errs = append(errs, NewOperationError("load script", path, err))
			continue
		}
		s.scripts = append(s.scripts, p)
	}
	s.rebuildRegistry()

	return errors.Join(errs...)
}

// ReloadScript re-runs a loaded script from disk.
func (s *Session) ReloadScript(path string) error {
	if s.closed {
		return ErrClosed
	}

	for i, old := range s.scripts {
		if old.Name() != path {
			continue
		}
		p, err := lua.LoadProvider(path, lua.WithLogger(s.log))
		if err != nil {
			return NewOperationError("reload script", path, err)
		}
		s.ctrl.Hide()
		s.active = nil
		_ = old.Close()
		s.scripts[i] = p
		s.rebuildRegistry()
		return nil
	}
	return NewOperationError("reload script", path, ErrProviderNotFound)
}

func (s *Session) rebuildRegistry() {
	s.registry = completion.NewRegistry(s.prefix)
	for _, p := range s.scripts {
		s.registry.Register(p)
	}
}

func (s *Session) closeScripts() {
	for _, p := range s.scripts {
		_ = p.Close()
	}
	s.scripts = nil
}

// Close hides the popup and releases script states.
func (s *Session) Close() {
	if s.closed {
		return
	}
	if s.ctrl != nil {
		s.ctrl.Close()
	}
	s.closeScripts()
	s.closed = true
}

// Buffer returns a read-only view of the text.
func (s *Session) Buffer() buffer.Reader { return s.buf }

// Text returns the buffer contents.
func (s *Session) Text() string { return s.buf.Text() }

// Caret returns the caret offset.
func (s *Session) Caret() buffer.ByteOffset { return s.caret }

// Markers returns the buffer's marker store.
func (s *Session) Markers() *marker.Store { return s.markers }

// Controller returns the completion controller.
func (s *Session) Controller() *completion.Controller { return s.ctrl }

// Registry returns the provider registry.
func (s *Session) Registry() *completion.Registry { return s.registry }

// Prefix returns the built-in signal provider.
func (s *Session) Prefix() *completion.PrefixProvider { return s.prefix }

// HandleKey applies one key event and reports whether it was consumed.
//
// While the popup is visible the controller sees the key first. Tab and
// Enter then insert the selected candidate over the text typed after the
// trigger (including the trigger itself when replace_trigger is set).
func (s *Session) HandleKey(ev key.Event) bool {
	if s.closed {
		return false
	}

	if s.ctrl.IsVisible() && s.ctrl.HandleKeyPress(ev.Key, ev.Modifiers) {
		if ev.Key == key.KeyTab || ev.Key == key.KeyEnter {
			s.accept()
		}
		if !s.ctrl.IsVisible() {
			s.active = nil
		}
		return true
	}

	switch {
	case ev.IsChar():
		s.typeRune(ev.Rune)
	case ev.IsModified():
		return false
	case ev.Key == key.KeyEnter:
		s.insert("\n")
		s.hide()
	case ev.Key == key.KeyTab:
		s.insert("\t")
		s.requery()
	case ev.Key == key.KeyBackspace:
		s.backspace()
	case ev.Key == key.KeyDelete:
		s.deleteForward()
	case ev.Key.IsCaretMotion(), ev.Key == key.KeyUp, ev.Key == key.KeyDown:
		s.moveCaret(ev.Key)
		s.hide()
	default:
		return false
	}
	return true
}

func (s *Session) typeRune(r rune) {
	pos := s.caret
	s.insert(string(r))

	if s.registry.IsTrigger(r) {
		if providers := s.registry.ProvidersFor(r, pos, s.buf); len(providers) > 0 {
			s.open(providers, pos)
			return
		}
	}
	s.requery()
}

// open starts a session for the trigger character at pos.
func (s *Session) open(providers []completion.Provider, pos buffer.ByteOffset) {
	items := completion.Merge(providers, s.buf.TextRange(pos, s.caret), s.caret, s.buf)
	if len(items) == 0 {
		s.hide()
		return
	}
	s.active = providers
	s.ctrl.Show(s.anchorFor(pos), items, pos)
}

// requery refreshes an open popup with the text typed since the trigger.
func (s *Session) requery() {
	if !s.ctrl.IsVisible() {
		return
	}
	trigger := s.ctrl.TriggerPosition()
	if s.caret <= trigger {
		s.hide()
		return
	}
	prefix := s.buf.TextRange(trigger, s.caret)
	s.ctrl.UpdateCompletions(completion.Merge(s.active, prefix, s.caret, s.buf))
	if !s.ctrl.IsVisible() {
		s.active = nil
	}
}

func (s *Session) accept() {
	item, ok := s.ctrl.SelectedItem()
	if !ok {
		return
	}

	start := s.ctrl.TriggerPosition() + 1
	if s.replaceTrigger {
		start = s.ctrl.TriggerPosition()
	}
	if start > s.caret {
		start = s.caret
	}

	end, err := s.buf.Replace(start, s.caret, item.Text)
	if err != nil {
		s.log.Warn().Err(err).Msg("accept failed")
	} else {
		s.caret = end
		s.log.Debug().Str("text", item.Text).Int64("caret", end).Msg("completion accepted")
	}
	s.hide()
}

func (s *Session) hide() {
	s.ctrl.Hide()
	s.active = nil
}

func (s *Session) insert(text string) {
	end, err := s.buf.Insert(s.caret, text)
	if err != nil {
		s.log.Warn().Err(err).Msg("insert failed")
		return
	}
	s.caret = end
}

func (s *Session) backspace() {
	_, size := s.buf.RuneBefore(s.caret)
	if size == 0 {
		return
	}
	start := s.caret - buffer.ByteOffset(size)
	if err := s.buf.Delete(start, s.caret); err != nil {
		s.log.Warn().Err(err).Msg("delete failed")
		return
	}
	s.caret = start
	s.requery()
}

func (s *Session) deleteForward() {
	_, size := s.buf.RuneAt(s.caret)
	if size == 0 {
		return
	}
	if err := s.buf.Delete(s.caret, s.caret+buffer.ByteOffset(size)); err != nil {
		s.log.Warn().Err(err).Msg("delete failed")
		return
	}
	s.requery()
}

func (s *Session) moveCaret(k key.Key) {
	pt := s.buf.OffsetToPoint(s.caret)

	switch k {
	case key.KeyLeft:
		if _, size := s.buf.RuneBefore(s.caret); size > 0 {
			s.caret -= buffer.ByteOffset(size)
		}
	case key.KeyRight:
		if _, size := s.buf.RuneAt(s.caret); size > 0 {
			s.caret += buffer.ByteOffset(size)
		}
	case key.KeyHome:
		s.caret = s.buf.LineStartOffset(pt.Line)
	case key.KeyEnd:
		s.caret = s.buf.LineEndOffset(pt.Line)
	case key.KeyUp:
		if pt.Line > 0 {
			s.caret = s.columnOn(pt.Line-1, pt.Column)
		}
	case key.KeyDown:
		if pt.Line+1 < s.buf.LineCount() {
			s.caret = s.columnOn(pt.Line+1, pt.Column)
		}
	}
}

// columnOn returns the offset of column on line, clamped to the line end
// and backed off to a rune boundary.
func (s *Session) columnOn(line, column uint32) buffer.ByteOffset {
	start := s.buf.LineStartOffset(line)
	end := s.buf.LineEndOffset(line)
	off := start + buffer.ByteOffset(column)
	if off > end {
		off = end
	}
	for off > start && off < end && !utf8.RuneStart(s.buf.TextRange(off, off+1)[0]) {
		off--
	}
	return off
}

// anchorFor returns the cell just below the trigger character.
func (s *Session) anchorFor(pos buffer.ByteOffset) marker.ScreenPoint {
	pt := s.buf.OffsetToPoint(pos)
	lineStart := s.buf.LineStartOffset(pt.Line)
	return marker.ScreenPoint{
		X: uniseg.StringWidth(s.buf.TextRange(lineStart, pos)),
		Y: int(pt.Line) + 1,
	}
}
