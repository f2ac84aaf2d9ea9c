// Package terminal runs an editing session on a tcell screen.
//
// All session state is touched only from the Run loop. Other goroutines,
// such as the config watcher, hand work to the loop with Post.
package terminal

import (
	"context"
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/sigcomplete/internal/app"
	"github.com/dshills/sigcomplete/internal/logger"
	"github.com/dshills/sigcomplete/internal/renderer/theme"
)

// ErrNotRunning is returned by Post when the loop has exited.
var ErrNotRunning = errors.New("terminal loop not running")

// quitRequest is posted to stop the loop.
type quitRequest struct{}

// Terminal draws a session and feeds it key events.
type Terminal struct {
	screen  tcell.Screen
	session *app.Session
	log     *logger.Logger

	mu    sync.Mutex
	theme *theme.Theme
	done  bool
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(t *Terminal) {
		if l != nil {
			t.log = l
		}
	}
}

// WithTheme sets the colour theme. A nil theme is ignored.
func WithTheme(th *theme.Theme) Option {
	return func(t *Terminal) {
		if th != nil {
			t.theme = th
		}
	}
}

// New creates a terminal for session on an initialized screen.
func New(screen tcell.Screen, session *app.Session, opts ...Option) *Terminal {
	t := &Terminal{
		screen:  screen,
		session: session,
		log:     logger.Discard(),
		theme:   theme.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetTheme replaces the theme used by subsequent draws.
func (t *Terminal) SetTheme(th *theme.Theme) {
	if th == nil {
		return
	}
	t.mu.Lock()
	t.theme = th
	t.mu.Unlock()
}

func (t *Terminal) currentTheme() *theme.Theme {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.theme
}

// Post queues fn to run on the loop goroutine, followed by a redraw.
func (t *Terminal) Post(fn func()) error {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done {
		return ErrNotRunning
	}
	return t.screen.PostEvent(tcell.NewEventInterrupt(fn))
}

// Run draws the session and processes events until Ctrl+C, Ctrl+Q,
// ctx cancellation, or the screen is finalized.
func (t *Terminal) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(quitRequest{}))
	})
	defer stop()
	defer func() {
		t.mu.Lock()
		t.done = true
		t.mu.Unlock()
	}()

	t.Draw()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			if isQuit(e) {
				return nil
			}
			if k, ok := ConvertKey(e); ok {
				t.session.HandleKey(k)
				t.log.Debug().Str("key", k.String()).Int64("caret", t.session.Caret()).Msg("key")
			}

		case *tcell.EventResize:
			t.screen.Sync()

		case *tcell.EventInterrupt:
			switch data := e.Data().(type) {
			case quitRequest:
				return nil
			case func():
				data()
			}
		}

		t.Draw()
	}
}
