// Package frontend runs a session in a terminal. A single loop owns the
// session: terminal events and config reload signals arrive on channels
// and are handled one at a time, with a redraw after each.
package frontend

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/spiral/internal/app"
	"github.com/dshills/spiral/internal/config"
	"github.com/dshills/spiral/internal/dispatcher/handlers/session"
)

// eventBuffer is the capacity of the terminal event channel.
const eventBuffer = 100

// Frontend connects a tcell screen to a session.
type Frontend struct {
	screen   tcell.Screen
	session  *app.Session
	renderer *Renderer
	watcher  *config.Watcher
	logger   *app.Logger
}

// Option configures a Frontend.
type Option func(*Frontend)

// WithWatcher reloads the config when w reports a change.
func WithWatcher(w *config.Watcher) Option {
	return func(f *Frontend) { f.watcher = w }
}

// WithTheme replaces the default theme.
func WithTheme(theme Theme) Option {
	return func(f *Frontend) { f.renderer.theme = theme }
}

// New creates a frontend. The screen must already be initialized; the
// caller finalizes it after Run returns.
func New(screen tcell.Screen, s *app.Session, opts ...Option) *Frontend {
	f := &Frontend{
		screen:   screen,
		session:  s,
		renderer: NewRenderer(screen, DefaultTheme(), s.Settings().Editor.TabWidth),
		logger:   s.Logger().WithComponent("frontend"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run handles events until the session quits, ctx is done or the
// screen stops delivering events.
func (f *Frontend) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	events := f.pollEvents(done)

	var reloads <-chan string
	var watchErrs <-chan error
	if f.watcher != nil {
		reloads = f.watcher.Events()
		watchErrs = f.watcher.Errors()
	}

	for !f.session.Done() {
		f.renderer.Render(f.session)

		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			f.handleEvent(ev)

		case path := <-reloads:
			f.logger.Info("config changed: %s", path)
			if err := f.session.Execute(session.ActionReloadConfig); err != nil {
				f.session.ReportError(err)
			}

		case err := <-watchErrs:
			f.session.ReportError(err)
		}
	}
	return nil
}

// pollEvents forwards screen events until the screen is finalized or
// done is closed.
func (f *Frontend) pollEvents(done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event, eventBuffer)
	go func() {
		defer close(events)
		for {
			// PollEvent returns nil once the screen is finalized.
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

func (f *Frontend) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, ok := KeyEvent(ev)
		if !ok {
			f.logger.Debug("unhandled key %s", ev.Name())
			return
		}
		// Failures are already on the message surface.
		_ = f.session.HandleKey(k)
	case *tcell.EventResize:
		f.screen.Sync()
	}
}
