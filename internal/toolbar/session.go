package toolbar

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/dialog"
	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/markup"
	"github.com/dshills/richtextarea/internal/position"
)

// ClickEvent is a click travelling up the markup tree.
type ClickEvent struct {
	// Target is the element clicked.
	Target *html.Node
	// Current is the element whose listener runs.
	Current *html.Node

	stopped bool
}

// StopPropagation keeps the event from reaching ancestors and the
// document.
func (e *ClickEvent) StopPropagation() {
	e.stopped = true
}

// ClickFunc handles a click.
type ClickFunc func(ev *ClickEvent)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger sets the session logger.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGeometry sets the layout provider menus are positioned with.
func WithGeometry(g position.Geometry) SessionOption {
	return func(s *Session) {
		if g != nil {
			s.geometry = g
		}
	}
}

// WithContext sets the parent context of dialog waits.
func WithContext(ctx context.Context) SessionOption {
	return func(s *Session) {
		if ctx != nil {
			s.parent = ctx
		}
	}
}

// WithMenuGap sets the distance between a menu and its control.
func WithMenuGap(gap float64) SessionOption {
	return func(s *Session) {
		s.menuGap = gap
	}
}

// Session is one editing session: the engine, the listeners actions
// installed and the dialogs still awaiting an outcome.
type Session struct {
	mu sync.Mutex

	eng       engine.Engine
	listeners map[*html.Node][]ClickFunc
	document  []ClickFunc
	modals    []*dialog.Modal

	geometry position.Geometry
	menuGap  float64
	logger   *slog.Logger

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

// NewSession creates a session around eng.
func NewSession(eng engine.Engine, opts ...SessionOption) *Session {
	s := &Session{
		eng:       eng,
		listeners: make(map[*html.Node][]ClickFunc),
		geometry:  position.AttrGeometry{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		parent:    context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(s.parent)
	return s
}

// Engine returns the session's engine.
func (s *Session) Engine() engine.Engine { return s.eng }

// Logger returns the session logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// Geometry returns the layout provider.
func (s *Session) Geometry() position.Geometry { return s.geometry }

// MenuGap returns the distance between a menu and its control.
func (s *Session) MenuGap() float64 { return s.menuGap }

// Context returns the session context. It ends when the session closes.
func (s *Session) Context() context.Context { return s.ctx }

// OnClick registers fn for clicks on n or its descendants.
func (s *Session) OnClick(n *html.Node, fn ClickFunc) {
	if n == nil || fn == nil {
		return
	}
	s.listeners[n] = append(s.listeners[n], fn)
}

// OnDocumentClick registers fn for every click that is not stopped.
func (s *Session) OnDocumentClick(fn ClickFunc) {
	if fn != nil {
		s.document = append(s.document, fn)
	}
}

// Click dispatches a click on target. Listeners run innermost first, then
// the document listeners. While a modal dialog is open, clicks outside it
// are dropped.
func (s *Session) Click(target *html.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if m := s.blockingModal(target); m != nil {
		s.logger.Debug("click outside open dialog dropped",
			"target", markup.Describe(target),
			"dialog", markup.GetAttr(m.Node(), dialog.OpenerAttr))
		return nil
	}
	ev := &ClickEvent{Target: target}
	for n := target; n != nil && !ev.stopped; n = n.Parent {
		ev.Current = n
		for _, fn := range s.listeners[n] {
			fn(ev)
		}
	}
	if ev.stopped {
		return nil
	}
	ev.Current = nil
	for _, fn := range s.document {
		fn(ev)
	}
	return nil
}

// hold registers an open modal. Callers hold the session lock.
func (s *Session) hold(m *dialog.Modal) {
	if !slices.Contains(s.modals, m) {
		s.modals = append(s.modals, m)
	}
}

// release forgets a modal. Callers hold the session lock.
func (s *Session) release(m *dialog.Modal) {
	s.modals = slices.DeleteFunc(s.modals, func(x *dialog.Modal) bool { return x == m })
}

func (s *Session) blockingModal(target *html.Node) *dialog.Modal {
	for _, m := range s.modals {
		if m.IsOpen() && !markup.Contains(m.Node(), target) {
			return m
		}
	}
	return nil
}

// Do runs fn under the session lock. Hosts move the selection or edit
// through Do so engine events reach actions in order.
func (s *Session) Do(fn func(eng engine.Engine)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	fn(s.eng)
	return nil
}

// Await runs then with the outcome of req once it resolves, under the
// session lock. A session that closes first delivers OutcomeCancel.
func (s *Session) Await(req *dialog.Request, then func(dialog.Outcome)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		out, err := req.Wait(s.ctx)
		if err != nil {
			s.logger.Debug("dialog wait ended", "request", req.ID, "error", err)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.logger.Debug("dialog closed", "request", req.ID, "outcome", out)
		then(out)
	}()
}

// Wait blocks until every awaited dialog has closed and its continuation
// has run.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close ends the session. Open dialogs resolve as cancelled.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}
