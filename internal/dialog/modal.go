package dialog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/markup"
)

// OpenerAttr links a dialog to the control that opens it.
const OpenerAttr = "richtext-opener"

// Outcome is how a dialog invocation ended.
type Outcome int

const (
	OutcomeCancel Outcome = iota
	OutcomeSave
	OutcomeRemove
)

// String returns the close return value of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSave:
		return "save"
	case OutcomeRemove:
		return "remove"
	default:
		return "cancel"
	}
}

// ParseOutcome maps a close return value to an outcome.
func ParseOutcome(returnValue string) Outcome {
	switch returnValue {
	case "save":
		return OutcomeSave
	case "remove":
		return OutcomeRemove
	default:
		return OutcomeCancel
	}
}

// Request is one invocation of a dialog. It resolves once.
type Request struct {
	ID uuid.UUID

	once    sync.Once
	done    chan struct{}
	outcome Outcome
}

func newRequest() *Request {
	return &Request{ID: uuid.New(), done: make(chan struct{})}
}

func (r *Request) resolve(o Outcome) {
	r.once.Do(func() {
		r.outcome = o
		close(r.done)
	})
}

// Done is closed when the request resolves.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the dialog closes or ctx ends. When ctx ends first it
// returns OutcomeCancel and the context error.
func (r *Request) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-r.done:
		return r.outcome, nil
	case <-ctx.Done():
		return OutcomeCancel, ctx.Err()
	}
}

// Modal is a <dialog> element holding a dialog form.
type Modal struct {
	mu          sync.Mutex
	node        *html.Node
	form        *Form
	open        bool
	returnValue string
	req         *Request
}

// Find locates the dialog opened by opener below root.
func Find(root *html.Node, opener string) (*Modal, error) {
	n := markup.Find(root, markup.All(markup.Tag("dialog"), markup.AttrEquals(OpenerAttr, opener)))
	if n == nil {
		return nil, fmt.Errorf("%w %q", ErrNoDialog, opener)
	}
	return New(n)
}

// New wraps a <dialog> element.
func New(n *html.Node) (*Modal, error) {
	form := markup.Find(n, markup.All(markup.Tag("form"), markup.AttrEquals("method", "dialog")))
	if form == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoForm, markup.Describe(n))
	}
	return &Modal{node: n, form: ParseForm(form), open: markup.HasAttr(n, "open")}, nil
}

// Node returns the <dialog> element.
func (m *Modal) Node() *html.Node {
	return m.node
}

// Form returns the dialog form.
func (m *Modal) Form() *Form {
	return m.form
}

// IsOpen reports whether the dialog is showing.
func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// ReturnValue returns the value of the last close.
func (m *Modal) ReturnValue() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.returnValue
}

// Show opens the dialog modally and returns the request that resolves
// when it closes.
func (m *Modal) Show() (*Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open {
		return nil, ErrAlreadyOpen
	}
	m.open = true
	m.returnValue = ""
	m.req = newRequest()
	markup.SetAttr(m.node, "open", "")
	return m.req, nil
}

// Close hides the dialog with returnValue and resolves the pending
// request. It reports false when the dialog was not open.
func (m *Modal) Close(returnValue string) bool {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return false
	}
	m.open = false
	m.returnValue = returnValue
	req := m.req
	m.req = nil
	markup.RemoveAttr(m.node, "open")
	m.mu.Unlock()

	if req != nil {
		req.resolve(ParseOutcome(returnValue))
	}
	return true
}
