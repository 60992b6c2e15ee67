package doc

import (
	"sync"

	"github.com/dshills/richtextarea/internal/engine"
)

type handler struct {
	id int
	fn func()
}

// emitter dispatches editor events to registered handlers.
type emitter struct {
	mu       sync.Mutex
	nextID   int
	handlers map[engine.Event][]handler
}

func newEmitter() *emitter {
	return &emitter{handlers: make(map[engine.Event][]handler)}
}

func (em *emitter) on(ev engine.Event, fn func()) func() {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.nextID++
	id := em.nextID
	em.handlers[ev] = append(em.handlers[ev], handler{id: id, fn: fn})
	return func() {
		em.mu.Lock()
		defer em.mu.Unlock()
		hs := em.handlers[ev]
		for i, h := range hs {
			if h.id == id {
				em.handlers[ev] = append(hs[:i:i], hs[i+1:]...)
				return
			}
		}
	}
}

// emit calls the handlers registered for ev. Handlers may register or
// remove handlers; those changes apply from the next emit.
func (em *emitter) emit(ev engine.Event) {
	em.mu.Lock()
	hs := append([]handler(nil), em.handlers[ev]...)
	em.mu.Unlock()
	for _, h := range hs {
		h.fn()
	}
}
