package protocol

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Emitter serializes events from any number of producers onto one
// writer, one JSON object per line. A single consumer goroutine owns
// the writer, so interleaved emissions can never corrupt a line: the
// stream drainers send structured events into the channel and only the
// consumer writes.
type Emitter struct {
	ch     chan Event
	done   chan struct{}
	closed sync.Once
}

// NewEmitter starts an emitter writing to w. Call Close to flush and
// stop it; events emitted after Close are dropped.
func NewEmitter(w io.Writer) *Emitter {
	e := &Emitter{
		ch:   make(chan Event, 64),
		done: make(chan struct{}),
	}
	go e.run(w)
	return e
}

func (e *Emitter) run(w io.Writer) {
	defer close(e.done)
	for ev := range e.ch {
		data, err := json.Marshal(ev)
		if err != nil {
			// Event types are plain structs; this cannot happen for
			// any event this package constructs.
			continue
		}
		fmt.Fprintf(w, "%s\n", data)
	}
}

// Emit queues one event for writing. Safe for concurrent use.
func (e *Emitter) Emit(ev Event) {
	defer func() {
		// Drop events racing a Close instead of panicking the drainer.
		_ = recover()
	}()
	e.ch <- ev
}

// Close stops accepting events and blocks until every queued event has
// been written.
func (e *Emitter) Close() {
	e.closed.Do(func() {
		close(e.ch)
	})
	<-e.done
}
