package observe

import (
	"sync"

	"github.com/roach88/rdfstore/internal/graph"
	"github.com/roach88/rdfstore/internal/node"
)

// Recorder is a graph.Observer that keeps every notification in memory.
//
// Thread-safety: Recorder is safe for concurrent use via internal mutex, so
// one Recorder may observe several graphs.
type Recorder struct {
	mu     sync.Mutex
	clock  Sequencer
	tokens TokenGenerator
	events []Event

	batch   string // token of the open batch
	closing string // token of the batch whose inferred events are arriving
}

var _ graph.Observer = (*Recorder)(nil)

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithClock sets the sequence source.
// Default: NewClock()
func WithClock(c Sequencer) RecorderOption {
	return func(r *Recorder) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithTokens sets the batch token source.
// Default: UUIDv7Generator{}
func WithTokens(g TokenGenerator) RecorderOption {
	return func(r *Recorder) {
		if g != nil {
			r.tokens = g
		}
	}
}

// NewRecorder creates an empty recorder.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		clock:  NewClock(),
		tokens: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recorder) OnAssert(_ *graph.Graph, s, p, o *node.Node) {
	r.record(Event{Type: EventAssert, Subject: term(s), Predicate: term(p), Object: term(o)}, false)
}

func (r *Recorder) OnUnassert(_ *graph.Graph, s, p, o *node.Node) {
	r.record(Event{Type: EventUnassert, Subject: term(s), Predicate: term(p), Object: term(o)}, false)
}

func (r *Recorder) OnChange(_ *graph.Graph, s, p, oldObject, newObject *node.Node) {
	r.record(Event{
		Type:      EventChange,
		Subject:   term(s),
		Predicate: term(p),
		Object:    term(oldObject),
		Target:    term(newObject),
	}, true)
}

func (r *Recorder) OnMove(_ *graph.Graph, oldSubject, newSubject, p, o *node.Node) {
	r.record(Event{
		Type:      EventMove,
		Subject:   term(oldSubject),
		Predicate: term(p),
		Object:    term(o),
		Target:    term(newSubject),
	}, true)
}

func (r *Recorder) OnBatchBegin(*graph.Graph) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batch = r.tokens.Generate()
	r.closing = ""
	r.appendLocked(Event{Type: EventBatchBegin, Batch: r.batch})
}

func (r *Recorder) OnBatchEnd(*graph.Graph) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendLocked(Event{Type: EventBatchEnd, Batch: r.batch})
	r.closing, r.batch = r.batch, ""
}

func (r *Recorder) record(e Event, inferred bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.Batch = r.batch
	if inferred && e.Batch == "" {
		e.Batch = r.closing
	}
	r.appendLocked(e)
}

func (r *Recorder) appendLocked(e Event) {
	e.Seq = r.clock.Next()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events in arrival order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of type t were recorded.
func (r *Recorder) Count(t EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Reset discards recorded events. The clock and token source are kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.batch, r.closing = "", ""
}
