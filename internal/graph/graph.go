package graph

import (
	"log/slog"
	"reflect"

	"github.com/roach88/rdfstore/internal/index"
	"github.com/roach88/rdfstore/internal/node"
)

// Graph is an in-memory triple store.
//
// INVARIANTS:
//   - No duplicate triples; Assert of a present triple is a silent no-op
//   - No empty predicate or subject buckets remain after Unassert
//   - added/removed are non-nil only while a batch is open and observers were
//     registered when it opened
type Graph struct {
	registry  *node.Registry
	index     *index.Index
	observers []Observer
	logger    *slog.Logger

	batching bool
	added    *Graph
	removed  *Graph
}

// Option configures a Graph.
type Option func(*Graph)

// WithRegistry makes the graph intern through r instead of a private
// registry. Graphs that share a registry share node instances.
func WithRegistry(r *node.Registry) Option {
	return func(g *Graph) {
		if r != nil {
			g.registry = r
		}
	}
}

// WithLogger sets the logger used for debug diagnostics.
// Default: slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		index:  index.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.registry == nil {
		g.registry = node.NewRegistry()
	}
	return g
}

// Registry returns the registry the graph interns through.
func (g *Graph) Registry() *node.Registry { return g.registry }

// Resource is shorthand for g.Registry().Resource(uri).
func (g *Graph) Resource(uri string) *node.Node { return g.registry.Resource(uri) }

// Literal is shorthand for g.Registry().Literal(text).
func (g *Graph) Literal(text string) *node.Node { return g.registry.Literal(text) }

// Len returns the number of triples.
func (g *Graph) Len() int { return g.index.Len() }

// Assert inserts (subject, predicate, object). Asserting a present triple does
// nothing and notifies nobody. Subject and predicate must be resources; this is
// not checked.
func (g *Graph) Assert(subject, predicate, object *node.Node) {
	sk, pk := subject.Key(), predicate.Key()

	if _, ok := g.index.Subject(sk); !ok {
		g.index.AddSubject(subject)
	}
	if _, ok := g.index.Predicate(sk, pk); !ok {
		g.index.AddPredicate(sk, predicate)
	}
	if !g.index.AddObject(sk, pk, object) {
		return
	}

	for _, obs := range g.observers {
		obs.OnAssert(g, subject, predicate, object)
	}
	if g.added != nil {
		g.added.Assert(subject, predicate, object)
	}
}

// Unassert removes (subject, predicate, object) and any bucket left empty by
// the removal. Removing an absent triple does nothing.
func (g *Graph) Unassert(subject, predicate, object *node.Node) {
	sk, pk, obk := subject.Key(), predicate.Key(), object.Key()

	stored, found := g.index.Object(sk, pk, obk)
	if !found {
		return
	}
	g.index.RemoveObject(sk, pk, obk)
	if g.index.ObjectCount(sk, pk) == 0 {
		g.index.RemovePredicate(sk, pk)
		if g.index.PredicateCount(sk) == 0 {
			g.index.RemoveSubject(sk)
		}
	}

	for _, obs := range g.observers {
		obs.OnUnassert(g, subject, predicate, stored)
	}
	if g.removed != nil {
		g.removed.Assert(subject, predicate, stored)
	}
}

// AddObserver registers obs for notifications. A nil observer, or an interface
// wrapping a nil pointer, violates the Observer contract. Registering an
// observer that is already registered does nothing.
func (g *Graph) AddObserver(obs Observer) error {
	if obs == nil {
		return newContractError("observer is nil")
	}
	if v := reflect.ValueOf(obs); v.Kind() == reflect.Pointer && v.IsNil() {
		return newContractError("observer %T is a nil pointer", obs)
	}
	for _, existing := range g.observers {
		if sameObserver(existing, obs) {
			return nil
		}
	}
	g.observers = append(g.observers, obs)
	return nil
}

// RemoveObserver unregisters obs. Unknown observers are ignored.
func (g *Graph) RemoveObserver(obs Observer) {
	for i, existing := range g.observers {
		if sameObserver(existing, obs) {
			// Copy so an in-flight notification loop keeps its snapshot.
			next := make([]Observer, 0, len(g.observers)-1)
			next = append(next, g.observers[:i]...)
			next = append(next, g.observers[i+1:]...)
			g.observers = next
			return
		}
	}
}

// Observers returns the number of registered observers.
func (g *Graph) Observers() int { return len(g.observers) }

// Clone returns a graph with the same triples and registry and no observers.
// Batch state is not copied.
func (g *Graph) Clone() *Graph {
	c := New(WithRegistry(g.registry), WithLogger(g.logger))
	for _, t := range g.Triples() {
		c.Assert(t.Subject, t.Predicate, t.Object)
	}
	return c
}

// sameObserver compares observers without panicking on non-comparable
// dynamic types.
func sameObserver(a, b Observer) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
