package graph

import (
	"github.com/roach88/rdfstore/internal/node"
	"github.com/roach88/rdfstore/internal/ntriples"
)

// Triple is a materialized (subject, predicate, object) assertion.
type Triple struct {
	Subject   *node.Node
	Predicate *node.Node
	Object    *node.Node
}

// TripleKey is the structural identity of a triple, comparable across
// registries.
type TripleKey struct {
	Subject   node.Key
	Predicate node.Key
	Object    node.Key
}

// Key returns the structural identity of t.
func (t Triple) Key() TripleKey {
	return TripleKey{
		Subject:   t.Subject.Key(),
		Predicate: t.Predicate.Key(),
		Object:    t.Object.Key(),
	}
}

// String renders t as one serialized line.
func (t Triple) String() string {
	return ntriples.Format(t.Subject, t.Predicate, t.Object)
}
