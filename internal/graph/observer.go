package graph

import "github.com/roach88/rdfstore/internal/node"

// Observer receives change notifications from a Graph.
//
// Notifications are delivered synchronously, in registration order, on the
// goroutine that mutated the graph. An observer must not mutate the graph that
// is notifying it while a batch diff is being delivered; see Graph.BatchEnd.
type Observer interface {
	// OnAssert fires after a triple is first inserted.
	OnAssert(g *Graph, subject, predicate, object *node.Node)

	// OnUnassert fires after an existing triple is removed.
	OnUnassert(g *Graph, subject, predicate, object *node.Node)

	// OnChange fires at batch end when (subject, predicate) lost oldObject and
	// gained newObject within the batch.
	OnChange(g *Graph, subject, predicate, oldObject, newObject *node.Node)

	// OnMove fires at batch end when (predicate, object) left oldSubject and
	// attached to newSubject within the batch.
	OnMove(g *Graph, oldSubject, newSubject, predicate, object *node.Node)

	// OnBatchBegin fires when a batch opens.
	OnBatchBegin(g *Graph)

	// OnBatchEnd fires when a batch closes, before any inferred events.
	OnBatchEnd(g *Graph)
}

// NopObserver implements Observer with empty methods. Embed it to implement
// only the notifications of interest.
type NopObserver struct{}

func (NopObserver) OnAssert(*Graph, *node.Node, *node.Node, *node.Node)             {}
func (NopObserver) OnUnassert(*Graph, *node.Node, *node.Node, *node.Node)           {}
func (NopObserver) OnChange(*Graph, *node.Node, *node.Node, *node.Node, *node.Node) {}
func (NopObserver) OnMove(*Graph, *node.Node, *node.Node, *node.Node, *node.Node)   {}
func (NopObserver) OnBatchBegin(*Graph)                                             {}
func (NopObserver) OnBatchEnd(*Graph)                                               {}

var _ Observer = NopObserver{}
