package graph

import "github.com/roach88/rdfstore/internal/node"

// BatchBegin opens a batch. It does nothing if a batch is already open.
// Shadow graphs are allocated, and OnBatchBegin fired, only when observers are
// registered.
func (g *Graph) BatchBegin() {
	if g.batching {
		return
	}
	g.batching = true
	if len(g.observers) == 0 {
		return
	}

	g.added = g.shadow()
	g.removed = g.shadow()
	for _, obs := range g.observers {
		obs.OnBatchBegin(g)
	}
	g.logger.Debug("batch opened", "observers", len(g.observers))
}

// BatchEnd closes the open batch, fires OnBatchEnd and then delivers the
// OnMove and OnChange events inferred from the batch. It does nothing if no
// batch is open. A batch opened while no observers were registered closes
// silently: observers added during it never see OnBatchBegin, so they get no
// OnBatchEnd either.
//
// The shadow graphs are detached before any observer runs. Mutations made by
// observers from inside these callbacks are applied as ordinary unbatched
// mutations and never feed into the diff being delivered.
func (g *Graph) BatchEnd() {
	if !g.batching {
		return
	}
	added, removed := g.added, g.removed
	g.batching = false
	g.added, g.removed = nil, nil

	if added == nil {
		return
	}

	observers := g.observers
	for _, obs := range observers {
		obs.OnBatchEnd(g)
	}

	if added.Len() == 0 && removed.Len() == 0 {
		return
	}
	moves, changes := g.diff(observers, added, removed)
	g.logger.Debug("batch closed",
		"added", added.Len(),
		"removed", removed.Len(),
		"moves", moves,
		"changes", changes,
	)
}

// InBatch reports whether a batch is open.
func (g *Graph) InBatch() bool { return g.batching }

// diff infers move and change events for every removed triple. The two checks
// are independent: one removed triple may yield a move, a change, both or
// neither.
func (g *Graph) diff(observers []Observer, added, removed *Graph) (moves, changes int) {
	for _, t := range removed.Triples() {
		if to := added.movedTo(t); to != nil {
			moves++
			for _, obs := range observers {
				obs.OnMove(g, t.Subject, to, t.Predicate, t.Object)
			}
		}
		if to := added.changedTo(t); to != nil {
			changes++
			for _, obs := range observers {
				obs.OnChange(g, t.Subject, t.Predicate, t.Object, to)
			}
		}
	}
	return moves, changes
}

// movedTo returns some subject other than t.Subject holding (t.Predicate,
// t.Object), or nil.
func (g *Graph) movedTo(t Triple) *node.Node {
	sk, pk, obk := t.Subject.Key(), t.Predicate.Key(), t.Object.Key()
	for _, s := range g.index.Subjects() {
		if s.Key() == sk {
			continue
		}
		if _, ok := g.index.Object(s.Key(), pk, obk); ok {
			return s
		}
	}
	return nil
}

// changedTo returns some object other than t.Object held by (t.Subject,
// t.Predicate), or nil.
func (g *Graph) changedTo(t Triple) *node.Node {
	obk := t.Object.Key()
	for _, o := range g.index.Objects(t.Subject.Key(), t.Predicate.Key()) {
		if o.Key() != obk {
			return o
		}
	}
	return nil
}

func (g *Graph) shadow() *Graph {
	return New(WithRegistry(g.registry), WithLogger(g.logger))
}
