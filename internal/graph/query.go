package graph

import "github.com/roach88/rdfstore/internal/node"

// HasAssertion reports whether (subject, predicate, object) is present.
func (g *Graph) HasAssertion(subject, predicate, object *node.Node) bool {
	_, ok := g.index.Object(subject.Key(), predicate.Key(), object.Key())
	return ok
}

// HasObject reports whether subject has at least one object for predicate.
func (g *Graph) HasObject(subject, predicate *node.Node) bool {
	return g.index.ObjectCount(subject.Key(), predicate.Key()) > 0
}

// HasSubject reports whether some subject relates to object via predicate.
func (g *Graph) HasSubject(predicate, object *node.Node) bool {
	pk, obk := predicate.Key(), object.Key()
	for _, s := range g.index.Subjects() {
		if _, found := g.index.Object(s.Key(), pk, obk); found {
			return true
		}
	}
	return false
}

// Object returns an arbitrary object of (subject, predicate), or nil.
func (g *Graph) Object(subject, predicate *node.Node) *node.Node {
	objects := g.index.Objects(subject.Key(), predicate.Key())
	if len(objects) == 0 {
		return nil
	}
	return objects[0]
}

// Objects returns all objects of (subject, predicate).
func (g *Graph) Objects(subject, predicate *node.Node) []*node.Node {
	return g.index.Objects(subject.Key(), predicate.Key())
}

// Subject returns an arbitrary subject of (predicate, object), or nil.
func (g *Graph) Subject(predicate, object *node.Node) *node.Node {
	pk, obk := predicate.Key(), object.Key()
	for _, s := range g.index.Subjects() {
		if _, found := g.index.Object(s.Key(), pk, obk); found {
			return s
		}
	}
	return nil
}

// Subjects returns all subjects of (predicate, object).
func (g *Graph) Subjects(predicate, object *node.Node) []*node.Node {
	pk, obk := predicate.Key(), object.Key()
	var out []*node.Node
	for _, s := range g.index.Subjects() {
		if _, found := g.index.Object(s.Key(), pk, obk); found {
			out = append(out, s)
		}
	}
	return out
}

// ArcsOut has a dual meaning. If resource is the subject of any triple it
// returns the distinct predicates of its outgoing triples. Otherwise resource
// is taken as a predicate and the distinct objects of every triple using it
// are returned.
func (g *Graph) ArcsOut(resource *node.Node) []*node.Node {
	rk := resource.Key()
	if _, ok := g.index.Subject(rk); ok {
		return g.index.Predicates(rk)
	}

	var out []*node.Node
	seen := make(map[node.Key]struct{})
	for _, s := range g.index.Subjects() {
		for _, o := range g.index.Objects(s.Key(), rk) {
			if _, dup := seen[o.Key()]; dup {
				continue
			}
			seen[o.Key()] = struct{}{}
			out = append(out, o)
		}
	}
	return out
}

// ArcsIn returns the resources pointing at n: subjects of triples whose object
// is n and, when n is used as a predicate, subjects of triples using it.
func (g *Graph) ArcsIn(n *node.Node) []*node.Node {
	nk := n.Key()
	asPredicate := n.IsResource()

	var out []*node.Node
	for _, s := range g.index.Subjects() {
		sk := s.Key()
		if asPredicate {
			if _, ok := g.index.Predicate(sk, nk); ok {
				out = append(out, s)
				continue
			}
		}
		for _, p := range g.index.Predicates(sk) {
			if _, ok := g.index.Object(sk, p.Key(), nk); ok {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// Resources returns every distinct resource used as subject, predicate or
// object. Literals are never included.
func (g *Graph) Resources() []*node.Node {
	var out []*node.Node
	seen := make(map[node.Key]struct{})
	add := func(n *node.Node) {
		if !n.IsResource() {
			return
		}
		if _, dup := seen[n.Key()]; dup {
			return
		}
		seen[n.Key()] = struct{}{}
		out = append(out, n)
	}

	for _, s := range g.index.Subjects() {
		add(s)
		for _, p := range g.index.Predicates(s.Key()) {
			add(p)
			for _, o := range g.index.Objects(s.Key(), p.Key()) {
				add(o)
			}
		}
	}
	return out
}

// Triples materializes every triple.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, 0, g.index.Len())
	for _, s := range g.index.Subjects() {
		for _, p := range g.index.Predicates(s.Key()) {
			for _, o := range g.index.Objects(s.Key(), p.Key()) {
				out = append(out, Triple{Subject: s, Predicate: p, Object: o})
			}
		}
	}
	return out
}
