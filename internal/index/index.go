// Package index implements the raw three-level triple index used by a graph.
//
// Every operation touches exactly one level of the index. Callers orchestrate
// multi-level work themselves, in particular the cascading removal of empty
// predicate and subject buckets after an object is removed.
//
// Buckets are keyed by node.Key, the (kind, value) pair, so a Literal and a
// Resource that share identical text never collide.
//
// Thread-safety: Index is not synchronized. Its owner serializes access.
package index

import "github.com/roach88/rdfstore/internal/node"

type subjectBucket struct {
	node       *node.Node
	predicates map[node.Key]*predicateBucket
}

type predicateBucket struct {
	node    *node.Node
	objects map[node.Key]*node.Node
}

// Index is a subject → predicate → object map holding canonical nodes at
// every level.
type Index struct {
	subjects map[node.Key]*subjectBucket
	size     int
}

// New creates an empty index.
func New() *Index {
	return &Index{subjects: make(map[node.Key]*subjectBucket)}
}

// Len returns the number of stored triples.
func (ix *Index) Len() int { return ix.size }

// AddSubject creates an empty bucket for s. An existing bucket is kept.
func (ix *Index) AddSubject(s *node.Node) {
	if _, ok := ix.subjects[s.Key()]; ok {
		return
	}
	ix.subjects[s.Key()] = &subjectBucket{
		node:       s,
		predicates: make(map[node.Key]*predicateBucket),
	}
}

// Subject returns the stored node for s if s has a bucket.
func (ix *Index) Subject(s node.Key) (*node.Node, bool) {
	b, ok := ix.subjects[s]
	if !ok {
		return nil, false
	}
	return b.node, true
}

// Subjects returns every subject with a bucket, in no particular order.
func (ix *Index) Subjects() []*node.Node {
	out := make([]*node.Node, 0, len(ix.subjects))
	for _, b := range ix.subjects {
		out = append(out, b.node)
	}
	return out
}

// AddPredicate creates an empty bucket for p under s. The subject bucket must
// exist; otherwise AddPredicate does nothing.
func (ix *Index) AddPredicate(s node.Key, p *node.Node) {
	sb, ok := ix.subjects[s]
	if !ok {
		return
	}
	if _, ok := sb.predicates[p.Key()]; ok {
		return
	}
	sb.predicates[p.Key()] = &predicateBucket{
		node:    p,
		objects: make(map[node.Key]*node.Node),
	}
}

// Predicate returns the stored node for p under s.
func (ix *Index) Predicate(s, p node.Key) (*node.Node, bool) {
	pb := ix.predicate(s, p)
	if pb == nil {
		return nil, false
	}
	return pb.node, true
}

// Predicates returns the predicates stored under s.
func (ix *Index) Predicates(s node.Key) []*node.Node {
	sb, ok := ix.subjects[s]
	if !ok {
		return nil
	}
	out := make([]*node.Node, 0, len(sb.predicates))
	for _, pb := range sb.predicates {
		out = append(out, pb.node)
	}
	return out
}

// PredicateCount returns the number of predicate buckets under s.
func (ix *Index) PredicateCount(s node.Key) int {
	sb, ok := ix.subjects[s]
	if !ok {
		return 0
	}
	return len(sb.predicates)
}

// AddObject stores o under (s, p). The predicate bucket must exist. Returns
// false if nothing was added, either because the bucket is missing or o is
// already present.
func (ix *Index) AddObject(s, p node.Key, o *node.Node) bool {
	pb := ix.predicate(s, p)
	if pb == nil {
		return false
	}
	if _, ok := pb.objects[o.Key()]; ok {
		return false
	}
	pb.objects[o.Key()] = o
	ix.size++
	return true
}

// Object returns the stored node for o under (s, p).
func (ix *Index) Object(s, p, o node.Key) (*node.Node, bool) {
	pb := ix.predicate(s, p)
	if pb == nil {
		return nil, false
	}
	n, ok := pb.objects[o]
	return n, ok
}

// Objects returns the objects stored under (s, p).
func (ix *Index) Objects(s, p node.Key) []*node.Node {
	pb := ix.predicate(s, p)
	if pb == nil {
		return nil
	}
	out := make([]*node.Node, 0, len(pb.objects))
	for _, o := range pb.objects {
		out = append(out, o)
	}
	return out
}

// ObjectCount returns the number of objects stored under (s, p).
func (ix *Index) ObjectCount(s, p node.Key) int {
	pb := ix.predicate(s, p)
	if pb == nil {
		return 0
	}
	return len(pb.objects)
}

// RemoveSubject drops the bucket for s and everything beneath it.
func (ix *Index) RemoveSubject(s node.Key) {
	sb, ok := ix.subjects[s]
	if !ok {
		return
	}
	for _, pb := range sb.predicates {
		ix.size -= len(pb.objects)
	}
	delete(ix.subjects, s)
}

// RemovePredicate drops the bucket for p under s and its objects.
// The subject bucket is left in place even if it becomes empty.
func (ix *Index) RemovePredicate(s, p node.Key) {
	sb, ok := ix.subjects[s]
	if !ok {
		return
	}
	pb, ok := sb.predicates[p]
	if !ok {
		return
	}
	ix.size -= len(pb.objects)
	delete(sb.predicates, p)
}

// RemoveObject drops o from (s, p). The predicate bucket is left in place even
// if it becomes empty.
func (ix *Index) RemoveObject(s, p, o node.Key) bool {
	pb := ix.predicate(s, p)
	if pb == nil {
		return false
	}
	if _, ok := pb.objects[o]; !ok {
		return false
	}
	delete(pb.objects, o)
	ix.size--
	return true
}

func (ix *Index) predicate(s, p node.Key) *predicateBucket {
	sb, ok := ix.subjects[s]
	if !ok {
		return nil
	}
	return sb.predicates[p]
}
