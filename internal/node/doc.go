// Package node provides the node model and the interning registry for the
// triple store.
//
// A Node is a tagged variant: Resource, BlankNode or Literal. BlankNode is a
// Resource specialization whose identifier is generated by the registry.
// Equality is by variant plus value, captured by Key. The Registry hands out a
// single canonical *Node per distinct Key, so within one registry pointer
// equality and Key equality coincide.
//
// Interned nodes are never evicted. A registry grows for as long as it lives;
// scope registries to the stores that use them rather than sharing a
// process-wide instance.
package node
