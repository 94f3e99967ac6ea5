package node

import "fmt"

// Kind discriminates the node variants.
type Kind uint8

const (
	// KindResource is a node identified by a URI.
	KindResource Kind = iota + 1
	// KindBlank is an anonymous resource with a registry-generated identifier.
	KindBlank
	// KindLiteral is a bare text value. Never a subject or predicate.
	KindLiteral
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindResource:
		return "resource"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Key is the structural identity of a node: variant plus value.
// Two nodes from different registries describe the same term iff their keys
// are equal.
type Key struct {
	Kind  Kind
	Value string
}

// Node is an interned graph term. Obtain nodes from a Registry; the zero value
// is not a valid node.
type Node struct {
	kind  Kind
	value string
}

// Kind returns the node's variant.
func (n *Node) Kind() Kind { return n.kind }

// Value returns the URI, generated blank identifier, or literal text.
func (n *Node) Value() string { return n.value }

// Key returns the structural identity of the node.
func (n *Node) Key() Key { return Key{Kind: n.kind, Value: n.value} }

// IsResource reports whether n may appear as a subject or predicate.
// Blank nodes are resources.
func (n *Node) IsResource() bool {
	return n.kind == KindResource || n.kind == KindBlank
}

// IsBlank reports whether n is a blank node.
func (n *Node) IsBlank() bool { return n.kind == KindBlank }

// IsLiteral reports whether n is a literal.
func (n *Node) IsLiteral() bool { return n.kind == KindLiteral }

// Equal compares nodes structurally. Nil nodes are equal only to nil.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.kind == other.kind && n.value == other.value
}

// String renders the node as a readable term: <uri>, _:id or "text".
// Literal text is not escaped; use the ntriples package for wire output.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.kind {
	case KindBlank:
		return n.value
	case KindLiteral:
		return `"` + n.value + `"`
	default:
		return "<" + n.value + ">"
	}
}
