package graph

import (
	"fmt"

	"github.com/roach88/rdfstore/internal/node"
)

// spy records every notification as a compact string.
type spy struct {
	events []string
}

func (s *spy) OnAssert(_ *Graph, sub, pre, obj *node.Node) {
	s.events = append(s.events, fmt.Sprintf("assert %s %s %s", sub, pre, obj))
}

func (s *spy) OnUnassert(_ *Graph, sub, pre, obj *node.Node) {
	s.events = append(s.events, fmt.Sprintf("unassert %s %s %s", sub, pre, obj))
}

func (s *spy) OnChange(_ *Graph, sub, pre, oldObj, newObj *node.Node) {
	s.events = append(s.events, fmt.Sprintf("change %s %s %s %s", sub, pre, oldObj, newObj))
}

func (s *spy) OnMove(_ *Graph, oldSub, newSub, pre, obj *node.Node) {
	s.events = append(s.events, fmt.Sprintf("move %s %s %s %s", oldSub, newSub, pre, obj))
}

func (s *spy) OnBatchBegin(*Graph) { s.events = append(s.events, "begin") }
func (s *spy) OnBatchEnd(*Graph)   { s.events = append(s.events, "end") }

func (s *spy) count(prefix string) int {
	n := 0
	for _, e := range s.events {
		if len(e) >= len(prefix) && e[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// ex holds the nodes used throughout the graph tests.
type ex struct {
	g                      *Graph
	a, b, c                *node.Node
	knows, age, name, kind *node.Node
}

func newEx() ex {
	g := New()
	return ex{
		g:     g,
		a:     g.Resource("ex:a"),
		b:     g.Resource("ex:b"),
		c:     g.Resource("ex:c"),
		knows: g.Resource("ex:knows"),
		age:   g.Resource("ex:age"),
		name:  g.Resource("ex:name"),
		kind:  g.Resource("ex:kind"),
	}
}
