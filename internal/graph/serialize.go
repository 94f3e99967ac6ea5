package graph

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/rdfstore/internal/ntriples"
)

// Serialize renders the graph as newline-joined lines, one per triple, in the
// format described by package ntriples. Line order is not defined.
func (g *Graph) Serialize() string {
	var b strings.Builder
	_, _ = g.WriteTo(&b)
	return b.String()
}

// WriteTo streams the Serialize output to w.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, t := range g.Triples() {
		line := ntriples.Format(t.Subject, t.Predicate, t.Object)
		if i > 0 {
			line = "\n" + line
		}
		n, err := io.WriteString(w, line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Load decodes serialized triples from r and asserts them. Unless the caller
// already opened one, the load runs inside its own batch. On a syntax error
// the statements decoded so far stay asserted.
func (g *Graph) Load(r io.Reader) (int, error) {
	if !g.batching {
		g.BatchBegin()
		defer g.BatchEnd()
	}

	dec := ntriples.NewDecoder(r, g.registry)
	count := 0
	for {
		st, err := dec.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("load: %w", err)
		}
		g.Assert(st.Subject, st.Predicate, st.Object)
		count++
	}
}
