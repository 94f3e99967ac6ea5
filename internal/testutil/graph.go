// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfstore/internal/graph"
	"github.com/roach88/rdfstore/internal/observe"
)

// Graph builds a graph from N-Triples lines. It fails the test on a syntax
// error.
func Graph(t testing.TB, lines ...string) *graph.Graph {
	t.Helper()
	g := graph.New()
	_, err := g.Load(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return g
}

// SortedLines returns the serialized lines of g in lexical order, or nil for
// an empty graph.
func SortedLines(g *graph.Graph) []string {
	out := g.Serialize()
	if out == "" {
		return nil
	}
	lines := strings.Split(out, "\n")
	sort.Strings(lines)
	return lines
}

// Recorder attaches a deterministic recorder to g. Sequence numbers start at 1
// and every batch is tagged "test-batch".
func Recorder(t testing.TB, g *graph.Graph) *observe.Recorder {
	t.Helper()
	r := observe.NewRecorder(
		observe.WithClock(observe.NewClock()),
		observe.WithTokens(NewFixedTokenGenerator("")),
	)
	require.NoError(t, g.AddObserver(r))
	return r
}

// Trace renders events one per line in arrival order.
func Trace(events []observe.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.String()
	}
	return out
}
