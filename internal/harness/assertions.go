package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/rdfstore/internal/graph"
	"github.com/roach88/rdfstore/internal/node"
	"github.com/roach88/rdfstore/internal/observe"
)

// ExpectationError is returned when an expectation fails.
// It includes the trace to help debug the failure.
type ExpectationError struct {
	Type     string          // Expectation type for categorization
	Expected string          // Human-readable expected outcome
	Actual   string          // Human-readable actual outcome
	Trace    []observe.Event // Full trace for debugging context
}

// Error implements the error interface.
func (e *ExpectationError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Expectation failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s\n", event.Seq, event)
		}
	}
	return buf.String()
}

// Matches reports whether e satisfies every field set in m.
func (m EventMatch) Matches(e observe.Event) bool {
	return e.Type == m.Type &&
		matchField(m.Subject, e.Subject) &&
		matchField(m.Predicate, e.Predicate) &&
		matchField(m.Object, e.Object) &&
		matchField(m.Target, e.Target)
}

func (m EventMatch) String() string {
	parts := []string{string(m.Type)}
	for _, f := range []struct{ name, value string }{
		{"subject", m.Subject},
		{"predicate", m.Predicate},
		{"object", m.Object},
		{"target", m.Target},
	} {
		if f.value != "" {
			parts = append(parts, f.name+"="+f.value)
		}
	}
	return strings.Join(parts, " ")
}

func matchField(want, got string) bool {
	return want == "" || want == got
}

// assertTraceContains checks that some event matches.
func assertTraceContains(trace []observe.Event, e Expectation) error {
	for _, event := range trace {
		if e.Event.Matches(event) {
			return nil
		}
	}
	return &ExpectationError{
		Type:     ExpectTraceContains,
		Expected: e.Event.String(),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceCount checks that exactly e.Count events match.
func assertTraceCount(trace []observe.Event, e Expectation) error {
	count := 0
	for _, event := range trace {
		if e.Event.Matches(event) {
			count++
		}
	}
	if count != e.Count {
		return &ExpectationError{
			Type:     ExpectTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", e.Count, e.Event),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertTraceOrder checks that the listed events occur in order. Intervening
// events are allowed; each match is searched for after the previous one.
func assertTraceOrder(trace []observe.Event, e Expectation) error {
	pos := 0
	for _, want := range e.Events {
		found := false
		for pos < len(trace) {
			event := trace[pos]
			pos++
			if want.Matches(event) {
				found = true
				break
			}
		}
		if !found {
			return &ExpectationError{
				Type:     ExpectTraceOrder,
				Expected: fmt.Sprintf("events in order: %s", joinMatches(e.Events)),
				Actual:   fmt.Sprintf("no %s after position %d", want, pos),
				Trace:    trace,
			}
		}
	}
	return nil
}

func joinMatches(ms []EventMatch) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}

// assertFinalState checks statements present and absent in g, and its size.
func assertFinalState(g *graph.Graph, e Expectation) error {
	for _, statement := range e.Holds {
		held, err := holds(g, statement)
		if err != nil {
			return fmt.Errorf("final_state: %w", err)
		}
		if !held {
			return &ExpectationError{
				Type:     ExpectFinalState,
				Expected: fmt.Sprintf("graph holds %s", statement),
				Actual:   "statement not found",
			}
		}
	}
	for _, statement := range e.Absent {
		held, err := holds(g, statement)
		if err != nil {
			return fmt.Errorf("final_state: %w", err)
		}
		if held {
			return &ExpectationError{
				Type:     ExpectFinalState,
				Expected: fmt.Sprintf("graph lacks %s", statement),
				Actual:   "statement present",
			}
		}
	}
	if e.Size != nil && g.Len() != *e.Size {
		return &ExpectationError{
			Type:     ExpectFinalState,
			Expected: fmt.Sprintf("%d triples", *e.Size),
			Actual:   fmt.Sprintf("%d triples", g.Len()),
		}
	}
	return nil
}

// holds reports whether g contains statement. The statement is decoded into a
// scratch registry and resolved with Lookup, so checking never interns new
// nodes into the scenario graph.
func holds(g *graph.Graph, statement string) (bool, error) {
	st, err := parseStatement(statement, node.NewRegistry())
	if err != nil {
		return false, err
	}
	reg := g.Registry()
	var terms [3]*node.Node
	for i, n := range []*node.Node{st.Subject, st.Predicate, st.Object} {
		found, ok := reg.Lookup(n.Key())
		if !ok {
			return false, nil
		}
		terms[i] = found
	}
	return g.HasAssertion(terms[0], terms[1], terms[2]), nil
}

// EvaluateExpectations evaluates all expectations against the result and the
// final graph. It returns one message per failed expectation.
func EvaluateExpectations(result *Result, expectations []Expectation, g *graph.Graph) []string {
	var errors []string

	for i, e := range expectations {
		var err error

		switch e.Type {
		case ExpectTraceContains:
			err = assertTraceContains(result.Trace, e)
		case ExpectTraceCount:
			err = assertTraceCount(result.Trace, e)
		case ExpectTraceOrder:
			err = assertTraceOrder(result.Trace, e)
		case ExpectFinalState:
			if g == nil {
				err = fmt.Errorf("expect[%d]: final_state requires a graph", i)
			} else {
				err = assertFinalState(g, e)
			}
		default:
			err = fmt.Errorf("expect[%d]: unknown expectation type %q", i, e.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}
	return errors
}
