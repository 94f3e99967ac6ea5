package harness

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/rdfstore/internal/crawler"
	"github.com/roach88/rdfstore/internal/graph"
	"github.com/roach88/rdfstore/internal/merge"
	"github.com/roach88/rdfstore/internal/node"
	"github.com/roach88/rdfstore/internal/ntriples"
	"github.com/roach88/rdfstore/internal/observe"
	"github.com/roach88/rdfstore/internal/testutil"
)

// Harness holds the state of one scenario run.
type Harness struct {
	graph    *graph.Graph
	recorder *observe.Recorder
	logger   *slog.Logger
}

// Option configures Run.
type Option func(*Harness)

// WithLogger sets the logger for step diagnostics.
// Default: a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// Run executes a scenario against a fresh graph and returns the result.
//
// Execution flow:
//  1. Crawl the scenario document, if any
//  2. Assert the setup statements
//  3. Attach a deterministic recorder
//  4. Apply the batch steps inside one batch
//  5. Evaluate expectations against the trace and the final graph
//
// An error is returned when the scenario cannot be executed at all (bad
// statement, unreadable document). Failed expectations are reported in the
// result instead.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	h := &Harness{
		graph:  graph.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	if scenario.Document != "" {
		if err := h.crawl(scenario.Document, h.graph); err != nil {
			return nil, fmt.Errorf("failed to crawl document: %w", err)
		}
	}
	if len(scenario.Setup) > 0 {
		if _, err := h.graph.Load(strings.NewReader(strings.Join(scenario.Setup, "\n"))); err != nil {
			return nil, fmt.Errorf("failed to execute setup: %w", err)
		}
	}

	h.recorder = observe.NewRecorder(
		observe.WithClock(observe.NewClock()),
		observe.WithTokens(testutil.NewFixedTokenGenerator(scenario.BatchToken)),
	)
	if err := h.graph.AddObserver(h.recorder); err != nil {
		return nil, err
	}

	h.graph.BatchBegin()
	err := h.executeBatch(scenario.Batch)
	h.graph.BatchEnd()
	if err != nil {
		return nil, fmt.Errorf("failed to execute batch: %w", err)
	}

	result := NewResult()
	result.Trace = h.recorder.Events()
	result.Final = testutil.SortedLines(h.graph)
	for _, msg := range EvaluateExpectations(result, scenario.Expect, h.graph) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) executeBatch(steps []Step) error {
	for i, step := range steps {
		var err error
		switch step.kind() {
		case "assert":
			err = h.mutate(step.Assert, h.graph.Assert)
		case "unassert":
			err = h.mutate(step.Unassert, h.graph.Unassert)
		case "crawl":
			err = h.crawl(step.Crawl, h.graph)
		case "update":
			err = h.update(step.Update)
		default:
			err = fmt.Errorf("empty step")
		}
		if err != nil {
			return fmt.Errorf("batch step %d: %w", i, err)
		}
		h.logger.Info("batch step completed", "step", i, "kind", step.kind(), "triples", h.graph.Len())
	}
	return nil
}

func (h *Harness) mutate(statement string, apply func(s, p, o *node.Node)) error {
	st, err := parseStatement(statement, h.graph.Registry())
	if err != nil {
		return err
	}
	apply(st.Subject, st.Predicate, st.Object)
	return nil
}

func (h *Harness) crawl(path string, into *graph.Graph) error {
	doc, err := crawler.LoadFile(path)
	if err != nil {
		return err
	}
	_, err = crawler.Crawl(doc, into.Registry(), into, crawler.WithLogger(h.logger))
	return err
}

// update crawls path into a scratch graph sharing the scenario registry and
// converges the scenario graph onto it.
func (h *Harness) update(path string) error {
	fresh := graph.New(graph.WithRegistry(h.graph.Registry()), graph.WithLogger(h.logger))
	if err := h.crawl(path, fresh); err != nil {
		return err
	}
	merge.UpdateFrom(fresh, h.graph, merge.WithLogger(h.logger))
	return nil
}

// parseStatement decodes exactly one N-Triples statement into reg.
func parseStatement(statement string, reg *node.Registry) (ntriples.Statement, error) {
	sts, err := ntriples.DecodeAll(strings.NewReader(statement), reg)
	if err != nil {
		return ntriples.Statement{}, err
	}
	if len(sts) != 1 {
		return ntriples.Statement{}, fmt.Errorf("expected one statement, got %d in %q", len(sts), statement)
	}
	return sts[0], nil
}
