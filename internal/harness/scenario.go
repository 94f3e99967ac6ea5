package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rdfstore/internal/observe"
)

// Scenario defines one graph test.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is an optional annotated document crawled into the graph
	// before recording starts.
	Document string `yaml:"document,omitempty"`

	// Setup holds N-Triples statements asserted before recording starts.
	Setup []string `yaml:"setup,omitempty"`

	// Batch holds the mutations applied, in order, inside one batch.
	Batch []Step `yaml:"batch"`

	// Expect validates the trace and the final graph.
	Expect []Expectation `yaml:"expect"`

	// BatchToken is the token stamped on recorded batch events.
	// Default: "test-batch"
	BatchToken string `yaml:"batch_token,omitempty"`
}

// Step is one mutation. Exactly one field must be set.
type Step struct {
	// Assert is an N-Triples statement to assert.
	Assert string `yaml:"assert,omitempty"`

	// Unassert is an N-Triples statement to unassert.
	Unassert string `yaml:"unassert,omitempty"`

	// Crawl is a document whose triples are asserted.
	Crawl string `yaml:"crawl,omitempty"`

	// Update is a document whose crawl replaces the graph's content.
	Update string `yaml:"update,omitempty"`
}

func (s Step) kind() string {
	switch {
	case s.Assert != "":
		return "assert"
	case s.Unassert != "":
		return "unassert"
	case s.Crawl != "":
		return "crawl"
	case s.Update != "":
		return "update"
	}
	return ""
}

func (s Step) actions() int {
	n := 0
	for _, v := range []string{s.Assert, s.Unassert, s.Crawl, s.Update} {
		if v != "" {
			n++
		}
	}
	return n
}

// Expectation types.
const (
	ExpectTraceContains = "trace_contains"
	ExpectTraceCount    = "trace_count"
	ExpectTraceOrder    = "trace_order"
	ExpectFinalState    = "final_state"
)

// EventMatch selects recorded events. Empty fields match anything; node
// fields use wire form (<uri>, _:label or "text").
type EventMatch struct {
	Type      observe.EventType `yaml:"type"`
	Subject   string            `yaml:"subject,omitempty"`
	Predicate string            `yaml:"predicate,omitempty"`
	Object    string            `yaml:"object,omitempty"`
	Target    string            `yaml:"target,omitempty"`
}

// Expectation validates the trace or the final graph.
type Expectation struct {
	// Type is one of trace_contains, trace_count, trace_order, final_state.
	Type string `yaml:"type"`

	// Event selects events (trace_contains, trace_count).
	Event *EventMatch `yaml:"event,omitempty"`

	// Events lists events in expected order (trace_order).
	Events []EventMatch `yaml:"events,omitempty"`

	// Count is the exact number of matching events (trace_count).
	Count int `yaml:"count,omitempty"`

	// Holds lists statements that must be in the final graph (final_state).
	Holds []string `yaml:"holds,omitempty"`

	// Absent lists statements that must not be in the final graph (final_state).
	Absent []string `yaml:"absent,omitempty"`

	// Size is the exact number of triples in the final graph (final_state).
	Size *int `yaml:"size,omitempty"`
}

// LoadScenario reads a scenario file. Document paths are resolved relative
// to the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads a scenario file, resolving document paths
// relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos in field names
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) || basePath == "" {
			return p
		}
		return filepath.Join(basePath, p)
	}
	scenario.Document = resolve(scenario.Document)
	for i := range scenario.Batch {
		scenario.Batch[i].Crawl = resolve(scenario.Batch[i].Crawl)
		scenario.Batch[i].Update = resolve(scenario.Batch[i].Update)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadDir loads every .yaml and .yml scenario in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Batch) == 0 {
		return fmt.Errorf("batch list is required and must be non-empty")
	}
	if len(s.Expect) == 0 {
		return fmt.Errorf("expect list is required and must be non-empty")
	}

	if s.Document != "" {
		if _, err := os.Stat(s.Document); os.IsNotExist(err) {
			return fmt.Errorf("document not found: %s", s.Document)
		}
	}

	for i, step := range s.Batch {
		if n := step.actions(); n != 1 {
			return fmt.Errorf("batch[%d]: exactly one of assert, unassert, crawl, update is required (got %d)", i, n)
		}
		for _, doc := range []string{step.Crawl, step.Update} {
			if doc == "" {
				continue
			}
			if _, err := os.Stat(doc); os.IsNotExist(err) {
				return fmt.Errorf("batch[%d]: document not found: %s", i, doc)
			}
		}
	}

	for i, e := range s.Expect {
		if err := validateExpectation(i, &e); err != nil {
			return err
		}
	}
	return nil
}

// validateExpectation validates a single expectation based on its type.
func validateExpectation(index int, e *Expectation) error {
	if e.Type == "" {
		return fmt.Errorf("expect[%d]: type is required", index)
	}

	switch e.Type {
	case ExpectTraceContains:
		if e.Event == nil {
			return fmt.Errorf("expect[%d]: event is required for trace_contains", index)
		}
	case ExpectTraceCount:
		if e.Event == nil {
			return fmt.Errorf("expect[%d]: event is required for trace_count", index)
		}
		if e.Count < 0 {
			return fmt.Errorf("expect[%d]: count must be non-negative for trace_count", index)
		}
	case ExpectTraceOrder:
		if len(e.Events) == 0 {
			return fmt.Errorf("expect[%d]: events list is required for trace_order", index)
		}
	case ExpectFinalState:
		if len(e.Holds) == 0 && len(e.Absent) == 0 && e.Size == nil {
			return fmt.Errorf("expect[%d]: holds, absent or size is required for final_state", index)
		}
		if e.Size != nil && *e.Size < 0 {
			return fmt.Errorf("expect[%d]: size must be non-negative for final_state", index)
		}
	default:
		return fmt.Errorf("expect[%d]: unknown expectation type %q", index, e.Type)
	}
	return nil
}
