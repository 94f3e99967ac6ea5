package harness

import (
	"bytes"
	"encoding/json"
	"sort"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot is the golden form of a scenario run. Batch diff events are
// delivered in no particular order, so the trace is sorted and stripped of
// sequence numbers.
type TraceSnapshot struct {
	ScenarioName string   `json:"scenario_name"`
	BatchToken   string   `json:"batch_token,omitempty"`
	Trace        []string `json:"trace"`
	Final        []string `json:"final"`
}

// NewTraceSnapshot builds the canonical snapshot of result.
func NewTraceSnapshot(name, batchToken string, result *Result) TraceSnapshot {
	trace := make([]string, len(result.Trace))
	for i, e := range result.Trace {
		trace[i] = e.String()
	}
	sort.Strings(trace)

	final := append([]string{}, result.Final...)
	sort.Strings(final)

	return TraceSnapshot{
		ScenarioName: name,
		BatchToken:   batchToken,
		Trace:        trace,
		Final:        final,
	}
}

// Marshal renders the snapshot as indented JSON without HTML escaping, so
// IRIs stay readable in golden files.
func (s TraceSnapshot) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// It returns an error if the scenario cannot be executed; a mismatch fails t
// through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, scenario.Name, scenario.BatchToken, result)
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name, batchToken string, result *Result) error {
	t.Helper()

	data, err := NewTraceSnapshot(name, batchToken, result).Marshal()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
