package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfstore/internal/graph"
	"github.com/roach88/rdfstore/internal/observe"
)

func TestRun_ScenarioFiles(t *testing.T) {
	scenarios, err := LoadDir(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_SetupIsNotRecorded(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "setup_quiet",
		Description: "setup statements never reach the recorder",
		Setup:       []string{"<ex:a> <ex:knows> <ex:b> ."},
		Batch:       []Step{{Assert: "<ex:a> <ex:knows> <ex:c> ."}},
		Expect:      []Expectation{{Type: ExpectTraceCount, Event: &EventMatch{Type: observe.EventAssert}, Count: 1}},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, []string{
		"<ex:a> <ex:knows> <ex:b> ",
		"<ex:a> <ex:knows> <ex:c> ",
	}, result.Final)
}

func TestRun_DeterministicTrace(t *testing.T) {
	s := &Scenario{
		Name:        "deterministic",
		Description: "sequence numbers and tokens repeat across runs",
		BatchToken:  "fixed",
		Batch:       []Step{{Assert: "<ex:a> <ex:knows> <ex:b> ."}},
		Expect:      []Expectation{{Type: ExpectTraceContains, Event: &EventMatch{Type: observe.EventAssert}}},
	}

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	assert.Equal(t, first.Trace, second.Trace)
	assert.Equal(t, []observe.Event{
		{Seq: 1, Batch: "fixed", Type: observe.EventBatchBegin},
		{Seq: 2, Batch: "fixed", Type: observe.EventAssert, Subject: "<ex:a>", Predicate: "<ex:knows>", Object: "<ex:b>"},
		{Seq: 3, Batch: "fixed", Type: observe.EventBatchEnd},
	}, first.Trace)
}

func TestRun_FailedExpectations(t *testing.T) {
	size := 5
	result, err := Run(&Scenario{
		Name:        "failing",
		Description: "every expectation fails",
		Batch:       []Step{{Assert: "<ex:a> <ex:knows> <ex:b> ."}},
		Expect: []Expectation{
			{Type: ExpectTraceContains, Event: &EventMatch{Type: observe.EventMove}},
			{Type: ExpectTraceCount, Event: &EventMatch{Type: observe.EventAssert}, Count: 2},
			{Type: ExpectTraceOrder, Events: []EventMatch{{Type: observe.EventBatchEnd}, {Type: observe.EventAssert}}},
			{Type: ExpectFinalState, Holds: []string{"<ex:x> <ex:y> <ex:z> ."}},
			{Type: ExpectFinalState, Absent: []string{"<ex:a> <ex:knows> <ex:b> ."}},
			{Type: ExpectFinalState, Size: &size},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 6)
	assert.Contains(t, result.Errors[0], "Expectation failed: trace_contains")
	assert.Contains(t, result.Errors[1], "2 occurrences of assert")
	assert.Contains(t, result.Errors[2], "trace_order")
	assert.Contains(t, result.Errors[3], "statement not found")
	assert.Contains(t, result.Errors[4], "statement present")
	assert.Contains(t, result.Errors[5], "5 triples")
}

func TestRun_BadStatement(t *testing.T) {
	_, err := Run(&Scenario{
		Name:        "bad",
		Description: "malformed statement",
		Batch:       []Step{{Assert: "<ex:a> <ex:knows>"}},
		Expect:      []Expectation{{Type: ExpectFinalState, Holds: []string{"<ex:a> <ex:b> <ex:c> ."}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch step 0")
}

func TestRun_StepMustHoldOneStatement(t *testing.T) {
	_, err := Run(&Scenario{
		Name:        "two",
		Description: "two statements in one step",
		Batch:       []Step{{Assert: "<ex:a> <ex:b> <ex:c> .\n<ex:a> <ex:b> <ex:d> ."}},
		Expect:      []Expectation{{Type: ExpectFinalState, Holds: []string{"<ex:a> <ex:b> <ex:c> ."}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected one statement, got 2")
}

func TestRun_CrawlStepJoinsBatch(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "crawl",
		Description: "crawl inside the scenario batch",
		Batch:       []Step{{Crawl: filepath.Join("testdata", "scenarios", "docs", "team-v1.yaml")}},
		Expect: []Expectation{
			{Type: ExpectTraceCount, Event: &EventMatch{Type: observe.EventBatchBegin}, Count: 1},
			{Type: ExpectTraceCount, Event: &EventMatch{Type: observe.EventAssert}, Count: 3},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestEventMatch(t *testing.T) {
	e := observe.Event{Type: observe.EventMove, Subject: "<a>", Predicate: "<p>", Object: "<o>", Target: "<b>"}

	assert.True(t, EventMatch{Type: observe.EventMove}.Matches(e))
	assert.True(t, EventMatch{Type: observe.EventMove, Subject: "<a>", Target: "<b>"}.Matches(e))
	assert.False(t, EventMatch{Type: observe.EventChange}.Matches(e))
	assert.False(t, EventMatch{Type: observe.EventMove, Object: "<x>"}.Matches(e))
	assert.Equal(t, "move subject=<a> target=<b>", EventMatch{Type: observe.EventMove, Subject: "<a>", Target: "<b>"}.String())
}

func TestFinalState_LeavesRegistryUntouched(t *testing.T) {
	g := graph.New()
	g.Assert(g.Resource("ex:a"), g.Resource("ex:knows"), g.Resource("ex:b"))
	before := g.Registry().Len()

	err := assertFinalState(g, Expectation{
		Type:  ExpectFinalState,
		Holds: []string{"<ex:a> <ex:knows> <ex:b> ."},
		Absent: []string{
			`<ex:x> <ex:y> "never seen" .`,
			"<ex:a> <ex:knows> <ex:c> .",
			"<ex:b> <ex:knows> <ex:a> .",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, before, g.Registry().Len())
}

func TestFinalState_BadStatement(t *testing.T) {
	err := assertFinalState(graph.New(), Expectation{Type: ExpectFinalState, Holds: []string{"<ex:a>"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "final_state")
}
