// Package harness runs scenario tests against a graph.
//
// A scenario seeds a fresh graph, attaches a deterministic recorder, applies a
// list of mutations inside one batch and checks the recorded notifications and
// the final graph against its expectations.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: move_subject
//	description: "Relinking an object to another subject is a move"
//	document: docs/people.yaml        # optional, crawled before recording
//	setup:                            # optional N-Triples statements
//	  - <ex:a> <ex:knows> <ex:b> .
//	batch:
//	  - unassert: <ex:a> <ex:knows> <ex:b> .
//	  - assert: <ex:c> <ex:knows> <ex:b> .
//	  - crawl: docs/extra.yaml        # crawled into the open batch
//	  - update: docs/people-v2.yaml   # graph converged onto the crawl
//	expect:
//	  - type: trace_contains
//	    event: { type: move, subject: "<ex:a>", target: "<ex:c>" }
//	  - type: trace_count
//	    event: { type: change }
//	    count: 0
//	  - type: trace_order
//	    events: [{ type: unassert }, { type: batch_end }, { type: move }]
//	  - type: final_state
//	    holds: ["<ex:c> <ex:knows> <ex:b> ."]
//	    absent: ["<ex:a> <ex:knows> <ex:b> ."]
//	    size: 1
//
// Document paths are relative to the scenario file.
//
// # Expectation Types
//
//   - trace_contains: some recorded event matches (subset match on the fields given)
//   - trace_count: exactly count recorded events match
//   - trace_order: matching events appear in the given order
//   - final_state: statements present or absent in the final graph, optional size
//
// # Deterministic Testing
//
// Each run records with a fresh observe.Clock, so sequence numbers start at 1,
// and a fixed batch token (scenario batch_token, default "test-batch"). Traces
// are therefore reproducible and can be compared against golden files with
// RunWithGolden.
package harness
