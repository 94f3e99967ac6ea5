package observe

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfstore/internal/graph"
)

func newRecorded(t *testing.T) (*graph.Graph, *Recorder) {
	t.Helper()
	g := graph.New()
	r := NewRecorder(WithTokens(NewSequenceGenerator("b")))
	require.NoError(t, g.AddObserver(r))
	return g, r
}

func TestRecorder_UnbatchedMutations(t *testing.T) {
	g, r := newRecorded(t)
	a, knows, b := g.Resource("ex:a"), g.Resource("ex:knows"), g.Resource("ex:b")

	g.Assert(a, knows, b)
	g.Unassert(a, knows, b)

	assert.Equal(t, []Event{
		{Seq: 1, Type: EventAssert, Subject: "<ex:a>", Predicate: "<ex:knows>", Object: "<ex:b>"},
		{Seq: 2, Type: EventUnassert, Subject: "<ex:a>", Predicate: "<ex:knows>", Object: "<ex:b>"},
	}, r.Events())
}

func TestRecorder_MoveCarriesBatchToken(t *testing.T) {
	g, r := newRecorded(t)
	a, c, knows, b := g.Resource("ex:a"), g.Resource("ex:c"), g.Resource("ex:knows"), g.Resource("ex:b")
	g.Assert(a, knows, b)
	r.Reset()

	g.BatchBegin()
	g.Unassert(a, knows, b)
	g.Assert(c, knows, b)
	g.BatchEnd()

	events := r.Events()
	require.Len(t, events, 5)
	for _, e := range events {
		assert.Equal(t, "b-1", e.Batch, e.String())
	}
	assert.Equal(t, EventBatchEnd, events[3].Type)
	assert.Equal(t, Event{
		Seq:       6,
		Batch:     "b-1",
		Type:      EventMove,
		Subject:   "<ex:a>",
		Predicate: "<ex:knows>",
		Object:    "<ex:b>",
		Target:    "<ex:c>",
	}, events[4])
	assert.Equal(t, "move <ex:a> -> <ex:c> <ex:knows> <ex:b>", events[4].String())
}

func TestRecorder_Change(t *testing.T) {
	g, r := newRecorded(t)
	a, age := g.Resource("ex:a"), g.Resource("ex:age")
	g.Assert(a, age, g.Literal("30"))

	g.BatchBegin()
	g.Unassert(a, age, g.Literal("30"))
	g.Assert(a, age, g.Literal("31"))
	g.BatchEnd()

	require.Equal(t, 1, r.Count(EventChange))
	last := r.Events()[len(r.Events())-1]
	assert.Equal(t, `change <ex:a> <ex:age> "30" -> "31"`, last.String())
}

func TestRecorder_SecondBatchGetsNewToken(t *testing.T) {
	g, r := newRecorded(t)
	a, knows := g.Resource("ex:a"), g.Resource("ex:knows")

	g.BatchBegin()
	g.Assert(a, knows, g.Literal("x"))
	g.BatchEnd()
	g.Assert(a, knows, g.Literal("y"))
	g.BatchBegin()
	g.BatchEnd()

	var batches []string
	for _, e := range r.Events() {
		batches = append(batches, e.Batch)
	}
	assert.Equal(t, []string{"b-1", "b-1", "b-1", "", "b-2", "b-2"}, batches)
}

func TestRecorder_CountAndReset(t *testing.T) {
	g, r := newRecorded(t)
	a, knows := g.Resource("ex:a"), g.Resource("ex:knows")
	g.Assert(a, knows, g.Literal("1"))
	g.Assert(a, knows, g.Literal("2"))

	assert.Equal(t, 2, r.Count(EventAssert))
	assert.Equal(t, 0, r.Count(EventMove))

	r.Reset()
	assert.Empty(t, r.Events())
	g.Assert(a, knows, g.Literal("3"))
	assert.Equal(t, int64(3), r.Events()[0].Seq, "the clock keeps running across Reset")
}

func TestRecorder_EventsIsACopy(t *testing.T) {
	g, r := newRecorded(t)
	g.Assert(g.Resource("ex:a"), g.Resource("ex:knows"), g.Resource("ex:b"))

	events := r.Events()
	events[0].Type = EventMove
	assert.Equal(t, EventAssert, r.Events()[0].Type)
}

func TestEvent_String(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Event{Type: EventAssert, Subject: "<s>", Predicate: "<p>", Object: `"o"`}, `assert <s> <p> "o"`},
		{Event{Type: EventUnassert, Subject: "_:b1", Predicate: "<p>", Object: "<o>"}, "unassert _:b1 <p> <o>"},
		{Event{Type: EventChange, Subject: "<s>", Predicate: "<p>", Object: "<o>", Target: "<n>"}, "change <s> <p> <o> -> <n>"},
		{Event{Type: EventMove, Subject: "<s>", Predicate: "<p>", Object: "<o>", Target: "<n>"}, "move <s> -> <n> <p> <o>"},
		{Event{Type: EventBatchBegin, Batch: "x"}, "batch_begin"},
		{Event{Type: EventBatchEnd}, "batch_end"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.String())
		})
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	g := graph.New()
	require.NoError(t, g.AddObserver(NewLogObserver(logger, slog.LevelInfo)))
	a, c, knows, b := g.Resource("ex:a"), g.Resource("ex:c"), g.Resource("ex:knows"), g.Resource("ex:b")
	g.Assert(a, knows, b)

	g.BatchBegin()
	g.Unassert(a, knows, b)
	g.Assert(c, knows, b)
	g.BatchEnd()

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=assert subject=<ex:a> predicate=<ex:knows> object=<ex:b>")
	assert.Contains(t, out, `msg="batch begin"`)
	assert.Contains(t, out, `msg="batch end"`)
	assert.Contains(t, out, "msg=move subject=<ex:a> predicate=<ex:knows> object=<ex:b> new_subject=<ex:c>")
}
