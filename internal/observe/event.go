package observe

import (
	"strings"

	"github.com/roach88/rdfstore/internal/node"
	"github.com/roach88/rdfstore/internal/ntriples"
)

// EventType names a notification.
type EventType string

const (
	EventAssert     EventType = "assert"
	EventUnassert   EventType = "unassert"
	EventChange     EventType = "change"
	EventMove       EventType = "move"
	EventBatchBegin EventType = "batch_begin"
	EventBatchEnd   EventType = "batch_end"
)

// Event is one recorded notification. Node fields hold wire-form terms
// (<uri>, _:label or "text").
//
// For a change event Object is the old object and Target the new one. For a
// move event Subject is the old subject and Target the new one.
type Event struct {
	Seq       int64     `json:"seq" yaml:"seq"`
	Batch     string    `json:"batch,omitempty" yaml:"batch,omitempty"`
	Type      EventType `json:"type" yaml:"type"`
	Subject   string    `json:"subject,omitempty" yaml:"subject,omitempty"`
	Predicate string    `json:"predicate,omitempty" yaml:"predicate,omitempty"`
	Object    string    `json:"object,omitempty" yaml:"object,omitempty"`
	Target    string    `json:"target,omitempty" yaml:"target,omitempty"`
}

// String renders the event without its sequence number or batch token:
//
//	assert <s> <p> <o>
//	change <s> <p> "old" -> "new"
//	move <old> -> <new> <p> <o>
//	batch_begin
func (e Event) String() string {
	var parts []string
	switch e.Type {
	case EventChange:
		parts = []string{string(e.Type), e.Subject, e.Predicate, e.Object, "->", e.Target}
	case EventMove:
		parts = []string{string(e.Type), e.Subject, "->", e.Target, e.Predicate, e.Object}
	case EventBatchBegin, EventBatchEnd:
		parts = []string{string(e.Type)}
	default:
		parts = []string{string(e.Type), e.Subject, e.Predicate, e.Object}
	}
	return strings.Join(parts, " ")
}

func term(n *node.Node) string {
	if n == nil {
		return ""
	}
	return ntriples.Term(n)
}
