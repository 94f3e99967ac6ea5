// Package merge converges one graph onto another.
//
// UpdateFrom is the one-way synchronization used when a freshly crawled
// document replaces the previous crawl: the target ends up holding exactly the
// source's triples, and because the whole delta is applied inside one batch,
// target observers receive OnMove and OnChange events for the edits the delta
// implies.
package merge

import (
	"log/slog"

	"github.com/roach88/rdfstore/internal/graph"
)

// Delta is the set difference between two graphs.
type Delta struct {
	// Add holds triples present in the source but not the target.
	Add []graph.Triple
	// Remove holds triples present in the target but not the source.
	Remove []graph.Triple
}

// Empty reports whether applying the delta would change nothing.
func (d Delta) Empty() bool { return len(d.Add) == 0 && len(d.Remove) == 0 }

// Diff computes the delta that turns target into source. Triples are compared
// by structural key, so the graphs may use different registries.
func Diff(source, target *graph.Graph) Delta {
	var d Delta
	for _, t := range source.Triples() {
		if !target.HasAssertion(t.Subject, t.Predicate, t.Object) {
			d.Add = append(d.Add, t)
		}
	}
	for _, t := range target.Triples() {
		if !source.HasAssertion(t.Subject, t.Predicate, t.Object) {
			d.Remove = append(d.Remove, t)
		}
	}
	return d
}

// Option configures UpdateFrom.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger that receives the delta summary.
// Default: slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// UpdateFrom makes target hold exactly the triples of source and reports
// whether anything changed. Added nodes are re-interned into the target's
// registry. The delta is applied in one batch on target; if the caller already
// has a batch open the delta joins it.
func UpdateFrom(source, target *graph.Graph, opts ...Option) bool {
	cfg := config{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := Diff(source, target)
	if d.Empty() {
		return false
	}
	Apply(target, d)
	cfg.logger.Debug("graph updated", "added", len(d.Add), "removed", len(d.Remove))
	return true
}

// Apply asserts d.Add and unasserts d.Remove on target inside one batch.
func Apply(target *graph.Graph, d Delta) {
	if !target.InBatch() {
		target.BatchBegin()
		defer target.BatchEnd()
	}

	reg := target.Registry()
	for _, t := range d.Add {
		target.Assert(reg.Intern(t.Subject), reg.Intern(t.Predicate), reg.Intern(t.Object))
	}
	for _, t := range d.Remove {
		target.Unassert(t.Subject, t.Predicate, t.Object)
	}
}
