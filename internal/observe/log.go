package observe

import (
	"context"
	"log/slog"

	"github.com/roach88/rdfstore/internal/graph"
	"github.com/roach88/rdfstore/internal/node"
)

// LogObserver writes every notification to a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
	level  slog.Level
}

var _ graph.Observer = (*LogObserver)(nil)

// NewLogObserver logs at level through l. A nil logger means slog.Default().
func NewLogObserver(l *slog.Logger, level slog.Level) *LogObserver {
	if l == nil {
		l = slog.Default()
	}
	return &LogObserver{logger: l, level: level}
}

func (o *LogObserver) log(msg string, attrs ...slog.Attr) {
	o.logger.LogAttrs(context.Background(), o.level, msg, attrs...)
}

func (o *LogObserver) OnAssert(_ *graph.Graph, s, p, obj *node.Node) {
	o.log("assert", triple(s, p, obj)...)
}

func (o *LogObserver) OnUnassert(_ *graph.Graph, s, p, obj *node.Node) {
	o.log("unassert", triple(s, p, obj)...)
}

func (o *LogObserver) OnChange(_ *graph.Graph, s, p, oldObject, newObject *node.Node) {
	o.log("change", append(triple(s, p, oldObject), slog.String("new_object", term(newObject)))...)
}

func (o *LogObserver) OnMove(_ *graph.Graph, oldSubject, newSubject, p, obj *node.Node) {
	o.log("move", append(triple(oldSubject, p, obj), slog.String("new_subject", term(newSubject)))...)
}

func (o *LogObserver) OnBatchBegin(*graph.Graph) { o.log("batch begin") }
func (o *LogObserver) OnBatchEnd(*graph.Graph)   { o.log("batch end") }

func triple(s, p, obj *node.Node) []slog.Attr {
	return []slog.Attr{
		slog.String("subject", term(s)),
		slog.String("predicate", term(p)),
		slog.String("object", term(obj)),
	}
}
