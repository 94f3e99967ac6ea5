package crawler

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/rdfstore/internal/node"
)

// Interner creates the nodes the crawler asserts.
type Interner interface {
	Resource(uri string) *node.Node
	Literal(text string) *node.Node
	Blank() *node.Node
}

// Sink receives the crawled triples.
type Sink interface {
	Assert(subject, predicate, object *node.Node)
	BatchBegin()
	BatchEnd()
	InBatch() bool
}

// DefaultMaxDepth bounds the element nesting Crawl accepts.
const DefaultMaxDepth = 256

// ErrTooDeep is returned when the element tree nests deeper than the limit.
var ErrTooDeep = errors.New("crawler: document nests too deeply")

// Option configures Crawl.
type Option func(*crawler)

// WithLogger sets the logger for per-document diagnostics.
// Default: slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(c *crawler) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *crawler) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// Stats summarizes one crawl.
type Stats struct {
	Elements   int
	Statements int
	Skipped    int // property elements with element children, which would need XML literals
}

// direction of an incomplete triple.
type direction int

const (
	forward direction = iota
	reverse
)

type incomplete struct {
	predicate string
	dir       direction
}

// evalContext is what a parent hands its children.
type evalContext struct {
	base          string
	parentSubject *node.Node
	parentObject  *node.Node
	prefixes      map[string]string
	incomplete    []incomplete
}

type crawler struct {
	interner Interner
	sink     Sink
	logger   *slog.Logger
	maxDepth int
	stats    Stats
}

// Crawl asserts the triples implied by doc into sink, interning nodes through
// interner. The traversal runs inside one batch unless the sink already has
// one open.
func Crawl(doc *Document, interner Interner, sink Sink, opts ...Option) (Stats, error) {
	if doc == nil {
		return Stats{}, fmt.Errorf("crawler: nil document")
	}
	c := &crawler{
		interner: interner,
		sink:     sink,
		logger:   slog.Default(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}

	var subject *node.Node
	if doc.Base == "" {
		subject = interner.Blank()
	} else {
		subject = interner.Resource(normalize(doc.Base))
	}
	ctx := evalContext{
		base:          doc.Base,
		parentSubject: subject,
		parentObject:  subject,
		prefixes:      map[string]string{},
	}

	if !sink.InBatch() {
		sink.BatchBegin()
		defer sink.BatchEnd()
	}
	if err := c.walk(&doc.Root, ctx, 1); err != nil {
		return c.stats, err
	}

	c.logger.Debug("document crawled",
		"base", doc.Base,
		"elements", c.stats.Elements,
		"statements", c.stats.Statements,
		"skipped", c.stats.Skipped,
	)
	return c.stats, nil
}

func (c *crawler) walk(el *Element, ctx evalContext, depth int) error {
	if depth > c.maxDepth {
		return fmt.Errorf("%w: limit %d", ErrTooDeep, c.maxDepth)
	}
	next := c.evaluate(el, ctx)
	for i := range el.Children {
		if err := c.walk(&el.Children[i], next, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// evaluate processes one element and returns the context for its children.
func (c *crawler) evaluate(el *Element, ctx evalContext) evalContext {
	c.stats.Elements++

	prefixes := ctx.prefixes
	if len(el.Prefixes) > 0 {
		prefixes = make(map[string]string, len(ctx.prefixes)+len(el.Prefixes))
		for k, v := range ctx.prefixes {
			prefixes[k] = v
		}
		for k, v := range el.Prefixes {
			prefixes[k] = v
		}
	}

	rel := el.Rel
	if rel == "stylesheet" {
		rel = ""
	}
	hasLinks := rel != "" || el.Rev != ""

	var subject, object *node.Node
	skip := false

	if !hasLinks {
		if ref := firstNonEmpty(el.About, el.Src, el.Resource, el.Href); ref != "" {
			subject = c.ref(ref, ctx.base, prefixes)
		}
	} else {
		if ref := firstNonEmpty(el.About, el.Src); ref != "" {
			subject = c.ref(ref, ctx.base, prefixes)
		}
		if ref := firstNonEmpty(el.Resource, el.Href); ref != "" {
			object = c.ref(ref, ctx.base, prefixes)
		}
	}

	if subject == nil {
		switch {
		case el.Typeof != "":
			subject = c.interner.Blank()
		default:
			subject = ctx.parentObject
			skip = !hasLinks && el.Property == ""
		}
	}

	for _, t := range strings.Fields(el.Typeof) {
		c.assertResource(subject, RDFType, expandCURIE(t, prefixes))
	}

	var pending []incomplete
	switch {
	case object != nil:
		for _, r := range strings.Fields(rel) {
			c.assert(subject, c.interner.Resource(expandCURIE(r, prefixes)), object)
		}
		for _, r := range strings.Fields(el.Rev) {
			c.assert(object, c.interner.Resource(expandCURIE(r, prefixes)), subject)
		}
	case hasLinks:
		object = c.interner.Blank()
		for _, r := range strings.Fields(rel) {
			pending = append(pending, incomplete{predicate: expandCURIE(r, prefixes), dir: forward})
		}
		for _, r := range strings.Fields(el.Rev) {
			pending = append(pending, incomplete{predicate: expandCURIE(r, prefixes), dir: reverse})
		}
	}

	if el.Property != "" {
		c.property(el, subject, prefixes)
	}

	if skip {
		ctx.prefixes = prefixes
		return ctx
	}

	for _, inc := range ctx.incomplete {
		p := c.interner.Resource(inc.predicate)
		if inc.dir == forward {
			c.assert(ctx.parentSubject, p, subject)
		} else {
			c.assert(subject, p, ctx.parentSubject)
		}
	}

	if object == nil {
		object = subject
	}
	return evalContext{
		base:          ctx.base,
		parentSubject: subject,
		parentObject:  object,
		prefixes:      prefixes,
		incomplete:    pending,
	}
}

// property asserts the element's plain literal for each property value.
func (c *crawler) property(el *Element, subject *node.Node, prefixes map[string]string) {
	value := el.Content
	if value == "" {
		if len(el.Children) > 0 {
			c.stats.Skipped++
			c.logger.Debug("skipping property with element children", "element", el.Name, "property", el.Property)
			return
		}
		value = el.Text
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	lit := c.interner.Literal(normalize(value))
	for _, p := range strings.Fields(el.Property) {
		c.assert(subject, c.interner.Resource(expandCURIE(p, prefixes)), lit)
	}
}

func (c *crawler) ref(ref, base string, prefixes map[string]string) *node.Node {
	return c.interner.Resource(resolveRef(ref, base, prefixes))
}

func (c *crawler) assertResource(subject *node.Node, predicate, object string) {
	c.assert(subject, c.interner.Resource(predicate), c.interner.Resource(object))
}

func (c *crawler) assert(s, p, o *node.Node) {
	c.stats.Statements++
	c.sink.Assert(s, p, o)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
