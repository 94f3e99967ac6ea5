package node

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// BlankPrefix is the reserved prefix of every generated blank node identifier.
const BlankPrefix = "_:"

// DefaultBlankLabel follows BlankPrefix in generated identifiers: _:b1, _:b2, ...
const DefaultBlankLabel = "b"

// Registry interns nodes so that equal values share one instance.
//
// Thread-safety: all methods are safe for concurrent use. The Registry is
// append-only; nothing is ever evicted.
type Registry struct {
	mu     sync.Mutex
	nodes  map[Key]*Node
	label  string
	blanks uint64
}

// Option configures a Registry.
type Option func(*Registry)

// WithBlankLabel sets the label placed between BlankPrefix and the counter.
// A label may hold ASCII letters, digits, '_', '-' and '.', and must start with
// a letter, digit or '_'. Any other label, the empty one included, keeps the
// default.
func WithBlankLabel(label string) Option {
	return func(r *Registry) {
		if validBlankLabel(label) {
			r.label = label
		}
	}
}

func validBlankLabel(label string) bool {
	if label == "" || label[0] == '-' || label[0] == '.' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c == '_' || c == '-' || c == '.':
		default:
			return false
		}
	}
	return true
}

// WithScope gives generated blank identifiers a random per-registry scope
// (_:<scope>-1, _:<scope>-2, ...), so blank nodes minted by independent
// registries never compare equal when their graphs are merged.
func WithScope() Option {
	return func(r *Registry) {
		id := uuid.New()
		r.label = strings.ReplaceAll(id.String(), "-", "")[:12] + "-"
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		nodes: make(map[Key]*Node),
		label: DefaultBlankLabel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resource returns the canonical Resource for uri. An empty uri mints a fresh
// BlankNode with a unique identifier instead.
func (r *Registry) Resource(uri string) *Node {
	if uri == "" {
		return r.Blank()
	}
	return r.intern(Key{Kind: KindResource, Value: uri})
}

// Blank mints a fresh BlankNode. Identifiers come from a monotonically
// increasing counter and are never reused by this registry.
func (r *Registry) Blank() *Node {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		r.blanks++
		key := Key{Kind: KindBlank, Value: BlankPrefix + r.label + strconv.FormatUint(r.blanks, 10)}
		// A blank with this id may already exist via Intern.
		if _, ok := r.nodes[key]; ok {
			continue
		}
		n := &Node{kind: key.Kind, value: key.Value}
		r.nodes[key] = n
		return n
	}
}

// Literal returns the canonical Literal for text.
func (r *Registry) Literal(text string) *Node {
	return r.intern(Key{Kind: KindLiteral, Value: text})
}

// Intern returns this registry's canonical instance for the term described by
// n, which may come from another registry. Blank nodes keep their identifier.
func (r *Registry) Intern(n *Node) *Node {
	if n == nil {
		return nil
	}
	return r.intern(n.Key())
}

// InternKey returns the canonical node for key, creating it if needed. Unlike
// Blank, a KindBlank key is taken verbatim; decoders use this to preserve
// blank labels.
func (r *Registry) InternKey(key Key) *Node {
	return r.intern(key)
}

// Lookup returns the canonical node for key without creating it.
func (r *Registry) Lookup(key Key) (*Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[key]
	return n, ok
}

// Len returns the number of interned nodes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.nodes)
}

func (r *Registry) intern(key Key) *Node {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n, ok := r.nodes[key]; ok {
		return n
	}
	n := &Node{kind: key.Kind, value: key.Value}
	r.nodes[key] = n
	return n
}
