package ntriples

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/roach88/rdfstore/internal/node"
)

// Statement is one decoded triple with nodes interned in the decoder's
// registry.
type Statement struct {
	Subject   *node.Node
	Predicate *node.Node
	Object    *node.Node
}

// SyntaxError reports malformed input with a 1-based position.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("ntriples: line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

// Decoder reads statements from a stream, one line at a time.
type Decoder struct {
	scanner  *bufio.Scanner
	registry *node.Registry
	line     int
}

// NewDecoder returns a decoder that interns terms into registry.
func NewDecoder(r io.Reader, registry *node.Registry) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Decoder{scanner: sc, registry: registry}
}

// Next returns the next statement, or io.EOF when the input is exhausted.
func (d *Decoder) Next() (Statement, error) {
	for d.scanner.Scan() {
		d.line++
		text := d.scanner.Text()
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return d.parseLine(text)
	}
	if err := d.scanner.Err(); err != nil {
		return Statement{}, fmt.Errorf("ntriples: read: %w", err)
	}
	return Statement{}, io.EOF
}

// DecodeAll reads every statement from r.
func DecodeAll(r io.Reader, registry *node.Registry) ([]Statement, error) {
	dec := NewDecoder(r, registry)
	var out []Statement
	for {
		st, err := dec.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, st)
	}
}

type lineParser struct {
	src  string
	pos  int
	line int
}

func (d *Decoder) parseLine(text string) (Statement, error) {
	lp := &lineParser{src: text, line: d.line}

	lp.skipSpace()
	subj, err := lp.term()
	if err != nil {
		return Statement{}, err
	}
	if subj.Kind == node.KindLiteral {
		return Statement{}, lp.errorf("literal cannot be a subject")
	}

	if !lp.skipSpace() {
		return Statement{}, lp.errorf("expected whitespace after subject")
	}
	pred, err := lp.term()
	if err != nil {
		return Statement{}, err
	}
	if pred.Kind != node.KindResource {
		return Statement{}, lp.errorf("predicate must be an IRI")
	}

	if !lp.skipSpace() {
		return Statement{}, lp.errorf("expected whitespace after predicate")
	}
	obj, err := lp.term()
	if err != nil {
		return Statement{}, err
	}

	lp.skipSpace()
	if lp.peek() == '.' {
		lp.pos++
		lp.skipSpace()
	}
	if lp.pos < len(lp.src) && lp.peek() != '#' {
		return Statement{}, lp.errorf("unexpected trailing content")
	}

	return Statement{
		Subject:   d.registry.InternKey(subj),
		Predicate: d.registry.InternKey(pred),
		Object:    d.registry.InternKey(obj),
	}, nil
}

func (lp *lineParser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: lp.line, Col: lp.pos + 1, Msg: fmt.Sprintf(format, args...)}
}

func (lp *lineParser) peek() byte { return lp.peekAt(0) }

func (lp *lineParser) peekAt(offset int) byte {
	if lp.pos+offset >= len(lp.src) {
		return 0
	}
	return lp.src[lp.pos+offset]
}

// skipSpace consumes spaces and tabs and reports whether any were consumed.
func (lp *lineParser) skipSpace() bool {
	start := lp.pos
	for lp.pos < len(lp.src) && (lp.src[lp.pos] == ' ' || lp.src[lp.pos] == '\t') {
		lp.pos++
	}
	return lp.pos > start
}

func (lp *lineParser) term() (node.Key, error) {
	switch lp.peek() {
	case '<':
		return lp.iri()
	case '_':
		return lp.blank()
	case '"':
		return lp.literal()
	case 0:
		return node.Key{}, lp.errorf("unexpected end of line")
	default:
		return node.Key{}, lp.errorf("unexpected character %q", lp.peek())
	}
}

func (lp *lineParser) iri() (node.Key, error) {
	end := strings.IndexByte(lp.src[lp.pos+1:], '>')
	if end < 0 {
		return node.Key{}, lp.errorf("unterminated IRI")
	}
	start, stop := lp.pos+1, lp.pos+1+end
	raw := lp.src[start:stop]
	if raw == "" {
		return node.Key{}, lp.errorf("empty IRI")
	}
	if i := strings.IndexAny(raw, " \t<\""); i >= 0 {
		lp.pos = start + i
		return node.Key{}, lp.errorf("invalid character %q in IRI", raw[i])
	}
	if !strings.Contains(raw, `\`) {
		lp.pos = stop + 1
		return node.Key{Kind: node.KindResource, Value: raw}, nil
	}

	// Only \uXXXX and \UXXXXXXXX are valid inside an IRI.
	var b strings.Builder
	lp.pos = start
	for lp.pos < stop {
		c := lp.src[lp.pos]
		if c != '\\' {
			b.WriteByte(c)
			lp.pos++
			continue
		}
		var n int
		switch lp.peekAt(1) {
		case 'u':
			n = 4
		case 'U':
			n = 8
		default:
			return node.Key{}, lp.errorf("invalid escape in IRI")
		}
		lp.pos += 2
		if lp.pos+n > stop {
			return node.Key{}, lp.errorf("short unicode escape")
		}
		r, err := lp.hex(n)
		if err != nil {
			return node.Key{}, err
		}
		b.WriteRune(r)
	}
	lp.pos = stop + 1
	return node.Key{Kind: node.KindResource, Value: b.String()}, nil
}

func (lp *lineParser) blank() (node.Key, error) {
	if !strings.HasPrefix(lp.src[lp.pos:], node.BlankPrefix) {
		return node.Key{}, lp.errorf("malformed blank node")
	}
	start := lp.pos
	lp.pos += len(node.BlankPrefix)
	for lp.pos < len(lp.src) {
		c := lp.src[lp.pos]
		if c == ' ' || c == '\t' {
			break
		}
		lp.pos++
	}
	// Labels may contain '.' but never end with one; it belongs to the terminator.
	for lp.pos > start+len(node.BlankPrefix) && lp.src[lp.pos-1] == '.' {
		lp.pos--
	}
	if lp.pos == start+len(node.BlankPrefix) {
		return node.Key{}, lp.errorf("empty blank node label")
	}
	return node.Key{Kind: node.KindBlank, Value: lp.src[start:lp.pos]}, nil
}

func (lp *lineParser) literal() (node.Key, error) {
	lp.pos++ // opening quote
	var b strings.Builder
	for {
		if lp.pos >= len(lp.src) {
			return node.Key{}, lp.errorf("unterminated literal")
		}
		c := lp.src[lp.pos]
		switch c {
		case '"':
			lp.pos++
			if next := lp.peek(); next == '@' || next == '^' {
				return node.Key{}, lp.errorf("language tags and datatypes are not supported")
			}
			return node.Key{Kind: node.KindLiteral, Value: b.String()}, nil
		case '\\':
			r, err := lp.escape()
			if err != nil {
				return node.Key{}, err
			}
			b.WriteRune(r)
		default:
			// Bytes are copied as they are, so text that is not valid UTF-8
			// survives a round trip unchanged.
			_, size := utf8.DecodeRuneInString(lp.src[lp.pos:])
			b.WriteString(lp.src[lp.pos : lp.pos+size])
			lp.pos += size
		}
	}
}

func (lp *lineParser) escape() (rune, error) {
	if lp.pos+1 >= len(lp.src) {
		return 0, lp.errorf("dangling escape")
	}
	c := lp.src[lp.pos+1]
	lp.pos += 2
	switch c {
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case '\'':
		return '\'', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'u':
		return lp.hex(4)
	case 'U':
		return lp.hex(8)
	default:
		lp.pos -= 2
		return 0, lp.errorf("unknown escape \\%c", c)
	}
}

func (lp *lineParser) hex(n int) (rune, error) {
	if lp.pos+n > len(lp.src) {
		return 0, lp.errorf("short unicode escape")
	}
	v, err := strconv.ParseUint(lp.src[lp.pos:lp.pos+n], 16, 32)
	if err != nil {
		return 0, lp.errorf("invalid unicode escape %q", lp.src[lp.pos:lp.pos+n])
	}
	lp.pos += n
	if !utf8.ValidRune(rune(v)) {
		return 0, lp.errorf("invalid code point U+%X", v)
	}
	return rune(v), nil
}
