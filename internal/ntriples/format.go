package ntriples

import (
	"fmt"
	"strings"

	"github.com/roach88/rdfstore/internal/node"
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
)

// Escape applies the literal escaping policy.
func Escape(text string) string {
	return escaper.Replace(text)
}

// EscapeIRI writes characters that may not appear between angle brackets as
// \uXXXX escapes. All of them are ASCII, so other bytes pass through as they
// are.
func EscapeIRI(uri string) string {
	if strings.IndexFunc(uri, iriForbidden) < 0 {
		return uri
	}
	var b strings.Builder
	for i := 0; i < len(uri); i++ {
		if c := uri[i]; iriForbidden(rune(c)) {
			fmt.Fprintf(&b, `\u%04X`, c)
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func iriForbidden(r rune) bool {
	if r <= 0x20 || r == 0x7F {
		return true
	}
	return strings.ContainsRune("<>\"{}|^`\\", r)
}

// Term renders a single node in wire form.
func Term(n *node.Node) string {
	switch n.Kind() {
	case node.KindLiteral:
		return `"` + Escape(n.Value()) + `"`
	case node.KindBlank:
		return n.Value()
	default:
		return "<" + EscapeIRI(n.Value()) + ">"
	}
}

// Format renders one triple as a line without the line terminator.
// Each term, the object included, is followed by one space.
func Format(s, p, o *node.Node) string {
	var b strings.Builder
	b.Grow(len(s.Value()) + len(p.Value()) + len(o.Value()) + 10)
	b.WriteString(Term(s))
	b.WriteByte(' ')
	b.WriteString(Term(p))
	b.WriteByte(' ')
	b.WriteString(Term(o))
	b.WriteByte(' ')
	return b.String()
}

// Unescape reverses Escape. It also accepts the wider N-Triples escape set
// understood by the decoder.
func Unescape(text string) (string, error) {
	if !strings.Contains(text, `\`) {
		return text, nil
	}
	lp := &lineParser{src: text, line: 1}
	var b strings.Builder
	for lp.pos < len(lp.src) {
		if lp.src[lp.pos] != '\\' {
			b.WriteByte(lp.src[lp.pos])
			lp.pos++
			continue
		}
		r, err := lp.escape()
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
