package crawler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfstore/internal/graph"
	"github.com/roach88/rdfstore/internal/node"
	"github.com/roach88/rdfstore/internal/observe"
	"github.com/roach88/rdfstore/internal/testutil"
)

const (
	foaf = "http://xmlns.com/foaf/0.1/"
	base = "http://example.org/doc"
)

func crawlYAML(t *testing.T, src string, opts ...Option) (*graph.Graph, Stats) {
	t.Helper()
	doc, err := ParseYAML([]byte(src))
	require.NoError(t, err)
	g := graph.New()
	stats, err := Crawl(doc, g.Registry(), g, opts...)
	require.NoError(t, err)
	return g, stats
}

func res(g *graph.Graph, uri string) *node.Node { return g.Resource(uri) }

func TestCrawl_PersonGolden(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "person.yaml"))
	require.NoError(t, err)

	g := graph.New()
	stats, err := Crawl(doc, g.Registry(), g)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Elements)
	assert.Equal(t, 6, stats.Statements)

	gd := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	gd.Assert(t, "person", []byte(strings.Join(testutil.SortedLines(g), "\n")+"\n"))
}

func TestCrawl_CUEMatchesYAML(t *testing.T) {
	fromYAML, err := LoadFile(filepath.Join("testdata", "person.yaml"))
	require.NoError(t, err)
	fromCUE, err := LoadFile(filepath.Join("testdata", "person.cue"))
	require.NoError(t, err)
	assert.Equal(t, fromYAML.Base, fromCUE.Base)

	a, b := graph.New(), graph.New()
	_, err = Crawl(fromYAML, a.Registry(), a)
	require.NoError(t, err)
	_, err = Crawl(fromCUE, b.Registry(), b)
	require.NoError(t, err)
	assert.Equal(t, testutil.SortedLines(a), testutil.SortedLines(b))
}

func TestCrawl_Rev(t *testing.T) {
	g, _ := crawlYAML(t, `
base: http://example.org/doc
root:
  prefixes: {foaf: "http://xmlns.com/foaf/0.1/"}
  about: "#a"
  rev: foaf:knows
  href: "#b"
`)
	assert.True(t, g.HasAssertion(res(g, base+"#b"), res(g, foaf+"knows"), res(g, base+"#a")))
	assert.Equal(t, 1, g.Len())
}

func TestCrawl_IncompleteTriplesBothDirections(t *testing.T) {
	g, _ := crawlYAML(t, `
base: http://example.org/doc
root:
  prefixes: {ex: "http://example.org/ns#"}
  about: "#parent"
  rel: ex:child
  rev: ex:parent
  children:
    - name: p
      children:
        - about: "#kid"
`)
	parent, kid := res(g, base+"#parent"), res(g, base+"#kid")
	assert.True(t, g.HasAssertion(parent, res(g, "http://example.org/ns#child"), kid))
	assert.True(t, g.HasAssertion(kid, res(g, "http://example.org/ns#parent"), parent))
	assert.Equal(t, 2, g.Len(), "the skipped <p> passes the incomplete triples through")
}

func TestCrawl_IncompleteTriplesCompletedOnce(t *testing.T) {
	g, _ := crawlYAML(t, `
base: http://example.org/doc
root:
  prefixes: {ex: "http://example.org/ns#"}
  rel: ex:item
  children:
    - about: "#one"
      children:
        - about: "#nested"
    - about: "#two"
`)
	item := res(g, "http://example.org/ns#item")
	doc := res(g, base)
	assert.ElementsMatch(t, []*node.Node{res(g, base+"#one"), res(g, base+"#two")}, g.Objects(doc, item))
}

func TestCrawl_TypedElementWithoutSubjectIsBlank(t *testing.T) {
	g, _ := crawlYAML(t, `
base: http://example.org/doc
root:
  prefixes: {foaf: "http://xmlns.com/foaf/0.1/"}
  typeof: foaf:Person
  children:
    - property: foaf:name
      text: Dan
`)
	subject := g.Subject(res(g, foaf+"name"), g.Literal("Dan"))
	require.NotNil(t, subject)
	assert.True(t, subject.IsBlank())
	assert.True(t, g.HasAssertion(subject, res(g, RDFType), res(g, foaf+"Person")))
}

func TestCrawl_UnknownPrefixAndBareTerm(t *testing.T) {
	g, _ := crawlYAML(t, `
base: http://example.org/doc
root:
  children:
    - property: dc:title
      content: Title
    - rel: next
      href: "/page/2"
`)
	doc := res(g, base)
	assert.True(t, g.HasAssertion(doc, res(g, UndefinedNamespace+"title"), g.Literal("Title")))
	assert.True(t, g.HasAssertion(doc, res(g, UndefinedNamespace+"next"), res(g, "http://example.org/page/2")))
}

func TestCrawl_PrefixesAreScoped(t *testing.T) {
	g, _ := crawlYAML(t, `
base: http://example.org/doc
root:
  children:
    - prefixes: {ex: "http://example.org/ns#"}
      property: ex:a
      content: inner
    - property: ex:a
      content: sibling
`)
	doc := res(g, base)
	assert.True(t, g.HasAssertion(doc, res(g, "http://example.org/ns#a"), g.Literal("inner")))
	assert.True(t, g.HasAssertion(doc, res(g, UndefinedNamespace+"a"), g.Literal("sibling")))
}

func TestCrawl_StylesheetRelIgnored(t *testing.T) {
	g, _ := crawlYAML(t, `
base: http://example.org/doc
root:
  children:
    - name: link
      rel: stylesheet
      href: style.css
`)
	assert.Zero(t, g.Len())
}

func TestCrawl_SafeCURIEAndAbsoluteRefs(t *testing.T) {
	g, _ := crawlYAML(t, `
base: http://example.org/doc
root:
  prefixes: {ex: "http://example.org/ns#"}
  children:
    - about: "[ex:thing]"
      property: ex:label
      content: Thing
    - about: "urn:isbn:0451450523"
      property: ex:label
      content: Book
`)
	label := res(g, "http://example.org/ns#label")
	assert.True(t, g.HasAssertion(res(g, "http://example.org/ns#thing"), label, g.Literal("Thing")))
	assert.True(t, g.HasAssertion(res(g, "urn:isbn:0451450523"), label, g.Literal("Book")))
}

func TestCrawl_NormalizesToNFC(t *testing.T) {
	g, _ := crawlYAML(t, "base: http://example.org/doc\nroot:\n  property: title\n  content: \"Cafe\\u0301\"\n")

	obj := g.Object(res(g, base), res(g, UndefinedNamespace+"title"))
	require.NotNil(t, obj)
	assert.Equal(t, "Café", obj.Value())
}

func TestCrawl_PropertyWithElementChildrenSkipped(t *testing.T) {
	g, stats := crawlYAML(t, `
base: http://example.org/doc
root:
  property: title
  children:
    - name: b
      text: bold
`)
	assert.Zero(t, g.Len())
	assert.Equal(t, 1, stats.Skipped)
}

func TestCrawl_EmptyLiteralIgnored(t *testing.T) {
	g, _ := crawlYAML(t, `
base: http://example.org/doc
root:
  property: title
  text: "   "
`)
	assert.Zero(t, g.Len())
}

func TestCrawl_EmptyBaseUsesBlankDocument(t *testing.T) {
	g, _ := crawlYAML(t, `
root:
  property: title
  content: Untitled
`)
	subject := g.Subject(res(g, UndefinedNamespace+"title"), g.Literal("Untitled"))
	require.NotNil(t, subject)
	assert.True(t, subject.IsBlank())
}

func TestCrawl_RunsInOneBatch(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "person.yaml"))
	require.NoError(t, err)

	g := graph.New()
	rec := testutil.Recorder(t, g)
	_, err = Crawl(doc, g.Registry(), g)
	require.NoError(t, err)

	assert.Equal(t, 1, rec.Count(observe.EventBatchBegin))
	assert.Equal(t, 1, rec.Count(observe.EventBatchEnd))
	assert.Equal(t, 6, rec.Count(observe.EventAssert))
	assert.False(t, g.InBatch())
}

func TestCrawl_JoinsOpenBatch(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "person.yaml"))
	require.NoError(t, err)

	g := graph.New()
	g.BatchBegin()
	_, err = Crawl(doc, g.Registry(), g)
	require.NoError(t, err)
	assert.True(t, g.InBatch())
	g.BatchEnd()
}

func TestCrawl_MaxDepth(t *testing.T) {
	doc := &Document{Root: Element{Children: []Element{{Children: []Element{{}}}}}}
	g := graph.New()

	_, err := Crawl(doc, g.Registry(), g, WithMaxDepth(2))
	require.ErrorIs(t, err, ErrTooDeep)
	assert.False(t, g.InBatch())

	_, err = Crawl(doc, g.Registry(), g, WithMaxDepth(3))
	require.NoError(t, err)
}

func TestCrawl_NilDocument(t *testing.T) {
	g := graph.New()
	_, err := Crawl(nil, g.Registry(), g)
	require.Error(t, err)
}

func TestCrawl_RecrawlProducesMove(t *testing.T) {
	before, err := ParseYAML([]byte(`
base: http://example.org/doc
root:
  prefixes: {ex: "http://example.org/ns#"}
  about: "#a"
  rel: ex:owns
  href: "#thing"
`))
	require.NoError(t, err)

	g := graph.New()
	_, err = Crawl(before, g.Registry(), g)
	require.NoError(t, err)
	rec := testutil.Recorder(t, g)

	g.BatchBegin()
	g.Unassert(res(g, base+"#a"), res(g, "http://example.org/ns#owns"), res(g, base+"#thing"))
	after := *before
	after.Root.About = "#b"
	_, err = Crawl(&after, g.Registry(), g)
	require.NoError(t, err)
	g.BatchEnd()

	assert.Equal(t, 1, rec.Count(observe.EventMove))
}

func TestParseYAML_RejectsUnknownFields(t *testing.T) {
	_, err := ParseYAML([]byte("root:\n  aboot: \"#typo\"\n"))
	require.Error(t, err)
	assert.True(t, IsParseError(err))
	assert.Contains(t, err.Error(), "aboot")
}

func TestParseCUE_ReportsPosition(t *testing.T) {
	_, err := ParseCUE([]byte("root: {\n\tname: 1 & 2\n}\n"), "bad.cue")
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeParse, pe.Code)
	assert.True(t, pe.Pos.IsValid())
	assert.Equal(t, "bad.cue", pe.Pos.Filename())
}

func TestParseCUE_RejectsIncomplete(t *testing.T) {
	_, err := ParseCUE([]byte("root: name: string\n"), "open.cue")
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(txt, []byte("root: {}"), 0o644))

	_, err := LoadFile(txt)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeUnsupported, pe.Code)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeRead, pe.Code)
}

func TestExpandCURIE(t *testing.T) {
	prefixes := map[string]string{"foaf": foaf}
	tests := []struct {
		term, want string
	}{
		{"foaf:name", foaf + "name"},
		{"dc:title", UndefinedNamespace + "title"},
		{"next", UndefinedNamespace + "next"},
		{"http://example.org/p", "http://example.org/p"},
		{"urn:x:y", "urn:x:y"},
		{"foaf:", foaf + "foaf:"},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, expandCURIE(tt.term, prefixes))
		})
	}
}

func TestResolveRef(t *testing.T) {
	assert.Equal(t, base+"#x", resolveRef("#x", base, nil))
	assert.Equal(t, "http://example.org/other", resolveRef("other", base, nil))
	assert.Equal(t, "#x", resolveRef("#x", "", nil))
	assert.Equal(t, foaf+"me", resolveRef("[foaf:me]", base, map[string]string{"foaf": foaf}))
}
