// Package crawler extracts triples from an RDFa-annotated document tree.
//
// Documents are plain element trees loaded from YAML or CUE. Each Element
// carries the RDFa attributes (about, src, resource, href, rel, rev, property,
// typeof, content) plus its prefix declarations and text. Crawl walks the tree
// depth first, carrying an evaluation context from parent to child, and asserts
// the triples the annotations imply:
//
//   - typeof yields rdf:type triples for the element's subject
//   - rel and rev link the subject and the current object resource
//   - rel or rev without an object resource leave incomplete triples that the
//     next descendant with a subject completes
//   - property yields a plain literal from content, or from text when the
//     element has no children
//
// Terms written as CURIEs are expanded through the prefixes in scope; an
// unknown prefix expands to http://www.undefined.org#. All URIs and literal
// text are NFC-normalized before interning.
//
// The whole traversal runs inside one batch on the sink, so observers of a
// graph being re-crawled see move and change events rather than only raw
// asserts.
package crawler
