package crawler

import (
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// UndefinedNamespace replaces prefixes that have no mapping in scope.
const UndefinedNamespace = "http://www.undefined.org#"

// RDFType is the predicate asserted for typeof values.
const RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// looksAbsolute reports whether term is already a full URI rather than a CURIE.
func looksAbsolute(term string) bool {
	return strings.Contains(term, "://") || strings.HasPrefix(term, "urn:")
}

// expandCURIE expands prefix:reference through prefixes. A term without a
// colon is appended to the undefined namespace whole.
func expandCURIE(term string, prefixes map[string]string) string {
	if looksAbsolute(term) {
		return normalize(term)
	}
	prefix, reference, found := strings.Cut(term, ":")
	ns, mapped := prefixes[prefix]
	if !found || !mapped {
		ns = UndefinedNamespace
	}
	if reference == "" {
		reference = term
	}
	return normalize(ns + reference)
}

// resolveRef resolves an about/src/resource/href value. Safe CURIEs
// ([prefix:reference]) are expanded; anything else is resolved against base.
func resolveRef(ref, base string, prefixes map[string]string) string {
	if strings.HasPrefix(ref, "[") && strings.HasSuffix(ref, "]") {
		return expandCURIE(ref[1:len(ref)-1], prefixes)
	}
	if base == "" || looksAbsolute(ref) {
		return normalize(ref)
	}
	b, err := url.Parse(base)
	if err != nil {
		return normalize(ref)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return normalize(ref)
	}
	return normalize(b.ResolveReference(r).String())
}

func normalize(s string) string {
	return norm.NFC.String(s)
}
