// Package graph implements the triple store: an indexed set of
// (subject, predicate, object) triples with observer notification and
// batched semantic change inference.
//
// QUERY GUIDE:
//
//	YOU HAVE        YOU WANT             USE
//	s p o           existence            HasAssertion
//	s p             some object exists   HasObject
//	p o             some subject exists  HasSubject
//	s p             object(s)            Object / Objects
//	p o             subject(s)           Subject / Subjects
//	s               predicates           ArcsOut
//	p (no s role)   objects              ArcsOut
//	o               pointing resources   ArcsIn
//
// Multi-element results are unordered sets. Their order follows map iteration
// and carries no meaning.
//
// BATCHES:
//
// Between BatchBegin and BatchEnd every first-time assertion is mirrored into
// an "added" shadow graph and every effective removal into a "removed" shadow
// graph. At BatchEnd observers receive OnBatchEnd and then the diff engine
// infers semantic events from the shadows:
//   - removed (s,p,o) and added (s2,p,o) with s2 != s: OnMove(s, s2, p, o)
//   - removed (s,p,o) and added (s,p,o2) with o2 != o: OnChange(s, p, o, o2)
//
// When several candidates qualify, which one is reported is unspecified.
//
// CONCURRENCY:
//
// A Graph is not synchronized. Everything runs synchronously on the caller's
// goroutine and observers are invoked inline. Serialize access per Graph
// externally, e.g. with one mutex per Graph.
package graph
