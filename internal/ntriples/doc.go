// Package ntriples reads and writes the line-oriented triple text format used
// by graph serialization.
//
// # Output
//
// One triple per line, each term followed by a single space (trailing
// spaces are not shown below):
//
//	<ex:a> <ex:knows> <ex:b>
//	<ex:a> <ex:age> "30"
//	_:b1 <ex:name> "anonymous"
//
// Blank nodes are written in their native _:label form. Lines carry no " ."
// terminator and are joined with "\n" without a trailing newline.
//
// # Literal escaping
//
// Backslash, double quote, line feed and carriage return are escaped as \\,
// \", \n and \r. Nothing else is escaped. The decoder additionally accepts \t,
// \b, \f, \' and the \uXXXX / \UXXXXXXXX forms of standard N-Triples.
//
// Literal text is otherwise written byte for byte. The decoder copies bytes
// the same way, so a literal holding invalid UTF-8 reads back unchanged.
//
// # IRI escaping
//
// Inside angle brackets, space, control characters and <, >, ", {, }, |, ^,
// ` and \ are written as \uXXXX. The decoder resolves \uXXXX and \UXXXXXXXX
// in IRIs and rejects any other escape.
//
// # Input
//
// The Decoder accepts its own output as well as standard N-Triples: the " ."
// terminator is optional, blank lines and # comments are skipped. Language
// tags and datatypes are rejected because the store models plain literals
// only.
package ntriples
