// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package rjson implements a scanner for relaxed JSON, a superset of JSON
// that permits comments, unquoted keys and words, and optional commas.
//
// # Scanning
//
// The Scanner type implements a lexical scanner over an in-memory input.
// Construct a scanner from a byte slice or string and call its Next method to
// iterate over the tokens. Next reports whether a token is available:
//
//	s := rjson.NewScanner(input)
//	for s.Next() {
//	   log.Printf("Next token: %v at %v", s.Token(), s.Location())
//	}
//
// Next returns false at the end of input and in case of error. Err reports
// nil in the former case:
//
//	if err := s.Err(); err != nil {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// The scanner does not copy its input. The text of each token is a view of
// the input buffer, and remains valid only as long as the buffer is not
// modified.
//
// # Errors
//
// Lexical and syntax errors have concrete type *SyntaxError, which reports
// the kind of failure along with its byte offset and line and column. Each
// ErrorKind is itself an error, so a caller may check for a particular kind
// using errors.Is:
//
//	if errors.Is(err, rjson.TrailingContent) {
//	   log.Print("Extra input after the value")
//	}
//
// The tree representation and the parser that constructs it are in package
// github.com/creachadair/rjson/ast.
package rjson
