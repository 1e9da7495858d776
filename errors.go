// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package rjson

import "fmt"

// ErrorKind classifies the syntax errors reported by the scanner and parser.
// An ErrorKind is itself an error, so callers may test for a particular kind
// of failure with errors.Is:
//
//	if errors.Is(err, rjson.EmptyInput) { ... }
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	UnterminatedString   ErrorKind = iota + 1 // quoted string not closed
	InvalidEscape                             // unknown or malformed \-escape
	UnterminatedComment                       // block comment not closed
	InvalidNumber                             // malformed numeric lexeme
	UnexpectedToken                           // token cannot continue the production
	UnexpectedEndOfInput                      // input ended mid-construct
	TrailingContent                           // input remains after a complete value
	EmptyInput                                // no value present
	NestingTooDeep                            // container nesting exceeds the limit
)

var kindStr = [...]string{
	0:                    "unknown error",
	UnterminatedString:   "unterminated string",
	InvalidEscape:        "invalid escape",
	UnterminatedComment:  "unterminated comment",
	InvalidNumber:        "invalid number",
	UnexpectedToken:      "unexpected token",
	UnexpectedEndOfInput: "unexpected end of input",
	TrailingContent:      "trailing content",
	EmptyInput:           "empty input",
	NestingTooDeep:       "nesting too deep",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// SyntaxError is the concrete type of errors reported by the scanner and the
// parser. The first failure in an input aborts processing, so a parse reports
// at most one SyntaxError.
type SyntaxError struct {
	Kind     ErrorKind
	Offset   int     // byte offset of the failure, 0-based
	Location LineCol // line and column of Offset
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	if s.Message == "" {
		return fmt.Sprintf("at %s: %s", s.Location, s.Kind)
	}
	return fmt.Sprintf("at %s: %s: %s", s.Location, s.Kind, s.Message)
}

// Unwrap supports error wrapping. It reports the Kind of s, along with the
// underlying cause if there is one.
func (s *SyntaxError) Unwrap() []error {
	if s.err != nil {
		return []error{s.Kind, s.err}
	}
	return []error{s.Kind}
}

// NewSyntaxError constructs a *SyntaxError of the given kind at loc, with a
// message formatted from msg and args. If one of args is an error, it is
// recorded as the cause of the new error.
func NewSyntaxError(kind ErrorKind, offset int, loc LineCol, msg string, args ...any) *SyntaxError {
	var cause error
	for _, arg := range args {
		if e, ok := arg.(error); ok {
			cause = e
			break
		}
	}
	return &SyntaxError{
		Kind:     kind,
		Offset:   offset,
		Location: loc,
		Message:  fmt.Sprintf(msg, args...),
		err:      cause,
	}
}
