// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package rjson

import (
	"errors"
	"strconv"
	"strings"

	"github.com/creachadair/rjson/internal/escape"

	"go4.org/mem"
)

// Token is the type of a lexical token in the relaxed grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid  Token = iota // invalid token
	LBrace                // left brace "{"
	RBrace                // right brace "}"
	LSquare               // left square bracket "["
	RSquare               // right square bracket "]"
	Comma                 // comma ","
	Colon                 // colon ":"
	String                // quoted string
	BareWord              // unquoted word
	Number                // number

	BlockComment // comment: /* ... */
	LineComment  // comment: // ... to end of line

	EOF // end of input
)

var tokenStr = [...]string{
	Invalid:  "invalid token",
	LBrace:   `"{"`,
	RBrace:   `"}"`,
	LSquare:  `"["`,
	RSquare:  `"]"`,
	Comma:    `","`,
	Colon:    `":"`,
	String:   "string",
	BareWord: "bare word",
	Number:   "number",

	BlockComment: "block comment",
	LineComment:  "line comment",

	EOF: "end of input",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// IsComment reports whether t is a line or block comment.
func (t Token) IsComment() bool { return t == LineComment || t == BlockComment }

// A Scanner reads lexical tokens from an in-memory input. Each call to Next
// advances the scanner to the next token, or reports an error.
//
// A Scanner does not copy its input: the text of each token is a view of the
// input buffer.
type Scanner struct {
	src mem.RO
	tok Token
	err error

	pos, end int     // start and end offsets of current token
	esc      bool    // current string token contains escapes
	num      float64 // value of current number token

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from src.
// The scanner does not copy src, and the caller must not modify it while the
// scanner or any view obtained from it is in use.
func NewScanner(src []byte) *Scanner { return &Scanner{src: mem.B(src)} }

// NewScannerString constructs a new lexical scanner that consumes input from
// the string src.
func NewScannerString(src string) *Scanner { return &Scanner{src: mem.S(src)} }

// Next advances s to the next token of the input, and reports whether a token
// is available. At the end of input, or in case of error, Next returns false.
// Use Err to distinguish these cases.
func (s *Scanner) Next() bool {
	s.err = nil
	s.tok = Invalid
	s.esc = false
	s.num = 0

	// Discard whitespace.
	for s.end < s.src.Len() && isSpace(s.src.At(s.end)) {
		s.advance(1)
	}
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
	if s.end >= s.src.Len() {
		s.tok = EOF
		return false
	}

	ch := s.src.At(s.end)

	// Handle punctuation.
	if t, ok := selfDelim(ch); ok {
		s.advance(1)
		s.tok = t
		return true
	}

	switch {
	case ch == '"':
		return s.scanString()
	case s.atComment(s.end):
		return s.scanComment()
	case s.atNumber(s.end):
		return s.scanNumber()
	default:
		s.advance(s.wordEnd(s.end) - s.end)
		s.tok = BareWord
		return true
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next. It returns nil if the scanner
// has simply reached the end of its input. A non-nil error has concrete type
// *SyntaxError.
func (s *Scanner) Err() error { return s.err }

// Text returns a view of the undecoded text of the current token.
func (s *Scanner) Text() mem.RO { return s.src.Slice(s.pos, s.end) }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() []byte { return mem.Append(nil, s.Text()) }

// Escaped reports whether the current token is a string containing at least
// one escape sequence.
func (s *Scanner) Escaped() bool { return s.esc }

// Float64 returns the value of the current number token, or 0 if the current
// token is not a number.
func (s *Scanner) Float64() float64 { return s.num }

// Unquote returns the decoded contents of the current string token. If the
// string contains escape sequences, the result is a fresh copy; otherwise it
// is a view of the input. A non-nil error has concrete type *SyntaxError.
func (s *Scanner) Unquote() (mem.RO, error) {
	if s.tok != String {
		lc := LineCol{Line: s.pline + 1, Column: s.pcol}
		return mem.RO{}, NewSyntaxError(UnexpectedToken, s.pos, lc, "got %v, want string", s.tok)
	}
	body := s.src.Slice(s.pos+1, s.end-1)
	if !s.esc {
		return body, nil
	}
	dec, err := escape.Unquote(body)
	if err != nil {
		off := s.pos + 1
		var eerr *escape.Error
		if errors.As(err, &eerr) {
			off += eerr.Offset
		}
		return mem.RO{}, NewSyntaxError(InvalidEscape, off, s.lineColAt(off), "%v", err)
	}
	return mem.B(dec), nil
}

// lineColAt returns the line and column of offset off, which must lie within
// the current token.
func (s *Scanner) lineColAt(off int) LineCol {
	line, col := s.pline, s.pcol
	for i := s.pos; i < off; i++ {
		if s.src.At(i) == '\n' {
			line, col = line+1, 0
		} else {
			col++
		}
	}
	return LineCol{Line: line + 1, Column: col}
}

// StringSpan returns the span of the contents of the current string token,
// without its quotation marks.
func (s *Scanner) StringSpan() Span { return Span{Pos: s.pos + 1, End: s.end - 1} }

// Body returns the span of the text of the current comment token, excluding
// its comment markers and any surrounding whitespace.
func (s *Scanner) Body() Span {
	lo, hi := s.pos+2, s.end
	if s.tok == BlockComment {
		hi -= 2
	}
	for lo < hi && isSpace(s.src.At(lo)) {
		lo++
	}
	for hi > lo && isSpace(s.src.At(hi-1)) {
		hi--
	}
	return Span{Pos: lo, End: hi}
}

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

// Input returns a view of the complete input of s.
func (s *Scanner) Input() mem.RO { return s.src }

func (s *Scanner) scanString() bool {
	s.advance(1) // open quote
	for s.end < s.src.Len() {
		switch s.src.At(s.end) {
		case '"':
			s.advance(1)
			s.tok = String
			return true
		case '\\':
			if s.end+1 >= s.src.Len() {
				return s.failStart(UnterminatedString, "missing closing quote")
			}
			n := escape.ValidEscape(s.src.SliceFrom(s.end + 1))
			if n == 0 {
				return s.failHere(InvalidEscape, "invalid escape %q", escapeText(s.src.SliceFrom(s.end)))
			}
			s.esc = true
			s.advance(n + 1)
		default:
			s.advance(1)
		}
	}
	return s.failStart(UnterminatedString, "missing closing quote")
}

func (s *Scanner) scanComment() bool {
	if s.src.At(s.end+1) == '/' {
		i := mem.IndexByte(s.src.SliceFrom(s.end), '\n')
		if i < 0 {
			i = s.src.Len() - s.end
		}
		s.advance(i)
		s.tok = LineComment
		return true
	}

	i := mem.Index(s.src.SliceFrom(s.end+2), mem.S("*/"))
	if i < 0 {
		return s.failStart(UnterminatedComment, "missing */")
	}
	s.advance(i + 4)
	s.tok = BlockComment
	return true
}

func (s *Scanner) scanNumber() bool {
	end := s.wordEnd(s.end)
	text := s.src.Slice(s.end, end)
	if !isNumberText(text) {
		return s.failStart(InvalidNumber, "malformed number %q", text.StringCopy())
	}
	v, err := mem.ParseFloat(text, 64)
	if err != nil {
		var nerr *strconv.NumError
		if errors.As(err, &nerr) {
			err = nerr.Err
		}
		return s.failStart(InvalidNumber, "number %q: %v", text.StringCopy(), err)
	}
	s.advance(end - s.end)
	s.num = v
	s.tok = Number
	return true
}

// advance moves the end of the current token forward n bytes, updating the
// line and column offsets.
func (s *Scanner) advance(n int) {
	for i := 0; i < n; i++ {
		if s.src.At(s.end) == '\n' {
			s.eline++
			s.ecol = 0
		} else {
			s.ecol++
		}
		s.end++
	}
}

// wordEnd returns the offset of the end of the maximal bare word beginning at
// offset i of the input.
func (s *Scanner) wordEnd(i int) int {
	for i < s.src.Len() {
		ch := s.src.At(i)
		if isSpace(ch) || isWordDelim(ch) || s.atComment(i) {
			break
		}
		i++
	}
	return i
}

// atComment reports whether a comment marker begins at offset i.
func (s *Scanner) atComment(i int) bool {
	if i+1 >= s.src.Len() || s.src.At(i) != '/' {
		return false
	}
	next := s.src.At(i + 1)
	return next == '/' || next == '*'
}

// atNumber reports whether a number lexeme begins at offset i.
func (s *Scanner) atNumber(i int) bool {
	ch := s.src.At(i)
	if ch == '-' || ch == '+' {
		return i+1 < s.src.Len() && isDigit(s.src.At(i+1))
	}
	return isDigit(ch)
}

func (s *Scanner) setErr(err *SyntaxError) bool {
	s.err = err
	s.tok = Invalid
	return false
}

// failStart reports an error at the start of the current token.
func (s *Scanner) failStart(kind ErrorKind, msg string, args ...any) bool {
	lc := LineCol{Line: s.pline + 1, Column: s.pcol}
	return s.setErr(NewSyntaxError(kind, s.pos, lc, msg, args...))
}

// failHere reports an error at the current scan position.
func (s *Scanner) failHere(kind ErrorKind, msg string, args ...any) bool {
	lc := LineCol{Line: s.eline + 1, Column: s.ecol}
	return s.setErr(NewSyntaxError(kind, s.end, lc, msg, args...))
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isWordDelim(ch byte) bool { return strings.IndexByte(`{}[]:,"`, ch) >= 0 }

// isNumberText reports whether text has the form
//
//	[+-]? digit+ ("." digit+)? ([eE] [+-]? digit+)?
func isNumberText(text mem.RO) bool {
	i, n := 0, text.Len()
	digits := func() int {
		start := i
		for i < n && isDigit(text.At(i)) {
			i++
		}
		return i - start
	}
	if i < n && (text.At(i) == '-' || text.At(i) == '+') {
		i++
	}
	if digits() == 0 {
		return false
	}
	if i < n && text.At(i) == '.' {
		i++
		if digits() == 0 {
			return false
		}
	}
	if i < n && (text.At(i) == 'e' || text.At(i) == 'E') {
		i++
		if i < n && (text.At(i) == '-' || text.At(i) == '+') {
			i++
		}
		if digits() == 0 {
			return false
		}
	}
	return i == n
}

// escapeText returns a short prefix of src for use in diagnostics.
func escapeText(src mem.RO) string {
	if src.Len() > 6 {
		src = src.SliceTo(6)
	}
	return src.StringCopy()
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
