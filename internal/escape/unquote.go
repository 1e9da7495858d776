// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of string values.
package escape

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// An Error reports an invalid escape sequence at a byte offset relative to
// the start of the input passed to Unquote.
type Error struct {
	Offset  int
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s (offset %d)", e.Message, e.Offset) }

// Unquote decodes the body of a quoted string. The input must have the
// enclosing double quotation marks already removed.
//
// The recognized escapes are \" \\ \/ \b \f \n \r \t and \uXXXX. A \u escape
// for a high surrogate followed by a \u escape for a low surrogate decodes to
// a single rune; an unpaired surrogate decodes to the Unicode replacement
// rune. Any other escape is reported as an *Error.
func Unquote(src mem.RO) ([]byte, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(make([]byte, 0, src.Len()), src), nil
	}

	dec := make([]byte, 0, src.Len())
	base := 0 // offset of src relative to the original input
	for i >= 0 {
		dec = mem.Append(dec, src.SliceTo(i))
		at := base + i
		src = src.SliceFrom(i + 1)
		base = at + 1
		if src.Len() == 0 {
			return nil, &Error{Offset: at, Message: "incomplete escape sequence"}
		}

		c := src.At(0)
		src, base = src.SliceFrom(1), base+1
		switch c {
		case '"', '\\', '/':
			dec = append(dec, c)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, ok := parseHex4(src)
			if !ok {
				return nil, &Error{Offset: at, Message: "invalid Unicode escape"}
			}
			src, base = src.SliceFrom(4), base+4
			if utf16.IsSurrogate(r) {
				if lo, ok := lowSurrogate(src); ok {
					if pr := utf16.DecodeRune(r, lo); pr != utf8.RuneError {
						r = pr
						src, base = src.SliceFrom(6), base+6
					}
				}
				if utf16.IsSurrogate(r) {
					r = utf8.RuneError
				}
			}
			dec = utf8.AppendRune(dec, r)
		default:
			return nil, &Error{Offset: at, Message: fmt.Sprintf("invalid %q after escape", c)}
		}

		// Look for the next escape sequence. If there is none, we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
	}
	return mem.Append(dec, src), nil
}

// ValidEscape reports the length in bytes of the escape sequence at the front
// of src, which must begin just after a backslash. It returns 0 if src does
// not begin with a valid escape.
func ValidEscape(src mem.RO) int {
	if src.Len() == 0 {
		return 0
	}
	switch src.At(0) {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return 1
	case 'u':
		if _, ok := parseHex4(src.SliceFrom(1)); ok {
			return 5
		}
	}
	return 0
}

// lowSurrogate reports whether src begins with a \u escape denoting a UTF-16
// low surrogate, and if so returns its value.
func lowSurrogate(src mem.RO) (rune, bool) {
	if src.Len() < 6 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, false
	}
	r, ok := parseHex4(src.SliceFrom(2))
	return r, ok && r >= 0xdc00 && r <= 0xdfff
}

// parseHex4 decodes exactly four hexadecimal digits from the front of src.
func parseHex4(src mem.RO) (rune, bool) {
	if src.Len() < 4 {
		return 0, false
	}
	var v rune
	for i := 0; i < 4; i++ {
		b := src.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
