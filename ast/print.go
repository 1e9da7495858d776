// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/rjson/internal/escape"
)

// appendJSON appends the canonical JSON encoding of v to buf.
// Strings and keys are quoted, members and elements are always separated by
// commas, and comments are omitted.
func appendJSON(buf []byte, v Value) []byte {
	switch t := v.(type) {
	case Object:
		buf = append(buf, '{')
		first := true
		for _, p := range t {
			if p.IsComment() {
				continue
			}
			if !first {
				buf = append(buf, ',')
			}
			first = false
			buf = appendMember(buf, p)
		}
		return append(buf, '}')
	case Array:
		buf = append(buf, '[')
		first := true
		for _, e := range t {
			if KindOf(e) == KindComment {
				continue
			}
			if !first {
				buf = append(buf, ',')
			}
			first = false
			buf = appendJSON(buf, e)
		}
		return append(buf, ']')
	case Number:
		return appendNumber(buf, t)
	case String:
		return appendQuoted(buf, t.Text)
	default:
		return append(buf, "null"...) // Null, Comment, or nil
	}
}

func appendMember(buf []byte, p *Property) []byte {
	buf = appendQuoted(buf, p.Name)
	buf = append(buf, ':')
	return appendJSON(buf, p.Value)
}

func appendNumber(buf []byte, n Number) []byte {
	f := float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return append(buf, "null"...)
	}
	return strconv.AppendFloat(buf, f, 'g', -1, 64)
}

func appendQuoted(buf []byte, t Text) []byte { return escape.AppendQuote(buf, t.RO()) }

// appendComment appends the source form of c to buf. A line comment is
// terminated by a newline. A line comment whose text spans multiple lines is
// rendered as a sequence of line comments.
func appendComment(buf []byte, c Comment) []byte {
	text := c.String()
	if c.Block && !strings.Contains(text, "*/") {
		buf = append(buf, "/* "...)
		buf = append(buf, text...)
		return append(buf, " */"...)
	}
	for line := range strings.Lines(text) {
		buf = append(buf, "// "...)
		buf = append(buf, strings.TrimRight(line, "\r\n")...)
		buf = append(buf, '\n')
	}
	if text == "" {
		buf = append(buf, "//\n"...)
	}
	return buf
}

// Relaxed renders v as relaxed source text that preserves comments.
// Strings and keys are quoted, and data members and elements are separated
// by commas. Parsing the result yields a value Equal to v, provided the text
// of each block comment does not contain "*/" and each line comment is a
// single line.
func Relaxed(v Value) string { return string(appendRelaxed(nil, v)) }

func appendRelaxed(buf []byte, v Value) []byte {
	switch t := v.(type) {
	case Object:
		buf = append(buf, '{')
		rest := t.Len()
		for _, p := range t {
			if p.IsComment() {
				buf = appendComment(buf, p.Value.(Comment))
				continue
			}
			buf = appendQuoted(buf, p.Name)
			buf = append(buf, ':')
			if KindOf(p.Value) == KindComment {
				buf = append(buf, "null"...) // a comment cannot stand as a member value
			} else {
				buf = appendRelaxed(buf, p.Value)
			}
			if rest--; rest > 0 {
				buf = append(buf, ',')
			}
		}
		return append(buf, '}')
	case Array:
		buf = append(buf, '[')
		rest := t.Len()
		for _, e := range t {
			if c, ok := e.(Comment); ok {
				buf = appendComment(buf, c)
				continue
			}
			buf = appendRelaxed(buf, e)
			if rest--; rest > 0 {
				buf = append(buf, ',')
			}
		}
		return append(buf, ']')
	case Comment:
		return appendComment(buf, t)
	default:
		return appendJSON(buf, v)
	}
}
