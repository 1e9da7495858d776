// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a document tree for relaxed JSON values, and a parser
// that constructs such trees from source text.
//
// A Value is one of Number, String, Comment, Object, Array, or Null. Use a
// type switch to dispatch on the concrete type:
//
//	switch t := v.(type) {
//	case ast.Object:
//	   for _, p := range t { ... }
//	case ast.String:
//	   fmt.Println(t.String())
//	...
//	}
//
// Comments are values: a comment inside an object is a Property with an empty
// name and a Comment value, and a comment inside an array is an element.
package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Value is an arbitrary relaxed JSON value.
// The concrete type is one of Number, String, Comment, Object, Array, or Null.
type Value interface {
	// Kind reports the variant of the value.
	Kind() Kind

	// JSON renders the value as canonical JSON. Comments are omitted.
	JSON() string

	// String renders a human-readable summary of the value.
	String() string

	isValue()
}

// Kind identifies the variant of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindObject
	KindArray
	KindComment
)

var kindStr = [...]string{
	KindNull:    "null",
	KindNumber:  "number",
	KindString:  "string",
	KindObject:  "object",
	KindArray:   "array",
	KindComment: "comment",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

// KindOf reports the kind of v. A nil Value is treated as null.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNull
	}
	return v.Kind()
}

// A Number is a numeric value.
type Number float64

func (Number) Kind() Kind { return KindNumber }

// JSON satisfies part of the Value interface. A non-finite number, which has
// no JSON representation, renders as null.
func (n Number) JSON() string { return string(appendNumber(nil, n)) }

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

// Float64 returns n as a float64.
func (n Number) Float64() float64 { return float64(n) }

// IsInt reports whether n is an integer value.
func (n Number) IsInt() bool {
	f := float64(n)
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

func (Number) isValue() {}

// A String is a string value. A String parsed from a quoted string without
// escapes, or from a bare word, borrows its text from the input.
type String struct{ Text }

// NewString returns a String holding s.
func NewString(s string) String { return String{OwnString(s)} }

func (String) Kind() Kind { return KindString }

// JSON satisfies part of the Value interface.
func (s String) JSON() string { return string(appendQuoted(nil, s.Text)) }

func (String) isValue() {}

// A Comment is the text of a line or block comment, without its comment
// markers and surrounding whitespace.
type Comment struct {
	Text
	Block bool // a block comment /* ... */, rather than a line comment
}

// NewComment returns a line comment holding s.
func NewComment(s string) Comment { return Comment{Text: OwnString(s)} }

// NewBlockComment returns a block comment holding s.
func NewBlockComment(s string) Comment { return Comment{Text: OwnString(s), Block: true} }

func (Comment) Kind() Kind { return KindComment }

// JSON satisfies part of the Value interface. Comments have no JSON
// representation, so a comment standing alone renders as null.
func (Comment) JSON() string { return "null" }

// Source renders c as comment source text, including its markers.
func (c Comment) Source() string { return string(appendComment(nil, c)) }

func (Comment) isValue() {}

// Null represents the null constant. It is also the value of a Property
// constructed without a value.
type Null struct{}

func (Null) Kind() Kind { return KindNull }

// JSON satisfies part of the Value interface.
func (Null) JSON() string { return "null" }

func (Null) String() string { return "null" }

func (Null) isValue() {}

// An Object is an ordered collection of properties. Keys need not be unique,
// and duplicate keys are preserved in order.
type Object []*Property

func (Object) Kind() Kind { return KindObject }

// JSON satisfies part of the Value interface.
func (o Object) JSON() string { return string(appendJSON(nil, o)) }

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", o.Len()) }

// Len reports the number of members of o, not counting comments.
func (o Object) Len() int {
	var n int
	for _, p := range o {
		if !p.IsComment() {
			n++
		}
	}
	return n
}

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Property {
	return o.FindKey(func(name Text) bool { return name.EqualString(key) })
}

// FindAll returns all the members of o with the given key, in order.
func (o Object) FindAll(key string) []*Property {
	var out []*Property
	for _, p := range o {
		if !p.IsComment() && p.Name.EqualString(key) {
			out = append(out, p)
		}
	}
	return out
}

// FindKey returns the first member of o for whose key f reports true, or nil.
// Comment members are not considered.
func (o Object) FindKey(f func(Text) bool) *Property {
	if i := o.IndexKey(f); i >= 0 {
		return o[i]
	}
	return nil
}

// IndexKey returns the index of the first member of o for whose key f reports
// true, or -1. Comment members are not considered.
func (o Object) IndexKey(f func(Text) bool) int {
	for i, p := range o {
		if !p.IsComment() && f(p.Name) {
			return i
		}
	}
	return -1
}

// Comments returns the standalone comments of o, in order.
func (o Object) Comments() []Comment {
	var out []Comment
	for _, p := range o {
		if p.IsComment() {
			out = append(out, p.Value.(Comment))
		}
	}
	return out
}

func (Object) isValue() {}

// An Array is an ordered sequence of values.
type Array []Value

func (Array) Kind() Kind { return KindArray }

// JSON satisfies part of the Value interface.
func (a Array) JSON() string { return string(appendJSON(nil, a)) }

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", a.Len()) }

// Len reports the number of elements of a, not counting comments.
func (a Array) Len() int {
	var n int
	for _, v := range a {
		if KindOf(v) != KindComment {
			n++
		}
	}
	return n
}

// Index returns the ith element of a that is not a comment, and reports
// whether it exists. Negative indices count backward from the end.
func (a Array) Index(i int) (Value, bool) {
	n := a.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, false
	}
	for _, v := range a {
		if KindOf(v) == KindComment {
			continue
		}
		if i == 0 {
			return v, true
		}
		i--
	}
	return nil, false
}

func (Array) isValue() {}

// ArrayOf constructs an array of values from the given elements, each of
// which must be acceptable to ToValue.
func ArrayOf[T any](vs ...T) Array {
	out := make(Array, len(vs))
	for i, v := range vs {
		out[i] = ToValue(v)
	}
	return out
}

// ToValue converts a string, int, float, nil, or Value into a Value.
// It panics if v does not have one of those types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case string:
		return NewString(t)
	case int:
		return Number(t)
	case int32:
		return Number(t)
	case int64:
		return Number(t)
	case uint:
		return Number(t)
	case uint32:
		return Number(t)
	case uint64:
		return Number(t)
	case float32:
		return Number(t)
	case float64:
		return Number(t)
	default:
		panic(fmt.Sprintf("invalid value %T", v))
	}
}

// summary abbreviates s for diagnostics.
func summary(s string) string {
	const maxLen = 24
	if len(s) <= maxLen {
		return s
	}
	return strings.TrimSpace(s[:maxLen]) + "..."
}
