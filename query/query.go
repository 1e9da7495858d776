// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package query implements structural queries over relaxed JSON values.
//
// A query describes a syntactic substructure of a value tree, such as an
// object member, array element, or a path through the tree. Evaluating a query
// against a concrete value traverses the structure described by the query and
// returns the resulting value.
//
// The simplest query is for a "path", a sequence of object keys and/or array
// indices that describes a path from the root of a value. For example, given
// the value:
//
//	[{a: 1, b: 2}, {c: {d: yes}, e: no}]
//
// the query
//
//	query.Path(1, "c", "d")
//
// yields the string "yes".
//
// Queries operate on data only. Comments in the input are never selected,
// counted, or copied into a result.
package query

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/creachadair/rjson/ast"
)

// Eval evaluates the given query beginning from root, returning the resulting
// value or an error.
func Eval(root ast.Value, q Query) (ast.Value, error) {
	return q.eval(root)
}

// A Query describes a traversal of a relaxed JSON value.
type Query interface {
	eval(ast.Value) (ast.Value, error)
}

// Path traverses a sequence of nested object keys or array indices from the
// root.  If no keys are specified, the root is returned. Each key must be a
// string, an int, or a Query.
func Path(keys ...any) Query {
	if len(keys) == 1 {
		return pathElem(keys[0])
	}
	pq := make(Seq, 0, len(keys))
	for _, key := range keys {
		q := pathElem(key)
		if sq, ok := q.(Seq); ok {
			pq = append(pq, sq...)
		} else {
			pq = append(pq, q)
		}
	}
	return pq
}

func pathElem(key any) Query {
	switch t := key.(type) {
	case string:
		return objKey(t)
	case int:
		return nthQuery(t)
	case Query:
		return t
	default:
		panic(fmt.Sprintf("invalid path element %T", key))
	}
}

type objKey string

func (o objKey) eval(v ast.Value) (ast.Value, error) {
	obj, ok := v.(ast.Object)
	if !ok {
		return nil, fmt.Errorf("got %v, want object", ast.KindOf(v))
	}
	mem := obj.Find(string(o))
	if mem == nil {
		return nil, fmt.Errorf("key %q not found", o)
	}
	return mem.Value, nil
}

type nthQuery int

func (nq nthQuery) eval(v ast.Value) (ast.Value, error) {
	arr, ok := v.(ast.Array)
	if !ok {
		return nil, fmt.Errorf("got %v, want array", ast.KindOf(v))
	}
	elt, ok := arr.Index(int(nq))
	if !ok {
		return nil, fmt.Errorf("index %d out of range (0..%d)", nq, arr.Len())
	}
	return elt, nil
}

// elements returns the non-comment elements of v, which must be an array.
func elements(v ast.Value) (ast.Array, error) {
	arr, ok := v.(ast.Array)
	if !ok {
		return nil, fmt.Errorf("got %v, want array", ast.KindOf(v))
	}
	out := make(ast.Array, 0, len(arr))
	for _, elt := range arr {
		if ast.KindOf(elt) != ast.KindComment {
			out = append(out, elt)
		}
	}
	return out, nil
}

// Selection constructs an array of the elements of its input array, for which
// the specified function returns true.
type Selection func(ast.Value) bool

func (q Selection) eval(v ast.Value) (ast.Value, error) {
	elts, err := elements(v)
	if err != nil {
		return nil, err
	}
	out := ast.Array{}
	for _, elt := range elts {
		if q(elt) {
			out = append(out, elt)
		}
	}
	return out, nil
}

// Mapping constructs an array in which each value is replaced by the result of
// calling the specified function on the corresponding input value.
type Mapping func(ast.Value) ast.Value

func (q Mapping) eval(v ast.Value) (ast.Value, error) {
	elts, err := elements(v)
	if err != nil {
		return nil, err
	}
	for i, elt := range elts {
		elts[i] = q(elt)
	}
	return elts, nil
}

// Slice selects a slice of an array from offsets lo to hi.  The range includes
// lo but excludes hi. Negative offsets select from the end of the array.
// If hi == 0, the length of the array is used.
func Slice(lo, hi int) Query { return sliceQuery{lo, hi} }

type sliceQuery struct{ lo, hi int }

func (q sliceQuery) eval(v ast.Value) (ast.Value, error) {
	arr, err := elements(v)
	if err != nil {
		return nil, err
	}
	lox := q.lo
	if lox < 0 {
		lox += len(arr)
	}
	hix := q.hi
	if hix <= 0 {
		hix += len(arr)
	}
	if lox < 0 || lox >= len(arr) {
		return nil, fmt.Errorf("index %d out of range (0..%d)", q.lo, len(arr))
	} else if hix < 0 || hix > len(arr) {
		return nil, fmt.Errorf("index %d out of range (0..%d)", q.hi, len(arr))
	} else if lox > hix {
		return nil, fmt.Errorf("index start %d > end %d", q.lo, q.hi)
	}
	return arr[lox:hix], nil
}

// Pick constructs an array by picking the designated offsets from an array.
// Negative offsets select from the end of the input array.
func Pick(offsets ...int) Query { return pickQuery(offsets) }

type pickQuery []int

func (q pickQuery) eval(v ast.Value) (ast.Value, error) {
	arr, err := elements(v)
	if err != nil {
		return nil, err
	}
	out := make(ast.Array, 0, len(q))
	for _, off := range q {
		if off < 0 {
			off += len(arr)
		}
		if off < 0 || off >= len(arr) {
			return nil, fmt.Errorf("index %d out of range (0..%d)", off, len(arr))
		}
		out = append(out, arr[off])
	}
	return out, nil
}

// Len returns a number representing the length of the root.
//
// For an object, the length is the number of members.
// For an array, the length is the number of elements.
// For a string, the length is the length of the string in bytes.
// For null, the length is zero.
// Comments are not counted.
func Len() Query { return lenQuery{} }

type lenQuery struct{}

func (lenQuery) eval(v ast.Value) (ast.Value, error) {
	switch t := v.(type) {
	case ast.Object:
		return ast.Number(t.Len()), nil
	case ast.Array:
		return ast.Number(t.Len()), nil
	case ast.String:
		return ast.Number(t.Len()), nil
	case ast.Null, nil:
		return ast.Number(0), nil
	}
	return nil, fmt.Errorf("cannot take length of %v", ast.KindOf(v))
}

// Seq is a sequential composition of queries. An empty sequence selects the
// root; otherwise, each query is applied to the result selected by the
// previous query in the sequence.
type Seq []Query

func (q Seq) eval(v ast.Value) (ast.Value, error) {
	cur := v
	for _, sq := range q {
		next, err := sq.eval(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Alt is a query that selects among a sequence of alternatives.  The result of
// the first alternative that does not report an error is returned. If there
// are no alternatives, the query fails on all inputs.
type Alt []Query

func (q Alt) eval(v ast.Value) (ast.Value, error) {
	for _, alt := range q {
		if w, err := alt.eval(v); err == nil {
			return w, nil
		}
	}
	return nil, errors.New("no matching alternatives")
}

// Recur applies a query to each recursive descendant of its input and returns
// an array of the resulting values. The arguments have the same constraints as
// Path.
func Recur(keys ...any) Query { return recQuery{Path(keys...)} }

type recQuery struct{ Query }

func (q recQuery) eval(v ast.Value) (ast.Value, error) {
	var out ast.Array

	stk := []ast.Value{v}
	for len(stk) != 0 {
		next := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		if r, err := q.Query.eval(next); err == nil {
			out = append(out, r)
		}

		// N.B. Push in reverse order, so we visit in lexical order.
		switch t := next.(type) {
		case ast.Object:
			for i := len(t) - 1; i >= 0; i-- {
				if !t[i].IsComment() {
					stk = append(stk, t[i].Value)
				}
			}
		case ast.Array:
			for i := len(t) - 1; i >= 0; i-- {
				if ast.KindOf(t[i]) != ast.KindComment {
					stk = append(stk, t[i])
				}
			}
		}
	}

	if len(out) == 0 {
		return nil, errors.New("no matches")
	}
	return out, nil
}

// Each applies a query to each element of an array and returns an array of the
// resulting values. It fails if the input is not an array.  The arguments have
// the same constraints as Path.
func Each(keys ...any) Query { return eachQuery{Path(keys...)} }

type eachQuery struct{ Query }

func (q eachQuery) eval(v ast.Value) (ast.Value, error) {
	elts, err := elements(v)
	if err != nil {
		return nil, err
	}
	out := make(ast.Array, len(elts))
	for i, elt := range elts {
		v, err := q.Query.eval(elt)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Object constructs an object with the given keys mapped to the results of
// matching the query values against its input. The members of the result are
// ordered by key.
type Object map[string]Query

func (o Object) eval(v ast.Value) (ast.Value, error) {
	out := make(ast.Object, 0, len(o))
	for _, key := range slices.Sorted(maps.Keys(o)) {
		val, err := o[key].eval(v)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", key, err)
		}
		out = append(out, ast.Field(key, val))
	}
	return out, nil
}

// Array constructs an array with the values produced by matching the given
// queries against its input.
type Array []Query

func (a Array) eval(v ast.Value) (ast.Value, error) {
	out := make(ast.Array, len(a))
	for i, q := range a {
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = val
	}
	return out, nil
}

// A String query ignores its input and returns the given string.
func String(s string) Query { return Value(ast.NewString(s)) }

// A Number query ignores its input and returns the given number.
func Number(n float64) Query { return Value(ast.Number(n)) }

// A Null query ignores its input and returns a null value.
func Null() Query { return Value(ast.Null{}) }

// A Value query ignores its input and returns the given value, which must be
// acceptable to ast.ToValue.
func Value(v any) Query { return constQuery{ast.ToValue(v)} }

type constQuery struct{ ast.Value }

func (c constQuery) eval(_ ast.Value) (ast.Value, error) { return c.Value, nil }

// A Glob query returns an array of all the member values of an object, or all
// the elements of an array.
func Glob() Query { return globQuery{} }

type globQuery struct{}

func (globQuery) eval(v ast.Value) (ast.Value, error) {
	switch t := v.(type) {
	case ast.Object:
		out := make(ast.Array, 0, len(t))
		for _, m := range t {
			if !m.IsComment() {
				out = append(out, m.Value)
			}
		}
		return out, nil
	case ast.Array:
		return elements(t)
	default:
		return nil, errors.New("no matching values")
	}
}
