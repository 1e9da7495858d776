// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package query

import "github.com/creachadair/rjson/ast"

// The selections and mappings in this file apply to the elements of an array.
// Comment elements are dropped before the function is called, so a selection
// never matches a comment and a mapping never sees one.

// Exists returns a selection that keeps the elements for which the path
// described by keys resolves. The keys have the same constraints as Path.
func Exists(keys ...any) Selection {
	q := Path(keys...)
	return func(v ast.Value) bool {
		_, err := q.eval(v)
		return err == nil
	}
}

// Is returns a selection that keeps the elements of concrete type T.
// Is[ast.Comment] selects nothing.
func Is[T ast.Value]() Selection {
	return func(v ast.Value) bool { _, err := ast.As[T](v); return err == nil }
}

// IsNot returns a selection that keeps the elements not of concrete type T.
func IsNot[T ast.Value]() Selection {
	return func(v ast.Value) bool { _, err := ast.As[T](v); return err != nil }
}

// Map returns a mapping that replaces each element of type T by the result of
// f. Elements of other types are kept as they are.
func Map[T, U ast.Value](f func(T) U) Mapping {
	return func(v ast.Value) ast.Value {
		if w, err := ast.As[T](v); err == nil {
			return f(w)
		}
		return v
	}
}

// Filter returns a selection that keeps the elements of type T for which f
// reports true. Elements of other types are discarded.
func Filter[T ast.Value](f func(T) bool) Selection {
	return func(v ast.Value) bool {
		w, err := ast.As[T](v)
		return err == nil && f(w)
	}
}
