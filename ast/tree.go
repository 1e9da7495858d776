// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ast

import "fmt"

// KindError is reported when a value does not have the expected kind.
type KindError struct {
	Want, Got Kind
}

func (e *KindError) Error() string { return fmt.Sprintf("value is %v, not %v", e.Got, e.Want) }

// As returns v as a value of concrete type T, or reports a *KindError if v
// does not have that type.
func As[T Value](v Value) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		want := KindNull
		if any(zero) != nil {
			want = zero.Kind()
		}
		return zero, &KindError{Want: want, Got: KindOf(v)}
	}
	return t, nil
}

// Must returns v as a value of concrete type T. It panics if v does not have
// that type.
func Must[T Value](v Value) T {
	t, err := As[T](v)
	if err != nil {
		panic(err)
	}
	return t
}

// Clone returns a deep copy of v. Objects and arrays are copied recursively;
// text is copied in its current mode, so borrowed text in the copy refers to
// the same source buffer as the original.
func Clone(v Value) Value {
	switch t := v.(type) {
	case Object:
		out := make(Object, len(t))
		for i, p := range t {
			out[i] = p.Clone()
		}
		return out
	case Array:
		out := make(Array, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	default:
		return v
	}
}

// MaterializeAll copies all borrowed text in the tree rooted at v into owned
// storage, so that the tree no longer depends on the buffer it was parsed
// from. Objects and arrays are updated in place; the updated value of v is
// returned and the caller should store it in place of v.
func MaterializeAll(v Value) Value {
	switch t := v.(type) {
	case Object:
		for _, p := range t {
			p.Materialize()
		}
	case Array:
		for i, e := range t {
			t[i] = MaterializeAll(e)
		}
	case String:
		t.Materialize()
		return t
	case Comment:
		t.Materialize()
		return t
	}
	return v
}

// IsMaterialized reports whether the tree rooted at v contains no borrowed
// text.
func IsMaterialized(v Value) bool {
	switch t := v.(type) {
	case Object:
		for _, p := range t {
			if p.Name.IsBorrowed() || !IsMaterialized(p.Value) {
				return false
			}
		}
	case Array:
		for _, e := range t {
			if !IsMaterialized(e) {
				return false
			}
		}
	case String:
		return !t.IsBorrowed()
	case Comment:
		return !t.IsBorrowed()
	}
	return true
}

// Equal reports whether a and b are structurally equal. Text is compared by
// content regardless of mode, and a nil Value is equal to Null.
func Equal(a, b Value) bool {
	if KindOf(a) != KindOf(b) {
		return false
	}
	switch t := a.(type) {
	case Number:
		return t == b.(Number)
	case String:
		return t.Equal(b.(String).Text)
	case Comment:
		u := b.(Comment)
		return t.Block == u.Block && t.Equal(u.Text)
	case Object:
		u := b.(Object)
		if len(t) != len(u) {
			return false
		}
		for i, p := range t {
			if !p.Name.Equal(u[i].Name) || !Equal(p.Value, u[i].Value) {
				return false
			}
		}
		return true
	case Array:
		u := b.(Array)
		if len(t) != len(u) {
			return false
		}
		for i, e := range t {
			if !Equal(e, u[i]) {
				return false
			}
		}
		return true
	default:
		return true // null
	}
}

// Uncomment returns a copy of v with all comments removed. A comment standing
// alone becomes Null.
func Uncomment(v Value) Value {
	switch t := v.(type) {
	case Object:
		out := make(Object, 0, len(t))
		for _, p := range t {
			if !p.IsComment() {
				out = append(out, &Property{Name: p.Name, Value: Uncomment(p.Value)})
			}
		}
		return out
	case Array:
		out := make(Array, 0, len(t))
		for _, e := range t {
			if KindOf(e) != KindComment {
				out = append(out, Uncomment(e))
			}
		}
		return out
	case Comment:
		return Null{}
	case nil:
		return Null{}
	default:
		return v
	}
}
