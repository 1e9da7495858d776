// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"github.com/creachadair/rjson"

	"go4.org/mem"
)

// Text is a string of bytes that either borrows a span of an external input
// buffer or owns its own storage.
//
// A borrowed Text is a view of the buffer it was parsed from: it does not
// copy, and its contents are only meaningful as long as that buffer is not
// modified or reused. Call Materialize (or MaterializeAll on a tree) to copy
// the contents into independent storage before releasing the buffer.
//
// A Text can be promoted from borrowed to owned, but never the reverse.
// The zero value is an empty owned Text.
type Text struct {
	ro       mem.RO
	span     rjson.Span // source span, zero for programmatic text
	borrowed bool
}

// Borrow returns a Text that views buf[pos:end] without copying.
// The caller must not modify that span of buf while the Text is in use.
func Borrow(buf []byte, pos, end int) Text { return borrowed(mem.B(buf), pos, end) }

// BorrowString returns a Text that views s[pos:end] without copying.
func BorrowString(s string, pos, end int) Text { return borrowed(mem.S(s), pos, end) }

func borrowed(src mem.RO, pos, end int) Text {
	return Text{ro: src.Slice(pos, end), span: rjson.Span{Pos: pos, End: end}, borrowed: true}
}

// Own returns a Text that holds a copy of b.
func Own(b []byte) Text { return Text{ro: mem.S(string(b))} }

// OwnString returns a Text that holds s.
func OwnString(s string) Text { return Text{ro: mem.S(s)} }

// Materialize copies the contents of a borrowed t into storage owned by t.
// If t is already owned, Materialize does nothing.
func (t *Text) Materialize() {
	if t.borrowed {
		t.ro = mem.S(t.ro.StringCopy())
		t.borrowed = false
	}
}

// Set replaces the contents of t with s. Afterward, t is owned.
func (t *Text) Set(s string) { *t = Text{ro: mem.S(s)} }

// Append appends bs to the contents of t. A borrowed t is materialized before
// it is modified, so the source buffer is never written.
func (t *Text) Append(bs ...byte) {
	buf := make([]byte, 0, t.ro.Len()+len(bs))
	buf = append(mem.Append(buf, t.ro), bs...)
	t.ro = mem.S(string(buf))
	t.borrowed = false
}

// IsBorrowed reports whether t is a view of an external buffer.
func (t Text) IsBorrowed() bool { return t.borrowed }

// IsEmpty reports whether t has no content.
func (t Text) IsEmpty() bool { return t.ro.Len() == 0 }

// Len reports the length of t in bytes.
func (t Text) Len() int { return t.ro.Len() }

// Span reports the span of source text t was parsed from. For a string that
// contained escapes, this is the span of the undecoded text. Programmatic
// text reports a zero span.
func (t Text) Span() rjson.Span { return t.span }

// RO returns a read-only view of the contents of t.
func (t Text) RO() mem.RO { return t.ro }

// Bytes returns a copy of the contents of t.
func (t Text) Bytes() []byte { return mem.Append(nil, t.ro) }

// String returns the contents of t as a string.
func (t Text) String() string { return t.ro.StringCopy() }

// Equal reports whether t and u have the same contents, regardless of whether
// either is borrowed.
func (t Text) Equal(u Text) bool { return t.ro.Equal(u.ro) }

// EqualString reports whether the contents of t equal s.
func (t Text) EqualString(s string) bool { return t.ro.Equal(mem.S(s)) }

// Hash returns a hash of the contents of t. Texts that are Equal have equal
// hashes. Hash values are stable only within a single process.
func (t Text) Hash() uint64 { return t.ro.MapHash() }
