// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"math"
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/creachadair/rjson/ast"
	"github.com/creachadair/rjson/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestText(t *testing.T) {
	buf := []byte(`{name: "Short Sword"}`)

	b := ast.Borrow(buf, 1, 5)
	if !b.IsBorrowed() {
		t.Error("Borrow: text is not borrowed")
	}
	if got := b.String(); got != "name" {
		t.Errorf("Borrow: got %q, want %q", got, "name")
	}
	if got, want := b.Span().String(), "1..5"; got != want {
		t.Errorf("Span: got %s, want %s", got, want)
	}

	o := ast.OwnString("name")
	if o.IsBorrowed() {
		t.Error("OwnString: text is borrowed")
	}
	if !b.Equal(o) || !o.Equal(b) {
		t.Error("Borrowed and owned text with the same content are not equal")
	}
	if b.Hash() != o.Hash() {
		t.Errorf("Hash: borrowed %x != owned %x", b.Hash(), o.Hash())
	}
	if b.Hash() == ast.OwnString("nam").Hash() {
		t.Error("Hash: text with different content has the same hash")
	}
	if b.Equal(ast.OwnString("nam")) {
		t.Error("Text with different content is equal")
	}

	// Modifying the source buffer shows through a borrowed view, but not
	// through one that has been materialized.
	m := b
	m.Materialize()
	if m.IsBorrowed() {
		t.Error("Materialize: text is still borrowed")
	}
	m.Materialize() // idempotent
	copy(buf[1:], "NAME")
	if got := b.String(); got != "NAME" {
		t.Errorf("Borrowed after write: got %q, want %q", got, "NAME")
	}
	if got := m.String(); got != "name" {
		t.Errorf("Materialized after write: got %q, want %q", got, "name")
	}

	// Own copies its argument.
	raw := []byte("abc")
	own := ast.Own(raw)
	raw[0] = 'X'
	if got := own.String(); got != "abc" {
		t.Errorf("Own after write: got %q, want %q", got, "abc")
	}

	// Append never writes to the source buffer.
	src := []byte("abcdef")
	a := ast.Borrow(src, 0, 3)
	a.Append('!', '?')
	if a.IsBorrowed() {
		t.Error("Append: text is still borrowed")
	}
	if got := a.String(); got != "abc!?" {
		t.Errorf("Append: got %q, want %q", got, "abc!?")
	}
	if got := string(src); got != "abcdef" {
		t.Errorf("Append modified the source: got %q", got)
	}

	a.Set("")
	if !a.IsEmpty() || a.Len() != 0 {
		t.Errorf("Set: got %q, want empty", a.String())
	}

	var zero ast.Text
	if zero.IsBorrowed() || !zero.IsEmpty() || !zero.Span().IsZero() {
		t.Error("Zero text is not empty and owned")
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		input ast.Value
		want  ast.Kind
		json  string
	}{
		{nil, ast.KindNull, ""},
		{ast.Null{}, ast.KindNull, "null"},
		{ast.Number(2.5), ast.KindNumber, "2.5"},
		{ast.Number(math.Inf(1)), ast.KindNumber, "null"},
		{ast.NewString("a\tb"), ast.KindString, `"a\tb"`},
		{ast.NewComment("hello"), ast.KindComment, "null"},
		{ast.Object{ast.Field("x", 1)}, ast.KindObject, `{"x":1}`},
		{ast.ArrayOf(1, 2), ast.KindArray, "[1,2]"},
	}
	for _, tc := range tests {
		if got := ast.KindOf(tc.input); got != tc.want {
			t.Errorf("KindOf(%v): got %v, want %v", tc.input, got, tc.want)
		}
		if tc.input == nil {
			continue
		}
		if got := tc.input.JSON(); got != tc.json {
			t.Errorf("JSON(%v): got %#q, want %#q", tc.input, got, tc.json)
		}
	}
	if got := ast.Kind(99).String(); got != "Kind(99)" {
		t.Errorf("Unknown kind: got %q", got)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		input ast.Number
		isInt bool
		str   string
	}{
		{0, true, "0"},
		{-17, true, "-17"},
		{3.5, false, "3.5"},
		{1e21, true, "1e+21"},
		{ast.Number(math.Inf(-1)), false, "-Inf"},
	}
	for _, tc := range tests {
		if got := tc.input.IsInt(); got != tc.isInt {
			t.Errorf("IsInt(%v): got %v, want %v", tc.input, got, tc.isInt)
		}
		if got := tc.input.String(); got != tc.str {
			t.Errorf("String(%v): got %q, want %q", float64(tc.input), got, tc.str)
		}
	}
}

func TestObject(t *testing.T) {
	obj := ast.Object{
		ast.CommentMember(ast.NewComment("header")),
		ast.Field("a", 1),
		ast.Field("b", "two"),
		ast.CommentMember(ast.NewBlockComment("middle")),
		ast.Field("a", 3),
	}
	if got := obj.Len(); got != 3 {
		t.Errorf("Len: got %d, want 3", got)
	}
	if p := obj.Find("a"); p == nil {
		t.Error(`Find "a": not found`)
	} else if p.Value != ast.Number(1) {
		t.Errorf(`Find "a": got %v, want 1`, p.Value)
	}
	if p := obj.Find(""); p != nil {
		t.Errorf(`Find "": got %v, want nil`, p)
	}
	if p := obj.Find("nonesuch"); p != nil {
		t.Errorf(`Find "nonesuch": got %v, want nil`, p)
	}
	if got := obj.FindAll("a"); len(got) != 2 || got[1].Value != ast.Number(3) {
		t.Errorf(`FindAll "a": got %v, want two members`, got)
	}
	if got := obj.IndexKey(func(k ast.Text) bool { return k.EqualString("b") }); got != 2 {
		t.Errorf(`IndexKey "b": got %d, want 2`, got)
	}

	wantComments := []ast.Comment{ast.NewComment("header"), ast.NewBlockComment("middle")}
	if diff := cmp.Diff(wantComments, obj.Comments(), testutil.CmpOptions); diff != "" {
		t.Errorf("Comments (-want, +got):\n%s", diff)
	}
	if got, want := obj.JSON(), `{"a":1,"b":"two","a":3}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
	if got, want := obj.String(), "Object(len=3)"; got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}

func TestArray(t *testing.T) {
	arr := ast.Array{
		ast.NewComment("first"),
		ast.Number(1),
		ast.NewString("b"),
		ast.NewBlockComment("between"),
		ast.Null{},
	}
	if got := arr.Len(); got != 3 {
		t.Errorf("Len: got %d, want 3", got)
	}
	tests := []struct {
		index int
		want  ast.Value
		ok    bool
	}{
		{0, ast.Number(1), true},
		{1, ast.NewString("b"), true},
		{2, ast.Null{}, true},
		{3, nil, false},
		{-1, ast.Null{}, true},
		{-3, ast.Number(1), true},
		{-4, nil, false},
	}
	for _, tc := range tests {
		got, ok := arr.Index(tc.index)
		if ok != tc.ok {
			t.Errorf("Index(%d): got ok=%v, want %v", tc.index, ok, tc.ok)
		}
		if diff := cmp.Diff(tc.want, got, testutil.CmpOptions); diff != "" {
			t.Errorf("Index(%d) (-want, +got):\n%s", tc.index, diff)
		}
	}
	if got, want := arr.JSON(), `[1,"b",null]`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
}

func TestProperty(t *testing.T) {
	p := ast.NewProperty(ast.OwnString("k"), nil)
	if _, ok := p.Value.(ast.Null); !ok {
		t.Errorf("NewProperty with nil: got %T, want Null", p.Value)
	}
	p.SetValue(ast.NewString("v"))
	p.SetName(ast.OwnString("key"))
	if got, want := p.JSON(), `"key":"v"`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
	p.SetValue(nil)
	if got, want := p.JSON(), `"key":null`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
	if p.IsComment() {
		t.Error("Data member reports IsComment")
	}

	c := ast.CommentMember(ast.NewComment("note"))
	if !c.IsComment() {
		t.Error("Comment member does not report IsComment")
	}
	if got, want := c.String(), `Property(comment="note")`; got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}

	// A named member whose value happens to be a comment is not a comment member.
	named := ast.NewProperty(ast.OwnString("x"), ast.NewComment("odd"))
	if named.IsComment() {
		t.Error("Named member reports IsComment")
	}
}

func TestToValue(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		tests := []struct {
			input any
			want  ast.Value
		}{
			{nil, ast.Null{}},
			{"foo", ast.NewString("foo")},
			{int(-3), ast.Number(-3)},
			{int64(12), ast.Number(12)},
			{uint32(7), ast.Number(7)},
			{float32(0.5), ast.Number(0.5)},
			{2.25, ast.Number(2.25)},
			{ast.Null{}, ast.Null{}},
			{ast.ArrayOf("a"), ast.Array{ast.NewString("a")}},
		}
		for _, tc := range tests {
			got := ast.ToValue(tc.input)
			if diff := cmp.Diff(tc.want, got, testutil.CmpOptions); diff != "" {
				t.Errorf("ToValue(%v) (-want, +got):\n%s", tc.input, diff)
			}
		}
	})
	t.Run("Invalid", func(t *testing.T) {
		mtest.MustPanic(t, func() { ast.ToValue([]bool{true}) })
		mtest.MustPanic(t, func() { ast.ToValue(func() {}) })
		mtest.MustPanic(t, func() { ast.ToValue(make(chan struct{})) })
	})
}

func TestAs(t *testing.T) {
	var v ast.Value = ast.Number(5)

	n, err := ast.As[ast.Number](v)
	if err != nil || n != 5 {
		t.Errorf("As[Number]: got %v, %v; want 5, nil", n, err)
	}

	_, err = ast.As[ast.String](v)
	var kerr *ast.KindError
	if !errors.As(err, &kerr) {
		t.Fatalf("As[String]: got %v, want *KindError", err)
	}
	if kerr.Want != ast.KindString || kerr.Got != ast.KindNumber {
		t.Errorf("As[String]: got %+v", kerr)
	}
	if got, want := err.Error(), "value is number, not string"; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}

	if got := ast.Must[ast.Number](v); got != 5 {
		t.Errorf("Must[Number]: got %v, want 5", got)
	}
	mtest.MustPanic(t, func() { ast.Must[ast.Object](v) })
	mtest.MustPanic(t, func() { ast.Must[ast.Array](nil) })
}

func TestEqual(t *testing.T) {
	a := testutil.MustParse(t, `{x: [1, "two", null], y: {z: /* c */ 3}}`)
	b := ast.Object{
		ast.Field("x", ast.Array{ast.Number(1), ast.NewString("two"), ast.Null{}}),
		ast.Field("y", ast.Object{
			ast.CommentMember(ast.NewBlockComment("c")),
			ast.Field("z", 3),
		}),
	}
	if !ast.Equal(a, b) {
		t.Errorf("Equal: got false for\n%s\n%s", ast.Relaxed(a), ast.Relaxed(b))
	}
	if !ast.Equal(nil, ast.Null{}) {
		t.Error("Equal(nil, Null): got false")
	}

	c := ast.Clone(b).(ast.Object)
	c.Find("x").Value.(ast.Array)[0] = ast.Number(100)
	if ast.Equal(b, c) {
		t.Error("Equal: modified clone is equal to original")
	}
	if got := b.Find("x").Value.(ast.Array)[0]; got != ast.Number(1) {
		t.Errorf("Modifying clone changed original: got %v", got)
	}

	for _, tc := range [][2]ast.Value{
		{ast.Number(1), ast.NewString("1")},
		{ast.NewComment("a"), ast.NewBlockComment("a")},
		{ast.ArrayOf(1, 2), ast.ArrayOf(1)},
		{ast.Object{ast.Field("a", 1)}, ast.Object{ast.Field("b", 1)}},
	} {
		if ast.Equal(tc[0], tc[1]) {
			t.Errorf("Equal(%v, %v): got true, want false", tc[0], tc[1])
		}
	}
}

func TestUncomment(t *testing.T) {
	v := testutil.MustParse(t, `{
  // a note
  list: [1, /* one */ 2]
  tail: 3 // done
}`)
	got := ast.Uncomment(v)
	want := ast.Object{
		ast.Field("list", ast.ArrayOf(1, 2)),
		ast.Field("tail", 3),
	}
	if diff := cmp.Diff(want, got, testutil.CmpOptions); diff != "" {
		t.Errorf("Uncomment (-want, +got):\n%s", diff)
	}
	if ast.KindOf(ast.Uncomment(ast.NewComment("x"))) != ast.KindNull {
		t.Error("Uncomment of a comment is not null")
	}
}

func TestCommentSource(t *testing.T) {
	tests := []struct {
		input ast.Comment
		want  string
	}{
		{ast.NewComment("hello"), "// hello\n"},
		{ast.NewComment(""), "//\n"},
		{ast.NewComment("two\nlines"), "// two\n// lines\n"},
		{ast.NewBlockComment("block"), "/* block */"},
		{ast.NewBlockComment("a */ b"), "// a */ b\n"},
	}
	for _, tc := range tests {
		if got := tc.input.Source(); got != tc.want {
			t.Errorf("Source(%q): got %#q, want %#q", tc.input.String(), got, tc.want)
		}
	}
}
