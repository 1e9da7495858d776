// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package jwcc converts relaxed JSON trees to JSON With Commas and Comments
// (JWCC), as defined by
// https://nigeltao.github.io/blog/2021/json-with-commas-comments.html
//
// The conversion quotes all keys and strings and attaches each comment to the
// value that follows it, so that the result can be formatted or standardized
// with the HuJSON library.
package jwcc

import (
	"bytes"
	"io"

	"github.com/creachadair/rjson/ast"
	"github.com/tailscale/hujson"
)

// Encode converts v into an equivalent HuJSON value. Standalone comments in
// objects and arrays become comments preceding the next member or element,
// or trailing comments of the enclosing container.
func Encode(v ast.Value) hujson.Value { return encodeValue(v, nil) }

// EncodeDocument converts d into an equivalent HuJSON value, including the
// comments before and after its value.
func EncodeDocument(d *ast.Document) hujson.Value {
	var before, after hujson.Extra
	for _, c := range d.Before {
		before = appendComment(before, c)
	}
	for _, c := range d.After {
		after = appendComment(after, c)
	}
	hv := encodeValue(d.Value, before)
	hv.AfterExtra = after
	return hv
}

// Format renders a pretty-printed JWCC representation of v to w.
func Format(w io.Writer, v ast.Value) error {
	hv := Encode(v)
	hv.Format()
	_, err := w.Write(hv.Pack())
	return err
}

// FormatToString formats v to a string with default settings.
// In case of error in formatting, it returns an empty string.
func FormatToString(v ast.Value) string {
	var buf bytes.Buffer
	if Format(&buf, v) != nil {
		return ""
	}
	return buf.String()
}

// Standardize renders v as standard JSON, with comments and trailing commas
// removed. The result is equivalent to v.JSON() up to whitespace.
func Standardize(v ast.Value) []byte {
	hv := Encode(v)
	hv.Standardize()
	return hv.Pack()
}

// Decode converts a HuJSON value into a relaxed JSON tree. The result owns
// all its text and does not depend on hv.
func Decode(hv hujson.Value) (ast.Value, error) {
	v, err := ast.Parse(hv.Pack())
	if err != nil {
		return nil, err
	}
	return ast.MaterializeAll(v), nil
}

func encodeValue(v ast.Value, before hujson.Extra) hujson.Value {
	out := hujson.Value{BeforeExtra: before}
	switch t := v.(type) {
	case ast.Object:
		obj := new(hujson.Object)
		var pending hujson.Extra
		for _, p := range t {
			if p.IsComment() {
				pending = appendComment(pending, p.Value.(ast.Comment))
				continue
			}
			obj.Members = append(obj.Members, hujson.ObjectMember{
				Name:  hujson.Value{BeforeExtra: pending, Value: hujson.Literal(ast.String{Text: p.Name}.JSON())},
				Value: encodeValue(p.Value, nil),
			})
			pending = nil
		}
		obj.AfterExtra = pending
		out.Value = obj

	case ast.Array:
		arr := new(hujson.Array)
		var pending hujson.Extra
		for _, e := range t {
			if c, ok := e.(ast.Comment); ok {
				pending = appendComment(pending, c)
				continue
			}
			arr.Elements = append(arr.Elements, encodeValue(e, pending))
			pending = nil
		}
		arr.AfterExtra = pending
		out.Value = arr

	case ast.Number, ast.String:
		out.Value = hujson.Literal(t.JSON()) // non-finite numbers render as null

	case ast.Comment:
		// A comment in value position decorates a null.
		out.BeforeExtra = appendComment(out.BeforeExtra, t)
		out.Value = hujson.Literal("null")

	default:
		out.Value = hujson.Literal("null")
	}
	return out
}
