// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ast

import "fmt"

// A Property is a single name-value member of an Object. A property owns its
// name and value; properties do not share values with one another.
//
// A standalone comment inside an object is represented as a Property with an
// empty name and a Comment value.
type Property struct {
	Name  Text
	Value Value
}

// NewProperty constructs a property with the given name and value.
// If v == nil, the value is Null.
func NewProperty(name Text, v Value) *Property {
	if v == nil {
		v = Null{}
	}
	return &Property{Name: name, Value: v}
}

// Field constructs an object member with the given key and value.
// The value must be acceptable to ToValue.
func Field(key string, value any) *Property {
	return &Property{Name: OwnString(key), Value: ToValue(value)}
}

// CommentMember constructs a standalone comment member for an object.
func CommentMember(c Comment) *Property { return &Property{Value: c} }

// SetName replaces the name of p.
func (p *Property) SetName(name Text) { p.Name = name }

// SetValue replaces the value of p. If v == nil, the value becomes Null.
func (p *Property) SetValue(v Value) {
	if v == nil {
		v = Null{}
	}
	p.Value = v
}

// IsComment reports whether p is a standalone comment member.
func (p *Property) IsComment() bool {
	_, ok := p.Value.(Comment)
	return ok && p.Name.IsEmpty()
}

// Clone returns a deep copy of p. Text in the copy keeps the same mode as in
// p, so a copy of a borrowed name or value still depends on the source buffer.
func (p *Property) Clone() *Property {
	return &Property{Name: p.Name, Value: Clone(p.Value)}
}

// Materialize copies any borrowed text in p or its value into owned storage.
func (p *Property) Materialize() {
	p.Name.Materialize()
	p.Value = MaterializeAll(p.Value)
}

// JSON renders p as a canonical JSON "key":value pair.
func (p *Property) JSON() string { return string(appendMember(nil, p)) }

func (p *Property) String() string {
	if p.IsComment() {
		return fmt.Sprintf("Property(comment=%q)", summary(p.Value.(Comment).String()))
	}
	return fmt.Sprintf("Property(name=%q)", summary(p.Name.String()))
}
