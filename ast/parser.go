// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"unicode/utf16"

	"github.com/creachadair/rjson"

	"go4.org/mem"
)

// DefaultMaxDepth is the default limit on the nesting depth of objects and
// arrays accepted by a Parser.
const DefaultMaxDepth = 512

// Parse parses and returns a single value from src. Comments before or after
// the value are discarded; use ParseDocument to keep them. In case of error,
// the returned error has concrete type *rjson.SyntaxError.
//
// Strings without escapes, bare words, keys, and comments in the result
// borrow their text from src. The caller must not modify src while the result
// is in use, or must call MaterializeAll first.
func Parse(src []byte) (Value, error) { return NewParser(src).Parse() }

// ParseString parses and returns a single value from src. It is equivalent
// to Parse, but text in the result borrows from the string src.
func ParseString(src string) (Value, error) { return NewParserString(src).Parse() }

// ParseRunes parses and returns a single value from a sequence of runes.
// The input is transcoded to UTF-8, and offsets in errors refer to the
// transcoded text.
func ParseRunes(src []rune) (Value, error) { return ParseString(string(src)) }

// ParseUTF16 parses and returns a single value from a sequence of UTF-16 code
// units. The input is transcoded to UTF-8, and offsets in errors refer to the
// transcoded text.
func ParseUTF16(src []uint16) (Value, error) { return ParseString(string(utf16.Decode(src))) }

// ParseDocument parses a single value from src, keeping any comments that
// occur before or after the value.
func ParseDocument(src []byte) (*Document, error) { return NewParser(src).ParseDocument() }

// A Document is a single value together with the comments that surround it
// in the source.
type Document struct {
	Before []Comment // comments before the value
	Value  Value
	After  []Comment // comments after the value
}

// A Parser parses relaxed JSON source text into a Value.
type Parser struct {
	newScanner func() *rjson.Scanner
	maxDepth   int

	sc    *rjson.Scanner
	depth int
}

// NewParser constructs a parser that reads from src. The parser does not
// copy src.
func NewParser(src []byte) *Parser {
	return &Parser{
		newScanner: func() *rjson.Scanner { return rjson.NewScanner(src) },
		maxDepth:   DefaultMaxDepth,
	}
}

// NewParserString constructs a parser that reads from src.
func NewParserString(src string) *Parser {
	return &Parser{
		newScanner: func() *rjson.Scanner { return rjson.NewScannerString(src) },
		maxDepth:   DefaultMaxDepth,
	}
}

// SetMaxDepth sets the maximum nesting depth of objects and arrays that p
// will accept. If n <= 0, the limit is reset to DefaultMaxDepth. Input that
// nests more deeply fails with rjson.NestingTooDeep.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// Parse parses a single value from the input, discarding any comments that
// occur outside the value.
func (p *Parser) Parse() (Value, error) {
	doc, err := p.ParseDocument()
	if err != nil {
		return nil, err
	}
	return doc.Value, nil
}

// ParseDocument parses a single value from the input, keeping any comments
// that occur before or after the value. If the input contains only comments,
// the first comment is the value and the rest follow it.
//
// It reports an error of kind rjson.EmptyInput if the input is empty or
// contains only whitespace, or rjson.TrailingContent if any input other than
// comments remains after the value.
func (p *Parser) ParseDocument() (_ *Document, err error) {
	defer p.recoverParseError(&err)

	p.sc = p.newScanner()
	p.depth = 0

	doc := new(Document)
	p.next()
	doc.Before = p.comments()
	if p.tok() == rjson.EOF {
		if len(doc.Before) == 0 {
			p.fail(rjson.EmptyInput, "no value found")
		}
		doc.Value, doc.After, doc.Before = doc.Before[0], doc.Before[1:], nil
		if len(doc.After) == 0 {
			doc.After = nil
		}
		return doc, nil
	}
	doc.Value = p.parseValue()
	p.nextTrailing()
	for p.tok().IsComment() {
		doc.After = append(doc.After, p.comment())
		p.nextTrailing()
	}
	if p.tok() != rjson.EOF {
		p.fail(rjson.TrailingContent, "unexpected %v after value", p.tok())
	}
	return doc, nil
}

func (p *Parser) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		if err, ok := perr.(*rjson.SyntaxError); ok {
			*errp = err
			return
		}
		panic(perr)
	}
}

// parseValue consumes a single value of any type.
// Precondition: the current token begins the value.
// Postcondition: the current token ends the value.
func (p *Parser) parseValue() Value {
	switch tok := p.tok(); tok {
	case rjson.LBrace:
		return p.parseObject()
	case rjson.LSquare:
		return p.parseArray()
	case rjson.String:
		return String{p.stringText()}
	case rjson.Number:
		return Number(p.sc.Float64())
	case rjson.BareWord:
		if p.sc.Text().Equal(mem.S("null")) {
			return Null{}
		}
		return String{p.borrow(p.sc.Span())}
	case rjson.LineComment, rjson.BlockComment:
		return p.comment()
	case rjson.EOF:
		p.fail(rjson.UnexpectedEndOfInput, "expected value")
	default:
		p.fail(rjson.UnexpectedToken, "unexpected %v", tok)
	}
	panic("unreachable")
}

// parseObject consumes zero or more object members and comments.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (p *Parser) parseObject() Object {
	p.enter()
	defer p.leave()

	obj := Object{}
	p.next()
	for {
		switch tok := p.tok(); tok {
		case rjson.RBrace:
			return obj // end of object
		case rjson.LineComment, rjson.BlockComment:
			obj = append(obj, CommentMember(p.comment()))
		case rjson.String, rjson.BareWord, rjson.Number:
			obj = p.parseMember(obj)
		case rjson.EOF:
			p.fail(rjson.UnexpectedEndOfInput, "expected member or %v", rjson.RBrace)
		default:
			p.fail(rjson.UnexpectedToken, "expected member or %v, got %v", rjson.RBrace, tok)
		}

		// A comma separator is optional. If one is present and the next token
		// closes the object, the object ends with a trailing comma.
		if p.next(); p.tok() == rjson.Comma {
			p.next()
		}
	}
}

// parseMember consumes a single key: value member and appends it to obj.
// Comments between the key and the value are appended to obj ahead of the
// member.
// Precondition: token is a string, bare word, or number.
// Postcondition: the current token ends the value of the member.
func (p *Parser) parseMember(obj Object) Object {
	key := p.keyText()

	p.next()
	obj = p.hoistComments(obj)
	switch tok := p.tok(); tok {
	case rjson.Colon:
		// OK
	case rjson.EOF:
		p.fail(rjson.UnexpectedEndOfInput, "expected %v after key", rjson.Colon)
	default:
		p.fail(rjson.UnexpectedToken, "expected %v after key, got %v", rjson.Colon, tok)
	}

	p.next()
	obj = p.hoistComments(obj)
	return append(obj, &Property{Name: key, Value: p.parseValue()})
}

// parseArray consumes zero or more array elements.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (p *Parser) parseArray() Array {
	p.enter()
	defer p.leave()

	arr := Array{}
	p.next()
	for {
		switch tok := p.tok(); tok {
		case rjson.RSquare:
			return arr // end of array
		case rjson.EOF:
			p.fail(rjson.UnexpectedEndOfInput, "expected value or %v", rjson.RSquare)
		case rjson.Comma, rjson.Colon, rjson.RBrace:
			p.fail(rjson.UnexpectedToken, "expected value or %v, got %v", rjson.RSquare, tok)
		default:
			arr = append(arr, p.parseValue())
		}

		if p.next(); p.tok() == rjson.Comma {
			p.next()
		}
	}
}

// hoistComments appends comment members to obj for each comment token at the
// current position.
func (p *Parser) hoistComments(obj Object) Object {
	for p.tok().IsComment() {
		obj = append(obj, CommentMember(p.comment()))
		p.next()
	}
	return obj
}

// comments consumes and returns consecutive comments at the current position.
func (p *Parser) comments() []Comment {
	var out []Comment
	for p.tok().IsComment() {
		out = append(out, p.comment())
		p.next()
	}
	return out
}

func (p *Parser) comment() Comment {
	return Comment{Text: p.borrow(p.sc.Body()), Block: p.tok() == rjson.BlockComment}
}

// keyText returns the text of the current token as an object key.
func (p *Parser) keyText() Text {
	if p.tok() == rjson.String {
		return p.stringText()
	}
	return p.borrow(p.sc.Span())
}

// stringText returns the decoded contents of the current string token.
// The result borrows from the input unless the string contains escapes.
func (p *Parser) stringText() Text {
	sp := p.sc.StringSpan()
	if !p.sc.Escaped() {
		return p.borrow(sp)
	}
	dec, err := p.sc.Unquote()
	if err != nil {
		panic(err)
	}
	return Text{ro: dec, span: sp}
}

func (p *Parser) borrow(sp rjson.Span) Text { return borrowed(p.sc.Input(), sp.Pos, sp.End) }

func (p *Parser) tok() rjson.Token { return p.sc.Token() }

// next advances the scanner to the next token. At the end of input the
// current token is rjson.EOF; a lexical error aborts the parse.
func (p *Parser) next() {
	if !p.sc.Next() {
		if err := p.sc.Err(); err != nil {
			panic(err)
		}
	}
}

// nextTrailing advances the scanner past the end of the value. Any input that
// does not scan as a token is reported as trailing content at its start.
func (p *Parser) nextTrailing() {
	if !p.sc.Next() {
		if serr, ok := p.sc.Err().(*rjson.SyntaxError); ok {
			p.fail(rjson.TrailingContent, "%s after value", serr.Kind.String())
		}
	}
}

func (p *Parser) enter() {
	if p.depth++; p.depth > p.maxDepth {
		p.fail(rjson.NestingTooDeep, "nesting depth exceeds %d", p.maxDepth)
	}
}

func (p *Parser) leave() { p.depth-- }

// fail aborts the parse with an error of the given kind at the start of the
// current token.
func (p *Parser) fail(kind rjson.ErrorKind, msg string, args ...any) {
	loc := p.sc.Location()
	panic(rjson.NewSyntaxError(kind, loc.Pos, loc.First, msg, args...))
}
