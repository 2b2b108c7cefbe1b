package annotation

import (
	"go/scanner"
	"go/token"
	"reflect"
	"strconv"
	"strings"
)

// ignoreShorthand marks a field ignored, following the json:"-" convention.
const ignoreShorthand = "-"

// FromTag looks up TagKey in tag and parses it. A missing key yields the zero
// FieldAnnotation.
func FromTag(tag reflect.StructTag) (FieldAnnotation, error) {
	text, ok := tag.Lookup(TagKey)
	if !ok {
		return FieldAnnotation{}, nil
	}

	return Parse(text)
}

// Parse parses the annotation text of one field.
func Parse(text string) (FieldAnnotation, error) {
	var a FieldAnnotation

	if strings.TrimSpace(text) == ignoreShorthand {
		a.Ignore = true
		return a, nil
	}

	toks, err := tokenize(text)
	if err != nil {
		return FieldAnnotation{}, err
	}

	p := &parser{toks: toks, end: len(text)}
	for !p.done() {
		if err := p.entry(&a); err != nil {
			return FieldAnnotation{}, err
		}

		if p.done() {
			break
		}

		if p.peek().tok != token.COMMA {
			t := p.peek()
			return FieldAnnotation{}, syntaxError(t.offset, "expected `,` between entries, found %s", t.describe())
		}

		p.next()
	}

	return a, nil
}

type lexeme struct {
	tok    token.Token
	lit    string
	offset int
}

func (l lexeme) describe() string {
	if l.lit != "" {
		return "`" + l.lit + "`"
	}

	return "`" + l.tok.String() + "`"
}

func tokenize(text string) ([]lexeme, error) {
	src := []byte(text)
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var firstErr *Error

	var s scanner.Scanner
	s.Init(file, src, func(pos token.Position, msg string) {
		if firstErr == nil {
			firstErr = syntaxError(pos.Offset, "%s", msg)
		}
	}, 0)

	var toks []lexeme

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		// The scanner inserts a semicolon at end of input after identifiers
		// and literals.
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}

		toks = append(toks, lexeme{tok: tok, lit: lit, offset: file.Offset(pos)})
	}

	if firstErr != nil {
		return nil, firstErr
	}

	return toks, nil
}

type parser struct {
	toks []lexeme
	pos  int
	end  int
}

func (p *parser) done() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) peek() lexeme {
	if p.done() {
		return lexeme{tok: token.EOF, offset: p.end}
	}

	return p.toks[p.pos]
}

func (p *parser) next() lexeme {
	t := p.peek()
	if !p.done() {
		p.pos++
	}

	return t
}

// atEntryEnd reports whether the current entry's value is complete.
func (p *parser) atEntryEnd() bool {
	return p.done() || p.peek().tok == token.COMMA
}

func (p *parser) entry(a *FieldAnnotation) error {
	name := p.next()
	if name.tok != token.IDENT {
		return syntaxError(name.offset, "expected a key, found %s", name.describe())
	}

	key, ok := lookupKey(name.lit)
	if !ok {
		return unknownKeyError(name.lit, name.offset)
	}

	switch key {
	case KeyRename:
		value, err := p.renameValue(name)
		if err != nil {
			return err
		}

		a.Rename = &value

	case KeyDisplay:
		ref, err := p.displayValue(name)
		if err != nil {
			return err
		}

		a.Display = &ref

	case KeyIgnore:
		if p.peek().tok == token.ASSIGN {
			return unexpectedValueError(key, p.peek().offset)
		}

		a.Ignore = true
	}

	return nil
}

func (p *parser) renameValue(name lexeme) (string, error) {
	if p.next().tok != token.ASSIGN {
		return "", malformedValueError(KeyRename, name.offset)
	}

	lit := p.next()
	if lit.tok != token.STRING || !p.atEntryEnd() {
		return "", malformedValueError(KeyRename, lit.offset)
	}

	value, err := strconv.Unquote(lit.lit)
	if err != nil {
		return "", malformedValueError(KeyRename, lit.offset)
	}

	return value, nil
}

func (p *parser) displayValue(name lexeme) (FuncRef, error) {
	if p.next().tok != token.ASSIGN {
		return FuncRef{}, malformedValueError(KeyDisplay, name.offset)
	}

	first := p.next()
	if first.tok != token.IDENT {
		return FuncRef{}, malformedValueError(KeyDisplay, first.offset)
	}

	ref := FuncRef{Segments: []string{first.lit}}

	for p.peek().tok == token.PERIOD {
		p.next()

		seg := p.next()
		if seg.tok != token.IDENT {
			return FuncRef{}, malformedValueError(KeyDisplay, seg.offset)
		}

		ref.Segments = append(ref.Segments, seg.lit)
	}

	if !p.atEntryEnd() {
		return FuncRef{}, malformedValueError(KeyDisplay, p.peek().offset)
	}

	return ref, nil
}
