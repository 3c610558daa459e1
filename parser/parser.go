// This file is part of kokos - https://github.com/atmatm9182/kokos
//
// Copyright 2024 The kokos authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parser builds kokos expression trees from a token stream.
//
// The parser is a recursive descent over the s-expression grammar
// with one token of lookahead. Parse errors abort the current
// top-level form only; the caller may keep reading (the REPL does).
package parser

import "github.com/atmatm9182/kokos/lexer"

// Parser reads expressions from a Lexer.
type Parser struct {
	lex  *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
	// have flags track whether cur/peek hold real tokens; the zero
	// Token is a valid LPAREN otherwise.
	haveCur  bool
	havePeek bool
}

// New returns a Parser reading from lex.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur, p.haveCur = p.peek, p.havePeek
	p.peek, p.havePeek = p.lex.Next()
}

// Next parses and returns one top-level expression, or nil with a nil
// error at end of input. The returned error, if any, is a *Error.
func (p *Parser) Next() (*Expr, error) {
	if !p.haveCur {
		return nil, nil
	}
	return p.expr()
}

// Program parses all remaining top-level expressions.
func (p *Parser) Program() ([]*Expr, error) {
	var prog []*Expr
	for {
		e, err := p.Next()
		if err != nil {
			return prog, err
		}
		if e == nil {
			return prog, nil
		}
		prog = append(prog, e)
	}
}

func (p *Parser) expr() (*Expr, error) {
	cur := p.cur

	switch cur.Type {
	case lexer.INT_LIT:
		p.advance()
		return &Expr{Token: cur, Kind: IntLit}, nil
	case lexer.FLOAT_LIT:
		p.advance()
		return &Expr{Token: cur, Kind: FloatLit}, nil
	case lexer.STR_LIT:
		p.advance()
		return &Expr{Token: cur, Kind: StrLit}, nil
	case lexer.IDENT:
		p.advance()
		return &Expr{Token: cur, Kind: Ident}, nil
	case lexer.QUOTE:
		p.advance()
		if !p.haveCur {
			return nil, errUnterminated("quote", cur)
		}
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		e.Quoted = true
		return e, nil
	case lexer.LPAREN:
		return p.group(cur, lexer.RPAREN)
	case lexer.LBRACKET:
		return p.group(cur, lexer.RBRACKET)
	case lexer.LBRACE:
		return p.mapLit(cur)
	case lexer.STR_LIT_UNCLOSED:
		p.advance()
		return nil, errUnterminated("string", cur)
	case lexer.ILLEGAL:
		p.advance()
		return nil, errIllegal(cur)
	default:
		// a closing delimiter where an expression should start;
		// skip it so the caller can read the next form
		p.advance()
		return nil, errUnexpected(cur)
	}
}

func (p *Parser) group(start lexer.Token, end lexer.TokenType) (*Expr, error) {
	p.advance()

	var items []*Expr
	for p.haveCur && p.cur.Type != end {
		item, err := p.expr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if !p.haveCur {
		what := "list"
		if end == lexer.RBRACKET {
			what = "vector"
		}
		return nil, errUnterminated(what, start)
	}

	p.advance()

	kind := List
	if end == lexer.RBRACKET {
		kind = Vector
	}
	return &Expr{Token: start, Kind: kind, Items: items}, nil
}

func (p *Parser) mapLit(start lexer.Token) (*Expr, error) {
	p.advance()

	var keys, vals []*Expr
	for p.haveCur && p.cur.Type != lexer.RBRACE {
		key, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.haveCur && p.cur.Type == lexer.RBRACE {
			// a key with no value
			return nil, errUnexpected(p.cur)
		}
		if !p.haveCur {
			return nil, errUnterminated("map", start)
		}
		val, err := p.expr()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		vals = append(vals, val)
	}

	if !p.haveCur {
		return nil, errUnterminated("map", start)
	}

	p.advance()
	return &Expr{Token: start, Kind: Map, Keys: keys, Vals: vals}, nil
}
