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

package parser

import (
	"strings"

	"github.com/atmatm9182/kokos/lexer"
)

// ExprKind discriminates the variants of Expr.
type ExprKind int

// Expression variants.
const (
	IntLit ExprKind = iota
	FloatLit
	StrLit
	Ident
	List
	Vector
	Map
)

var exprKindNames = [...]string{
	IntLit:   "int",
	FloatLit: "float",
	StrLit:   "string",
	Ident:    "ident",
	List:     "list",
	Vector:   "vector",
	Map:      "map",
}

func (k ExprKind) String() string { return exprKindNames[k] }

// Expr is a node of the expression tree. Atoms carry their value in
// Token.Value; List and Vector nodes hold their children in Items;
// Map nodes hold interleaved pairs in Keys and Vals (always the same
// length). Quoted marks an expression prefixed with ' and means
// evaluation yields the datum itself.
type Expr struct {
	Token  lexer.Token
	Kind   ExprKind
	Quoted bool

	Items []*Expr
	Keys  []*Expr
	Vals  []*Expr
}

// Loc returns the source location of the expression's first byte.
func (e *Expr) Loc() lexer.Location { return e.Token.Location }

// String renders the expression back as source text, mostly for
// diagnostics and tests.
func (e *Expr) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Expr) write(sb *strings.Builder) {
	if e.Quoted {
		sb.WriteByte('\'')
	}
	switch e.Kind {
	case IntLit, FloatLit, Ident:
		sb.WriteString(e.Token.Value)
	case StrLit:
		sb.WriteByte('"')
		sb.WriteString(e.Token.Value)
		sb.WriteByte('"')
	case List:
		sb.WriteByte('(')
		writeItems(sb, e.Items)
		sb.WriteByte(')')
	case Vector:
		sb.WriteByte('[')
		writeItems(sb, e.Items)
		sb.WriteByte(']')
	case Map:
		sb.WriteByte('{')
		for i := range e.Keys {
			if i > 0 {
				sb.WriteByte(' ')
			}
			e.Keys[i].write(sb)
			sb.WriteByte(' ')
			e.Vals[i].write(sb)
		}
		sb.WriteByte('}')
	}
}

func writeItems(sb *strings.Builder, items []*Expr) {
	for i, item := range items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		item.write(sb)
	}
}
