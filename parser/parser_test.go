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
	"testing"

	"github.com/atmatm9182/kokos/lexer"
)

func parseProgram(t *testing.T, src string) []*Expr {
	t.Helper()
	prog, err := New(lexer.New("test", src)).Program()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func parseOne(t *testing.T, src string) *Expr {
	t.Helper()
	prog := parseProgram(t, src)
	if len(prog) != 1 {
		t.Fatalf("expected one expression, got %d", len(prog))
	}
	return prog[0]
}

func TestParserAtoms(t *testing.T) {
	prog := parseProgram(t, `"hello world!" symbol 77 7.7`)
	if len(prog) != 4 {
		t.Fatalf("expected 4 expressions, got %d", len(prog))
	}

	wantKinds := []ExprKind{StrLit, Ident, IntLit, FloatLit}
	wantValues := []string{"hello world!", "symbol", "77", "7.7"}
	for i := range prog {
		if prog[i].Kind != wantKinds[i] {
			t.Errorf("expr %d: expected kind %v, got %v", i, wantKinds[i], prog[i].Kind)
		}
		if prog[i].Token.Value != wantValues[i] {
			t.Errorf("expr %d: expected value %q, got %q", i, wantValues[i], prog[i].Token.Value)
		}
	}
}

func TestParserList(t *testing.T) {
	e := parseOne(t, "(+ 3 7)")
	if e.Kind != List {
		t.Fatalf("expected a list, got %v", e.Kind)
	}
	if len(e.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(e.Items))
	}
	if e.Items[0].Kind != Ident || e.Items[0].Token.Value != "+" {
		t.Errorf("bad head: %v %q", e.Items[0].Kind, e.Items[0].Token.Value)
	}
	if e.Items[1].Kind != IntLit || e.Items[2].Kind != IntLit {
		t.Errorf("bad arguments: %v %v", e.Items[1].Kind, e.Items[2].Kind)
	}
}

func TestParserEmptyGroups(t *testing.T) {
	if e := parseOne(t, "()"); e.Kind != List || len(e.Items) != 0 {
		t.Errorf("(): expected empty list, got %v with %d items", e.Kind, len(e.Items))
	}
	if e := parseOne(t, "[]"); e.Kind != Vector || len(e.Items) != 0 {
		t.Errorf("[]: expected empty vector, got %v with %d items", e.Kind, len(e.Items))
	}
	if e := parseOne(t, "{}"); e.Kind != Map || len(e.Keys) != 0 {
		t.Errorf("{}: expected empty map, got %v with %d keys", e.Kind, len(e.Keys))
	}
}

func TestParserVector(t *testing.T) {
	e := parseOne(t, `[1 2.1 "string!"]`)
	if e.Kind != Vector {
		t.Fatalf("expected a vector, got %v", e.Kind)
	}
	if len(e.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(e.Items))
	}
	wantKinds := []ExprKind{IntLit, FloatLit, StrLit}
	for i, k := range wantKinds {
		if e.Items[i].Kind != k {
			t.Errorf("item %d: expected %v, got %v", i, k, e.Items[i].Kind)
		}
	}
}

func TestParserMap(t *testing.T) {
	e := parseOne(t, `{"hello" "world" "a" 1}`)
	if e.Kind != Map {
		t.Fatalf("expected a map, got %v", e.Kind)
	}
	if len(e.Keys) != 2 || len(e.Vals) != 2 {
		t.Fatalf("expected 2 pairs, got %d/%d", len(e.Keys), len(e.Vals))
	}
	if e.Keys[0].Token.Value != "hello" || e.Vals[0].Token.Value != "world" {
		t.Errorf("bad first pair: %q %q", e.Keys[0].Token.Value, e.Vals[0].Token.Value)
	}
}

func TestParserQuote(t *testing.T) {
	e := parseOne(t, "'(+ x x)")
	if !e.Quoted {
		t.Fatal("expected the list to be quoted")
	}
	if e.Kind != List || len(e.Items) != 3 {
		t.Fatalf("expected a 3-item list, got %v with %d items", e.Kind, len(e.Items))
	}
	if e.Items[0].Quoted {
		t.Error("quote applies to the outer expression only")
	}

	atom := parseOne(t, "'sym")
	if !atom.Quoted || atom.Kind != Ident {
		t.Errorf("expected a quoted ident, got quoted=%v kind=%v", atom.Quoted, atom.Kind)
	}
}

func TestParserNesting(t *testing.T) {
	e := parseOne(t, "(proc fact (n) (if (<= n 1) 1 (* n (fact (- n 1)))))")
	if e.Kind != List || len(e.Items) != 4 {
		t.Fatalf("bad outer form: %v with %d items", e.Kind, len(e.Items))
	}
	ifForm := e.Items[3]
	if ifForm.Kind != List || ifForm.Items[0].Token.Value != "if" {
		t.Fatalf("bad if form: %v", ifForm)
	}
}

func TestParserLocations(t *testing.T) {
	e := parseOne(t, "\n  (+ 1 2)")
	if loc := e.Loc(); loc.Row != 2 || loc.Col != 3 {
		t.Errorf("expected the form at 2:3, got %d:%d", loc.Row, loc.Col)
	}
	if loc := e.Items[2].Loc(); loc.Row != 2 || loc.Col != 8 {
		t.Errorf("expected the literal at 2:8, got %d:%d", loc.Row, loc.Col)
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		kind     ErrKind
		contains string
		row, col int
	}{
		{"open paren", "(", UnmatchedDelimiter, "unterminated list literal", 1, 1},
		{"scenario", "(+ 1 2", UnmatchedDelimiter, "unterminated list literal", 1, 1},
		{"open bracket", "[123 12.3 symbol!!!", UnmatchedDelimiter, "unterminated vector literal", 1, 1},
		{"open brace", "{pair 123", UnmatchedDelimiter, "unterminated map literal", 1, 1},
		{"odd map", "{pair }", UnexpectedToken, "unexpected token", 1, 7},
		{"unclosed string", `"`, UnmatchedDelimiter, "unterminated string literal", 1, 1},
		{"stray rparen", ")", UnexpectedToken, "unexpected token", 1, 1},
		{"stray rbracket", "(1 2])", UnexpectedToken, "unexpected token", 1, 5},
		{"lone quote", "'", UnmatchedDelimiter, "unterminated quote", 1, 1},
		{"illegal char", "\x02", IllegalChar, "illegal character", 1, 1},
		{"nested unterminated", "(foo [1 2)", UnexpectedToken, "unexpected token", 1, 10},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(lexer.New("test", test.src)).Program()
			if err == nil {
				t.Fatalf("%q: expected a parse error", test.src)
			}
			perr, ok := err.(*Error)
			if !ok {
				t.Fatalf("%q: expected a *Error, got %T", test.src, err)
			}
			if perr.Kind != test.kind {
				t.Errorf("%q: expected kind %v, got %v", test.src, test.kind, perr.Kind)
			}
			if !strings.Contains(err.Error(), test.contains) {
				t.Errorf("%q: expected message containing %q, got %q", test.src, test.contains, err.Error())
			}
			loc := perr.Token.Location
			if loc.Row != test.row || loc.Col != test.col {
				t.Errorf("%q: expected error at %d:%d, got %d:%d", test.src, test.row, test.col, loc.Row, loc.Col)
			}
		})
	}
}

// the driver reports errors as FILE:ROW:COL: message
func TestParserErrorFormat(t *testing.T) {
	_, err := New(lexer.New("script.kk", "(+ 1 2")).Program()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.HasPrefix(err.Error(), "script.kk:1:1: ") {
		t.Errorf("bad error prefix: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "unterminated list literal") {
		t.Errorf("bad error message: %q", err.Error())
	}
}

// a parse error aborts only the current top-level form
func TestParserResumesAfterError(t *testing.T) {
	lex := lexer.New("test", ") 42")
	p := New(lex)
	if _, err := p.Next(); err == nil {
		t.Fatal("expected an error for the stray paren")
	}
	e, err := p.Next()
	if err != nil || e == nil || e.Kind != IntLit {
		t.Fatalf("expected to read 42 after the error, got %v, %v", e, err)
	}
}
