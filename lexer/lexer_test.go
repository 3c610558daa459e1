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

package lexer

import "testing"

type tok struct {
	typ   TokenType
	value string
}

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	lex := New("test", src)
	var toks []Token
	for {
		token, ok := lex.Next()
		if !ok {
			return toks
		}
		toks = append(toks, token)
	}
}

func checkTokens(t *testing.T, src string, want []tok) {
	t.Helper()
	got := lexAll(t, src)
	if len(got) != len(want) {
		t.Fatalf("%q: expected %d tokens, got %d: %v", src, len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].Type != w.typ || got[i].Value != w.value {
			t.Errorf("%q: token %d: expected %v %q, got %v %q",
				src, i, w.typ, w.value, got[i].Type, got[i].Value)
		}
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []tok
	}{
		{"empty", "", nil},
		{"whitespace only", " \t\n  ", nil},
		{"ints", "123 0 42", []tok{{INT_LIT, "123"}, {INT_LIT, "0"}, {INT_LIT, "42"}}},
		{"float", "6.9", []tok{{FLOAT_LIT, "6.9"}}},
		{"trailing dot float", "1.", []tok{{FLOAT_LIT, "1."}}},
		{"string", `"string"`, []tok{{STR_LIT, "string"}}},
		{"empty string", `""`, []tok{{STR_LIT, ""}}},
		{"parens", "()", []tok{{LPAREN, "("}, {RPAREN, ")"}}},
		{"brackets", "[]", []tok{{LBRACKET, "["}, {RBRACKET, "]"}}},
		{"braces", "{}", []tok{{LBRACE, "{"}, {RBRACE, "}"}}},
		{"quote", "'x", []tok{{QUOTE, "'"}, {IDENT, "x"}}},
		{"ident", "hello", []tok{{IDENT, "hello"}}},
		{"punctuated idents", "+ /= foo-bar make-vec", []tok{
			{IDENT, "+"}, {IDENT, "/="}, {IDENT, "foo-bar"}, {IDENT, "make-vec"},
		}},
		{"ident stops at paren", "foo(bar)", []tok{
			{IDENT, "foo"}, {LPAREN, "("}, {IDENT, "bar"}, {RPAREN, ")"},
		}},
		{"unclosed string", `"i am unclosed`, []tok{{STR_LIT_UNCLOSED, `"i am unclosed`}}},
		{"comment", "1 ; this is a comment\n2", []tok{{INT_LIT, "1"}, {INT_LIT, "2"}}},
		{"comment at eof", "; nothing here", nil},
		{"form", `(* (+ 1 2 3) 2 2.5 "hello")`, []tok{
			{LPAREN, "("}, {IDENT, "*"},
			{LPAREN, "("}, {IDENT, "+"}, {INT_LIT, "1"}, {INT_LIT, "2"}, {INT_LIT, "3"}, {RPAREN, ")"},
			{INT_LIT, "2"}, {FLOAT_LIT, "2.5"}, {STR_LIT, "hello"}, {RPAREN, ")"},
		}},
		{"mixed", `123 "string" 6.9 () hello "i am unclosed`, []tok{
			{INT_LIT, "123"}, {STR_LIT, "string"}, {FLOAT_LIT, "6.9"},
			{LPAREN, "("}, {RPAREN, ")"}, {IDENT, "hello"},
			{STR_LIT_UNCLOSED, `"i am unclosed`},
		}},
		{"illegal control byte", "\x01", []tok{{ILLEGAL, "\x01"}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			checkTokens(t, test.src, test.want)
		})
	}
}

func TestLexerLocations(t *testing.T) {
	src := "foo\n  (bar\t42"
	toks := lexAll(t, src)
	want := []struct {
		row, col int
	}{
		{1, 1},  // foo
		{2, 3},  // (
		{2, 4},  // bar
		{2, 11}, // 42, tab advances the column by four
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}
	for i, w := range want {
		loc := toks[i].Location
		if loc.Row != w.row || loc.Col != w.col {
			t.Errorf("token %d (%q): expected %d:%d, got %d:%d",
				i, toks[i].Value, w.row, w.col, loc.Row, loc.Col)
		}
		if loc.Filename != "test" {
			t.Errorf("token %d: expected filename %q, got %q", i, "test", loc.Filename)
		}
	}
}

func TestLexerLocationString(t *testing.T) {
	loc := Location{Filename: "file.kk", Row: 3, Col: 7}
	if got := loc.String(); got != "file.kk:3:7" {
		t.Errorf("expected file.kk:3:7, got %s", got)
	}
}
