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
	"fmt"

	"github.com/atmatm9182/kokos/lexer"
)

// ErrKind classifies parse failures.
type ErrKind int

// Parse error kinds.
const (
	// IllegalChar reports a byte the lexer could not form a token from.
	IllegalChar ErrKind = iota
	// UnexpectedToken reports a closing delimiter (or other stray
	// token) where an expression was expected.
	UnexpectedToken
	// UnmatchedDelimiter reports end-of-input inside an open group or
	// string.
	UnmatchedDelimiter
)

// Error is a positional parse error. Token is the token the error is
// attached to: for an unterminated group that is the token which
// opened it, not the end of input.
type Error struct {
	Kind  ErrKind
	Token lexer.Token
	msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Token.Location, e.msg)
}

func errIllegal(tok lexer.Token) *Error {
	return &Error{
		Kind:  IllegalChar,
		Token: tok,
		msg:   fmt.Sprintf("illegal character %q", tok.Value),
	}
}

func errUnexpected(tok lexer.Token) *Error {
	return &Error{
		Kind:  UnexpectedToken,
		Token: tok,
		msg:   fmt.Sprintf("unexpected token '%s'", tok.Value),
	}
}

func errUnterminated(what string, tok lexer.Token) *Error {
	return &Error{
		Kind:  UnmatchedDelimiter,
		Token: tok,
		msg:   fmt.Sprintf("unterminated %s literal '%s'", what, tok.Value),
	}
}
