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

package compiler

import (
	"fmt"

	"github.com/atmatm9182/kokos/lexer"
)

// ErrKind classifies compile failures.
type ErrKind int

// Compile error kinds.
const (
	// ArityMismatch reports a form with the wrong number of argument
	// expressions.
	ArityMismatch ErrKind = iota
	// TypeMismatch reports an expression where the form demands a
	// specific variant, like a parameter list of idents.
	TypeMismatch
	// UnboundName reports a head that names no special form, macro,
	// procedure or local.
	UnboundName
	// OddMapLiteral reports a map literal with an odd number of
	// children.
	OddMapLiteral
)

// Error is a positional compile error.
type Error struct {
	Kind ErrKind
	Loc  lexer.Location
	msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.msg)
}

func errf(kind ErrKind, loc lexer.Location, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Loc: loc, msg: fmt.Sprintf(format, args...)}
}
