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

// Package compiler lowers kokos expression trees into bytecode.
//
// Compilation is driven by Compile, which appends instructions for
// one expression into the current scope's code buffer. Special forms
// are dispatched by head name; macro calls are expanded at compile
// time by running the macro body on the scope's macro VM and
// compiling the resulting value in place of the call.
package compiler

import (
	"math"
	"strconv"

	"github.com/atmatm9182/kokos/lexer"
	"github.com/atmatm9182/kokos/parser"
	"github.com/atmatm9182/kokos/vm"
)

// CompileProgram compiles every top-level expression in order into
// the scope's buffer.
func CompileProgram(prog []*parser.Expr, s *Scope) error {
	for _, e := range prog {
		if err := Compile(e, s); err != nil {
			return err
		}
	}
	return nil
}

// Compile appends bytecode evaluating e to the scope's current code
// buffer.
func Compile(e *parser.Expr, s *Scope) error {
	if e.Quoted {
		v, err := exprToValue(e, s)
		if err != nil {
			return err
		}
		s.emit(vm.OpPush, uint64(v))
		return nil
	}

	switch e.Kind {
	case parser.IntLit, parser.FloatLit:
		v, err := numberValue(e)
		if err != nil {
			return err
		}
		s.emit(vm.OpPush, uint64(v))
		return nil

	case parser.StrLit:
		s.emit(vm.OpPush, uint64(s.intern(e.Token.Value)))
		return nil

	case parser.Ident:
		return compileIdent(e, s)

	case parser.List:
		return compileList(e, s)

	case parser.Vector:
		for _, item := range e.Items {
			if err := Compile(item, s); err != nil {
				return err
			}
		}
		s.emit(vm.OpCall, vm.PackCall(s.intern("make-vec"), len(e.Items)))
		return nil

	case parser.Map:
		if len(e.Keys) != len(e.Vals) {
			return errf(OddMapLiteral, e.Loc(), "map literal has an odd number of children")
		}
		for i := range e.Keys {
			if err := Compile(e.Keys[i], s); err != nil {
				return err
			}
			if err := Compile(e.Vals[i], s); err != nil {
				return err
			}
		}
		s.emit(vm.OpCall, vm.PackCall(s.intern("make-map"), 2*len(e.Keys)))
		return nil
	}

	return errf(TypeMismatch, e.Loc(), "cannot compile %s expression", e.Kind)
}

func compileIdent(e *parser.Expr, s *Scope) error {
	name := e.Token.Value

	switch name {
	case "true":
		s.emit(vm.OpPush, uint64(vm.True))
		return nil
	case "false":
		s.emit(vm.OpPush, uint64(vm.False))
		return nil
	case "nil":
		s.emit(vm.OpPush, uint64(vm.Nil))
		return nil
	}

	if form, ok := specialForms[name]; ok {
		return form(s, e, nil)
	}

	// locals and procedure references resolve by name at dispatch
	// time; an unknown name fails the run, not the compile
	s.emit(vm.OpGetLocal, uint64(s.intern(name)))
	return nil
}

func compileList(e *parser.Expr, s *Scope) error {
	if len(e.Items) == 0 {
		return errf(TypeMismatch, e.Loc(), "cannot evaluate an empty list")
	}

	head := e.Items[0]
	name := head.Token.Value
	args := e.Items[1:]

	if form, ok := specialForms[name]; ok {
		return form(s, e, args)
	}

	nameVal := s.intern(name)
	if macro, ok := s.lookupMacro(nameVal); ok {
		return expandMacro(s, macro, e, args)
	}

	if proc, ok := s.lookupProc(nameVal); ok {
		p := s.ctx.Heap.Proc(proc)
		if !p.IsNative() && len(p.Params) != len(args) {
			return errf(ArityMismatch, e.Loc(), "%s takes %d arguments, got %d", name, len(p.Params), len(args))
		}
	} else if !s.localDefined(nameVal) {
		return errf(UnboundName, head.Loc(), "unbound name '%s'", name)
	}

	for _, arg := range args {
		if err := Compile(arg, s); err != nil {
			return err
		}
	}
	s.emit(vm.OpCall, vm.PackCall(nameVal, len(args)))
	return nil
}

// numberValue decodes an int or float literal. Integers that fit 32
// bits stay integral; everything else becomes a double.
func numberValue(e *parser.Expr) (vm.Value, error) {
	text := e.Token.Value
	if e.Kind == parser.IntLit {
		n, err := strconv.ParseInt(text, 10, 64)
		if err == nil && n >= math.MinInt32 && n <= math.MaxInt32 {
			return vm.FromInt(int32(n)), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return vm.Nil, errf(TypeMismatch, e.Loc(), "malformed number literal '%s'", text)
	}
	return vm.FromFloat(f), nil
}

// exprToValue reifies an expression as a quoted datum: numbers stay
// numbers, symbols and strings become interned strings, sequence
// literals become immutable heap data. The allocations are pinned;
// they are reachable from code, not from the value graph.
func exprToValue(e *parser.Expr, s *Scope) (vm.Value, error) {
	switch e.Kind {
	case parser.IntLit, parser.FloatLit:
		return numberValue(e)

	case parser.StrLit:
		return s.intern(e.Token.Value), nil

	case parser.Ident:
		// the singleton names reify as the singletons themselves,
		// any other symbol as its interned string
		switch e.Token.Value {
		case "true":
			return vm.True, nil
		case "false":
			return vm.False, nil
		case "nil":
			return vm.Nil, nil
		}
		return s.intern(e.Token.Value), nil

	case parser.List, parser.Vector:
		items := make([]vm.Value, len(e.Items))
		for i, item := range e.Items {
			v, err := exprToValue(item, s)
			if err != nil {
				return vm.Nil, err
			}
			items[i] = v
		}
		if e.Kind == parser.Vector {
			return s.ctx.Heap.AllocPinned(vm.VectorTag, &vm.Vector{Items: items}), nil
		}
		return s.ctx.Heap.AllocPinned(vm.ListTag, &vm.List{Items: items}), nil

	case parser.Map:
		m := vm.NewMap(len(e.Keys))
		for i := range e.Keys {
			k, err := exprToValue(e.Keys[i], s)
			if err != nil {
				return vm.Nil, err
			}
			v, err := exprToValue(e.Vals[i], s)
			if err != nil {
				return vm.Nil, err
			}
			m.Set(s.ctx.Heap, k, v)
		}
		return s.ctx.Heap.AllocPinned(vm.MapTag, m), nil
	}

	return vm.Nil, errf(TypeMismatch, e.Loc(), "cannot quote %s expression", e.Kind)
}

// valueToExpr interprets a macro result back into an expression.
// The synthesized tokens borrow the macro call's location so
// diagnostics in expanded code point at the call site.
func valueToExpr(v vm.Value, at lexer.Token, s *Scope) (*parser.Expr, error) {
	tok := func(t lexer.TokenType, text string) lexer.Token {
		return lexer.Token{Type: t, Value: text, Location: at.Location}
	}

	switch {
	case v == vm.True:
		return &parser.Expr{Token: tok(lexer.IDENT, "true"), Kind: parser.Ident}, nil
	case v == vm.False:
		return &parser.Expr{Token: tok(lexer.IDENT, "false"), Kind: parser.Ident}, nil
	case v == vm.Nil:
		return &parser.Expr{Token: tok(lexer.IDENT, "nil"), Kind: parser.Ident}, nil
	}

	switch v.Tag() {
	case vm.IntTag:
		text := strconv.FormatInt(int64(v.Int()), 10)
		return &parser.Expr{Token: tok(lexer.INT_LIT, text), Kind: parser.IntLit}, nil

	case vm.StringTag:
		return &parser.Expr{
			Token: tok(lexer.STR_LIT, s.ctx.Heap.Str(v).String()),
			Kind:  parser.StrLit,
		}, nil

	case vm.ListTag, vm.VectorTag:
		var src []vm.Value
		kind := parser.List
		open := tok(lexer.LPAREN, "(")
		if v.Tag() == vm.VectorTag {
			src = s.ctx.Heap.Vector(v).Items
			kind = parser.Vector
			open = tok(lexer.LBRACKET, "[")
		} else {
			src = s.ctx.Heap.List(v).Items
		}
		items := make([]*parser.Expr, len(src))
		for i, item := range src {
			e, err := valueToExpr(item, at, s)
			if err != nil {
				return nil, err
			}
			items[i] = e
		}
		return &parser.Expr{Token: open, Kind: kind, Items: items}, nil

	case vm.MapTag:
		expr := &parser.Expr{Token: tok(lexer.LBRACE, "{"), Kind: parser.Map}
		var convErr error
		s.ctx.Heap.Map(v).Each(func(key, val vm.Value) {
			if convErr != nil {
				return
			}
			k, err := valueToExpr(key, at, s)
			if err != nil {
				convErr = err
				return
			}
			vv, err := valueToExpr(val, at, s)
			if err != nil {
				convErr = err
				return
			}
			expr.Keys = append(expr.Keys, k)
			expr.Vals = append(expr.Vals, vv)
		})
		if convErr != nil {
			return nil, convErr
		}
		return expr, nil

	case vm.ProcTag:
		return nil, errf(TypeMismatch, at.Location, "macro produced a procedure, which is not an expression")

	default:
		f := v.Float()
		if f == math.Trunc(f) && math.Abs(f) < math.MaxInt32 {
			text := strconv.FormatInt(int64(f), 10)
			return &parser.Expr{Token: tok(lexer.INT_LIT, text), Kind: parser.IntLit}, nil
		}
		text := strconv.FormatFloat(f, 'g', -1, 64)
		return &parser.Expr{Token: tok(lexer.FLOAT_LIT, text), Kind: parser.FloatLit}, nil
	}
}
