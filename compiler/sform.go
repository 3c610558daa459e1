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
	"github.com/atmatm9182/kokos/parser"
	"github.com/atmatm9182/kokos/vm"
)

// sformFn compiles one special form. e is the whole form, args its
// argument expressions.
type sformFn func(s *Scope, e *parser.Expr, args []*parser.Expr) error

var specialForms map[string]sformFn

func init() {
	// built in init to let form bodies recurse through Compile
	specialForms = map[string]sformFn{
		"var":    sformVar,
		"let":    sformLet,
		"proc":   sformProc,
		"lambda": sformLambda,
		"macro":  sformMacro,
		"if":     sformIf,
		"+":      arithForm(vm.OpAdd),
		"-":      arithForm(vm.OpSub),
		"*":      arithForm(vm.OpMul),
		"/":      arithForm(vm.OpDiv),
		"=":      cmpForm(vm.OpEq, 0),
		"/=":     cmpForm(vm.OpNeq, 0),
		"<":      cmpForm(vm.OpEq, -1),
		">":      cmpForm(vm.OpEq, 1),
		"<=":     cmpForm(vm.OpNeq, 1),
		">=":     cmpForm(vm.OpNeq, -1),
	}
}

func sformVar(s *Scope, e *parser.Expr, args []*parser.Expr) error {
	if len(args) != 2 {
		return errf(ArityMismatch, e.Loc(), "var takes a name and a value, got %d forms", len(args))
	}
	if args[0].Kind != parser.Ident {
		return errf(TypeMismatch, args[0].Loc(), "cannot use a %s as a variable name", args[0].Kind)
	}
	if err := Compile(args[1], s); err != nil {
		return err
	}
	name := s.intern(args[0].Token.Value)
	s.emit(vm.OpAddLocal, uint64(name))
	s.addLocal(name)
	return nil
}

func sformLet(s *Scope, e *parser.Expr, args []*parser.Expr) error {
	if len(args) < 2 {
		return errf(ArityMismatch, e.Loc(), "let takes a binding list and a body")
	}
	if args[0].Kind != parser.List {
		return errf(TypeMismatch, args[0].Loc(), "cannot use a %s as a binding list", args[0].Kind)
	}
	bindings := args[0].Items
	if len(bindings)%2 != 0 {
		return errf(ArityMismatch, args[0].Loc(), "let binding list has an odd number of forms")
	}

	inner := s.derived(true)
	inner.emit(vm.OpPushScope, uint64(len(bindings)/2))

	for i := 0; i < len(bindings); i += 2 {
		key := bindings[i]
		if key.Kind != parser.Ident {
			return errf(TypeMismatch, key.Loc(), "cannot use a %s as a binding name", key.Kind)
		}
		// bindings are sequential: this value expression already
		// sees the names bound before it
		if err := Compile(bindings[i+1], inner); err != nil {
			return err
		}
		name := inner.intern(key.Token.Value)
		inner.emit(vm.OpAddLocal, uint64(name))
		inner.addLocal(name)
	}

	body := args[1:]
	for i, form := range body {
		if err := Compile(form, inner); err != nil {
			return err
		}
		if i != len(body)-1 {
			inner.emit(vm.OpPop, 1)
		}
	}

	inner.emit(vm.OpPopScope, 0)
	return nil
}

// paramNames checks a parameter list expression and interns its
// names.
func paramNames(e *parser.Expr, s *Scope) ([]vm.Value, error) {
	if e.Kind != parser.List {
		return nil, errf(TypeMismatch, e.Loc(), "cannot use a %s as a parameter list", e.Kind)
	}
	params := make([]vm.Value, len(e.Items))
	for i, p := range e.Items {
		if p.Kind != parser.Ident {
			return nil, errf(TypeMismatch, p.Loc(), "cannot use a %s as a parameter name", p.Kind)
		}
		params[i] = s.intern(p.Token.Value)
	}
	return params, nil
}

// compileBody compiles body forms into the derived scope, keeping
// only the last value, and terminates with ret.
func compileBody(body []*parser.Expr, s *Scope) error {
	for i, form := range body {
		if err := Compile(form, s); err != nil {
			return err
		}
		if i == len(body)-1 {
			continue
		}
		// var, proc and macro forms leave no value to discard
		if form.Kind == parser.List && !form.Quoted && len(form.Items) > 0 {
			switch form.Items[0].Token.Value {
			case "var", "proc", "macro":
				continue
			}
		}
		s.emit(vm.OpPop, 1)
	}
	s.emit(vm.OpRet, 0)
	return nil
}

// skipBody emits a branch around a nested body when the enclosing
// scope already writes to the procedure buffer, so the enclosing
// body does not fall through into it. Returns a link function to
// call once the body is emitted.
func skipBody(s, inner *Scope) func() {
	if s.topLevel {
		return func() {}
	}
	label := s.ctx.Labels.New()
	s.emit(vm.OpBranch, label)
	return func() { s.ctx.Labels.Link(label, inner.here()) }
}

func sformProc(s *Scope, e *parser.Expr, args []*parser.Expr) error {
	if len(args) < 3 {
		return errf(ArityMismatch, e.Loc(), "proc takes a name, a parameter list and a body")
	}
	if args[0].Kind != parser.Ident {
		return errf(TypeMismatch, args[0].Loc(), "cannot use a %s as a procedure name", args[0].Kind)
	}
	name := args[0].Token.Value

	params, err := paramNames(args[1], s)
	if err != nil {
		return err
	}

	inner := s.derived(false)
	for _, p := range params {
		inner.addLocal(p)
	}

	link := skipBody(s, inner)
	proc := s.ctx.NewProc(name, params, inner.here())

	// registered before the body compiles so the body can recurse
	nameVal := s.intern(name)
	s.addProc(nameVal, proc)

	if err := compileBody(args[2:], inner); err != nil {
		return err
	}
	link()

	s.emit(vm.OpPush, uint64(proc))
	s.emit(vm.OpAddLocal, uint64(nameVal))
	s.addLocal(nameVal)
	return nil
}

func sformLambda(s *Scope, e *parser.Expr, args []*parser.Expr) error {
	if len(args) < 2 {
		return errf(ArityMismatch, e.Loc(), "lambda takes a parameter list and a body")
	}

	params, err := paramNames(args[0], s)
	if err != nil {
		return err
	}

	inner := s.derived(false)
	for _, p := range params {
		inner.addLocal(p)
	}

	link := skipBody(s, inner)
	proc := s.ctx.NewProc("lambda", params, inner.here())

	if err := compileBody(args[1:], inner); err != nil {
		return err
	}
	link()

	s.emit(vm.OpPush, uint64(proc))
	return nil
}

func sformMacro(s *Scope, e *parser.Expr, args []*parser.Expr) error {
	if len(args) < 3 {
		return errf(ArityMismatch, e.Loc(), "macro takes a name, a parameter list and a body")
	}
	if args[0].Kind != parser.Ident {
		return errf(TypeMismatch, args[0].Loc(), "cannot use a %s as a macro name", args[0].Kind)
	}
	name := args[0].Token.Value

	params, err := paramNames(args[1], s)
	if err != nil {
		return err
	}

	inner := s.derived(false)
	for _, p := range params {
		inner.addLocal(p)
	}

	link := skipBody(s, inner)
	macro := s.ctx.NewProc(name, params, inner.here())

	// like procedures, macros may expand themselves recursively
	s.addMacro(s.intern(name), macro)

	if err := compileBody(args[2:], inner); err != nil {
		return err
	}
	link()

	// macros are compile-time only: no value is left behind
	return nil
}

func sformIf(s *Scope, e *parser.Expr, args []*parser.Expr) error {
	if len(args) != 3 {
		return errf(ArityMismatch, e.Loc(), "if takes a condition and two branches, got %d forms", len(args))
	}

	if err := Compile(args[0], s); err != nil {
		return err
	}

	alt := s.ctx.Labels.New()
	s.emit(vm.OpJz, alt)

	if err := Compile(args[1], s); err != nil {
		return err
	}

	end := s.ctx.Labels.New()
	s.emit(vm.OpBranch, end)

	s.ctx.Labels.Link(alt, s.here())
	if err := Compile(args[2], s); err != nil {
		return err
	}
	s.ctx.Labels.Link(end, s.here())
	return nil
}

func arithForm(op vm.Op) sformFn {
	return func(s *Scope, e *parser.Expr, args []*parser.Expr) error {
		for _, arg := range args {
			if err := Compile(arg, s); err != nil {
				return err
			}
		}
		s.emit(op, uint64(len(args)))
		return nil
	}
}

// headName names a form for diagnostics, whether it was dispatched
// from a list head or a bare ident.
func headName(e *parser.Expr) string {
	if e.Kind == parser.List && len(e.Items) > 0 {
		return e.Items[0].Token.Value
	}
	return e.Token.Value
}

func cmpForm(op vm.Op, operand int64) sformFn {
	return func(s *Scope, e *parser.Expr, args []*parser.Expr) error {
		if len(args) != 2 {
			return errf(ArityMismatch, e.Loc(), "%s takes 2 arguments, got %d", headName(e), len(args))
		}
		for _, arg := range args {
			if err := Compile(arg, s); err != nil {
				return err
			}
		}
		s.emit(vm.OpCmp, 0)
		s.emit(op, uint64(operand))
		return nil
	}
}
