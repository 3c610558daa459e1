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
	"io"

	"github.com/atmatm9182/kokos/vm"
)

// Scope is a node of the compile-time environment tree. The root
// scope writes to the top-level code buffer and owns the macro VM;
// derived scopes for procedure and macro bodies write to the shared
// procedure buffer. Procedure and macro tables chain through the
// parent pointer; the root's procedure table is the context's, so
// everything registered there is visible to the VM at run time.
type Scope struct {
	ctx      *vm.Context
	parent   *Scope
	topLevel bool

	procs  map[vm.Value]vm.Value
	macros map[vm.Value]vm.Value
	locals []vm.Value

	macroVM *vm.Instance
}

// NewScope returns a root scope for ctx. Macro bodies run on a
// dedicated VM whose print output goes to macroOut.
func NewScope(ctx *vm.Context, macroOut io.Writer) (*Scope, error) {
	mvm, err := vm.New(ctx, vm.Output(macroOut))
	if err != nil {
		return nil, err
	}
	return &Scope{
		ctx:      ctx,
		topLevel: true,
		procs:    ctx.Procs,
		macros:   make(map[vm.Value]vm.Value),
		macroVM:  mvm,
	}, nil
}

// Context returns the scope's compilation context.
func (s *Scope) Context() *vm.Context { return s.ctx }

// derived returns a child scope. A top-level child (a let body)
// keeps emitting where its parent does; a procedure child emits
// into the shared procedure buffer.
func (s *Scope) derived(topLevel bool) *Scope {
	return &Scope{
		ctx:      s.ctx,
		parent:   s,
		topLevel: topLevel && s.topLevel,
		procs:    make(map[vm.Value]vm.Value),
		macros:   make(map[vm.Value]vm.Value),
	}
}

// code returns the buffer this scope emits into.
func (s *Scope) code() *vm.Code {
	if s.topLevel {
		return &s.ctx.TopCode
	}
	return &s.ctx.ProcCode
}

// here returns the offset the next emitted instruction will get.
func (s *Scope) here() int { return len(*s.code()) }

func (s *Scope) emit(op vm.Op, operand uint64) int {
	return s.code().Push(vm.Instr{Type: op, Operand: operand})
}

func (s *Scope) intern(str string) vm.Value { return s.ctx.Intern(str) }

func (s *Scope) addProc(name, proc vm.Value) { s.procs[name] = proc }

func (s *Scope) lookupProc(name vm.Value) (vm.Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.procs[name]; ok {
			return v, true
		}
	}
	return vm.Nil, false
}

func (s *Scope) addMacro(name, macro vm.Value) { s.macros[name] = macro }

func (s *Scope) lookupMacro(name vm.Value) (vm.Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.macros[name]; ok {
			return v, true
		}
	}
	return vm.Nil, false
}

func (s *Scope) addLocal(name vm.Value) { s.locals = append(s.locals, name) }

// localDefined reports whether name is a local of this scope or an
// ancestor.
func (s *Scope) localDefined(name vm.Value) bool {
	for sc := s; sc != nil; sc = sc.parent {
		for _, l := range sc.locals {
			if l == name {
				return true
			}
		}
	}
	return false
}

// expander returns the macro VM, shared through the root.
func (s *Scope) expander() *vm.Instance {
	sc := s
	for sc.parent != nil {
		sc = sc.parent
	}
	return sc.macroVM
}
