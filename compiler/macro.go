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
	"github.com/pkg/errors"

	"github.com/atmatm9182/kokos/parser"
	"github.com/atmatm9182/kokos/vm"
)

// expandMacro runs the expansion protocol for a call of macro: the
// argument expressions are reified as quoted data, the macro body
// runs on the scope's macro VM with those values bound as locals,
// and its result is interpreted back into an expression which is
// compiled in place of the call.
func expandMacro(s *Scope, macro vm.Value, e *parser.Expr, args []*parser.Expr) error {
	p := s.ctx.Heap.Proc(macro)
	if len(args) != len(p.Params) {
		return errf(ArityMismatch, e.Loc(), "%s takes %d arguments, got %d", p.Name, len(p.Params), len(args))
	}

	vals := make([]vm.Value, len(args))
	for i, arg := range args {
		v, err := exprToValue(arg, s)
		if err != nil {
			return err
		}
		vals[i] = v
	}

	ret, err := s.expander().Call(macro, vals)
	if err != nil {
		return errors.Wrapf(err, "%s: expanding macro %s", e.Loc(), p.Name)
	}

	expanded, err := valueToExpr(ret, e.Token, s)
	if err != nil {
		return err
	}
	return Compile(expanded, s)
}
