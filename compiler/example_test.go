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

package compiler_test

import (
	"os"

	"github.com/atmatm9182/kokos/compiler"
	"github.com/atmatm9182/kokos/lexer"
	"github.com/atmatm9182/kokos/parser"
	"github.com/atmatm9182/kokos/vm"
)

// Compile and run a small program: the whole pipeline from source
// text to output.
func Example() {
	const src = `
(proc fact (n)
  (if (<= n 1) 1 (* n (fact (- n 1)))))
(print (fact 5))`

	ctx := vm.NewContext()
	scope, err := compiler.NewScope(ctx, os.Stdout)
	if err != nil {
		panic(err)
	}
	machine, err := vm.New(ctx, vm.Output(os.Stdout))
	if err != nil {
		panic(err)
	}

	prog, err := parser.New(lexer.New("example.kk", src)).Program()
	if err != nil {
		panic(err)
	}
	if err := compiler.CompileProgram(prog, scope); err != nil {
		panic(err)
	}
	if err := machine.Run(ctx.TopCode, 0); err != nil {
		panic(err)
	}

	// Output:
	// 120
}
