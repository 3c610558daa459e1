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

package kokos_test

import (
	"strings"
	"testing"

	"github.com/atmatm9182/kokos/compiler"
	kokos "github.com/atmatm9182/kokos/lang/kokos"
	"github.com/atmatm9182/kokos/lexer"
	"github.com/atmatm9182/kokos/parser"
	"github.com/atmatm9182/kokos/vm"
)

// evalWithPrelude loads the prelude and then runs src, returning the
// printed output.
func evalWithPrelude(t *testing.T, src string) string {
	t.Helper()

	ctx := vm.NewContext()
	var out strings.Builder
	scope, err := compiler.NewScope(ctx, &out)
	if err != nil {
		t.Fatal(err)
	}
	machine, err := vm.New(ctx, vm.Output(&out))
	if err != nil {
		t.Fatal(err)
	}

	for _, unit := range []struct{ name, src string }{
		{kokos.Name, kokos.Prelude},
		{"test.kk", src},
	} {
		prog, err := parser.New(lexer.New(unit.name, unit.src)).Program()
		if err != nil {
			t.Fatalf("%s: %v", unit.name, err)
		}
		mark := len(ctx.TopCode)
		if err := compiler.CompileProgram(prog, scope); err != nil {
			t.Fatalf("%s: %v", unit.name, err)
		}
		if err := machine.Run(ctx.TopCode, mark); err != nil {
			t.Fatalf("%s: %v", unit.name, err)
		}
	}
	return out.String()
}

func TestPrelude(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"inc dec", `(print (inc 1) (dec 1))`, "2 0\n"},
		{"not", `(print (not true) (not nil) (not 0))`, "false true false\n"},
		{"abs", `(print (abs 5) (abs (- 0 5)) (abs 0))`, "5 5 0\n"},
		{"min max", `(print (min 1 2) (max 1 2))`, "1 2\n"},
		{"unless picks the false arm", `(print (unless false 1 2))`, "1\n"},
		{"unless picks the true arm", `(print (unless true 1 2))`, "2\n"},
		{"compose", `(print (max (inc 3) (dec 3)))`, "4\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := evalWithPrelude(t, test.src); got != test.want {
				t.Errorf("%s: expected %q, got %q", test.src, test.want, got)
			}
		})
	}
}

func TestPreludeLeavesNoValues(t *testing.T) {
	ctx := vm.NewContext()
	var out strings.Builder
	scope, err := compiler.NewScope(ctx, &out)
	if err != nil {
		t.Fatal(err)
	}
	machine, err := vm.New(ctx, vm.Output(&out))
	if err != nil {
		t.Fatal(err)
	}
	prog, err := parser.New(lexer.New(kokos.Name, kokos.Prelude)).Program()
	if err != nil {
		t.Fatal(err)
	}
	if err := compiler.CompileProgram(prog, scope); err != nil {
		t.Fatal(err)
	}
	if err := machine.Run(ctx.TopCode, 0); err != nil {
		t.Fatal(err)
	}
	if machine.Depth() != 0 {
		t.Errorf("the prelude must consist of statement forms only, %d values left", machine.Depth())
	}
	if out.Len() != 0 {
		t.Errorf("the prelude must not print, got %q", out.String())
	}
}
