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

package vm

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// natives are the procedures registered at the root scope of every
// compilation unit.
var natives = []struct {
	name string
	fn   NativeFn
}{
	{"print", nativePrint},
	{"make-vec", nativeMakeVec},
	{"make-map", nativeMakeMap},
	{"list", nativeList},
	{"type", nativeType},
	{"read-file", nativeReadFile},
	{"write-file", nativeWriteFile},
}

// popArgs pops nargs values and returns them in push (source) order.
func popArgs(i *Instance, nargs int) ([]Value, error) {
	args := make([]Value, nargs)
	for k := nargs - 1; k >= 0; k-- {
		v, err := i.Pop()
		if err != nil {
			return nil, err
		}
		args[k] = v
	}
	return args, nil
}

func nativePrint(i *Instance, nargs int) (Value, error) {
	args, err := popArgs(i, nargs)
	if err != nil {
		return Nil, err
	}

	var sb strings.Builder
	for k, a := range args {
		if k > 0 {
			sb.WriteByte(' ')
		}
		formatValue(i.ctx.Heap, a, &sb)
	}
	sb.WriteByte('\n')

	if _, err := i.out.Write([]byte(sb.String())); err != nil {
		return Nil, errors.Wrap(err, "write failed")
	}
	return Nil, nil
}

func nativeMakeVec(i *Instance, nargs int) (Value, error) {
	args, err := popArgs(i, nargs)
	if err != nil {
		return Nil, err
	}
	return i.Alloc(VectorTag, &Vector{Items: args}), nil
}

func nativeMakeMap(i *Instance, nargs int) (Value, error) {
	if nargs%2 != 0 {
		return Nil, errors.Wrap(ErrArityMismatch, "expected an even number of arguments")
	}
	args, err := popArgs(i, nargs)
	if err != nil {
		return Nil, err
	}
	m := NewMap(nargs / 2)
	for k := 0; k < nargs; k += 2 {
		m.Set(i.ctx.Heap, args[k], args[k+1])
	}
	return i.Alloc(MapTag, m), nil
}

func nativeList(i *Instance, nargs int) (Value, error) {
	args, err := popArgs(i, nargs)
	if err != nil {
		return Nil, err
	}
	return i.Alloc(ListTag, &List{Items: args}), nil
}

func nativeType(i *Instance, nargs int) (Value, error) {
	if nargs != 1 {
		return Nil, errors.Wrapf(ErrArityMismatch, "expected 1 argument, got %d", nargs)
	}
	v, err := i.Pop()
	if err != nil {
		return Nil, err
	}
	return i.ctx.Intern(typeName(v)), nil
}

func typeName(v Value) string {
	switch {
	case v == True, v == False:
		return "bool"
	case v == Nil:
		return "nil"
	}
	switch v.Tag() {
	case IntTag:
		return "int"
	case StringTag:
		return "string"
	case VectorTag:
		return "vector"
	case ListTag:
		return "list"
	case MapTag:
		return "map"
	case ProcTag:
		return "proc"
	default:
		return "float"
	}
}

func nativeReadFile(i *Instance, nargs int) (Value, error) {
	if nargs != 1 {
		return Nil, errors.Wrapf(ErrArityMismatch, "expected 1 argument, got %d", nargs)
	}
	v, err := i.Pop()
	if err != nil {
		return Nil, err
	}
	if !v.IsString() {
		return Nil, errors.Wrap(ErrTypeMismatch, "expected a file name string")
	}

	data, err := os.ReadFile(i.ctx.Heap.Str(v).String())
	if err != nil {
		// IO failure is not a run-time error; the program sees nil
		return Nil, nil
	}
	return i.Alloc(StringTag, &String{Bytes: data}), nil
}

func nativeWriteFile(i *Instance, nargs int) (Value, error) {
	if nargs != 2 {
		return Nil, errors.Wrapf(ErrArityMismatch, "expected 2 arguments, got %d", nargs)
	}
	args, err := popArgs(i, nargs)
	if err != nil {
		return Nil, err
	}
	if !args[0].IsString() || !args[1].IsString() {
		return Nil, errors.Wrap(ErrTypeMismatch, "expected a file name and contents string")
	}

	name := i.ctx.Heap.Str(args[0]).String()
	if err := os.WriteFile(name, i.ctx.Heap.Str(args[1]).Bytes, 0o644); err != nil {
		return False, nil
	}
	return True, nil
}
