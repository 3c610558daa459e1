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
	"fmt"
	"io"
	"strconv"
)

// Op is a bytecode instruction type.
type Op int

// The instruction set.
const (
	OpPush Op = iota
	OpPop
	OpGetLocal
	OpAddLocal
	OpPushScope
	OpPopScope
	OpCall
	OpRet
	OpJz
	OpJnz
	OpBranch
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpCmp
	OpEq
	OpNeq
	OpAlloc
)

var opNames = [...]string{
	OpPush:      "push",
	OpPop:       "pop",
	OpGetLocal:  "get_local",
	OpAddLocal:  "add_local",
	OpPushScope: "push_scope",
	OpPopScope:  "pop_scope",
	OpCall:      "call",
	OpRet:       "ret",
	OpJz:        "jz",
	OpJnz:       "jnz",
	OpBranch:    "branch",
	OpAdd:       "add",
	OpSub:       "sub",
	OpMul:       "mul",
	OpDiv:       "div",
	OpCmp:       "cmp",
	OpEq:        "eq",
	OpNeq:       "neq",
	OpAlloc:     "alloc",
}

func (op Op) String() string { return opNames[op] }

// Instr is one instruction: a type and a 64-bit operand.
//
// The operand's meaning depends on the type: value bits for push, an
// interned name for local accesses, a label id for jumps, a count
// for arithmetic, stack and scope ops, and packed fields for call
// and alloc (see PackCall and PackAlloc).
type Instr struct {
	Type    Op
	Operand uint64
}

// Code is a bytecode buffer.
type Code []Instr

// Push appends an instruction and returns its offset.
func (c *Code) Push(i Instr) int {
	*c = append(*c, i)
	return len(*c) - 1
}

// PackCall packs a callee name and an argument count into a call
// operand: the name's 48-bit handle in the low bits, nargs in the
// top 16.
func PackCall(name Value, nargs int) uint64 {
	return uint64(nargs)<<48 | name.Handle()
}

// UnpackCall is the inverse of PackCall.
func UnpackCall(operand uint64) (name Value, nargs int) {
	return StringBits | Value(operand)&ptrMask, int(operand >> 48)
}

// PackAlloc packs a heap tag and an element count into an alloc
// operand.
func PackAlloc(tag uint16, count int) uint64 {
	return uint64(tag)<<48 | uint64(count)&uint64(ptrMask)
}

// UnpackAlloc is the inverse of PackAlloc.
func UnpackAlloc(operand uint64) (tag uint16, count int) {
	return uint16(operand >> 48), int(operand & uint64(ptrMask))
}

// Labels is the shared table of jump targets. A label is allocated
// at emission time and patched once its position is known; jump
// operands hold label ids, the VM indirects through the table.
type Labels struct {
	offs []int
}

// New allocates a fresh unlinked label and returns its id.
func (l *Labels) New() uint64 {
	l.offs = append(l.offs, -1)
	return uint64(len(l.offs) - 1)
}

// Link patches label id to point at offset.
func (l *Labels) Link(id uint64, offset int) { l.offs[id] = offset }

// At returns the offset label id points at.
func (l *Labels) At(id uint64) int { return l.offs[id] }

// Dump writes a human-readable listing of the code to w. The heap
// and labels resolve name and jump operands; either may be nil for
// a raw listing.
func (c Code) Dump(w io.Writer, h *Heap, labels *Labels) {
	for i, instr := range c {
		fmt.Fprintf(w, "[%d] %s", i, instr.Type)
		switch instr.Type {
		case OpCmp, OpRet, OpPopScope:
		case OpPush:
			if h != nil {
				fmt.Fprintf(w, " %s", FormatValue(h, Value(instr.Operand)))
			} else {
				fmt.Fprintf(w, " %#x", instr.Operand)
			}
		case OpGetLocal, OpAddLocal:
			if h != nil {
				fmt.Fprintf(w, " %s", h.Str(Value(instr.Operand)))
			} else {
				fmt.Fprintf(w, " %#x", instr.Operand)
			}
		case OpCall:
			name, nargs := UnpackCall(instr.Operand)
			if h != nil {
				fmt.Fprintf(w, " %s/%d", h.Str(name), nargs)
			} else {
				fmt.Fprintf(w, " %#x/%d", name.Handle(), nargs)
			}
		case OpJz, OpJnz, OpBranch:
			if labels != nil {
				fmt.Fprintf(w, " @%d", labels.At(instr.Operand))
			} else {
				fmt.Fprintf(w, " L%d", instr.Operand)
			}
		case OpEq, OpNeq:
			fmt.Fprintf(w, " %d", int64(instr.Operand))
		case OpAlloc:
			tag, count := UnpackAlloc(instr.Operand)
			fmt.Fprintf(w, " %s %d", tagName(tag), count)
		default:
			fmt.Fprintf(w, " %s", strconv.FormatUint(instr.Operand, 10))
		}
		fmt.Fprintln(w)
	}
}

func tagName(tag uint16) string {
	switch tag {
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
	case IntTag:
		return "int"
	default:
		return "obj"
	}
}
