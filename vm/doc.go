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

// Package vm implements the kokos runtime: NaN-boxed values, the
// garbage-collected heap, the string store, the bytecode instruction
// set and the stack-frame virtual machine that executes it.
//
// Values are 64-bit words. Ordinary doubles are themselves; boxed
// values live in the quiet-NaN space with a 16-bit tag on top and a
// 48-bit payload below. Heap pointers carry a handle issued by the
// Heap rather than a machine address, which keeps the encoding exact
// while staying inside safe Go.
//
// A compilation unit shares one Context - heap, interned strings,
// the two code buffers and the procedure table - between the
// compiler, the macro VM it drives at compile time, and the main VM.
// The two VM instances never run at the same time and share no
// operand or frame stacks.
package vm
