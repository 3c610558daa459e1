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

// Context is the state one compilation unit shares between the
// compiler, the macro VM and the main VM: the heap, the string
// store, the two code buffers, the label table and the procedure
// table.
//
// The top-level buffer holds the program's top-level instructions;
// every procedure and macro body is appended to the procedure buffer
// and entered through its recorded label offset.
type Context struct {
	Heap     *Heap
	Strings  *StringStore
	Procs    map[Value]Value // interned name -> boxed Proc
	TopCode  Code
	ProcCode Code
	Labels   Labels

	// instances are every VM attached to this context; a collection
	// triggered by one must treat the frames of all of them as roots
	instances []*Instance
}

// NewContext returns an empty Context with the native procedures
// registered.
func NewContext() *Context {
	heap := NewHeap()
	ctx := &Context{
		Heap:    heap,
		Strings: NewStringStore(heap),
		Procs:   make(map[Value]Value),
	}
	registerNatives(ctx)
	return ctx
}

// Intern interns s into the context's string store.
func (ctx *Context) Intern(s string) Value { return ctx.Strings.Intern(s) }

// AddProc registers a procedure value under its interned name.
func (ctx *Context) AddProc(name Value, proc Value) {
	ctx.Procs[name] = proc
}

// LookupProc returns the procedure registered under name.
func (ctx *Context) LookupProc(name Value) (Value, bool) {
	v, ok := ctx.Procs[name]
	return v, ok
}

// NewProc allocates a compiled procedure object entered at label.
// The allocation is pinned: procedures are reachable from code, not
// from the value graph.
func (ctx *Context) NewProc(name string, params []Value, label int) Value {
	return ctx.Heap.AllocPinned(ProcTag, &Proc{
		Name:   name,
		Params: params,
		Label:  label,
	})
}

func registerNatives(ctx *Context) {
	for _, n := range natives {
		name := ctx.Intern(n.name)
		proc := ctx.Heap.AllocPinned(ProcTag, &Proc{Name: n.name, Native: n.fn})
		ctx.AddProc(name, proc)
	}
}
