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

// StringStore interns strings by content. Every symbol, variable and
// procedure name used at compile time passes through it, so name
// comparison downgrades to comparing the boxed values.
//
// The store itself is a GC root: interned strings are never
// collected while the store lives.
type StringStore struct {
	heap *Heap
	byID map[string]Value
}

// NewStringStore returns an empty store allocating from heap.
func NewStringStore(heap *Heap) *StringStore {
	return &StringStore{
		heap: heap,
		byID: make(map[string]Value),
	}
}

// Intern returns the canonical String value for s, creating it on
// first use. Byte-equal inputs always return identical values.
func (st *StringStore) Intern(s string) Value {
	if v, ok := st.byID[s]; ok {
		return v
	}
	v := st.heap.AllocPinned(StringTag, &String{Bytes: []byte(s)})
	st.byID[s] = v
	return v
}

// Lookup returns the interned value for s without creating one; ok
// is false if s was never interned.
func (st *StringStore) Lookup(s string) (Value, bool) {
	v, ok := st.byID[s]
	return v, ok
}

// Len returns the number of interned strings.
func (st *StringStore) Len() int { return len(st.byID) }
