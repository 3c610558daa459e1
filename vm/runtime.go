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
	"strconv"
	"strings"
)

// String is a heap-resident byte string.
type String struct {
	Bytes []byte
}

func (s *String) String() string { return string(s.Bytes) }

// Vector is a growable ordered sequence of values.
type Vector struct {
	Items []Value
}

// List is a fixed-length sequence of values, used for parsed and
// quoted data.
type List struct {
	Items []Value
}

// mapEntry is one key/value pair of a Map bucket.
type mapEntry struct {
	Key Value
	Val Value
}

// Map is a hash table from Value to Value using the language's own
// equality and hashing. Buckets are chained slices; the table grows
// by doubling once the entry count exceeds the bucket count.
type Map struct {
	buckets [][]mapEntry
	count   int
}

// NewMap returns an empty Map sized for about n entries.
func NewMap(n int) *Map {
	if n < 4 {
		n = 4
	}
	return &Map{buckets: make([][]mapEntry, n)}
}

// Len returns the number of entries.
func (m *Map) Len() int { return m.count }

// Set inserts or replaces the value stored under key. Key hashing
// and equality need the heap to chase string and sequence handles.
func (m *Map) Set(h *Heap, key, val Value) {
	if m.count >= len(m.buckets) {
		m.grow(h)
	}
	idx := HashValue(h, key) % uint64(len(m.buckets))
	for i, e := range m.buckets[idx] {
		if Equal(h, e.Key, key) {
			m.buckets[idx][i].Val = val
			return
		}
	}
	m.buckets[idx] = append(m.buckets[idx], mapEntry{key, val})
	m.count++
}

// Get returns the value stored under key, or Nil.
func (m *Map) Get(h *Heap, key Value) Value {
	idx := HashValue(h, key) % uint64(len(m.buckets))
	for _, e := range m.buckets[idx] {
		if Equal(h, e.Key, key) {
			return e.Val
		}
	}
	return Nil
}

func (m *Map) grow(h *Heap) {
	old := m.buckets
	m.buckets = make([][]mapEntry, len(old)*2)
	m.count = 0
	for _, b := range old {
		for _, e := range b {
			m.Set(h, e.Key, e.Val)
		}
	}
}

// Each calls fn for every entry in bucket iteration order.
func (m *Map) Each(fn func(key, val Value)) {
	for _, b := range m.buckets {
		for _, e := range b {
			fn(e.Key, e.Val)
		}
	}
}

// NativeFn is a native procedure. It pops its own arguments from the
// current frame of i and returns the call result.
type NativeFn func(i *Instance, nargs int) (Value, error)

// Proc is a callable heap object: either a compiled kokos procedure
// (Label is its entry offset in the shared procedure code buffer) or
// a native one (Native is non-nil).
type Proc struct {
	Name   string
	Params []Value // interned parameter names, in order
	Label  int
	Native NativeFn
}

// IsNative reports whether the procedure is implemented in Go.
func (p *Proc) IsNative() bool { return p.Native != nil }

// FormatValue renders a value the way print does: booleans as
// true/false, nil, strings quoted, lists in (), vectors in [],
// maps in {} with space-separated pairs.
func FormatValue(h *Heap, v Value) string {
	var sb strings.Builder
	formatValue(h, v, &sb)
	return sb.String()
}

func formatValue(h *Heap, v Value, sb *strings.Builder) {
	switch {
	case v == True:
		sb.WriteString("true")
		return
	case v == False:
		sb.WriteString("false")
		return
	case v == Nil:
		sb.WriteString("nil")
		return
	}

	switch v.Tag() {
	case IntTag:
		sb.WriteString(strconv.FormatInt(int64(v.Int()), 10))
	case StringTag:
		sb.WriteByte('"')
		sb.Write(h.Str(v).Bytes)
		sb.WriteByte('"')
	case VectorTag:
		sb.WriteByte('[')
		formatItems(h, h.Vector(v).Items, sb)
		sb.WriteByte(']')
	case ListTag:
		sb.WriteByte('(')
		formatItems(h, h.List(v).Items, sb)
		sb.WriteByte(')')
	case MapTag:
		sb.WriteByte('{')
		first := true
		h.Map(v).Each(func(key, val Value) {
			if !first {
				sb.WriteByte(' ')
			}
			first = false
			formatValue(h, key, sb)
			sb.WriteByte(' ')
			formatValue(h, val, sb)
		})
		sb.WriteByte('}')
	case ProcTag:
		p := h.Proc(v)
		if p.IsNative() {
			sb.WriteString("<native proc ")
			sb.WriteString(p.Name)
			sb.WriteByte('>')
		} else {
			sb.WriteString("<kokos proc at ip ")
			sb.WriteString(strconv.Itoa(p.Label))
			sb.WriteByte('>')
		}
	default:
		sb.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	}
}

func formatItems(h *Heap, items []Value, sb *strings.Builder) {
	for i, item := range items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		formatValue(h, item, sb)
	}
}
