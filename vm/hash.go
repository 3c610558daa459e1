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

import "bytes"

// Djb2 hashes b with the classic djb2 function (hash*33 + c).
func Djb2(b []byte) uint64 {
	var hash uint64 = 5381
	for _, c := range b {
		hash = hash<<5 + hash + uint64(c)
	}
	return hash
}

// Equal implements the language's structural equality:
//
//   - numbers compare numerically, an int against a double compares
//     as doubles, and NaN equals NaN;
//   - strings compare byte-wise;
//   - vectors and lists compare by length and pairwise elements;
//   - maps, procs and the singletons compare by identity.
func Equal(h *Heap, a, b Value) bool {
	if a.IsNumber() && b.IsNumber() {
		na, nb := a.Number(), b.Number()
		if na != na && nb != nb { // both NaN
			return true
		}
		return na == nb
	}

	if a.Tag() != b.Tag() {
		return false
	}

	switch a.Tag() {
	case StringTag:
		return bytes.Equal(h.Str(a).Bytes, h.Str(b).Bytes)
	case VectorTag:
		return equalItems(h, h.Vector(a).Items, h.Vector(b).Items)
	case ListTag:
		return equalItems(h, h.List(a).Items, h.List(b).Items)
	default:
		// maps, procs and singletons
		return a == b
	}
}

func equalItems(h *Heap, a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(h, a[i], b[i]) {
			return false
		}
	}
	return true
}

// HashValue hashes a value: strings hash their bytes with djb2,
// vectors and lists sum their element hashes, maps sum key and value
// hashes over their entries, and numbers and everything else hash
// their bit pattern. An int and a double that Equal reports equal
// therefore hash differently, and so do sequences that differ only
// in such elements.
func HashValue(h *Heap, v Value) uint64 {
	switch v.Tag() {
	case StringTag:
		return Djb2(h.Str(v).Bytes)
	case VectorTag:
		return sumHashes(h, h.Vector(v).Items)
	case ListTag:
		return sumHashes(h, h.List(v).Items)
	case MapTag:
		var sum uint64
		h.Map(v).Each(func(key, val Value) {
			sum += HashValue(h, key) + HashValue(h, val)
		})
		return sum
	default:
		return uint64(v)
	}
}

func sumHashes(h *Heap, items []Value) uint64 {
	var sum uint64
	for _, item := range items {
		sum += HashValue(h, item)
	}
	return sum
}
