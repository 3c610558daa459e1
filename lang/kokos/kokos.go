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

// Package kokos holds the prelude: the part of the standard library
// written in the language itself. The driver compiles it into every
// compilation unit before user code, so its procedures and macros
// are available everywhere.
package kokos

// Prelude is the embedded prelude source.
const Prelude = `
; kokos prelude

(proc inc (n) (+ n 1))
(proc dec (n) (- n 1))

(proc not (x) (if x false true))

(proc abs (n) (if (< n 0) (- 0 n) n))
(proc min (a b) (if (< a b) a b))
(proc max (a b) (if (> a b) a b))

; (unless c a b) evaluates b when c holds, a otherwise
(macro unless (c a b) (list 'if c b a))
`

// Name is the pseudo file name prelude diagnostics carry.
const Name = "<prelude>"
