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

// Command kokos runs kokos programs.
//
// With a file argument the file is executed; without one an
// interactive prompt starts, reading one form per line and echoing
// the values it evaluates to. Diagnostics go to stderr as
// FILE:ROW:COL: message; the exit code is 0 on success and 1 on any
// parse, compile or run-time failure.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/atmatm9182/kokos/compiler"
	"github.com/atmatm9182/kokos/internal/kio"
	kokos "github.com/atmatm9182/kokos/lang/kokos"
	"github.com/atmatm9182/kokos/lexer"
	"github.com/atmatm9182/kokos/parser"
	"github.com/atmatm9182/kokos/vm"
)

var (
	gcThreshold = flag.Int("gc", vm.DefaultGCThreshold, "collect garbage above `n` live objects")
	dump        = flag.Bool("dump", false, "dump compiled bytecode instead of running it")
	evalSrc     = flag.String("e", "", "evaluate `source` and exit")
	noPrelude   = flag.Bool("noprelude", false, "do not load the prelude")
)

// session is one compilation unit: a context, its root scope and the
// main VM, shared by every form the driver reads.
type session struct {
	ctx     *vm.Context
	scope   *compiler.Scope
	machine *vm.Instance
	out     *kio.ErrWriter
}

func newSession(out *kio.ErrWriter) (*session, error) {
	ctx := vm.NewContext()
	ctx.Heap.Threshold = *gcThreshold

	scope, err := compiler.NewScope(ctx, out)
	if err != nil {
		return nil, err
	}
	machine, err := vm.New(ctx, vm.Output(out))
	if err != nil {
		return nil, err
	}
	return &session{ctx: ctx, scope: scope, machine: machine, out: out}, nil
}

// eval compiles and runs every form of src. When echo is set the
// values the forms evaluate to are printed, the way the prompt
// answers input.
func (s *session) eval(name, src string, echo bool) error {
	p := parser.New(lexer.New(name, src))
	for {
		e, err := p.Next()
		if err != nil {
			return err
		}
		if e == nil {
			return nil
		}

		mark := len(s.ctx.TopCode)
		if err := compiler.Compile(e, s.scope); err != nil {
			return err
		}
		if *dump {
			continue
		}

		depth := s.machine.Depth()
		if err := s.machine.Run(s.ctx.TopCode, mark); err != nil {
			return errors.Wrapf(err, "%s", e.Loc())
		}

		if echo {
			var results []vm.Value
			for s.machine.Depth() > depth {
				v, err := s.machine.Pop()
				if err != nil {
					return err
				}
				results = append(results, v)
			}
			for i := len(results) - 1; i >= 0; i-- {
				fmt.Fprintln(s.out, vm.FormatValue(s.ctx.Heap, results[i]))
			}
		}
	}
}

func (s *session) loadPrelude() error {
	if *noPrelude {
		return nil
	}
	return errors.Wrap(s.eval(kokos.Name, kokos.Prelude, false), "loading prelude")
}

func (s *session) dumpCode() {
	fmt.Println("top level:")
	s.ctx.TopCode.Dump(os.Stdout, s.ctx.Heap, &s.ctx.Labels)
	if len(s.ctx.ProcCode) > 0 {
		fmt.Println("procedures:")
		s.ctx.ProcCode.Dump(os.Stdout, s.ctx.Heap, &s.ctx.Labels)
	}
}

func (s *session) repl(out *bufio.Writer) error {
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return in.Err()
		}
		if err := s.eval("repl", in.Text(), true); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		out.Flush()
	}
}

func (s *session) script(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "could not read %s", path)
	}
	return s.eval(path, string(src), false)
}

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	flag.Parse()

	stdout := bufio.NewWriter(os.Stdout)
	out := kio.NewErrWriter(stdout)
	defer stdout.Flush()

	sess, err := newSession(out)
	if err != nil {
		atExit(err)
	}
	if err := sess.loadPrelude(); err != nil {
		atExit(err)
	}

	switch {
	case *evalSrc != "":
		err = sess.eval("<eval>", *evalSrc, false)
	case flag.NArg() > 0:
		err = sess.script(flag.Arg(0))
	default:
		err = sess.repl(stdout)
	}

	if err == nil && *dump {
		sess.dumpCode()
	}
	if err == nil {
		err = out.Err
	}
	stdout.Flush()
	atExit(err)
}
