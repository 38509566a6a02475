// This file is part of bfsys - https://github.com/db47h/bfsys
//
// Copyright 2026 Denis Bernard <db047h@gmail.com>
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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/db47h/bfsys/lex"
	"github.com/db47h/bfsys/vm"
	"github.com/pkg/errors"
)

// loadProgram reads and tokenizes the program source.
func loadProgram(c *cli) (vm.Program, error) {
	if c.fileName == "" {
		p, err := lex.Tokenize(c.expr)
		return p, errors.Wrap(err, "-e")
	}
	src, err := os.ReadFile(c.fileName)
	if err != nil {
		return nil, errors.Wrap(err, "load failed")
	}
	p, err := lex.Tokenize(string(src))
	return p, errors.Wrap(err, c.fileName)
}

func listProgram(p vm.Program, w io.Writer) error {
	bw := bufio.NewWriter(w)
	var err error
	for ip := 0; ip < len(p) && err == nil; {
		fmt.Fprintf(bw, "% 6d\t", ip)
		ip, err = lex.Disassemble(p, ip, bw)
		bw.WriteByte('\n')
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

func atExit(c *cli, i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if c == nil || !c.debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		dumpVM(i, os.Stderr)
	}
	os.Exit(1)
}

func main() {
	var err error
	var i *vm.Instance
	var c *cli

	defer func() {
		if err == nil && i != nil && c.Dump {
			err = dumpVM(i, os.Stderr)
		}
		atExit(c, i, err)
	}()

	c, err = parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			err = nil
		}
		return
	}

	log, closeLog, err := newLogger(&c.config, os.Stderr)
	if err != nil {
		return
	}
	defer closeLog()

	p, err := loadProgram(c)
	if err != nil {
		return
	}
	if c.disasm {
		err = listProgram(p, os.Stdout)
		return
	}

	opts, err := c.options()
	if err != nil {
		return
	}

	// try to switch the terminal to raw mode.
	input, ioTearDownFn := setupIO(c.Raw)
	if ioTearDownFn != nil {
		defer ioTearDownFn()
	}
	opts = append(opts, vm.Logger(log), vm.Input(input), vm.Output(os.Stdout))

	// push -with files on the input stack in reverse order so that they are
	// read in order of appearance on the command line.
	for n := len(c.with) - 1; n >= 0; n-- {
		var f *os.File
		f, err = os.Open(c.with[n])
		if err != nil {
			return
		}
		opts = append(opts, vm.Input(bufio.NewReader(f)))
	}

	i, err = vm.New(p, opts...)
	if err != nil {
		return
	}
	log.Debug("run", slog.Int("instructions", len(p)), slog.Int("tape", i.Tape.Len()))
	err = i.Run()
	log.Debug("exit", slog.Int64("executed", i.InstructionCount()), slog.Int("ip", i.IP), slog.Int("dp", i.DP))
}
