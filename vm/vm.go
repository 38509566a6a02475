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

package vm

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
)

// LevelTrace is the log level used to trace individual native calls. It is
// more verbose than slog.LevelDebug.
const LevelTrace = slog.LevelDebug - 4

// Instance represents a VM instance.
type Instance struct {
	IP       int   // Instruction Pointer
	DP       int   // Data Pointer
	Tape     *Tape // Memory
	prog     Program
	tapeSize int
	insCount int64
	input    io.Reader
	output   io.Writer
	eof      EOFMode
	sys      SyscallFunc
	log      *slog.Logger
}

// Option interface
type Option func(*Instance) error

// TapeSize sets the tape length in cells. The default is DefaultTapeSize.
func TapeSize(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return errors.Errorf("invalid tape size %d", size)
		}
		i.tapeSize = size
		return nil
	}
}

// Input pushes the given Reader on top of the input stack. When this reader
// reaches EOF, the previously pushed reader will be used. If no input is set,
// the VM reads from os.Stdin.
func Input(r io.Reader) Option {
	return func(i *Instance) error { i.PushInput(r); return nil }
}

// Output sets the output Writer. The default is os.Stdout.
//
// If w implements Flush() error, it is flushed before every native call and
// when Run returns so that its contents are never reordered with output
// produced by the kernel.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = w
		return nil
	}
}

// OnEOF sets the value stored by an input instruction when the input is
// exhausted. The default is EOFUnchanged.
func OnEOF(mode EOFMode) Option {
	return func(i *Instance) error {
		switch mode {
		case EOFUnchanged, EOFZero, EOFMinusOne:
			i.eof = mode
			return nil
		default:
			return errors.Errorf("invalid EOF mode %d", mode)
		}
	}
}

// Logger sets the logger used to report failed native calls and trace
// execution. By default nothing is logged.
func Logger(l *slog.Logger) Option {
	return func(i *Instance) error {
		if l == nil {
			return errors.New("nil logger")
		}
		i.log = l
		return nil
	}
}

// BindSyscall replaces the native call dispatcher. This is mostly useful for
// testing or to restrict which calls a program may perform.
func BindSyscall(fn SyscallFunc) Option {
	return func(i *Instance) error {
		if fn == nil {
			return errors.New("nil syscall handler")
		}
		i.sys = fn
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new VM instance that will run the given program.
//
// The program is checked with Program.Validate. The tape is allocated once
// options have been set and is kept across calls to Run.
func New(p Program, opts ...Option) (*Instance, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid program")
	}
	i := &Instance{
		prog:     p,
		tapeSize: DefaultTapeSize,
		sys:      nativeSyscall,
		log:      slog.New(slog.DiscardHandler),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.input == nil {
		i.input = os.Stdin
	}
	if i.output == nil {
		i.output = os.Stdout
	}
	i.Tape = NewTape(i.tapeSize)
	return i, nil
}

// Program returns the program run by the instance.
func (i *Instance) Program() Program {
	return i.prog
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Dump writes the VM registers and instruction count to w.
func (i *Instance) Dump(w io.Writer) error {
	_, err := fmt.Fprintf(w, "IP: %d/%d, DP: %d/%d, instructions: %d\n",
		i.IP, len(i.prog), i.DP, i.Tape.Len(), i.insCount)
	return errors.Wrap(err, "dump failed")
}
