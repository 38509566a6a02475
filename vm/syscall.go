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
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
)

// MaxSyscallArgs is the maximum number of arguments to a native call.
const MaxSyscallArgs = 6

const wordSize = int(unsafe.Sizeof(uintptr(0)))

// ArgKind is the kind tag of a native call argument descriptor.
type ArgKind uint8

// Argument kinds.
const (
	ArgRegular     ArgKind = iota // big endian integer
	ArgPointer                    // address of the payload
	ArgCellPointer                // address of the tape cell at the big endian index in the payload
)

var argKinds = [...]string{"regular", "pointer", "cell-pointer"}

func (k ArgKind) String() string {
	if int(k) < len(argKinds) {
		return argKinds[k]
	}
	return fmt.Sprintf("ArgKind(%d)", uint8(k))
}

// ErrInvalidSyscallArgumentType is returned when an argument descriptor has
// an unknown kind tag.
type ErrInvalidSyscallArgumentType struct {
	ArgType byte
}

func (e *ErrInvalidSyscallArgumentType) Error() string {
	return fmt.Sprintf("invalid syscall argument type %d", e.ArgType)
}

// ErrSyscallArgCount is returned when a call descriptor has more than
// MaxSyscallArgs arguments.
type ErrSyscallArgCount struct {
	Count int
}

func (e *ErrSyscallArgCount) Error() string {
	return fmt.Sprintf("too many syscall arguments: %d > %d", e.Count, MaxSyscallArgs)
}

// ErrSyscallArgLength is returned when the payload of an integer argument
// does not fit in a machine word.
type ErrSyscallArgLength struct {
	Arg    int // argument index
	Length int // payload length
}

func (e *ErrSyscallArgLength) Error() string {
	return fmt.Sprintf("syscall argument %d: payload length %d exceeds word size %d", e.Arg, e.Length, wordSize)
}

// ErrSyscallUnsupported is returned by the default dispatcher on platforms
// where native calls are not implemented.
var ErrSyscallUnsupported = errors.New("native calls are not supported on " + runtime.GOOS)

// SyscallFunc is the function prototype for native call dispatchers. args
// holds the register values in argument order, unused slots are 0. It returns
// the raw call result and, if the call failed, the error number.
type SyscallFunc func(num uintptr, args [MaxSyscallArgs]uintptr) (r uintptr, errno syscall.Errno)

// Arg is a decoded native call argument.
type Arg struct {
	Kind    ArgKind
	Offset  int     // tape index of the payload
	Payload []byte  // payload bytes, sharing the tape storage
	Value   uintptr // register value
}

// Syscall is a native call decoded from the tape.
type Syscall struct {
	Num  uintptr
	Args []Arg
}

// Regs returns the register values of the call. Missing arguments are 0.
func (s *Syscall) Regs() (regs [MaxSyscallArgs]uintptr) {
	for n := range s.Args {
		regs[n] = s.Args[n].Value
	}
	return regs
}

// beUint decodes a big endian unsigned integer of at most wordSize bytes.
func beUint(p []byte) uint64 {
	var b [8]byte
	copy(b[len(b)-len(p):], p)
	return binary.BigEndian.Uint64(b[:])
}

// DecodeSyscall decodes the call descriptor at position dp on the tape.
//
// Pointer values are computed from the tape's current storage address. They
// remain valid as long as t is reachable.
func DecodeSyscall(t *Tape, dp int) (*Syscall, error) {
	hdr, err := t.Slice(dp, 2)
	if err != nil {
		return nil, err
	}
	argc := int(hdr[1])
	if argc > MaxSyscallArgs {
		return nil, &ErrSyscallArgCount{argc}
	}
	sc := &Syscall{Num: uintptr(hdr[0]), Args: make([]Arg, 0, argc)}
	pos := dp + 2
	for n := 0; n < argc; n++ {
		tag, err := t.At(pos)
		if err != nil {
			return nil, err
		}
		kind := ArgKind(tag)
		if kind > ArgCellPointer {
			return nil, &ErrInvalidSyscallArgumentType{tag}
		}
		ln, err := t.At(pos + 1)
		if err != nil {
			return nil, err
		}
		l := int(ln)
		a := Arg{Kind: kind, Offset: pos + 2}
		if a.Payload, err = t.Slice(a.Offset, l); err != nil {
			return nil, err
		}
		if kind != ArgPointer && l > wordSize {
			return nil, &ErrSyscallArgLength{Arg: n, Length: l}
		}
		switch kind {
		case ArgRegular:
			a.Value = uintptr(beUint(a.Payload))
		case ArgPointer:
			a.Value, err = t.Addr(a.Offset)
		case ArgCellPointer:
			idx := beUint(a.Payload)
			if idx >= uint64(t.Len()) {
				return nil, &ErrOutOfBounds{Pos: int(min(idx, uint64(^uint(0)>>1))), Len: t.Len()}
			}
			a.Value, err = t.Addr(int(idx))
		}
		if err != nil {
			return nil, err
		}
		sc.Args = append(sc.Args, a)
		pos += 2 + l
	}
	return sc, nil
}

// syscall performs the native call described at the data pointer and stores
// the low byte of its result there.
func (i *Instance) syscall() error {
	sc, err := DecodeSyscall(i.Tape, i.DP)
	if err != nil {
		return err
	}
	if i.sys == nil {
		return ErrSyscallUnsupported
	}
	if err = i.flush(); err != nil {
		return err
	}
	regs := sc.Regs()
	ctx := context.Background()
	i.log.Log(ctx, LevelTrace, "syscall",
		slog.Uint64("num", uint64(sc.Num)),
		slog.Any("args", regs[:len(sc.Args)]))

	r, errno := i.sys(sc.Num, regs)
	runtime.KeepAlive(i.Tape)

	if int(r) == -1 {
		i.log.Warn("syscall failed",
			slog.Uint64("num", uint64(sc.Num)),
			slog.Int("errno", int(errno)),
			slog.String("err", errno.Error()))
	}
	i.log.Log(ctx, LevelTrace, "syscall result",
		slog.Int("ret", int(r)),
		slog.Int("dp", i.DP))
	i.Tape.cells[i.DP] = byte(r)
	return nil
}
