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
	"github.com/pkg/errors"
)

// Run starts execution of the VM until the instruction pointer reaches the end
// of the program.
//
// If an error occurs, IP will point to the instruction that triggered the
// error and the tape is left as it was at that point. errors.Cause returns
// the underlying error, e.g. *ErrOutOfBounds or *ErrInvalidSyscallArgumentType.
//
// Run may be called again after the program has completed, in which case it
// returns immediately. To run the program again, reset IP and DP first.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "recovered error @ip=%d/%d, dp=%d/%d", i.IP, len(i.prog), i.DP, i.Tape.Len())
			default:
				panic(e)
			}
		}
		if ferr := i.flush(); err == nil {
			err = ferr
		}
	}()
	i.insCount = 0
	for i.IP != len(i.prog) {
		ins := &i.prog[i.IP]
		switch ins.Op {
		case OpForward:
			if i.DP+1 >= i.Tape.Len() {
				return i.fail(&ErrOutOfBounds{Pos: i.DP + 1, Len: i.Tape.Len()})
			}
			i.DP++
		case OpBackward:
			if i.DP == 0 {
				return i.fail(&ErrOutOfBounds{Pos: -1, Len: i.Tape.Len()})
			}
			i.DP--
		case OpInc:
			i.Tape.cells[i.DP]++
		case OpDec:
			i.Tape.cells[i.DP]--
		case OpOut:
			if err = i.writeByte(); err != nil {
				return i.fail(err)
			}
		case OpIn:
			if err = i.readByte(); err != nil {
				return i.fail(err)
			}
		case OpJz:
			if i.Tape.cells[i.DP] == 0 {
				i.IP = ins.Target
			}
		case OpJnz:
			if i.Tape.cells[i.DP] != 0 {
				i.IP = ins.Target
			}
		case OpSyscall:
			if err = i.syscall(); err != nil {
				return i.fail(err)
			}
		default:
			return i.fail(errors.Errorf("invalid opcode %d", ins.Op))
		}
		i.IP++
		i.insCount++
	}
	return nil
}

func (i *Instance) fail(err error) error {
	return errors.Wrapf(err, "@ip=%d (%v), dp=%d", i.IP, i.prog[i.IP].Op, i.DP)
}
