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
	"strconv"

	"github.com/pkg/errors"
)

// Opcode identifies the operation performed by an Instruction.
type Opcode uint8

// VM opcodes.
const (
	OpForward Opcode = iota
	OpBackward
	OpInc
	OpDec
	OpOut
	OpIn
	OpJz
	OpJnz
	OpSyscall
)

var opcodes = [...]byte{
	OpForward:  '>',
	OpBackward: '<',
	OpInc:      '+',
	OpDec:      '-',
	OpOut:      '.',
	OpIn:       ',',
	OpJz:       '[',
	OpJnz:      ']',
	OpSyscall:  '%',
}

// Symbol returns the source symbol for op, or 0 if op is not a valid opcode.
func (op Opcode) Symbol() byte {
	if int(op) < len(opcodes) {
		return opcodes[op]
	}
	return 0
}

func (op Opcode) String() string {
	if s := op.Symbol(); s != 0 {
		return string(s)
	}
	return "Opcode(" + strconv.Itoa(int(op)) + ")"
}

// OpcodeFor returns the opcode for the source symbol c. The second return
// value is false if c is not a valid symbol.
func OpcodeFor(c rune) (Opcode, bool) {
	for op, s := range opcodes {
		if rune(s) == c {
			return Opcode(op), true
		}
	}
	return 0, false
}

// Instruction is a single VM instruction.
//
// For OpJz and OpJnz, Target is the index of the matching bracket
// instruction in the Program. Since the VM always advances the instruction
// pointer after dispatch, a taken jump resumes execution at Target+1. Target
// is unused for other opcodes.
type Instruction struct {
	Op     Opcode
	Target int
}

// Program is a linked instruction list.
type Program []Instruction

// Validate checks that all opcodes are valid and that brackets are properly
// nested, each jump targeting its partner.
func (p Program) Validate() error {
	var open []int
	for ip, ins := range p {
		switch ins.Op {
		case OpJz:
			open = append(open, ip)
		case OpJnz:
			if len(open) == 0 {
				return errors.Errorf("instruction %d: unmatched %v", ip, ins.Op)
			}
			jz := open[len(open)-1]
			open = open[:len(open)-1]
			if p[jz].Target != ip || ins.Target != jz {
				return errors.Errorf("instruction %d: %v and %d are not linked together", ip, ins.Op, jz)
			}
		default:
			if ins.Op.Symbol() == 0 {
				return errors.Errorf("instruction %d: invalid opcode %d", ip, ins.Op)
			}
		}
	}
	if len(open) > 0 {
		return errors.Errorf("instruction %d: unmatched %v", open[0], OpJz)
	}
	return nil
}
