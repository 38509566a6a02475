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

package lex

import (
	"io"
	"strconv"

	"github.com/db47h/bfsys/internal/iox"
	"github.com/db47h/bfsys/vm"
)

// lineWidth is the number of symbols per line written by Format.
const lineWidth = 64

// Disassemble writes a disassembly of the instruction at position ip in the
// given program to the specified io.Writer and returns the position of the
// next instruction and any write error. Jumps are followed by their target.
func Disassemble(p vm.Program, ip int, w io.Writer) (next int, err error) {
	ew := iox.NewErrWriter(w)
	ins := p[ip]
	io.WriteString(ew, ins.Op.String())
	switch ins.Op {
	case vm.OpJz, vm.OpJnz:
		ew.WriteByte(' ')
		io.WriteString(ew, strconv.Itoa(ins.Target))
	}
	return ip + 1, ew.Err
}

// Format writes the source form of the given program to w. Tokenize(Format(p))
// yields p back.
func Format(p vm.Program, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	for ip, ins := range p {
		if ip > 0 && ip%lineWidth == 0 {
			ew.WriteByte('\n')
		}
		ew.WriteByte(ins.Op.Symbol())
	}
	if len(p) > 0 {
		ew.WriteByte('\n')
	}
	return ew.Err
}
