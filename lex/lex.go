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
	"fmt"

	"github.com/db47h/bfsys/vm"
)

// ErrMissingClosingBracket is returned by Tokenize for a '[' without a
// matching ']'.
type ErrMissingClosingBracket struct {
	Pos int // rune offset in the source
}

func (e *ErrMissingClosingBracket) Error() string {
	return fmt.Sprintf("%d: missing closing bracket", e.Pos)
}

// ErrMissingOpeningBracket is returned by Tokenize for a ']' without a
// matching '['.
type ErrMissingOpeningBracket struct {
	Pos int // rune offset in the source
}

func (e *ErrMissingOpeningBracket) Error() string {
	return fmt.Sprintf("%d: missing opening bracket", e.Pos)
}

// token is a recognized symbol and its rune offset in the source.
type token struct {
	op  vm.Opcode
	pos int
}

// scan returns the recognized symbols of src, dropping comments.
func scan(src string) []token {
	var toks []token
	pos := 0
	for _, c := range src {
		if op, ok := vm.OpcodeFor(c); ok {
			toks = append(toks, token{op, pos})
		}
		pos++
	}
	return toks
}

// link resolves jump targets. Each ']' is paired with the nearest unmatched
// '[' before it.
func link(toks []token) (vm.Program, error) {
	p := make(vm.Program, len(toks))
	var open []int
	for ip, t := range toks {
		p[ip].Op = t.op
		switch t.op {
		case vm.OpJz:
			open = append(open, ip)
		case vm.OpJnz:
			if len(open) == 0 {
				return nil, &ErrMissingOpeningBracket{t.pos}
			}
			jz := open[len(open)-1]
			open = open[:len(open)-1]
			p[jz].Target, p[ip].Target = ip, jz
		}
	}
	if len(open) > 0 {
		return nil, &ErrMissingClosingBracket{toks[open[0]].pos}
	}
	return p, nil
}

// Tokenize compiles src into a linked program. The returned error, if not nil,
// is either an *ErrMissingClosingBracket or an *ErrMissingOpeningBracket.
func Tokenize(src string) (vm.Program, error) {
	return link(scan(src))
}

// Depths returns the nesting depth of every bracket in src, in source order.
// An opening bracket gets the depth before it, a closing bracket the depth
// after it, so that matching brackets share the same depth. Depths may be
// negative in unbalanced sources.
func Depths(src string) []int {
	var ds []int
	d := 0
	for _, t := range scan(src) {
		switch t.op {
		case vm.OpJz:
			ds = append(ds, d)
			d++
		case vm.OpJnz:
			d--
			ds = append(ds, d)
		}
	}
	return ds
}
