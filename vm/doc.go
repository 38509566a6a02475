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

// Package vm implements a tape virtual machine for a brainfuck dialect
// extended with a system call instruction.
//
// Programs are flat instruction lists, usually built from source text by
// package github.com/db47h/bfsys/lex. An Instance runs a Program against a
// fixed size byte Tape, reading input and writing output one byte at a time.
//
// The '%' instruction (OpSyscall) decodes a call descriptor from the tape at
// the data pointer:
//
//	+-----+------+------+-----+---------+------+-----+---------+-----
//	| num | argc | kind | len | payload | kind | len | payload | ...
//	+-----+------+------+-----+---------+------+-----+---------+-----
//
// num is the platform system call number and argc the number of argument
// descriptors that follow (at most 6). Each argument kind is one of:
//
//	0 ArgRegular     payload is a big endian unsigned integer.
//	1 ArgPointer     the argument is the address of the payload's first byte.
//	2 ArgCellPointer payload is a big endian tape index, the argument is the
//	                 address of that tape cell.
//
// Pointer arguments let programs hand buffers living on the tape to the
// kernel. This is only sound because a Tape never reallocates its storage.
//
// Once the call returns, the low byte of its result is stored at the data
// pointer, overwriting num. A result of -1 is logged with the corresponding
// errno and execution continues; the program can detect it by testing for
// 255.
//
// Moving the data pointer off either end of the tape stops the VM with an
// ErrOutOfBounds error.
package vm
