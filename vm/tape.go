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
	"unsafe"
)

// DefaultTapeSize is the tape length used unless the TapeSize option is set.
const DefaultTapeSize = 30000

// ErrOutOfBounds is returned when the VM accesses a tape cell outside of the
// tape.
type ErrOutOfBounds struct {
	Pos int // offending cell index
	Len int // tape length
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("tape position %d out of bounds [0, %d)", e.Pos, e.Len)
}

// Tape is the byte memory of a VM instance.
//
// Its storage is allocated once by NewTape, zeroed, and never grows, shrinks
// or moves afterwards. Native calls rely on this: addresses obtained with Addr
// remain valid for as long as the Tape is reachable.
type Tape struct {
	cells []byte
}

// NewTape returns a new zeroed tape of the given length.
func NewTape(size int) *Tape {
	if size <= 0 {
		panic("vm: non-positive tape size")
	}
	return &Tape{cells: make([]byte, size)}
}

// Len returns the number of cells on the tape.
func (t *Tape) Len() int { return len(t.cells) }

// Bytes returns the tape cells. Changes to the returned slice are reflected on
// the tape. Its capacity is capped so that appending never writes past the
// tape.
func (t *Tape) Bytes() []byte {
	return t.cells[:len(t.cells):len(t.cells)]
}

// check returns an *ErrOutOfBounds error unless the n cells at pos are all on
// the tape. Pos in the error is the first cell off the tape.
func (t *Tape) check(pos, n int) error {
	l := len(t.cells)
	if pos < 0 || pos > l {
		return &ErrOutOfBounds{Pos: pos, Len: l}
	}
	if n > l-pos {
		return &ErrOutOfBounds{Pos: l, Len: l}
	}
	return nil
}

// At returns the value of the cell at pos.
func (t *Tape) At(pos int) (byte, error) {
	if err := t.check(pos, 1); err != nil {
		return 0, err
	}
	return t.cells[pos], nil
}

// Set sets the value of the cell at pos.
func (t *Tape) Set(pos int, v byte) error {
	if err := t.check(pos, 1); err != nil {
		return err
	}
	t.cells[pos] = v
	return nil
}

// Slice returns the n cells starting at pos. The returned slice shares the
// tape storage.
func (t *Tape) Slice(pos, n int) ([]byte, error) {
	if err := t.check(pos, n); err != nil {
		return nil, err
	}
	return t.cells[pos : pos+n : pos+n], nil
}

// Addr returns the memory address of the cell at pos.
//
// The address is only meaningful while t is reachable. Callers passing it to
// native code must keep t alive until the call returns (see runtime.KeepAlive).
func (t *Tape) Addr(pos int) (uintptr, error) {
	if err := t.check(pos, 1); err != nil {
		return 0, err
	}
	return uintptr(unsafe.Pointer(&t.cells[pos])), nil
}

// Used returns the length of the tape prefix that contains non-zero cells.
func (t *Tape) Used() int {
	n := len(t.cells)
	for n > 0 && t.cells[n-1] == 0 {
		n--
	}
	return n
}
