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
	"io"

	"github.com/pkg/errors"
)

// EOFMode selects what an input instruction stores in the current cell once
// the input is exhausted.
type EOFMode int

// Supported EOF modes.
const (
	EOFUnchanged EOFMode = iota // leave the cell as is
	EOFZero                     // store 0
	EOFMinusOne                 // store 255
)

var eofModes = [...]string{"unchanged", "zero", "minus-one"}

func (m EOFMode) String() string {
	if m >= 0 && int(m) < len(eofModes) {
		return eofModes[m]
	}
	return "invalid"
}

// ParseEOFMode returns the EOFMode with the given name.
func ParseEOFMode(s string) (EOFMode, error) {
	for m, name := range eofModes {
		if s == name {
			return EOFMode(m), nil
		}
	}
	return 0, errors.Errorf("unknown EOF mode %q", s)
}

type flusher interface {
	Flush() error
}

type multiReader struct {
	readers []io.Reader
}

func (mr *multiReader) Read(p []byte) (n int, err error) {
	for len(mr.readers) > 0 {
		n, err = mr.readers[0].Read(p)
		if n > 0 || err != io.EOF {
			if err == io.EOF {
				// Don't return EOF yet. There may be more bytes
				// in the remaining readers.
				err = nil
			}
			return
		}
		if c, ok := mr.readers[0].(io.Closer); ok {
			c.Close()
		}
		mr.readers = mr.readers[1:]
	}
	return 0, io.EOF
}

func (mr *multiReader) pushReader(r io.Reader) {
	mr.readers = append([]io.Reader{r}, mr.readers...)
}

// PushInput sets r as the current input Reader for the VM. When this reader
// reaches EOF, the previously pushed reader will be used.
func (i *Instance) PushInput(r io.Reader) {
	// dont use a multi reader unless necessary
	switch in := i.input.(type) {
	case nil:
		i.input = r
	case *multiReader:
		in.pushReader(r)
	default:
		i.input = &multiReader{[]io.Reader{r, i.input}}
	}
}

// readByte reads exactly one byte into the current cell.
func (i *Instance) readByte() error {
	var b [1]byte
	var err error
	if br, ok := i.input.(io.ByteReader); ok {
		b[0], err = br.ReadByte()
	} else {
		_, err = io.ReadFull(i.input, b[:])
	}
	switch err {
	case nil:
	case io.EOF:
		switch i.eof {
		case EOFUnchanged:
			return nil
		case EOFZero:
			b[0] = 0
		case EOFMinusOne:
			b[0] = 0xff
		}
	default:
		return errors.Wrap(err, "read failed")
	}
	i.Tape.cells[i.DP] = b[0]
	return nil
}

// writeByte writes the current cell to the output.
func (i *Instance) writeByte() error {
	_, err := i.output.Write(i.Tape.cells[i.DP : i.DP+1])
	return errors.Wrap(err, "write failed")
}

func (i *Instance) flush() error {
	if f, ok := i.output.(flusher); ok {
		return errors.Wrap(f.Flush(), "flush failed")
	}
	return nil
}
