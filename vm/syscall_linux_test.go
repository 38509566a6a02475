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

//go:build linux

package vm_test

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/db47h/bfsys/lex"
	"github.com/db47h/bfsys/vm"
	"golang.org/x/sys/unix"
)

// sysno returns n as a tape cell, or skips the test if the call number does
// not fit in a byte on this architecture.
func sysno(t *testing.T, n int) byte {
	t.Helper()
	if n < 0 || n > 255 {
		t.Skipf("syscall number %d does not fit in a cell", n)
	}
	return byte(n)
}

func runNative(t *testing.T, code string, cells []byte, opts ...vm.Option) *vm.Instance {
	t.Helper()
	p, err := lex.Tokenize(code)
	if err != nil {
		t.Fatal(err)
	}
	i, err := vm.New(p, append(opts, vm.Output(io.Discard))...)
	if err != nil {
		t.Fatal(err)
	}
	copy(i.Tape.Bytes(), cells)
	if err = i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	return i
}

func pipe(t *testing.T) (r, w *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close(); w.Close() })
	if w.Fd() > 255 {
		t.Skip("pipe fd does not fit in a cell")
	}
	return r, w
}

func TestNative_getpid(t *testing.T) {
	i := runNative(t, "%", []byte{sysno(t, unix.SYS_GETPID), 0})
	if got, want := i.Tape.Bytes()[0], byte(os.Getpid()); got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
}

func TestNative_writePointer(t *testing.T) {
	r, w := pipe(t)
	cells := []byte{
		sysno(t, unix.SYS_WRITE), 3,
		0, 1, byte(w.Fd()),
		1, 5, 'h', 'e', 'l', 'l', 'o',
		0, 1, 5,
	}
	i := runNative(t, "%", cells)
	if c := i.Tape.Bytes()[0]; c != 5 {
		t.Errorf("expected 5 bytes written, got %d", c)
	}
	b := make([]byte, 5)
	if _, err := io.ReadFull(r, b); err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello" {
		t.Errorf("expected %q, got %q", "hello", b)
	}
}

func TestNative_writeCellPointer(t *testing.T) {
	r, w := pipe(t)
	cells := make([]byte, 40)
	copy(cells, []byte{
		sysno(t, unix.SYS_WRITE), 3,
		0, 1, byte(w.Fd()),
		2, 1, 32,
		0, 1, 3,
	})
	copy(cells[32:], "hi\n")
	i := runNative(t, "%", cells)
	if c := i.Tape.Bytes()[0]; c != 3 {
		t.Errorf("expected 3 bytes written, got %d", c)
	}
	b := make([]byte, 3)
	if _, err := io.ReadFull(r, b); err != nil {
		t.Fatal(err)
	}
	if string(b) != "hi\n" {
		t.Errorf("expected %q, got %q", "hi\n", b)
	}
}

func TestNative_readInto(t *testing.T) {
	r, w := pipe(t)
	if r.Fd() > 255 {
		t.Skip("pipe fd does not fit in a cell")
	}
	if _, err := w.Write([]byte("xyz")); err != nil {
		t.Fatal(err)
	}
	cells := []byte{
		sysno(t, unix.SYS_READ), 3,
		0, 1, byte(r.Fd()),
		2, 1, 20,
		0, 1, 3,
	}
	i := runNative(t, "%", cells)
	if c := i.Tape.Bytes()[0]; c != 3 {
		t.Errorf("expected 3 bytes read, got %d", c)
	}
	if got := string(i.Tape.Bytes()[20:23]); got != "xyz" {
		t.Errorf("expected %q, got %q", "xyz", got)
	}
}

func TestNative_failure(t *testing.T) {
	var b bytes.Buffer
	log := slog.New(slog.NewTextHandler(&b, nil))
	i := runNative(t, "%>+", []byte{sysno(t, unix.SYS_CLOSE), 1, 0, 1, 250}, vm.Logger(log))
	if c := i.Tape.Bytes()[0]; c != 255 {
		t.Errorf("expected 255, got %d", c)
	}
	if c := i.Tape.Bytes()[1]; c != 2 {
		t.Error("execution did not continue after failed call")
	}
	if !strings.Contains(b.String(), "bad file descriptor") {
		t.Errorf("failure not logged: %q", b.String())
	}
}
