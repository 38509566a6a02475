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

package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// rawReader reads from a terminal in raw mode, where CTRL-D is not
// interpreted by the tty driver.
type rawReader struct {
	r io.Reader
}

func (r rawReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := r.r.Read(p[:1])
	if n == 1 && p[0] == 4 {
		return 0, io.EOF
	}
	return n, err
}

// setupIO switches stdin to raw mode if requested and stdin is a terminal. It
// returns the reader to use as VM input and a function restoring the terminal.
func setupIO(raw bool) (io.Reader, func()) {
	if !raw || !term.IsTerminal(int(os.Stdin.Fd())) {
		return os.Stdin, nil
	}
	tearDown, err := setRawIO()
	if err != nil {
		return os.Stdin, nil
	}
	return rawReader{os.Stdin}, tearDown
}
