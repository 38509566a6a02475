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

	"github.com/davecgh/go-spew/spew"
	"github.com/db47h/bfsys/internal/iox"
	"github.com/db47h/bfsys/vm"
)

var dumpConfig = spew.ConfigState{Indent: " ", DisableCapacities: true}

// dumpVM writes the VM registers and a hex dump of the used portion of the
// tape to w.
func dumpVM(i *vm.Instance, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	if err := i.Dump(ew); err != nil {
		return err
	}
	used := i.Tape.Used()
	if i.DP >= used {
		used = i.DP + 1
	}
	dumpConfig.Fdump(ew, i.Tape.Bytes()[:used])
	return ew.Err
}
