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

package vm

import (
	"syscall"

	"golang.org/x/sys/unix"
)

var nativeSyscall SyscallFunc = func(num uintptr, args [MaxSyscallArgs]uintptr) (uintptr, syscall.Errno) {
	r, _, errno := unix.Syscall6(num, args[0], args[1], args[2], args[3], args[4], args[5])
	return r, errno
}
