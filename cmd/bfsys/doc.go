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

// The bfsys command line tool runs programs for the package
// github.com/db47h/bfsys/vm.
//
// Usage:
//
//	bfsys [flags] [file]
//
//	-config filename
//		  read settings from TOML file filename
//	-debug
//		  enable debug diagnostics
//	-disasm
//		  list the linked program and exit
//	-dump
//		  dump registers and tape to stderr upon exit
//	-e program
//		  run program text instead of a file
//	-eof string
//		  value stored on end of input: unchanged, zero or minus-one (default "unchanged")
//	-log-file filename
//		  also write JSON logs to filename
//	-log-level string
//		  log level: trace, debug, info, warn or error (default "warn")
//	-raw
//		  switch the terminal to raw IO
//	-size value
//		  tape size in cells (default 30000)
//	-with filename
//		  Add filename to the input list (can be specified multiple times)
//
// The program is read from the last command line argument, or from the -e flag.
//
// -debug: will print a full stacktrace and dump the VM should it fail.
//
// -raw: when stdin is a terminal, switch it to raw mode so that each key press
// is available to the program immediately. CTRL-D then signals end of input.
//
// -log-level: failed native calls are logged at warn level. The trace level
// logs every native call with its arguments and result.
//
// -with: After loading the program, bfsys will feed the specified file to the
// VM as input before stdin. If specified multiple times, files will be fed to
// the VM in order of appearance on the command line.
//
// Settings can also be read from a TOML file with the -config flag. Flags given
// on the command line take precedence. For example:
//
//	tape_size = 65536
//	eof = "zero"
//	log_level = "info"
//	log_file = "/tmp/bfsys.log"
//	raw = false
//	dump = false
//
// bfsys exits with status 1 if the program cannot be loaded or fails at run
// time.
package main
