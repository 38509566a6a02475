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

// Package lex turns source text into linked VM programs.
//
// The recognized symbols are:
//
//	>	move the data pointer forward
//	<	move the data pointer backward
//	+	increment the current cell
//	-	decrement the current cell
//	.	write the current cell to the output
//	,	read one byte of input into the current cell
//	[	jump past the matching ] if the current cell is 0
//	]	jump back past the matching [ if the current cell is not 0
//	%	perform the native call described at the data pointer
//
// Any other character is a comment. Brackets must be balanced; Tokenize
// reports the rune offset of the first unmatched one.
//
// Tokenize links every bracket to its partner once, so the VM never searches
// for matching brackets at run time. Format and Disassemble do the reverse, for
// debugging.
package lex
