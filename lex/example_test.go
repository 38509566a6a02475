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

package lex_test

import (
	"fmt"
	"os"

	"github.com/db47h/bfsys/lex"
)

func ExampleTokenize() {
	_, err := lex.Tokenize("+[->+<")
	fmt.Println(err)

	p, err := lex.Tokenize("+[->+<] move cell 0 to cell 1")
	if err != nil {
		panic(err)
	}
	for ip := 0; ip < len(p); {
		fmt.Printf("%d\t", ip)
		ip, _ = lex.Disassemble(p, ip, os.Stdout)
		fmt.Println()
	}

	// Output:
	// 1: missing closing bracket
	// 0	+
	// 1	[ 6
	// 2	-
	// 3	>
	// 4	+
	// 5	<
	// 6	] 1
}
