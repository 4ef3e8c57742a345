// This file is part of rvasm - https://github.com/db47h/rvasm
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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

package asm_test

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/db47h/rvasm/asm"
	"github.com/db47h/rvasm/isa"
)

// Count down from 0x8eff. li needs two instructions here since the constant
// does not fit in 12 bits.
func ExampleCompile() {
	code := `
		li   a0, 0x8eff    # counter
	loop:
		addi a0, a0, -1
		bnez a0, loop
		ret
`
	tables := isa.RV32I()
	words, err := asm.Compile(code, tables)
	if err != nil {
		fmt.Println(err)
		return
	}
	d := asm.NewDisassembler(tables)
	for n, w := range words {
		addr := uint32(n) * 4
		fmt.Printf("%2d %08x %s\n", addr, w, d.Instruction(w, addr))
	}

	// Output:
	//  0 00009537 lui x10, 0x9
	//  4 eff50513 addi x10, x10, -257
	//  8 fff50513 addi x10, x10, -1
	// 12 fe051ee3 bne x10, x0, 8
	// 16 00008067 jalr x0, 0(x1)
}

func ExampleAssembler_Expand() {
	a, err := asm.New(isa.RV32I())
	if err != nil {
		panic(err)
	}
	p, err := a.Expand("start: li t0, 0x12345678\nj start\nend:")
	if err != nil {
		panic(err)
	}
	for n, in := range p.Instructions {
		fmt.Println(p.Address(n), in)
	}
	fmt.Println("end =", p.Labels["end"])

	// Output:
	// 0 lui t0, 0x12345
	// 4 addi t0, t0, 1656
	// 8 jal zero, start
	// end = 12
}

func ExampleCompile_errors() {
	_, err := asm.Compile("nop\naddi x1, x0, foo", isa.RV32I())
	fmt.Println(err)
	if e, ok := errors.Cause(err).(*asm.UnknownParameterError); ok {
		fmt.Println("token:", e.Token)
	}

	// Output:
	// instruction 1 (addi x1, x0, foo): unknown parameter: foo
	// token: foo
}
