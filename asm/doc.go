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

// Package asm assembles and disassembles RISC-V (RV32) code.
//
// The assembler is table driven: register names, CSR names, instruction
// encodings and simple pseudo instructions are supplied as a Tables value.
// Package github.com/db47h/rvasm/isa provides the RV32I tables.
//
// Assembly runs through the following stages:
//
//	Preprocess       source text to label and instruction lines
//	ExpandComplex    pseudo instructions needing arithmetic (li)
//	ExpandSimple     one to one textual pseudo instructions (mv, j, ret, ...)
//	AssignAddresses  pass 1: instruction addresses and the label map
//	Encode           pass 2: operand resolution and template evaluation
//
// Syntax:
//
// One instruction or label per line. A label is a name followed by a colon
// and may be followed by an instruction on the same line. Everything after a
// '#' is a comment. The mnemonic is separated from the operands by white
// space, operands are separated by commas. Memory operands are written
// offset(base):
//
//	loop:
//		lw   t0, 0(a0)      # load
//		addi a0, a0, 4
//		bnez t0, loop
//
// Operands:
//
// An operand is resolved, in order, as a register name, a CSR name, a numeric
// literal or a label. Literals are decimal, or hexadecimal, binary and octal
// with the 0x, 0b and 0o prefixes. A leading minus sign negates the value.
// Unsigned literals up to 0xffffffff are accepted and reinterpreted as signed
// 32 bits values. A label evaluates to its absolute address; branch and jump
// encodings convert it into an offset relative to the instruction.
//
// Immediates are not range checked: each encoding keeps the bits its fields
// select, so addi x1, x0, 5000 encodes the low 12 bits of 5000 (904). An
// instruction with more operands than its encoding uses is rejected.
//
// Pseudo instructions:
//
// li rd, value loads any 32 bits constant. It expands to a single addi (or mv
// for 0) when the value fits in 12 signed bits, else to lui followed by an
// addi when the low 12 bits are not zero. Since addi sign extends its
// immediate, the lui immediate is incremented when bit 11 of the value is
// set:
//
//	li a0, 0x8eff   =>  lui a0, 0x9
//	                    addi a0, a0, -257
//
// Other pseudo instructions are plain textual substitutions defined in the
// Pseudos table.
//
// Errors:
//
// Assembly stops at the first error. Errors are wrapped with
// github.com/pkg/errors to give context; the underlying error, one of the
// *...Error types of this package, is returned by errors.Cause.
package asm
