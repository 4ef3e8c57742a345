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

// Package isa provides the RV32I instruction set tables used by the
// assembler, together with loaders for their plain text representation.
//
// Operand order follows the usual RISC-V assembler syntax. Memory operands
// are written offset(base) and reach the encoder as two operands, offset then
// base:
//
//	lw   rd, offset(rs1)      operands: rd, offset, rs1
//	sw   rs2, offset(rs1)     operands: rs2, offset, rs1
//	jalr rd, offset(rs1)      operands: rd, offset, rs1
//
// Branch and jump targets are absolute addresses, usually given as labels.
// The encoder converts them to pc relative offsets.
package isa

import (
	"strconv"

	"github.com/db47h/rvasm/asm"
	"github.com/db47h/rvasm/bitfield"
)

const (
	opLoad   = "0000011"
	opMiscM  = "0001111"
	opImm    = "0010011"
	opAuipc  = "0010111"
	opStore  = "0100011"
	opOp     = "0110011"
	opLui    = "0110111"
	opBranch = "1100011"
	opJalr   = "1100111"
	opJal    = "1101111"
	opSystem = "1110011"
)

func f3(v int) string {
	s := strconv.FormatInt(int64(v), 2)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

// rd, rs1, rs2
func rType(funct7 string, funct3 int) asm.Template {
	return asm.Template{asm.Lit(funct7), asm.Reg(2), asm.Reg(1), asm.Lit(f3(funct3)), asm.Reg(0), asm.Lit(opOp)}
}

// rd, rs1, imm
func iType(funct3 int) asm.Template {
	return asm.Template{asm.Imm(2, bitfield.Low12), asm.Reg(1), asm.Lit(f3(funct3)), asm.Reg(0), asm.Lit(opImm)}
}

// rd, rs1, shamt
func shift(funct7 string, funct3 int) asm.Template {
	return asm.Template{asm.Lit(funct7), asm.Imm(2, bitfield.ShiftAmount), asm.Reg(1), asm.Lit(f3(funct3)), asm.Reg(0), asm.Lit(opImm)}
}

// rd, offset, rs1
func load(funct3 int) asm.Template {
	return asm.Template{asm.Imm(1, bitfield.Low12), asm.Reg(2), asm.Lit(f3(funct3)), asm.Reg(0), asm.Lit(opLoad)}
}

// rs2, offset, rs1
func store(funct3 int) asm.Template {
	return asm.Template{asm.Imm(1, bitfield.StoreHigh), asm.Reg(0), asm.Reg(2), asm.Lit(f3(funct3)), asm.Imm(1, bitfield.StoreLow), asm.Lit(opStore)}
}

// rs1, rs2, target
func branch(funct3 int) asm.Template {
	return asm.Template{asm.Rel(2, bitfield.BranchHigh), asm.Reg(1), asm.Reg(0), asm.Lit(f3(funct3)), asm.Rel(2, bitfield.BranchLow), asm.Lit(opBranch)}
}

// rd, upper immediate
func upper(opcode string) asm.Template {
	return asm.Template{asm.Imm(1, bitfield.Low20), asm.Reg(0), asm.Lit(opcode)}
}

// rd, csr, rs1
func csr(funct3 int) asm.Template {
	return asm.Template{asm.CSRField(1), asm.Reg(2), asm.Lit(f3(funct3)), asm.Reg(0), asm.Lit(opSystem)}
}

// rd, csr, uimm
func csri(funct3 int) asm.Template {
	return asm.Template{asm.CSRField(1), asm.Imm(2, bitfield.StoreLow), asm.Lit(f3(funct3)), asm.Reg(0), asm.Lit(opSystem)}
}

func fixed(bits string) asm.Template {
	return asm.Template{asm.Lit(bits)}
}

// Encodings returns the encoding templates of RV32I, Zicsr, M and the
// machine mode mret and wfi instructions.
func Encodings() map[string]asm.Template {
	const (
		base = "0000000"
		alt  = "0100000"
		mext = "0000001"
	)
	return map[string]asm.Template{
		"lui":   upper(opLui),
		"auipc": upper(opAuipc),
		"jal":   {asm.Rel(1, bitfield.JalForm), asm.Reg(0), asm.Lit(opJal)},
		"jalr":  {asm.Imm(1, bitfield.Low12), asm.Reg(2), asm.Lit("000"), asm.Reg(0), asm.Lit(opJalr)},

		"beq":  branch(0),
		"bne":  branch(1),
		"blt":  branch(4),
		"bge":  branch(5),
		"bltu": branch(6),
		"bgeu": branch(7),

		"lb":  load(0),
		"lh":  load(1),
		"lw":  load(2),
		"lbu": load(4),
		"lhu": load(5),
		"sb":  store(0),
		"sh":  store(1),
		"sw":  store(2),

		"addi":  iType(0),
		"slti":  iType(2),
		"sltiu": iType(3),
		"xori":  iType(4),
		"ori":   iType(6),
		"andi":  iType(7),
		"slli":  shift(base, 1),
		"srli":  shift(base, 5),
		"srai":  shift(alt, 5),

		"add":  rType(base, 0),
		"sub":  rType(alt, 0),
		"sll":  rType(base, 1),
		"slt":  rType(base, 2),
		"sltu": rType(base, 3),
		"xor":  rType(base, 4),
		"srl":  rType(base, 5),
		"sra":  rType(alt, 5),
		"or":   rType(base, 6),
		"and":  rType(base, 7),

		"mul":    rType(mext, 0),
		"mulh":   rType(mext, 1),
		"mulhsu": rType(mext, 2),
		"mulhu":  rType(mext, 3),
		"div":    rType(mext, 4),
		"divu":   rType(mext, 5),
		"rem":    rType(mext, 6),
		"remu":   rType(mext, 7),

		"csrrw":  csr(1),
		"csrrs":  csr(2),
		"csrrc":  csr(3),
		"csrrwi": csri(5),
		"csrrsi": csri(6),
		"csrrci": csri(7),

		// fence iorw, iorw
		"fence":  fixed("0000" + "1111" + "1111" + "00000" + "000" + "00000" + opMiscM),
		"ecall":  fixed("000000000000" + "00000" + "000" + "00000" + opSystem),
		"ebreak": fixed("000000000001" + "00000" + "000" + "00000" + opSystem),
		"mret":   fixed("001100000010" + "00000" + "000" + "00000" + opSystem),
		"wfi":    fixed("000100000101" + "00000" + "000" + "00000" + opSystem),
	}
}

var abiNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// Registers returns the integer register names: x0 to x31, their ABI names
// and fp as an alias of s0.
func Registers() map[string]uint8 {
	r := make(map[string]uint8, 65)
	for i, n := range abiNames {
		r["x"+strconv.Itoa(i)] = uint8(i)
		r[n] = uint8(i)
	}
	r["fp"] = 8
	return r
}

// CSRs returns the names of the standard user, supervisor and machine CSRs.
func CSRs() map[string]uint16 {
	return map[string]uint16{
		"fflags": 0x001,
		"frm":    0x002,
		"fcsr":   0x003,

		"cycle":    0xc00,
		"time":     0xc01,
		"instret":  0xc02,
		"cycleh":   0xc80,
		"timeh":    0xc81,
		"instreth": 0xc82,

		"sstatus":  0x100,
		"sie":      0x104,
		"stvec":    0x105,
		"sscratch": 0x140,
		"sepc":     0x141,
		"scause":   0x142,
		"stval":    0x143,
		"sip":      0x144,
		"satp":     0x180,

		"mvendorid":  0xf11,
		"marchid":    0xf12,
		"mimpid":     0xf13,
		"mhartid":    0xf14,
		"mstatus":    0x300,
		"misa":       0x301,
		"medeleg":    0x302,
		"mideleg":    0x303,
		"mie":        0x304,
		"mtvec":      0x305,
		"mcounteren": 0x306,
		"mscratch":   0x340,
		"mepc":       0x341,
		"mcause":     0x342,
		"mtval":      0x343,
		"mip":        0x344,
		"mcycle":     0xb00,
		"minstret":   0xb02,
		"mcycleh":    0xb80,
		"minstreth":  0xb82,
	}
}

// Pseudos returns the one to one pseudo instructions. Placeholders {N} are
// replaced by operand N.
func Pseudos() map[string]string {
	return map[string]string{
		"nop":  "addi zero, zero, 0",
		"mv":   "addi {0}, {1}, 0",
		"not":  "xori {0}, {1}, -1",
		"neg":  "sub {0}, zero, {1}",
		"seqz": "sltiu {0}, {1}, 1",
		"snez": "sltu {0}, zero, {1}",
		"sltz": "slt {0}, {1}, zero",
		"sgtz": "slt {0}, zero, {1}",

		"beqz": "beq {0}, zero, {1}",
		"bnez": "bne {0}, zero, {1}",
		"blez": "bge zero, {0}, {1}",
		"bgez": "bge {0}, zero, {1}",
		"bltz": "blt {0}, zero, {1}",
		"bgtz": "blt zero, {0}, {1}",
		"bgt":  "blt {1}, {0}, {2}",
		"ble":  "bge {1}, {0}, {2}",
		"bgtu": "bltu {1}, {0}, {2}",
		"bleu": "bgeu {1}, {0}, {2}",

		"j":   "jal zero, {0}",
		"jr":  "jalr zero, 0({0})",
		"ret": "jalr zero, 0(ra)",

		"csrr":  "csrrs {0}, {1}, zero",
		"csrw":  "csrrw zero, {0}, {1}",
		"csrs":  "csrrs zero, {0}, {1}",
		"csrc":  "csrrc zero, {0}, {1}",
		"csrwi": "csrrwi zero, {0}, {1}",
		"csrsi": "csrrsi zero, {0}, {1}",
		"csrci": "csrrci zero, {0}, {1}",
	}
}

// RV32I returns a fresh set of tables for RV32I with the M and Zicsr
// extensions.
func RV32I() *asm.Tables {
	return &asm.Tables{
		Registers: Registers(),
		CSRs:      CSRs(),
		Encodings: Encodings(),
		Pseudos:   Pseudos(),
	}
}
