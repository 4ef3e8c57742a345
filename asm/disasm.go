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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/rvasm/bitfield"
	"github.com/db47h/rvasm/internal/ewriter"
)

var (
	branchOps = [8]string{"beq", "bne", "", "", "blt", "bge", "bltu", "bgeu"}
	loadOps   = [8]string{"lb", "lh", "lw", "", "lbu", "lhu", "", ""}
	storeOps  = [8]string{"sb", "sh", "sw", "", "", "", "", ""}
	opImmOps  = [8]string{"addi", "slli", "slti", "sltiu", "xori", "", "ori", "andi"}
	opOps     = [8]string{"add", "sll", "slt", "sltu", "xor", "srl", "or", "and"}
	mulOps    = [8]string{"mul", "mulh", "mulhsu", "mulhu", "div", "divu", "rem", "remu"}
	csrOps    = [8]string{"", "csrrw", "csrrs", "csrrc", "", "csrrwi", "csrrsi", "csrrci"}
	systemOps = map[uint32]string{
		0x00000073: "ecall",
		0x00100073: "ebreak",
		0x30200073: "mret",
		0x10500073: "wfi",
		0x0ff0000f: "fence",
	}
)

// Disassembler converts instruction words back to assembly text. The output
// uses xN register names and absolute branch targets and can be assembled
// again to the same words.
type Disassembler struct {
	csrNames map[uint16]string
}

// NewDisassembler returns a Disassembler that names CSR operands after the
// CSR table of t. If t is nil, CSRs are printed as numbers.
func NewDisassembler(t *Tables) *Disassembler {
	d := &Disassembler{csrNames: make(map[uint16]string)}
	if t == nil {
		return d
	}
	for name, addr := range t.CSRs {
		// pick a stable name when a CSR has aliases
		if n, ok := d.csrNames[addr]; !ok || name < n {
			d.csrNames[addr] = name
		}
	}
	return d
}

func (d *Disassembler) csr(addr uint32) string {
	if n, ok := d.csrNames[uint16(addr)]; ok {
		return n
	}
	return "0x" + strconv.FormatUint(uint64(addr), 16)
}

func word(w uint32) string {
	return fmt.Sprintf(".word 0x%08x", w)
}

// Instruction returns the text of the instruction word w located at address
// addr.
func (d *Disassembler) Instruction(w, addr uint32) string {
	var (
		opcode = w & 0x7f
		rd     = w >> 7 & 0x1f
		f3     = w >> 12 & 0x7
		rs1    = w >> 15 & 0x1f
		rs2    = w >> 20 & 0x1f
		f7     = w >> 25
		immI   = bitfield.SignExtend(w>>20, 12)
	)
	switch opcode {
	case 0x37, 0x17:
		op := "lui"
		if opcode == 0x17 {
			op = "auipc"
		}
		return fmt.Sprintf("%s x%d, 0x%x", op, rd, w>>12)
	case 0x6f:
		off := bitfield.SignExtend(bitfield.Place(bitfield.Field{Value: w >> 12, Width: 20}, bitfield.JalBits), 21)
		return fmt.Sprintf("jal x%d, %d", rd, int32(addr)+off)
	case 0x67:
		if f3 == 0 {
			return fmt.Sprintf("jalr x%d, %d(x%d)", rd, immI, rs1)
		}
	case 0x63:
		if op := branchOps[f3]; op != "" {
			off := bitfield.SignExtend(
				bitfield.Place(bitfield.Field{Value: f7, Width: 7}, bitfield.BranchHighBits)|
					bitfield.Place(bitfield.Field{Value: rd, Width: 5}, bitfield.BranchLowBits), 13)
			return fmt.Sprintf("%s x%d, x%d, %d", op, rs1, rs2, int32(addr)+off)
		}
	case 0x03:
		if op := loadOps[f3]; op != "" {
			return fmt.Sprintf("%s x%d, %d(x%d)", op, rd, immI, rs1)
		}
	case 0x23:
		if op := storeOps[f3]; op != "" {
			imm := bitfield.SignExtend(f7<<5|rd, 12)
			return fmt.Sprintf("%s x%d, %d(x%d)", op, rs2, imm, rs1)
		}
	case 0x13:
		switch {
		case f3 == 1 && f7 == 0:
			return fmt.Sprintf("slli x%d, x%d, %d", rd, rs1, rs2)
		case f3 == 5 && f7 == 0:
			return fmt.Sprintf("srli x%d, x%d, %d", rd, rs1, rs2)
		case f3 == 5 && f7 == 0x20:
			return fmt.Sprintf("srai x%d, x%d, %d", rd, rs1, rs2)
		case f3 != 1 && f3 != 5:
			return fmt.Sprintf("%s x%d, x%d, %d", opImmOps[f3], rd, rs1, immI)
		}
	case 0x33:
		var op string
		switch f7 {
		case 0:
			op = opOps[f3]
		case 0x20:
			switch f3 {
			case 0:
				op = "sub"
			case 5:
				op = "sra"
			}
		case 1:
			op = mulOps[f3]
		}
		if op != "" {
			return fmt.Sprintf("%s x%d, x%d, x%d", op, rd, rs1, rs2)
		}
	case 0x73:
		if op := csrOps[f3]; op != "" {
			if f3 >= 5 {
				return fmt.Sprintf("%s x%d, %s, %d", op, rd, d.csr(w>>20), rs1)
			}
			return fmt.Sprintf("%s x%d, %s, x%d", op, rd, d.csr(w>>20), rs1)
		}
	}
	if op, ok := systemOps[w]; ok {
		return op
	}
	return word(w)
}

// Disassemble writes the disassembly of words[pc] to w and returns the index
// of the next instruction and any write error. The address of the
// instruction is taken to be 4*pc.
func (d *Disassembler) Disassemble(words []uint32, pc int, w io.Writer) (next int, err error) {
	ew := ewriter.New(w)
	if pc < 0 || pc >= len(words) {
		ew.WriteString("???")
		return pc + 1, ew.Err
	}
	ew.WriteString(d.Instruction(words[pc], uint32(pc)*4))
	return pc + 1, ew.Err
}

// DisassembleAll writes an address, word and disassembly line for every word
// to w. The base argument is the address of words[0].
func (d *Disassembler) DisassembleAll(words []uint32, base uint32, w io.Writer) error {
	ew := ewriter.New(w)
	for n, v := range words {
		addr := base + uint32(n)*4
		ew.Printf("%8x:\t%08x\t%s\n", addr, v, d.Instruction(v, addr))
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}

// Disassemble writes the disassembly of words[pc] to w, with numeric CSRs.
func Disassemble(words []uint32, pc int, w io.Writer) (next int, err error) {
	return NewDisassembler(nil).Disassemble(words, pc, w)
}

// DisassembleAll writes a full listing of words to w, with numeric CSRs.
func DisassembleAll(words []uint32, base uint32, w io.Writer) error {
	return NewDisassembler(nil).DisassembleAll(words, base, w)
}
