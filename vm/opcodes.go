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

package vm

import (
	"github.com/db47h/rvasm/bitfield"
)

// RV32 major opcodes.
const (
	OpLoad    = 0x03
	OpMiscMem = 0x0f
	OpImm     = 0x13
	OpAuipc   = 0x17
	OpStore   = 0x23
	OpOp      = 0x33
	OpLui     = 0x37
	OpBranch  = 0x63
	OpJalr    = 0x67
	OpJal     = 0x6f
	OpSystem  = 0x73
)

var opcodes = map[uint32]string{
	OpLoad:    "load",
	OpMiscMem: "misc-mem",
	OpImm:     "op-imm",
	OpAuipc:   "auipc",
	OpStore:   "store",
	OpOp:      "op",
	OpLui:     "lui",
	OpBranch:  "branch",
	OpJalr:    "jalr",
	OpJal:     "jal",
	OpSystem:  "system",
}

// instruction word fields
type fields uint32

func (w fields) opcode() uint32 { return uint32(w) & 0x7f }
func (w fields) rd() uint32     { return uint32(w) >> 7 & 0x1f }
func (w fields) funct3() uint32 { return uint32(w) >> 12 & 0x7 }
func (w fields) rs1() uint32    { return uint32(w) >> 15 & 0x1f }
func (w fields) rs2() uint32    { return uint32(w) >> 20 & 0x1f }
func (w fields) funct7() uint32 { return uint32(w) >> 25 }

func (w fields) immI() uint32 { return uint32(bitfield.SignExtend(uint32(w)>>20, 12)) }
func (w fields) immU() uint32 { return uint32(w) &^ 0xfff }

func (w fields) immS() uint32 {
	return uint32(bitfield.SignExtend(
		bitfield.Place(bitfield.Field{Value: w.funct7(), Width: 7}, bitfield.StoreHighBits)|
			bitfield.Place(bitfield.Field{Value: w.rd(), Width: 5}, bitfield.StoreLowBits), 12))
}

func (w fields) immB() uint32 {
	return uint32(bitfield.SignExtend(
		bitfield.Place(bitfield.Field{Value: w.funct7(), Width: 7}, bitfield.BranchHighBits)|
			bitfield.Place(bitfield.Field{Value: w.rd(), Width: 5}, bitfield.BranchLowBits), 13))
}

func (w fields) immJ() uint32 {
	return uint32(bitfield.SignExtend(bitfield.Place(bitfield.Field{Value: uint32(w) >> 12, Width: 20}, bitfield.JalBits), 21))
}
