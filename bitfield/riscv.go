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

package bitfield

// Index lists of the RISC-V immediate encodings.
var (
	High20Bits     = Span(12, 32)
	Low20Bits      = Span(0, 20)
	Low12Bits      = Span(0, 12)
	JalBits        = Concat(Span(12, 20), []int{11}, Span(1, 11), []int{20})
	BranchHighBits = Concat(Span(5, 11), []int{12})
	BranchLowBits  = Concat([]int{11}, Span(1, 5))
	StoreHighBits  = Span(5, 12)
	StoreLowBits   = Span(0, 5)
)

// Extractor is the signature shared by all named immediate extractors.
type Extractor func(imm uint32) Field

// High20 returns bits 31..12, the upper immediate of a 32 bit constant.
func High20(imm uint32) Field { return Select(imm, High20Bits) }

// Low20 returns bits 19..0. Used by lui and auipc whose operand already is
// the upper immediate.
func Low20(imm uint32) Field { return Select(imm, Low20Bits) }

// Low12 returns the I-type immediate.
func Low12(imm uint32) Field { return Select(imm, Low12Bits) }

// JalForm returns the J-type immediate imm[20|10:1|11|19:12].
func JalForm(imm uint32) Field { return Select(imm, JalBits) }

// BranchHigh returns imm[12|10:5] of the B-type immediate.
func BranchHigh(imm uint32) Field { return Select(imm, BranchHighBits) }

// BranchLow returns imm[4:1|11] of the B-type immediate.
func BranchLow(imm uint32) Field { return Select(imm, BranchLowBits) }

// StoreHigh returns imm[11:5] of the S-type immediate.
func StoreHigh(imm uint32) Field { return Select(imm, StoreHighBits) }

// StoreLow returns imm[4:0] of the S-type immediate.
func StoreLow(imm uint32) Field { return Select(imm, StoreLowBits) }

// ShiftAmount returns the 5 bit shift amount of slli, srli and srai. It is
// the same selection as StoreLow.
func ShiftAmount(imm uint32) Field { return StoreLow(imm) }

// Register returns the 5 bit field of a register id.
func Register(id uint8) Field { return Field{uint32(id), 5} }

// CSR returns the 12 bit field of a CSR address.
func CSR(addr uint16) Field { return Field{uint32(addr), 12} }
