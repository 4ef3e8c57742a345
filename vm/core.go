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
	"fmt"
	"math"
)

// IllegalInstructionError is returned by Run when an instruction word cannot
// be decoded or executed.
type IllegalInstructionError struct {
	Word uint32
}

func (e *IllegalInstructionError) Error() string {
	op := opcodes[e.Word&0x7f]
	if op == "" {
		op = "unknown opcode"
	}
	return fmt.Sprintf("illegal instruction %08x (%s)", e.Word, op)
}

// alu computes the result of OP and OP-IMM instructions. The alt flag selects
// sub and sra.
func alu(f3 uint32, alt bool, a, b uint32) uint32 {
	switch f3 {
	case 0:
		if alt {
			return a - b
		}
		return a + b
	case 1:
		return a << (b & 0x1f)
	case 2:
		if int32(a) < int32(b) {
			return 1
		}
		return 0
	case 3:
		if a < b {
			return 1
		}
		return 0
	case 4:
		return a ^ b
	case 5:
		if alt {
			return uint32(int32(a) >> (b & 0x1f))
		}
		return a >> (b & 0x1f)
	case 6:
		return a | b
	default:
		return a & b
	}
}

// mulDiv computes the result of the M extension instructions. Division by
// zero and overflow do not trap.
func mulDiv(f3 uint32, a, b uint32) uint32 {
	switch f3 {
	case 0: // mul
		return a * b
	case 1: // mulh
		return uint32(int64(int32(a)) * int64(int32(b)) >> 32)
	case 2: // mulhsu
		return uint32(int64(int32(a)) * int64(b) >> 32)
	case 3: // mulhu
		return uint32(uint64(a) * uint64(b) >> 32)
	case 4: // div
		switch {
		case b == 0:
			return ^uint32(0)
		case int32(a) == math.MinInt32 && int32(b) == -1:
			return a
		}
		return uint32(int32(a) / int32(b))
	case 5: // divu
		if b == 0 {
			return ^uint32(0)
		}
		return a / b
	case 6: // rem
		switch {
		case b == 0:
			return a
		case int32(a) == math.MinInt32 && int32(b) == -1:
			return 0
		}
		return uint32(int32(a) % int32(b))
	default: // remu
		if b == 0 {
			return a
		}
		return a % b
	}
}

func branchTaken(f3 uint32, a, b uint32) (taken, ok bool) {
	switch f3 {
	case 0:
		return a == b, true
	case 1:
		return a != b, true
	case 4:
		return int32(a) < int32(b), true
	case 5:
		return int32(a) >= int32(b), true
	case 6:
		return a < b, true
	case 7:
		return a >= b, true
	}
	return false, false
}

// CSR addresses with special handling.
const (
	csrCycle    = 0xc00
	csrTime     = 0xc01
	csrInstret  = 0xc02
	csrCycleH   = 0xc80
	csrTimeH    = 0xc81
	csrInstretH = 0xc82
	csrMisa     = 0x301
	csrMepc     = 0x341
	csrMcycle   = 0xb00
	csrMinstret = 0xb02
	csrMcycleH  = 0xb80
	csrMinstH   = 0xb82
	csrMhartid  = 0xf14

	misaRV32IM = 1<<30 | 1<<('I'-'A') | 1<<('M'-'A')
)

// CSR returns the value of a control and status register. Counters all
// return the instruction count.
func (i *Instance) CSR(addr uint16) uint32 {
	switch addr {
	case csrCycle, csrTime, csrInstret, csrMcycle, csrMinstret:
		return uint32(i.insCount)
	case csrCycleH, csrTimeH, csrInstretH, csrMcycleH, csrMinstH:
		return uint32(i.insCount >> 32)
	case csrMisa:
		return misaRV32IM
	case csrMhartid:
		return 0
	}
	return i.csr[addr]
}

// SetCSR sets the value of a control and status register. It reports false
// if the register is read-only.
func (i *Instance) SetCSR(addr uint16, v uint32) bool {
	if addr>>10 == 3 {
		return false
	}
	switch addr {
	case csrMisa, csrMhartid, csrMcycle, csrMinstret, csrMcycleH, csrMinstH:
		// WARL: writes ignored
		return true
	}
	i.csr[addr] = v
	return true
}

// execCSR executes the Zicsr instructions. The CSR is only written by csrrw
// and csrrwi or when the source operand is not x0 or 0.
func (i *Instance) execCSR(w fields) bool {
	var (
		addr = uint16(uint32(w) >> 20)
		f3   = w.funct3()
		src  = w.rs1()
	)
	if f3 < 4 {
		src = i.Reg[src]
	}
	old := i.CSR(addr)
	v, write := old, w.rs1() != 0
	switch f3 & 3 {
	case 1:
		v, write = src, true
	case 2:
		v |= src
	case 3:
		v &^= src
	default:
		return false
	}
	if write && !i.SetCSR(addr, v) {
		return false
	}
	i.set(w.rd(), old)
	return true
}

func (i *Instance) set(rd, v uint32) {
	if rd != 0 {
		i.Reg[rd] = v
	}
}
