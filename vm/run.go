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

import "github.com/pkg/errors"

// ErrInstructionLimit is returned by Run when the limit set with
// MaxInstructions is reached.
var ErrInstructionLimit = errors.New("instruction limit reached")

// Run starts execution of the VM until the PC leaves the program image or
// the program exits. If an error occurs, the PC will point to the
// instruction that triggered the error.
//
// If the program exited cleanly, either by running past its last instruction
// or with an exit ecall, err will be nil.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			if me, ok := e.(*MemoryError); ok {
				err = errors.Wrapf(me, "pc %#x", i.PC)
				return
			}
			err = errors.Errorf("pc %#x: %v", i.PC, e)
		}
	}()
	var count int64
	for !i.halted && i.PC < i.codeSize {
		if i.maxIns > 0 && count >= i.maxIns {
			return errors.Wrapf(ErrInstructionLimit, "pc %#x", i.PC)
		}
		if err = i.Step(); err != nil {
			return err
		}
		count++
	}
	return i.flush()
}

// Step executes a single instruction. Memory access errors cause a panic with
// a *MemoryError.
func (i *Instance) Step() error {
	if i.PC&3 != 0 {
		return errors.Errorf("pc %#x: misaligned instruction fetch", i.PC)
	}
	var (
		w    = fields(i.Load32(i.PC))
		rd   = w.rd()
		f3   = w.funct3()
		a    = i.Reg[w.rs1()]
		b    = i.Reg[w.rs2()]
		next = i.PC + 4
	)
	illegal := func() error {
		return errors.Wrapf(&IllegalInstructionError{uint32(w)}, "pc %#x", i.PC)
	}
	switch w.opcode() {
	case OpLui:
		i.set(rd, w.immU())
	case OpAuipc:
		i.set(rd, i.PC+w.immU())
	case OpJal:
		i.set(rd, next)
		next = i.PC + w.immJ()
	case OpJalr:
		if f3 != 0 {
			return illegal()
		}
		i.set(rd, next)
		next = (a + w.immI()) &^ 1
	case OpBranch:
		taken, ok := branchTaken(f3, a, b)
		if !ok {
			return illegal()
		}
		if taken {
			next = i.PC + w.immB()
		}
	case OpLoad:
		addr := a + w.immI()
		switch f3 {
		case 0:
			i.set(rd, uint32(int32(int8(i.Load8(addr)))))
		case 1:
			i.set(rd, uint32(int32(int16(i.Load16(addr)))))
		case 2:
			i.set(rd, i.Load32(addr))
		case 4:
			i.set(rd, i.Load8(addr))
		case 5:
			i.set(rd, i.Load16(addr))
		default:
			return illegal()
		}
	case OpStore:
		addr := a + w.immS()
		switch f3 {
		case 0:
			i.Store8(addr, b)
		case 1:
			i.Store16(addr, b)
		case 2:
			i.Store32(addr, b)
		default:
			return illegal()
		}
	case OpImm:
		imm := w.immI()
		alt := false
		switch f3 {
		case 1:
			if w.funct7() != 0 {
				return illegal()
			}
			imm &= 0x1f
		case 5:
			switch w.funct7() {
			case 0:
			case 0x20:
				alt = true
			default:
				return illegal()
			}
			imm &= 0x1f
		}
		i.set(rd, alu(f3, alt, a, imm))
	case OpOp:
		switch w.funct7() {
		case 0:
			i.set(rd, alu(f3, false, a, b))
		case 0x20:
			if f3 != 0 && f3 != 5 {
				return illegal()
			}
			i.set(rd, alu(f3, true, a, b))
		case 1:
			i.set(rd, mulDiv(f3, a, b))
		default:
			return illegal()
		}
	case OpMiscMem:
		// fence: single hart, in order
	case OpSystem:
		switch uint32(w) {
		case 0x00000073: // ecall
			if err := i.ecall(); err != nil {
				return errors.Wrapf(err, "pc %#x", i.PC)
			}
		case 0x00100073: // ebreak
			return ErrBreakpoint
		case 0x30200073: // mret
			next = i.CSR(csrMepc)
		case 0x10500073: // wfi
		default:
			if !i.execCSR(w) {
				return illegal()
			}
		}
	default:
		return illegal()
	}
	i.PC = next
	i.insCount++
	return nil
}
