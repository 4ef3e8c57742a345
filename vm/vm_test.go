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

package vm_test

import (
	"strconv"
	"testing"

	"github.com/pkg/errors"

	"github.com/db47h/rvasm/asm"
	"github.com/db47h/rvasm/isa"
	"github.com/db47h/rvasm/vm"
)

type R map[int]uint32

func setup(t *testing.T, code string, opts ...vm.Option) *vm.Instance {
	t.Helper()
	words, err := asm.Compile(code, isa.RV32I())
	if err != nil {
		t.Fatalf("%+v", err)
	}
	i, err := vm.New(vm.Image(words), opts...)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return i
}

func run(t *testing.T, code string, opts ...vm.Option) *vm.Instance {
	t.Helper()
	i := setup(t, code, opts...)
	if err := i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	return i
}

func check(t *testing.T, name string, i *vm.Instance, regs R) {
	t.Helper()
	for r, v := range regs {
		if i.Reg[r] != v {
			t.Errorf("%s: x%d = %#x, expected %#x", name, r, i.Reg[r], v)
		}
	}
}

var tests = [...]struct {
	name string
	code string
	regs R
}{
	{"li", "li a0, 0x8eff", R{10: 0x8eff}},
	{"x0", "addi zero, zero, 5", R{0: 0}},
	{"auipc", "nop\nauipc a0, 1", R{10: 0x1004}},
	{"loop", `
		li a0, 0
		li t0, 10
	loop:
		add  a0, a0, t0
		addi t0, t0, -1
		bnez t0, loop`, R{10: 55, 5: 0}},
	{"call", `
		jal ra, f
		li a1, 2
		j end
	f:	li a0, 1
		ret
	end:`, R{10: 1, 11: 2, 1: 4}},
	{"memory", `
		li  t0, 0x1000
		li  t1, -2
		sw  t1, 0(t0)
		lb  a0, 0(t0)
		lbu a1, 1(t0)
		lh  a2, 2(t0)
		lhu a3, 0(t0)
		sb  zero, 3(t0)
		lw  a4, 0(t0)`, R{10: 0xfffffffe, 11: 0xff, 12: 0xffffffff, 13: 0xfffe, 14: 0x00fffffe}},
	{"shifts", `
		li   t0, -16
		srai a0, t0, 2
		srli a1, t0, 28
		slti a2, t0, 0
		sltiu a3, t0, 0
		slli a4, t0, 4
		li   t1, 3
		sra  a5, t0, t1
		sltu a6, zero, t0`, R{10: 0xfffffffc, 11: 0xf, 12: 1, 13: 0, 14: 0xffffff00, 15: 0xfffffffe, 16: 1}},
	{"logic", `
		li  t0, 0xf0f0
		li  t1, 0xff00
		and a0, t0, t1
		or  a1, t0, t1
		xor a2, t0, t1
		not a3, t0
		neg a4, t1
		sub a5, t0, t1`, R{10: 0xf000, 11: 0xfff0, 12: 0x0ff0, 13: 0xffff0f0f, 14: 0xffff0100, 15: 0xfffff1f0}},
	{"mul div", `
		li    a0, -7
		li    a1, 2
		div   a2, a0, a1
		rem   a3, a0, a1
		divu  a4, a0, zero
		rem   a5, a0, zero
		li    t0, -1
		mulhu t1, t0, t0
		mulh  t2, t0, t0
		mul   s0, a0, a1
		li    s1, 0x80000000
		div   s2, s1, t0
		rem   s3, s1, t0`, R{12: 0xfffffffd, 13: 0xffffffff, 14: 0xffffffff, 15: 0xfffffff9,
		6: 0xfffffffe, 7: 0, 8: 0xfffffff2, 18: 0x80000000, 19: 0}},
	{"branches", `
		li   a0, 0
		li   t0, -1
		li   t1, 1
		blt  t1, t0, bad
		bltu t0, t1, bad
		bge  t0, t1, bad
		bgeu t1, t0, bad
		beq  t0, t1, bad
		bgt  t0, t1, bad
		ble  t1, t0, bad
		li   a0, 1
		j    end
	bad:
		li   a0, -1
	end:`, R{10: 1}},
	{"csr", `
		li     t0, 0x55
		csrw   mscratch, t0
		csrr   a0, mscratch
		csrrsi a1, mscratch, 2
		csrr   a2, mscratch
		csrrc  zero, mscratch, t0
		csrr   a3, mscratch
		csrr   a4, misa
		csrr   a5, instret`, R{10: 0x55, 11: 0x55, 12: 0x57, 13: 0x02, 14: 0x40001100, 15: 8}},
	{"mret", `
		li   t0, 16
		csrw mepc, t0
		mret
		li a0, 1
		li a1, 2`, R{10: 0, 11: 2}},
}

func TestRun(t *testing.T) {
	for _, test := range tests {
		i := run(t, test.code)
		check(t, test.name, i, test.regs)
	}
}

func TestRun_stackPointer(t *testing.T) {
	i := run(t, "nop")
	if sp := i.Reg[vm.RegSP]; sp != vm.DefaultMemSize {
		t.Errorf("sp = %#x", sp)
	}
	i = run(t, "nop", vm.MemSize(1000))
	if sp := i.Reg[vm.RegSP]; sp != 992 {
		t.Errorf("sp = %d", sp)
	}
}

// li loads the expected value in every register, whatever the constant.
func TestRun_li(t *testing.T) {
	values := []int32{0, 1, -1, 2047, -2048, 2048, -2049, 0x8eff, 0x8fff, 0x7ffff800, 0x7fffffff, -0x80000000, 0x12345678, -0x12345678}
	for _, v := range values {
		for r := 1; r < 32; r++ {
			i := run(t, "li x"+strconv.Itoa(r)+", "+strconv.Itoa(int(v)))
			if i.Reg[r] != uint32(v) {
				t.Errorf("li x%d, %d: got %#x", r, v, i.Reg[r])
			}
		}
	}
}

func TestRun_errors(t *testing.T) {
	i := setup(t, "nop\nebreak\nli a0, 1")
	if err := i.Run(); err != vm.ErrBreakpoint {
		t.Fatalf("expected breakpoint, got %v", err)
	}
	if i.PC != 4 {
		t.Errorf("pc = %d", i.PC)
	}
	i.PC += 4
	if err := i.Run(); err != nil {
		t.Fatalf("resume: %+v", err)
	}
	check(t, "resume", i, R{10: 1})

	i = setup(t, "li t0, -4\nlw a0, 0(t0)")
	err := i.Run()
	if e, ok := errors.Cause(err).(*vm.MemoryError); !ok || e.Addr != 0xfffffffc || e.Write {
		t.Errorf("expected memory error, got %v", err)
	}
	if i.PC != 4 {
		t.Errorf("pc = %d", i.PC)
	}

	i, _ = vm.New(vm.Image{0x00000013, 0xffffffff})
	err = i.Run()
	if e, ok := errors.Cause(err).(*vm.IllegalInstructionError); !ok || e.Word != 0xffffffff {
		t.Errorf("expected illegal instruction, got %v", err)
	}

	i = setup(t, "loop: j loop", vm.MaxInstructions(100))
	if err = i.Run(); errors.Cause(err) != vm.ErrInstructionLimit {
		t.Errorf("expected instruction limit, got %v", err)
	}
	if n := i.InstructionCount(); n != 100 {
		t.Errorf("executed %d instructions", n)
	}

	i = setup(t, "csrw cycle, t0")
	if _, ok := errors.Cause(i.Run()).(*vm.IllegalInstructionError); !ok {
		t.Error("write to read-only CSR must fail")
	}

	i = setup(t, "li a7, 999\necall")
	if err = i.Run(); err == nil {
		t.Error("expected unknown ecall error")
	}
}

func TestNew_invalidMemSize(t *testing.T) {
	if _, err := vm.New(nil, vm.MemSize(-1)); err == nil {
		t.Error("expected error")
	}
}
