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
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/db47h/rvasm/asm"
	"github.com/db47h/rvasm/bitfield"
	"github.com/db47h/rvasm/isa"
)

func TestPreprocess(t *testing.T) {
	code := `
	start:
		addi  sp, sp, -16   # frame
		sw ra, 12(sp)
	loop: lw a0,0( a1 )

		ecall
	`
	exp := []asm.Line{
		asm.LabelLine("start"),
		asm.InstructionLine("addi", "sp", "sp", "-16"),
		asm.InstructionLine("sw", "ra", "12", "sp"),
		asm.LabelLine("loop"),
		asm.InstructionLine("lw", "a0", "0", "a1"),
		asm.InstructionLine("ecall"),
	}
	got := asm.Preprocess(code)
	if len(got) != len(exp) {
		t.Fatalf("expected %v, got %v", exp, got)
	}
	for i := range exp {
		if exp[i].IsLabel() != got[i].IsLabel() || exp[i].String() != got[i].String() {
			t.Errorf("line %d: expected %q, got %q", i, exp[i], got[i])
		}
	}
}

func TestResolve(t *testing.T) {
	tables := isa.RV32I()
	labels := asm.Labels{"start": 0, "end": 64, "mstatus": 128}
	tests := [...]struct {
		token string
		kind  asm.Kind
		value int32
	}{
		{"x5", asm.KindRegister, 5},
		{"t0", asm.KindRegister, 5},
		{"fp", asm.KindRegister, 8},
		{"mstatus", asm.KindCSR, 0x300}, // CSR names shadow labels
		{"42", asm.KindImmediate, 42},
		{"-42", asm.KindImmediate, -42},
		{"0x10", asm.KindImmediate, 16},
		{"-0x10", asm.KindImmediate, -16},
		{"0b101", asm.KindImmediate, 5},
		{"-0b101", asm.KindImmediate, -5},
		{"0o17", asm.KindImmediate, 15},
		{"0xffffffff", asm.KindImmediate, -1},
		{"-2147483648", asm.KindImmediate, -2147483648},
		{"end", asm.KindImmediate, 64},
	}
	for _, test := range tests {
		p, err := asm.Resolve(test.token, tables, labels)
		if err != nil {
			t.Errorf("%s: %v", test.token, err)
			continue
		}
		if p.Kind != test.kind || p.Value != test.value || p.Token != test.token {
			t.Errorf("%s: expected %v %d, got %v %d", test.token, test.kind, test.value, p.Kind, p.Value)
		}
	}
	if _, err := asm.Resolve("X5", tables, labels); err == nil {
		t.Error("register lookup must be case sensitive")
	}
	if _, err := asm.Resolve("-2147483649", tables, labels); err == nil {
		t.Error("expected range error")
	}
}

func TestParam_accessors(t *testing.T) {
	p := asm.Param{Kind: asm.KindRegister, Value: 3, Token: "x3"}
	if r, err := p.Register(); err != nil || r != 3 {
		t.Errorf("Register: %d, %v", r, err)
	}
	if _, err := p.CSR(); err == nil {
		t.Error("CSR on a register must fail")
	}
	if _, err := p.Immediate(); err == nil {
		t.Error("Immediate on a register must fail")
	}
}

// decodeLi rebuilds the value loaded by the output of li and checks that all
// instructions target rd.
func decodeLi(t *testing.T, words []uint32, rd uint32) int32 {
	t.Helper()
	var v int32
	for i, w := range words {
		if w>>7&0x1f != rd {
			t.Fatalf("%08x: wrong destination register", w)
		}
		switch w & 0x7f {
		case 0x37: // lui
			v = int32(w &^ 0xfff)
		case 0x13: // addi
			src := w >> 15 & 0x1f
			if i == 0 && src != 0 || i > 0 && src != rd {
				t.Fatalf("%08x: wrong source register", w)
			}
			v += bitfield.SignExtend(w>>20, 12)
		default:
			t.Fatalf("%08x: unexpected instruction", w)
		}
	}
	return v
}

func TestLi_roundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 2047, -2048, 2048, -2049, 0x7ff, 0x800, 0xfff, 0x1000,
		0x8eff, 0x8fff, 0x7ffff7ff, 0x7ffff800, 0x7fffffff, -0x80000000, -0x7ffff801, 0x12345678}
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		values = append(values, int32(r.Uint32()))
	}
	tables := isa.RV32I()
	for i, v := range values {
		rd := uint32(i % 32)
		regs := []uint32{rd}
		if i < 19 {
			regs = regs[:0]
			for n := uint32(0); n < 32; n++ {
				regs = append(regs, n)
			}
		}
		for _, rd := range regs {
			words, err := asm.Compile("li x"+strconv.Itoa(int(rd))+", "+strconv.Itoa(int(v)), tables)
			if err != nil {
				t.Fatalf("li %d: %+v", v, err)
			}
			if len(words) > 2 {
				t.Fatalf("li %d: %d instructions", v, len(words))
			}
			if got := decodeLi(t, words, rd); got != v {
				t.Errorf("li x%d, %d: loads %d (%08x)", rd, v, got, words)
			}
		}
	}
}

func TestSplitImmediate(t *testing.T) {
	tests := [...]struct {
		v, hi, lo int32
	}{
		{0x8eff, 0x9, -257},
		{0x8fff, 0x9, -1},
		{0x12345678, 0x12345, 0x678},
		{-1, 0, -1},
		{0x7ffff800, 0x80000, -2048},
		{-0x1000, 0xfffff, 0},
	}
	for _, test := range tests {
		hi, lo := asm.SplitImmediate(test.v)
		if hi != test.hi || lo != test.lo {
			t.Errorf("%#x: expected %#x, %d; got %#x, %d", test.v, test.hi, test.lo, hi, lo)
		}
	}
}

func TestExpandComplex(t *testing.T) {
	lines, err := asm.ExpandComplex([]asm.Line{asm.InstructionLine("li", "x1", "0x8eff")})
	if err != nil {
		t.Fatal(err)
	}
	exp := []string{"lui x1, 0x9", "addi x1, x1, -257"}
	if len(lines) != len(exp) {
		t.Fatalf("expected %v, got %v", exp, lines)
	}
	for i := range exp {
		if s := lines[i].String(); s != exp[i] {
			t.Errorf("expected %s, got %s", exp[i], s)
		}
	}
	lines, _ = asm.ExpandComplex([]asm.Line{asm.InstructionLine("li", "x5", "0")})
	if len(lines) != 1 || lines[0].String() != "mv x5, zero" {
		t.Errorf("li x5, 0: got %v", lines)
	}
}

// mnemonics unknown to both pseudo tiers go through unchanged, and the input
// slice is left untouched.
func TestExpand_passThrough(t *testing.T) {
	in := []asm.Line{
		asm.LabelLine("L"),
		asm.InstructionLine("add", "x1", "x2", "x3"),
		asm.InstructionLine("frob", "a", "b"),
	}
	c, err := asm.ExpandComplex(in)
	if err != nil {
		t.Fatal(err)
	}
	s, err := asm.ExpandSimple(c, isa.Pseudos())
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != len(in) {
		t.Fatalf("expected %v, got %v", in, s)
	}
	for i := range in {
		if in[i].IsLabel() {
			if !s[i].IsLabel() || s[i].Label != in[i].Label {
				t.Errorf("expected %v, got %v", in[i], s[i])
			}
			continue
		}
		if !in[i].Instruction.Equal(*s[i].Instruction) {
			t.Errorf("expected %v, got %v", in[i], s[i])
		}
		if in[i].Instruction == s[i].Instruction {
			t.Error("instruction not cloned")
		}
	}
}

func TestExpandSimple(t *testing.T) {
	lines, err := asm.ExpandSimple([]asm.Line{
		asm.InstructionLine("jr", "t0"),
		asm.InstructionLine("bgt", "a0", "a1", "L"),
	}, isa.Pseudos())
	if err != nil {
		t.Fatal(err)
	}
	exp := []string{"jalr zero, 0, t0", "blt a1, a0, L"}
	for i := range exp {
		if s := lines[i].String(); s != exp[i] {
			t.Errorf("expected %s, got %s", exp[i], s)
		}
	}
}

func TestSubstitute(t *testing.T) {
	s, err := asm.Substitute("x", "op {1}, {0}, {not}, {}", []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if s != "op b, a, {not}, {}" {
		t.Errorf("got %q", s)
	}
}

func TestAssignAddresses(t *testing.T) {
	var sb strings.Builder
	const n = 10
	for i := 0; i < n; i++ {
		sb.WriteString("L" + strconv.Itoa(i) + ":\nnop\n")
	}
	sb.WriteString("end:\n")
	p, err := asm.AssignAddresses(asm.Preprocess(sb.String()), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Instructions) != n {
		t.Fatalf("expected %d instructions, got %d", n, len(p.Instructions))
	}
	for i := 0; i < n; i++ {
		if a := p.Address(i); a != uint32(4*i) {
			t.Errorf("instruction %d at %d", i, a)
		}
		if a := p.Labels["L"+strconv.Itoa(i)]; a != uint32(4*i) {
			t.Errorf("L%d at %d", i, a)
		}
	}
	if a := p.Labels["end"]; a != 4*n {
		t.Errorf("end at %d", a)
	}
}

// the relative fields of branches and jumps decode to target - address.
func TestDisplacement(t *testing.T) {
	enc := isa.Encodings()
	r := rand.New(rand.NewSource(1))
	reg := asm.Param{Kind: asm.KindRegister, Token: "x0"}
	for i := 0; i < 1000; i++ {
		addr := r.Uint32() &^ 3
		bd := int32(r.Intn(4096)-2048) * 2
		jd := int32(r.Intn(1<<20)-1<<19) * 2
		c := &asm.Context{
			Params:  []asm.Param{reg, reg, {Kind: asm.KindImmediate, Value: int32(addr + uint32(bd))}},
			Address: addr,
		}
		w, err := enc["beq"].Encode("beq", c)
		if err != nil {
			t.Fatal(err)
		}
		got := bitfield.SignExtend(
			bitfield.Place(bitfield.Field{Value: w >> 25, Width: 7}, bitfield.BranchHighBits)|
				bitfield.Place(bitfield.Field{Value: w >> 7 & 0x1f, Width: 5}, bitfield.BranchLowBits), 13)
		if got != bd {
			t.Errorf("beq at %#x, displacement %d: decoded %d", addr, bd, got)
		}
		c.Params = []asm.Param{reg, {Kind: asm.KindImmediate, Value: int32(addr + uint32(jd))}}
		w, err = enc["jal"].Encode("jal", c)
		if err != nil {
			t.Fatal(err)
		}
		got = bitfield.SignExtend(bitfield.Place(bitfield.Field{Value: w >> 12, Width: 20}, bitfield.JalBits), 21)
		if got != jd {
			t.Errorf("jal at %#x, displacement %d: decoded %d", addr, jd, got)
		}
	}
}

func TestDisassemble_roundTrip(t *testing.T) {
	code := `
	start:
		li   a0, 0x12345678
		li   t0, -3000
		lui  a1, 0xfffff
		auipc gp, 0x10
		sw   a0, -8(sp)
		lbu  a2, 3(a1)
		srai a3, a2, 31
		and  a4, a3, a2
		rem  a5, a4, a0
		csrrw a0, mtvec, a1
		csrrsi zero, mstatus, 8
		beq  a0, a1, start
		bgeu a0, a1, end
		jal  ra, start
		jalr zero, 4(ra)
		fence
		ecall
		ebreak
		mret
		wfi
	end:
	`
	tables := isa.RV32I()
	words := compile(t, code)
	d := asm.NewDisassembler(tables)
	var sb strings.Builder
	for i, w := range words {
		s := d.Instruction(w, uint32(i)*4)
		if strings.HasPrefix(s, ".word") {
			t.Errorf("%08x: not decoded", w)
		}
		sb.WriteString(s + "\n")
	}
	again, err := asm.Compile(sb.String(), tables)
	if err != nil {
		t.Fatalf("%+v\n%s", err, sb.String())
	}
	if !equal(words, again) {
		t.Errorf("round trip failed:\n%s", sb.String())
	}
}
