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
	"strconv"
	"strings"

	"github.com/db47h/rvasm/bitfield"
)

// Context is the evaluation context of an encoding template: the resolved
// operands of one instruction and the address of that instruction.
type Context struct {
	Params  []Param
	Address uint32

	used int // number of operands referenced by the template
}

// Param returns operand i, which must be of kind k.
func (c *Context) Param(i int, k Kind) (int32, error) {
	if i < 0 || i >= len(c.Params) {
		return 0, &TypeMismatchError{Expected: k}
	}
	if i >= c.used {
		c.used = i + 1
	}
	return c.Params[i].as(k)
}

// Term renders one field of an instruction word as a string of binary digits.
type Term func(c *Context) (string, error)

// Template is the field layout of an instruction, most significant field
// first. A template must render to exactly 32 binary digits.
type Template []Term

// Lit is a constant field such as an opcode or funct3.
func Lit(bits string) Term {
	return func(*Context) (string, error) { return bits, nil }
}

// Reg is the 5 bits register id of operand i.
func Reg(i int) Term {
	return func(c *Context) (string, error) {
		v, err := c.Param(i, KindRegister)
		if err != nil {
			return "", err
		}
		return bitfield.Register(uint8(v)).String(), nil
	}
}

// CSRField is the 12 bits CSR address of operand i.
func CSRField(i int) Term {
	return func(c *Context) (string, error) {
		v, err := c.Param(i, KindCSR)
		if err != nil {
			return "", err
		}
		return bitfield.CSR(uint16(v)).String(), nil
	}
}

// Imm extracts bits from immediate operand i.
func Imm(i int, x bitfield.Extractor) Term {
	return func(c *Context) (string, error) {
		v, err := c.Param(i, KindImmediate)
		if err != nil {
			return "", err
		}
		return x(uint32(v)).String(), nil
	}
}

// Rel extracts bits from the displacement between the instruction address
// and the absolute address held by immediate operand i.
func Rel(i int, x bitfield.Extractor) Term {
	return func(c *Context) (string, error) {
		v, err := c.Param(i, KindImmediate)
		if err != nil {
			return "", err
		}
		return x(uint32(bitfield.Displacement(c.Address, uint32(v)))).String(), nil
	}
}

// Render evaluates all terms and concatenates their output.
func (t Template) Render(c *Context) (string, error) {
	var sb strings.Builder
	sb.Grow(32)
	for _, term := range t {
		s, err := term(c)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// Encode renders the template and converts the result to an instruction word.
// Operands not referenced by the template are rejected with an
// *OperandCountError.
func (t Template) Encode(mnemonic string, c *Context) (uint32, error) {
	c.used = 0
	s, err := t.Render(c)
	if err != nil {
		return 0, err
	}
	if len(c.Params) > c.used {
		return 0, &OperandCountError{mnemonic, c.used, len(c.Params)}
	}
	if len(s) != 32 || strings.Trim(s, "01") != "" {
		return 0, &InvalidTemplateOutputError{mnemonic, s}
	}
	w, err := strconv.ParseUint(s, 2, 32)
	if err != nil {
		return 0, &InvalidTemplateOutputError{mnemonic, s}
	}
	return uint32(w), nil
}
