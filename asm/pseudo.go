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

	"github.com/pkg/errors"
)

// SplitImmediate splits a 32 bits constant into the upper immediate of a lui
// and the signed 12 bits immediate of the following addi, so that
// hi<<12 + lo == v. When bit 11 of v is set, addi will sign extend lo to a
// negative value, so hi is incremented by one to compensate.
func SplitImmediate(v int32) (hi, lo int32) {
	lower := v & 0xfff
	hi = v >> 12
	if lower > 0x7ff {
		hi++
		lower -= 0x1000
	}
	return hi & 0xfffff, lower
}

// expandLi expands li dst, v into at most two instructions.
func expandLi(in *Instruction) ([]Line, error) {
	if len(in.Params) != 2 {
		return nil, &OperandCountError{in.Mnemonic, 2, len(in.Params)}
	}
	dst := in.Params[0]
	v, err := ParseLiteral(in.Params[1])
	if err != nil {
		return nil, err
	}
	hi, lo := SplitImmediate(v)
	switch {
	case hi == 0 && lo == 0:
		return []Line{InstructionLine("mv", dst, "zero")}, nil
	case hi == 0:
		return []Line{InstructionLine("addi", dst, "zero", strconv.Itoa(int(lo)))}, nil
	}
	lines := []Line{InstructionLine("lui", dst, "0x"+strconv.FormatUint(uint64(hi), 16))}
	if lo != 0 {
		lines = append(lines, InstructionLine("addi", dst, dst, strconv.Itoa(int(lo))))
	}
	return lines, nil
}

var complexPseudos = map[string]func(*Instruction) ([]Line, error){
	"li": expandLi,
}

// ExpandComplex expands pseudo instructions that need arithmetic on their
// operands. Currently only li. Other lines are copied unchanged.
func ExpandComplex(lines []Line) ([]Line, error) {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if !l.IsLabel() {
			if fn, ok := complexPseudos[l.Instruction.Mnemonic]; ok {
				exp, err := fn(l.Instruction)
				if err != nil {
					return nil, errors.Wrapf(err, "expanding %s", l.Instruction)
				}
				out = append(out, exp...)
				continue
			}
		}
		out = append(out, cloneLine(l))
	}
	return out, nil
}

// Substitute replaces the placeholders {0}, {1}, ... of a simple pseudo
// instruction template with the corresponding parameters.
func Substitute(mnemonic, template string, params []string) (string, error) {
	var sb strings.Builder
	for {
		i := strings.IndexByte(template, '{')
		if i < 0 {
			sb.WriteString(template)
			return sb.String(), nil
		}
		j := strings.IndexByte(template[i:], '}')
		if j < 0 {
			sb.WriteString(template)
			return sb.String(), nil
		}
		j += i
		n, err := strconv.Atoi(template[i+1 : j])
		if err != nil || n < 0 {
			// not a placeholder
			sb.WriteString(template[:j+1])
			template = template[j+1:]
			continue
		}
		if n >= len(params) {
			return "", &OperandCountError{mnemonic, n + 1, len(params)}
		}
		sb.WriteString(template[:i])
		sb.WriteString(params[n])
		template = template[j+1:]
	}
}

// ExpandSimple rewrites pseudo instructions found in pseudos into their
// textual replacement, then parses the result as an instruction line.
func ExpandSimple(lines []Line, pseudos map[string]string) ([]Line, error) {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if !l.IsLabel() {
			if tpl, ok := pseudos[l.Instruction.Mnemonic]; ok {
				s, err := Substitute(l.Instruction.Mnemonic, tpl, l.Instruction.Params)
				if err != nil {
					return nil, errors.Wrapf(err, "expanding %s", l.Instruction)
				}
				out = append(out, ParseInstruction(s))
				continue
			}
		}
		out = append(out, cloneLine(l))
	}
	return out, nil
}
