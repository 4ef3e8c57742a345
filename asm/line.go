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
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// Instruction is an instruction line before operand resolution.
type Instruction struct {
	Mnemonic string
	Params   []string
}

// Clone returns a deep copy of the instruction.
func (i Instruction) Clone() Instruction {
	return Instruction{i.Mnemonic, append([]string(nil), i.Params...)}
}

// Equal reports whether i and o have the same mnemonic and parameters.
func (i Instruction) Equal(o Instruction) bool {
	if i.Mnemonic != o.Mnemonic || len(i.Params) != len(o.Params) {
		return false
	}
	for n := range i.Params {
		if i.Params[n] != o.Params[n] {
			return false
		}
	}
	return true
}

func (i Instruction) String() string {
	if len(i.Params) == 0 {
		return i.Mnemonic
	}
	return i.Mnemonic + " " + strings.Join(i.Params, ", ")
}

// Line is either a label definition or an instruction. Exactly one of Label
// and Instruction is set.
type Line struct {
	Label       string
	Instruction *Instruction
}

// IsLabel reports whether l is a label definition.
func (l Line) IsLabel() bool { return l.Instruction == nil }

func (l Line) String() string {
	if l.IsLabel() {
		return l.Label + ":"
	}
	return l.Instruction.String()
}

// LabelLine returns a label definition line.
func LabelLine(name string) Line { return Line{Label: name} }

// InstructionLine returns an instruction line.
func InstructionLine(mnemonic string, params ...string) Line {
	return Line{Instruction: &Instruction{mnemonic, params}}
}

func cloneLine(l Line) Line {
	if l.IsLabel() {
		return l
	}
	i := l.Instruction.Clone()
	return Line{Instruction: &i}
}

// stripComment removes everything from the first '#'.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// Preprocess splits source text into label and instruction lines. Blank lines
// and comments are dropped. A line ending with a colon is a label; a label
// may also prefix an instruction on the same line.
func Preprocess(text string) []Line {
	var lines []Line
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(stripComment(l))
		if l == "" {
			continue
		}
		if strings.HasSuffix(l, ":") {
			lines = append(lines, LabelLine(strings.TrimSuffix(l, ":")))
			continue
		}
		if name, rest, ok := strings.Cut(l, ":"); ok && isLabelName(name) {
			lines = append(lines, LabelLine(name))
			l = strings.TrimSpace(rest)
		}
		lines = append(lines, ParseInstruction(l))
	}
	return lines
}

// isLabelName reports whether s can be a label prefix of an instruction line.
func isLabelName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r == '.' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

// ParseInstruction parses a single trimmed instruction line. The mnemonic is
// the text up to the first white space. Memory operands like 8(sp) are
// rewritten as 8,sp before the operands are split at commas.
func ParseInstruction(line string) Line {
	line = strings.TrimSpace(line)
	name, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		name, rest = line[:i], line[i:]
	}
	rest = strings.NewReplacer("(", ",", ")", "").Replace(rest)
	params := lo.FilterMap(strings.Split(rest, ","), func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		return p, p != ""
	})
	return InstructionLine(name, params...)
}
