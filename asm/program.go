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

// Program is the result of the first assembly pass: the instruction list with
// labels stripped, and the address of every label.
type Program struct {
	Instructions []Instruction
	Labels       Labels
}

// Address returns the address of instruction n.
func (p *Program) Address(n int) uint32 {
	return uint32(n) * 4
}

// AssignAddresses assigns consecutive addresses to instructions, starting at
// 0, and records label addresses. Unless redefine is true, a label defined
// twice is an error.
func AssignAddresses(lines []Line, redefine bool) (*Program, error) {
	p := &Program{Labels: make(Labels)}
	var addr uint32
	for _, l := range lines {
		if l.IsLabel() {
			if prev, ok := p.Labels[l.Label]; ok && !redefine {
				return nil, &LabelRedefinedError{l.Label, prev, addr}
			}
			p.Labels[l.Label] = addr
			continue
		}
		p.Instructions = append(p.Instructions, l.Instruction.Clone())
		addr += 4
	}
	return p, nil
}
