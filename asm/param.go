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
)

// Kind is the kind of a resolved instruction operand.
type Kind int

// Operand kinds.
const (
	KindRegister Kind = iota
	KindCSR
	KindImmediate
)

var kindNames = [...]string{"register", "csr", "immediate"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Param is a resolved instruction operand. Label references resolve to
// immediates holding the absolute address of the label.
type Param struct {
	Kind  Kind
	Value int32
	Token string
}

func (p Param) as(k Kind) (int32, error) {
	if p.Kind != k {
		return 0, &TypeMismatchError{k, p.Token}
	}
	return p.Value, nil
}

// Register returns the register id of p.
func (p Param) Register() (uint8, error) {
	v, err := p.as(KindRegister)
	return uint8(v), err
}

// CSR returns the CSR address of p.
func (p Param) CSR() (uint16, error) {
	v, err := p.as(KindCSR)
	return uint16(v), err
}

// Immediate returns the immediate value of p.
func (p Param) Immediate() (int32, error) {
	return p.as(KindImmediate)
}

// Labels maps label names to absolute byte addresses.
type Labels map[string]uint32

// Resolve classifies a raw operand token. Registers take precedence over CSR
// names, CSR names over numeric literals and literals over labels.
func Resolve(token string, t *Tables, labels Labels) (Param, error) {
	if id, ok := t.Registers[token]; ok {
		return Param{KindRegister, int32(id), token}, nil
	}
	if addr, ok := t.CSRs[token]; ok {
		return Param{KindCSR, int32(addr), token}, nil
	}
	if strings.HasPrefix(token, "-") {
		v, err := ParseLiteral(token)
		if err != nil {
			return Param{}, err
		}
		return Param{KindImmediate, v, token}, nil
	}
	v, err := ParseLiteral(token)
	if err == nil {
		return Param{KindImmediate, v, token}, nil
	}
	if addr, ok := labels[token]; ok {
		return Param{KindImmediate, int32(addr), token}, nil
	}
	if token != "" && token[0] >= '0' && token[0] <= '9' {
		return Param{}, err
	}
	return Param{}, &UnknownParameterError{token}
}

// ParseLiteral parses a 32 bits integer literal. Literals are decimal or
// prefixed with 0x, 0b or 0o and may be preceded by a minus sign. Unsigned
// values up to 0xffffffff are reinterpreted as signed.
func ParseLiteral(token string) (int32, error) {
	s := token
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	base := 10
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 10 {
			s = s[2:]
		}
	}
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, &MalformedLiteralError{token, nil}
	}
	u, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, &MalformedLiteralError{token, err.(*strconv.NumError).Err}
	}
	if neg {
		if u > 1<<31 {
			return 0, &MalformedLiteralError{token, strconv.ErrRange}
		}
		return int32(-int64(u)), nil
	}
	return int32(uint32(u)), nil
}
