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
	"github.com/pkg/errors"
)

// Tables holds the instruction set description used by an Assembler. Tables
// must not be modified once handed to New.
type Tables struct {
	Registers map[string]uint8  // register names and aliases to ids
	CSRs      map[string]uint16 // CSR names to addresses
	Encodings map[string]Template
	Pseudos   map[string]string // simple pseudo instruction templates
}

// Assembler compiles assembly source to instruction words. An Assembler is
// safe for concurrent use.
type Assembler struct {
	tables   *Tables
	redefine bool
}

// Option configures an Assembler.
type Option func(*Assembler) error

// AllowLabelRedefinition controls what happens when a label is defined more
// than once. When enabled, the last definition wins. The default is to fail
// with a *LabelRedefinedError.
func AllowLabelRedefinition(allow bool) Option {
	return func(a *Assembler) error { a.redefine = allow; return nil }
}

// New returns a new Assembler for the given tables.
func New(t *Tables, opts ...Option) (*Assembler, error) {
	if t == nil {
		return nil, errors.New("nil tables")
	}
	a := &Assembler{tables: t}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Tables returns the tables of the assembler.
func (a *Assembler) Tables() *Tables {
	return a.tables
}

// Expand runs the first pass of the assembler: preprocessing, pseudo
// instruction expansion and address assignment.
func (a *Assembler) Expand(text string) (*Program, error) {
	lines, err := ExpandComplex(Preprocess(text))
	if err != nil {
		return nil, err
	}
	lines, err = ExpandSimple(lines, a.tables.Pseudos)
	if err != nil {
		return nil, err
	}
	return AssignAddresses(lines, a.redefine)
}

// Encode encodes a single instruction located at the given address.
func (a *Assembler) Encode(in Instruction, addr uint32, labels Labels) (uint32, error) {
	t, ok := a.tables.Encodings[in.Mnemonic]
	if !ok {
		return 0, &UnknownMnemonicError{in.Mnemonic}
	}
	c := &Context{Params: make([]Param, 0, len(in.Params)), Address: addr}
	for _, tok := range in.Params {
		p, err := Resolve(tok, a.tables, labels)
		if err != nil {
			return 0, err
		}
		c.Params = append(c.Params, p)
	}
	return t.Encode(in.Mnemonic, c)
}

// Compile assembles source text into instruction words. It stops at the first
// error and returns no partial output. The underlying typed error can be
// retrieved with errors.Cause.
func (a *Assembler) Compile(text string) ([]uint32, error) {
	p, err := a.Expand(text)
	if err != nil {
		return nil, err
	}
	words := make([]uint32, 0, len(p.Instructions))
	for n, in := range p.Instructions {
		w, err := a.Encode(in, p.Address(n), p.Labels)
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d (%s)", n, in)
		}
		words = append(words, w)
	}
	return words, nil
}

// Compile assembles text with the given tables and default options.
func Compile(text string, t *Tables) ([]uint32, error) {
	a, err := New(t)
	if err != nil {
		return nil, err
	}
	return a.Compile(text)
}
