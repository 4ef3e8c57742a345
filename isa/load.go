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

package isa

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/db47h/rvasm/asm"
)

// Table file names looked up by Overlay.
const (
	RegistersFile = "registers.spec"
	CSRFile       = "csr.spec"
	PseudoFile    = "pseudo_simple.spec"
)

// scan calls fn with the first word and the remainder of every non blank
// line of r.
func scan(name string, r io.Reader, fn func(key, value string) error) error {
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, _ := strings.Cut(line, " ")
		if err := fn(key, strings.TrimSpace(value)); err != nil {
			return errors.Wrapf(err, "%s:%d", name, n)
		}
	}
	return errors.Wrap(s.Err(), name)
}

// LoadRegisters reads a register table. Each line holds a register id
// followed by a comma separated list of names:
//
//	0 zero, x0
//	8 s0, fp, x8
func LoadRegisters(name string, r io.Reader) (map[string]uint8, error) {
	regs := make(map[string]uint8)
	err := scan(name, r, func(key, value string) error {
		id, err := strconv.ParseUint(key, 10, 8)
		if err != nil || id > 31 {
			return errors.Errorf("invalid register id %q", key)
		}
		names := lo.FilterMap(strings.Split(value, ","), func(s string, _ int) (string, bool) {
			s = strings.TrimSpace(s)
			return s, s != ""
		})
		if len(names) == 0 {
			return errors.Errorf("no name for register %d", id)
		}
		for _, n := range names {
			regs[n] = uint8(id)
		}
		return nil
	})
	return regs, err
}

// LoadCSRs reads a CSR table. Each line holds a CSR name followed by its
// address:
//
//	mstatus 0x300
func LoadCSRs(name string, r io.Reader) (map[string]uint16, error) {
	csrs := make(map[string]uint16)
	err := scan(name, r, func(key, value string) error {
		addr, err := asm.ParseLiteral(value)
		if err != nil {
			return err
		}
		if addr < 0 || addr > 0xfff {
			return errors.Errorf("CSR address %s out of range", value)
		}
		csrs[key] = uint16(addr)
		return nil
	})
	return csrs, err
}

var teraParam = regexp.MustCompile(`\{\{\s*params\[(\d+)\]\s*\}\}`)

// LoadPseudos reads a simple pseudo instruction table. Each line holds a
// mnemonic followed by its replacement:
//
//	mv addi {0}, {1}, 0
//
// Placeholders may also be written {{ params[N] }}.
func LoadPseudos(name string, r io.Reader) (map[string]string, error) {
	ps := make(map[string]string)
	err := scan(name, r, func(key, value string) error {
		if value == "" {
			return errors.Errorf("empty template for %s", key)
		}
		ps[key] = teraParam.ReplaceAllString(value, "{$1}")
		return nil
	})
	return ps, err
}

func loadFile(dir, file string, fn func(name string, r io.Reader) error) error {
	name := filepath.Join(dir, file)
	f, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return fn(name, f)
}

// Overlay returns a copy of base where the registers, CSRs and pseudo
// instructions found in the table files of dir are added or replaced. Missing
// files are skipped. Encodings are shared with base.
func Overlay(base *asm.Tables, dir string) (*asm.Tables, error) {
	t := &asm.Tables{
		Registers: lo.Assign(base.Registers),
		CSRs:      lo.Assign(base.CSRs),
		Encodings: base.Encodings,
		Pseudos:   lo.Assign(base.Pseudos),
	}
	err := loadFile(dir, RegistersFile, func(name string, r io.Reader) error {
		m, err := LoadRegisters(name, r)
		t.Registers = lo.Assign(t.Registers, m)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = loadFile(dir, CSRFile, func(name string, r io.Reader) error {
		m, err := LoadCSRs(name, r)
		t.CSRs = lo.Assign(t.CSRs, m)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = loadFile(dir, PseudoFile, func(name string, r io.Reader) error {
		m, err := LoadPseudos(name, r)
		t.Pseudos = lo.Assign(t.Pseudos, m)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}
