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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/db47h/rvasm/asm"
	"github.com/db47h/rvasm/isa"
	"github.com/db47h/rvasm/vm"
)

func TestWriteHex(t *testing.T) {
	var b bytes.Buffer
	if err := writeHex(&b, []uint32{0x00500093, 0x13}); err != nil {
		t.Fatal(err)
	}
	if s := b.String(); s != "00500093\n00000013\n" {
		t.Errorf("got %q", s)
	}
}

func TestDumpProgram(t *testing.T) {
	a, err := asm.New(isa.RV32I())
	if err != nil {
		t.Fatal(err)
	}
	p, err := a.Expand("start: li a0, 0x8eff\nend:")
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err = dumpProgram(&b, p); err != nil {
		t.Fatal(err)
	}
	s := b.String()
	for _, exp := range []string{"0: lui a0, 0x9", "4: addi a0, a0, -257", `"end": (uint32) 8`, `"start": (uint32) 0`} {
		if !strings.Contains(s, exp) {
			t.Errorf("%q not found in dump:\n%s", exp, s)
		}
	}
}

func TestGetChar(t *testing.T) {
	i, err := vm.New(nil, vm.Input(strings.NewReader("a\r\x04")))
	if err != nil {
		t.Fatal(err)
	}
	for _, exp := range []uint32{'a', '\n', ^uint32(0), ^uint32(0)} {
		if err = getChar(i); err != nil {
			t.Fatal(err)
		}
		if a0 := i.Reg[vm.RegA0]; a0 != exp {
			t.Errorf("expected %#x, got %#x", exp, a0)
		}
	}
}

func TestSaveHex(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.hex")
	if err := saveHex(name, []uint32{0x00500093}); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if s := string(b); s != "00500093\n" {
		t.Errorf("got %q", s)
	}
	if err = saveHex(filepath.Join(t.TempDir(), "none", "out.hex"), nil); err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestReport(t *testing.T) {
	au := aurora.NewAurora(false)
	tests := [...]struct {
		err  error
		code int
		out  string
	}{
		{nil, 0, ""},
		{errors.New("boom"), 1, "error: boom\n"},
		{&exitError{3}, 3, ""},
		{errors.Wrap(&exitError{42}, "run"), 42, ""},
	}
	for _, test := range tests {
		var b bytes.Buffer
		if code := report(&b, au, test.err); code != test.code {
			t.Errorf("%v: expected exit code %d, got %d", test.err, test.code, code)
		}
		if s := b.String(); s != test.out {
			t.Errorf("%v: expected output %q, got %q", test.err, test.out, s)
		}
	}
}

// the run command returns the program exit code as an error instead of
// exiting, so that deferred terminal cleanup runs.
func TestRunCmd_exitCode(t *testing.T) {
	tests := [...]struct {
		code string
		exit int
	}{
		{"li a0, 3\nli a7, 93\necall", 3},
		{"li a0, 0\nli a7, 93\necall", 0},
		{"nop", 0},
	}
	for _, test := range tests {
		name := filepath.Join(t.TempDir(), "prog.s")
		if err := os.WriteFile(name, []byte(test.code), 0644); err != nil {
			t.Fatal(err)
		}
		err := runCmd.RunE(runCmd, []string{name})
		if test.exit == 0 {
			if err != nil {
				t.Errorf("%q: %+v", test.code, err)
			}
			continue
		}
		e, ok := errors.Cause(err).(*exitError)
		if !ok || e.code != test.exit {
			t.Errorf("%q: expected exit code %d, got %v", test.code, test.exit, err)
		}
	}
}
