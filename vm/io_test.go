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
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/rvasm/vm"
)

const echo = `
loop:
	li   a7, 12
	ecall
	bltz a0, done
	li   a7, 11
	ecall
	j    loop
done:
`

func assertEqual(t *testing.T, name, expected, got string) {
	t.Helper()
	if expected != got {
		t.Errorf("%s: expected %q, got %q", name, expected, got)
	}
}

func Test_io_putchar(t *testing.T) {
	var b bytes.Buffer
	run(t, `
		li a7, 11
		li a0, 72
		ecall
		li a0, 105
		ecall
		li a0, 10
		ecall`, vm.Output(&b))
	assertEqual(t, "putchar", "Hi\n", b.String())
}

func Test_io_printInt(t *testing.T) {
	var b bytes.Buffer
	run(t, "li a7, 1\nli a0, -42\necall\nli a0, 0x80000000\necall", vm.Output(&b))
	assertEqual(t, "print int", "-42-2147483648", b.String())
}

func Test_io_printString(t *testing.T) {
	var b bytes.Buffer
	i := setup(t, "li a0, 0x8000\nli a7, 4\necall", vm.Output(&b))
	i.EncodeString(0x8000, "hello, world")
	if err := i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	assertEqual(t, "print string", "hello, world", b.String())
	if s := i.DecodeString(0x8000); s != "hello, world" {
		t.Errorf("DecodeString: %q", s)
	}
}

func Test_io_echo(t *testing.T) {
	var b bytes.Buffer
	// readers are stacked: the last one is read first
	i := run(t, echo,
		vm.Input(strings.NewReader("world")),
		vm.Input(strings.NewReader("hello, ")),
		vm.Output(&b))
	assertEqual(t, "echo", "hello, world", b.String())
	if a0 := int32(i.Reg[vm.RegA0]); a0 != -1 {
		t.Errorf("a0 = %d at end of input", a0)
	}
}

func Test_io_flush(t *testing.T) {
	var b bytes.Buffer
	w := bufio.NewWriter(&b)
	run(t, "li a7, 11\nli a0, 33\necall\nli a7, 10\necall\nli a0, 34\necall", vm.Output(w))
	// output is flushed on exit
	assertEqual(t, "flush", "!", b.String())
}

func Test_io_exit(t *testing.T) {
	i := run(t, "li a0, 3\nli a7, 93\necall\nli a0, 5")
	if !i.Halted() || i.ExitCode() != 3 {
		t.Errorf("halted: %v, exit code %d", i.Halted(), i.ExitCode())
	}
	if a0 := i.Reg[vm.RegA0]; a0 != 3 {
		t.Errorf("a0 = %d", a0)
	}
}

func Test_io_customEcall(t *testing.T) {
	double := func(i *vm.Instance) error {
		i.Reg[vm.RegA0] *= 2
		return nil
	}
	i := run(t, "li a0, 21\nli a7, 100\necall", vm.BindEcallHandler(100, double))
	if a0 := i.Reg[vm.RegA0]; a0 != 42 {
		t.Errorf("a0 = %d", a0)
	}
}

func TestImage(t *testing.T) {
	img := vm.Image{0x00500093, 0xdeadbeef, 0}
	var b bytes.Buffer
	n, err := img.WriteTo(&b)
	if err != nil || n != 12 {
		t.Fatalf("WriteTo: %d, %v", n, err)
	}
	if !bytes.Equal(b.Bytes()[:4], []byte{0x93, 0x00, 0x50, 0x00}) {
		t.Errorf("not little endian: % x", b.Bytes()[:4])
	}
	got, err := vm.Load(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(img) {
		t.Fatalf("expected %08x, got %08x", img, got)
	}
	for k := range img {
		if got[k] != img[k] {
			t.Errorf("word %d: expected %08x, got %08x", k, img[k], got[k])
		}
	}
	if _, err = vm.Load(bytes.NewReader([]byte{1, 2, 3, 4, 5})); err == nil {
		t.Error("expected error on truncated image")
	}
}

func TestInstance_Dump(t *testing.T) {
	i := run(t, "li a0, -1")
	var b bytes.Buffer
	if err := i.Dump(&b); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d:\n%s", len(lines), b.String())
	}
	assertEqual(t, "pc", "pc  00000004", lines[0])
	assertEqual(t, "x8-x11", "x8  00000000 x9  00000000 x10 ffffffff x11 00000000", lines[3])
}
