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

package vm

import (
	"io"

	"github.com/pkg/errors"

	"github.com/db47h/rvasm/internal/ewriter"
)

// DefaultMemSize is the default memory size in bytes.
const DefaultMemSize = 1 << 20

// ABI register numbers used by the ecall interface.
const (
	RegSP = 2
	RegA0 = 10
	RegA1 = 11
	RegA7 = 17
)

// Instance represents a simulated RV32 hart with its memory.
type Instance struct {
	PC       uint32     // Program Counter
	Reg      [32]uint32 // Integer registers. Writes to Reg[0] are discarded during execution.
	Mem      []byte     // Memory
	codeSize uint32
	memSize  int
	csr      map[uint16]uint32
	insCount int64
	maxIns   int64
	ecallH   map[uint32]EcallHandler
	input    *multiReader
	output   io.Writer
	halted   bool
	exitCode int
}

// Option interface
type Option func(*Instance) error

// MemSize sets the memory size in bytes. The memory is always large enough to
// hold the program image. The default is DefaultMemSize.
func MemSize(size int) Option {
	return func(i *Instance) error {
		if size < 0 {
			return errors.Errorf("invalid memory size %d", size)
		}
		i.memSize = size
		return nil
	}
}

// Input pushes the given Reader on top of the input stack.
func Input(r io.Reader) Option {
	return func(i *Instance) error { i.PushInput(r); return nil }
}

// Output configures the output writer. If w has a Flush method, it is called
// before reading input and when the program exits.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = w
		return nil
	}
}

// MaxInstructions limits the number of instructions executed by a single call
// to Run. A value of 0, the default, means no limit.
func MaxInstructions(n int64) Option {
	return func(i *Instance) error {
		i.maxIns = n
		return nil
	}
}

// EcallHandler is the function prototype for ecall handlers. The ecall number
// is in register a7.
type EcallHandler func(i *Instance) error

// BindEcallHandler binds the provided handler to the ecall number n, replacing
// any default handler.
func BindEcallHandler(n uint32, handler EcallHandler) Option {
	return func(i *Instance) error {
		i.ecallH[n] = handler
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new simulator instance and loads image at address 0.
//
// Options will be set by calling SetOptions.
func New(image Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		memSize:  DefaultMemSize,
		csr:      make(map[uint16]uint32),
		ecallH:   make(map[uint32]EcallHandler),
		codeSize: uint32(len(image)) * 4,
	}
	for n, h := range defaultEcalls {
		i.ecallH[n] = h
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	size := i.memSize
	if size < int(i.codeSize) {
		size = int(i.codeSize)
	}
	i.Mem = make([]byte, size)
	for n, w := range image {
		i.Store32(uint32(n)*4, w)
	}
	i.Reg[RegSP] = uint32(size) &^ 15
	return i, nil
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Halted reports whether the program has exited through an exit ecall.
func (i *Instance) Halted() bool {
	return i.halted
}

// ExitCode returns the exit code of the program.
func (i *Instance) ExitCode() int {
	return i.exitCode
}

// Exit halts the instance with the given exit code. To be used from ecall
// handlers.
func (i *Instance) Exit(code int) {
	i.halted = true
	i.exitCode = code
	i.flush()
}

// Dump dumps the PC and registers to the specified io.Writer.
func (i *Instance) Dump(w io.Writer) error {
	ew := ewriter.New(w)
	ew.Printf("pc  %08x\n", i.PC)
	for n, r := range i.Reg {
		sep := " "
		if n%4 == 3 {
			sep = "\n"
		}
		ew.Printf("x%-2d %08x%s", n, r, sep)
	}
	return ew.Err
}
