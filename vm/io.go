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
	"strconv"

	"github.com/pkg/errors"
)

type flusher interface {
	Flush() error
}

type multiReader struct {
	readers []io.Reader
}

func (mr *multiReader) Read(p []byte) (n int, err error) {
	for len(mr.readers) > 0 {
		n, err = mr.readers[0].Read(p)
		if n > 0 || err != io.EOF {
			if err == io.EOF {
				// Don't return EOF yet. There may be more bytes
				// in the remaining readers.
				err = nil
			}
			return
		}
		if c, ok := mr.readers[0].(io.Closer); ok {
			c.Close()
		}
		mr.readers = mr.readers[1:]
	}
	return 0, io.EOF
}

func (mr *multiReader) pushReader(r io.Reader) {
	mr.readers = append([]io.Reader{r}, mr.readers...)
}

// PushInput sets r as the current input Reader for the VM. When this reader
// reaches EOF, the previously pushed reader will be used.
func (i *Instance) PushInput(r io.Reader) {
	if i.input == nil {
		i.input = &multiReader{}
	}
	i.input.pushReader(r)
}

// ReadByte reads one byte of input. Reads are unbuffered so that the
// remaining input stays available to the previous readers in the input stack.
func (i *Instance) ReadByte() (byte, error) {
	if i.input == nil {
		return 0, io.EOF
	}
	var b [1]byte
	for {
		n, err := i.input.Read(b[:])
		if n > 0 {
			return b[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// Write writes p to the output. Output is discarded if no output is
// configured.
func (i *Instance) Write(p []byte) (int, error) {
	if i.output == nil {
		return len(p), nil
	}
	n, err := i.output.Write(p)
	return n, errors.Wrap(err, "output")
}

func (i *Instance) flush() error {
	if f, ok := i.output.(flusher); ok {
		return errors.Wrap(f.Flush(), "output flush")
	}
	return nil
}

// ErrBreakpoint is returned by Run when an ebreak instruction is executed.
var ErrBreakpoint = errors.New("breakpoint")

// Ecall numbers of the default handlers.
const (
	EcallPrintInt    = 1
	EcallPrintString = 4
	EcallExit        = 10
	EcallPutChar     = 11
	EcallGetChar     = 12
	EcallExitCode    = 93
)

var defaultEcalls = map[uint32]EcallHandler{
	EcallPrintInt: func(i *Instance) error {
		_, err := i.Write([]byte(strconv.Itoa(int(int32(i.Reg[RegA0])))))
		return err
	},
	EcallPrintString: func(i *Instance) error {
		_, err := i.Write([]byte(i.DecodeString(i.Reg[RegA0])))
		return err
	},
	EcallExit: func(i *Instance) error {
		i.Exit(0)
		return nil
	},
	EcallPutChar: func(i *Instance) error {
		_, err := i.Write([]byte{byte(i.Reg[RegA0])})
		return err
	},
	EcallGetChar: func(i *Instance) error {
		if err := i.flush(); err != nil {
			return err
		}
		b, err := i.ReadByte()
		switch err {
		case nil:
			i.Reg[RegA0] = uint32(b)
		case io.EOF:
			i.Reg[RegA0] = ^uint32(0)
		default:
			return errors.Wrap(err, "input")
		}
		return nil
	},
	EcallExitCode: func(i *Instance) error {
		i.Exit(int(int32(i.Reg[RegA0])))
		return nil
	},
}

func (i *Instance) ecall() error {
	n := i.Reg[RegA7]
	h, ok := i.ecallH[n]
	if !ok {
		return errors.Errorf("unknown ecall %d", n)
	}
	return h(i)
}
