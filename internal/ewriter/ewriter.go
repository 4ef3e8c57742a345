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

// Package ewriter provides an io.Writer that remembers the first write error,
// so that long sequences of writes need a single error check.
package ewriter

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Writer wraps an io.Writer. Once a write fails, Write keeps returning the
// same error without writing anything.
type Writer struct {
	w   io.Writer
	Err error
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// Printf is fmt.Fprintf to w.
func (w *Writer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}

// WriteString writes s to w.
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// PutUint32 writes v as 4 little endian bytes.
func (w *Writer) PutUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Write(b[:])
}

// New returns w if it already is a *Writer, or wraps it.
func New(w io.Writer) *Writer {
	if ew, ok := w.(*Writer); ok {
		return ew
	}
	return &Writer{w, nil}
}
