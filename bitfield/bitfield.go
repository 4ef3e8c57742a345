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

// Package bitfield implements the bit permutations used by RISC-V instruction
// encodings.
//
// The central primitive is Select, which gathers arbitrary bits of a value
// into a packed Field: output bit i is input bit indices[i], so later entries
// in the index list end up in higher-order output bits. Fields render as
// fixed-width, zero padded binary strings, which lets encoding templates build
// a full instruction word by simple concatenation, most significant field
// first.
//
// The named extractors realize the scrambled immediates of the RISC-V base
// formats:
//
//	name        bit indices (low to high)      width
//	High20      12..31                         20
//	Low20       0..19                          20
//	Low12       0..11                          12
//	JalForm     12..19, 11, 1..10, 20          20
//	BranchHigh  5..10, 12                      7
//	BranchLow   11, 1..4                       5
//	StoreHigh   5..11                          7
//	StoreLow    0..4                           5
//
// None of the functions in this package validate their input. Register and
// CSR ranges are the responsibility of the caller.
package bitfield

import (
	"strconv"
	"strings"
)

// Field is a packed group of bits of a known width.
type Field struct {
	Value uint32
	Width int
}

// String returns the binary representation of the field, zero padded to
// exactly Width characters. Bits of Value above Width are ignored.
func (f Field) String() string {
	if f.Width <= 0 {
		return ""
	}
	s := strconv.FormatUint(uint64(f.Value&mask(f.Width)), 2)
	if len(s) < f.Width {
		s = strings.Repeat("0", f.Width-len(s)) + s
	}
	return s
}

func mask(width int) uint32 {
	if width >= 32 {
		return ^uint32(0)
	}
	return 1<<uint(width) - 1
}

// Span returns the bit indices lo, lo+1, ..., hi-1.
func Span(lo, hi int) []int {
	if hi <= lo {
		return nil
	}
	s := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		s = append(s, i)
	}
	return s
}

// Concat concatenates index lists.
func Concat(lists ...[]int) []int {
	var n int
	for _, l := range lists {
		n += len(l)
	}
	r := make([]int, 0, n)
	for _, l := range lists {
		r = append(r, l...)
	}
	return r
}

// Select packs the bits of v found at the given indices. Bit i of the result
// is bit indices[i] of v.
func Select(v uint32, indices []int) Field {
	var r uint32
	for i, idx := range indices {
		r |= (v >> uint(idx) & 1) << uint(i)
	}
	return Field{r, len(indices)}
}

// Place is the inverse of Select: it scatters the bits of f back to their
// original positions.
func Place(f Field, indices []int) uint32 {
	var r uint32
	for i, idx := range indices {
		r |= (f.Value >> uint(i) & 1) << uint(idx)
	}
	return r
}

// SignExtend interprets the low width bits of v as a two's complement number.
func SignExtend(v uint32, width int) int32 {
	shift := uint(32 - width)
	return int32(v<<shift) >> shift
}

// Displacement returns the signed distance from one address to another.
func Displacement(from, to uint32) int32 {
	return int32(to - from)
}
