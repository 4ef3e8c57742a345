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
	"encoding/binary"
	"fmt"
)

// MemoryError is the error raised by an access outside of memory.
type MemoryError struct {
	Addr  uint32
	Size  int
	Write bool
}

func (e *MemoryError) Error() string {
	op := "load"
	if e.Write {
		op = "store"
	}
	return fmt.Sprintf("%s of %d bytes at address %#x out of bounds", op, e.Size, e.Addr)
}

// access returns the memory slice at addr of the given size. It panics with a
// *MemoryError if the access is out of bounds; Run recovers it.
func (i *Instance) access(addr uint32, size int, write bool) []byte {
	if uint64(addr)+uint64(size) > uint64(len(i.Mem)) {
		panic(&MemoryError{addr, size, write})
	}
	return i.Mem[addr : int(addr)+size]
}

// Load8 returns the byte at addr.
func (i *Instance) Load8(addr uint32) uint32 {
	return uint32(i.access(addr, 1, false)[0])
}

// Load16 returns the half word at addr.
func (i *Instance) Load16(addr uint32) uint32 {
	return uint32(binary.LittleEndian.Uint16(i.access(addr, 2, false)))
}

// Load32 returns the word at addr.
func (i *Instance) Load32(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(i.access(addr, 4, false))
}

// Store8 stores the low byte of v at addr.
func (i *Instance) Store8(addr, v uint32) {
	i.access(addr, 1, true)[0] = byte(v)
}

// Store16 stores the low half word of v at addr.
func (i *Instance) Store16(addr, v uint32) {
	binary.LittleEndian.PutUint16(i.access(addr, 2, true), uint16(v))
}

// Store32 stores v at addr.
func (i *Instance) Store32(addr, v uint32) {
	binary.LittleEndian.PutUint32(i.access(addr, 4, true), v)
}

// DecodeString returns the string starting at address start. Strings stored
// in memory must be zero terminated. The trailing '\0' is not returned.
func (i *Instance) DecodeString(start uint32) string {
	if uint64(start) >= uint64(len(i.Mem)) {
		panic(&MemoryError{start, 1, false})
	}
	end := int(start)
	for ; end < len(i.Mem) && i.Mem[end] != 0; end++ {
	}
	return string(i.Mem[start:end])
}

// EncodeString writes the given string at address start and terminates it
// with a '\0' byte.
func (i *Instance) EncodeString(start uint32, s string) {
	copy(i.access(start, len(s)+1, true), s+"\x00")
}
