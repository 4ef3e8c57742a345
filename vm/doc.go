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

// Package vm implements a simple RV32IM simulator with Zicsr support.
//
// The simulator has a flat, byte addressed little endian memory. The program
// image is loaded at address 0, where execution starts. The stack pointer
// (x2) is initialized to the top of memory. There are no privilege levels,
// interrupts or traps: mret simply jumps to mepc, and wfi is a no-op.
//
// Execution stops cleanly when the PC leaves the loaded image or after an
// exit ecall. An ebreak stops execution with ErrBreakpoint, leaving the PC on
// the ebreak instruction so that Run can be called again after the PC has
// been advanced.
//
// System calls:
//
// The ecall instruction calls the handler bound to the value of register a7.
// Arguments are passed in a0, a1, ... and results returned in a0. The default
// handlers are:
//
//	 1  print a0 as a signed decimal integer
//	 4  print the NUL terminated string at address a0
//	10  exit
//	11  print the character in a0
//	12  read a character into a0, -1 on end of input
//	93  exit with code a0
//
// Custom handlers can be bound with BindEcallHandler.
package vm
