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

// The rvasm command line tool is a front end to the packages
// github.com/db47h/rvasm/asm and github.com/db47h/rvasm/vm.
//
// Usage:
//
//	rvasm asm [flags] [file]   assemble file or stdin
//	rvasm dis [flags] [file]   disassemble a raw image
//	rvasm run [flags] [file]   assemble and run in the simulator
//
// Global flags:
//
//	--debug
//		  print full error stack traces, and registers when a program fails
//	--no-color
//		  disable colored output (default from NO_COLOR or RVASM_NO_COLOR)
//	--tables dir
//		  overlay register, CSR and pseudo instruction tables found in dir
//		  (default from RVASM_TABLES)
//
// The table files are registers.spec, csr.spec and pseudo_simple.spec. Each
// non blank line holds a key and a value:
//
//	# registers.spec: id followed by names
//	8 s0, fp
//	# csr.spec: name followed by address
//	mscratch 0x340
//	# pseudo_simple.spec: mnemonic followed by its replacement
//	inc addi {0}, {0}, 1
//
// asm flags:
//
//	--format hex|bin
//		  output format (default from RVASM_FORMAT, else hex). hex writes one
//		  word per line, bin writes raw little endian words.
//	-o, --output file
//		  write output to file instead of stdout
//	--allow-redefine
//		  the last definition of a label wins instead of failing (default from
//		  RVASM_ALLOW_REDEFINE)
//	--dump
//		  dump the expanded program and labels to stderr
//	--listing
//		  write an address, word and disassembly listing to stdout
//
// run flags:
//
//	--image file
//		  run a raw image instead of assembling a source file
//	--mem n
//		  memory size in bytes (default from RVASM_MEM, else 1MiB)
//	--max-steps n
//		  stop after n instructions (default from RVASM_MAX_STEPS)
//	--with file
//		  add file to the input list (can be specified multiple times)
//	--noraw
//		  disable raw terminal IO
//	--dump
//		  dump registers to stderr upon exit
package main
