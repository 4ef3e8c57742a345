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
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/db47h/rvasm/asm"
	"github.com/db47h/rvasm/internal/ewriter"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// dumpProgram dumps the expanded instructions and the label map of p.
func dumpProgram(w io.Writer, p *asm.Program) error {
	ew := ewriter.New(w)
	ew.WriteString("instructions:\n")
	for n, in := range p.Instructions {
		ew.Printf("%8x: %s\n", p.Address(n), in)
	}
	ew.WriteString("labels: ")
	dumpConfig.Fdump(ew, p.Labels)
	return ew.Err
}
