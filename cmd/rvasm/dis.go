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
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/db47h/rvasm/asm"
	"github.com/db47h/rvasm/internal/ewriter"
	"github.com/db47h/rvasm/vm"
)

var baseAddr uint32

var disCmd = &cobra.Command{
	Use:   "dis [file]",
	Short: "Disassemble a binary image",
	Long: `Dis disassembles a raw little endian image file, or stdin, and writes an
address, word and instruction listing to stdout. Words that do not decode to
a known instruction are shown as .word directives.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, name, err := openInput(args)
		if err != nil {
			return err
		}
		defer r.Close()
		img, err := vm.Load(r)
		if err != nil {
			return errors.Wrap(err, name)
		}
		t, err := tables()
		if err != nil {
			return err
		}
		return writeListing(os.Stdout, img, baseAddr, asm.NewDisassembler(t))
	},
}

func init() {
	disCmd.Flags().Uint32Var(&baseAddr, "base", 0, "load `address` of the first word")
	rootCmd.AddCommand(disCmd)
}

// writeListing writes a colored listing of words to f.
func writeListing(f *os.File, words []uint32, base uint32, d *asm.Disassembler) error {
	au := colors(f)
	w := bufio.NewWriter(f)
	ew := ewriter.New(w)
	for n, v := range words {
		addr := base + uint32(n)*4
		ew.Printf("%s\t%s\t%s\n",
			au.Cyan(fmt.Sprintf("%8x:", addr)),
			au.Yellow(fmt.Sprintf("%08x", v)),
			d.Instruction(v, addr))
	}
	if ew.Err != nil {
		return ew.Err
	}
	return w.Flush()
}
