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
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	"github.com/db47h/rvasm/asm"
	"github.com/db47h/rvasm/internal/ewriter"
	"github.com/db47h/rvasm/vm"
)

var (
	format        string
	outFileName   string
	allowRedefine bool
	dump          bool
	listing       bool
)

var asmCmd = &cobra.Command{
	Use:   "asm [file]",
	Short: "Assemble a source file",
	Long: `Asm assembles the given source file, or stdin, and writes the
resulting instruction words to stdout or to the file given with -o.

The hex format writes one 8 digit hexadecimal word per line. The bin format
writes raw little endian words and is refused when stdout is a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if format != "hex" && format != "bin" {
			return errors.Errorf("unknown output format %q", format)
		}
		words, err := assemble(args)
		if err != nil {
			return err
		}
		switch {
		case outFileName != "" && format == "bin":
			return vm.Image(words).Save(outFileName)
		case outFileName != "":
			return saveHex(outFileName, words)
		case listing:
			t, err := tables()
			if err != nil {
				return err
			}
			return writeListing(os.Stdout, words, 0, asm.NewDisassembler(t))
		}
		w := bufio.NewWriter(os.Stdout)
		switch format {
		case "bin":
			if isTerminal(os.Stdout) {
				return errors.New("refusing to write binary output to a terminal")
			}
			_, err = vm.Image(words).WriteTo(w)
		default:
			err = writeHex(w, words)
		}
		if err != nil {
			return err
		}
		return errors.Wrap(w.Flush(), "write failed")
	},
}

func init() {
	asmCmd.Flags().StringVar(&format, "format", env.Str("RVASM_FORMAT", "hex"), "output `format`: hex or bin")
	asmCmd.Flags().StringVarP(&outFileName, "output", "o", "", "write output to `file`")
	asmCmd.Flags().BoolVar(&allowRedefine, "allow-redefine", env.Bool("RVASM_ALLOW_REDEFINE"), "allow labels to be redefined, the last definition wins")
	asmCmd.Flags().BoolVar(&dump, "dump", false, "dump the expanded program and labels to stderr")
	asmCmd.Flags().BoolVar(&listing, "listing", false, "write a listing to stdout")
	rootCmd.AddCommand(asmCmd)
}

func newAssembler() (*asm.Assembler, error) {
	t, err := tables()
	if err != nil {
		return nil, err
	}
	return asm.New(t, asm.AllowLabelRedefinition(allowRedefine))
}

// assemble reads and assembles the source file named in args.
func assemble(args []string) ([]uint32, error) {
	r, name, err := openInput(args)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	a, err := newAssembler()
	if err != nil {
		return nil, err
	}
	if dump {
		p, err := a.Expand(string(src))
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		if err = dumpProgram(os.Stderr, p); err != nil {
			return nil, err
		}
	}
	words, err := a.Compile(string(src))
	return words, errors.Wrap(err, name)
}

// saveHex writes words in hex format to the named file. The file is removed
// on error.
func saveHex(fileName string, words []uint32) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if ferr := w.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "write failed")
		}
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close failed")
		}
		if err != nil {
			os.Remove(fileName)
		}
	}()
	return writeHex(w, words)
}

func writeHex(w io.Writer, words []uint32) error {
	ew := ewriter.New(w)
	for _, v := range words {
		ew.Printf("%08x\n", v)
	}
	return ew.Err
}
