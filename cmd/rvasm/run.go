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

	"github.com/db47h/rvasm/vm"
)

var (
	imageFile string
	memSize   int
	maxSteps  int
	noRawIO   bool
	dumpRegs  bool
	withFiles []string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Assemble and run a program in the simulator",
	Long: `Run assembles the given source file, or loads the image given with
--image, and runs it in the simulator. Program input is read from the --with
files, in order, then from stdin.

When stdin is a terminal, it is switched to raw mode unless --noraw is set.
In raw mode, CTRL-D signals the end of input.

The process exit code is the program exit code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := loadProgram(args)
		if err != nil {
			return err
		}
		stdout := bufio.NewWriter(os.Stdout)
		opts := []vm.Option{
			vm.MemSize(memSize),
			vm.MaxInstructions(int64(maxSteps)),
			vm.Output(stdout),
		}
		if !noRawIO && isTerminal(os.Stdin) {
			tearDown, err := setRawIO()
			if err == nil {
				defer tearDown()
				opts = append(opts, vm.Input(os.Stdin), vm.BindEcallHandler(vm.EcallGetChar, rawGetChar(stdout)))
			} else {
				opts = append(opts, vm.Input(bufio.NewReader(os.Stdin)))
			}
		} else {
			opts = append(opts, vm.Input(bufio.NewReader(os.Stdin)))
		}
		// push -with files in reverse order so that they are read in order
		// of appearance on the command line.
		for n := len(withFiles) - 1; n >= 0; n-- {
			f, err := os.Open(withFiles[n])
			if err != nil {
				return errors.Wrap(err, "open failed")
			}
			opts = append(opts, vm.Input(bufio.NewReader(f)))
		}

		i, err := vm.New(img, opts...)
		if err != nil {
			return err
		}
		err = i.Run()
		if ferr := stdout.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "output flush")
		}
		if err != nil {
			if debug || dumpRegs {
				i.Dump(os.Stderr)
			}
			return err
		}
		if dumpRegs {
			if err = i.Dump(os.Stderr); err != nil {
				return err
			}
		}
		if code := i.ExitCode(); code != 0 {
			return &exitError{code}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&imageFile, "image", "", "run the raw image `file` instead of assembling a source file")
	runCmd.Flags().IntVar(&memSize, "mem", env.Int("RVASM_MEM", vm.DefaultMemSize), "memory size in bytes")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", env.Int("RVASM_MAX_STEPS", 0), "maximum number of instructions to execute, 0 for no limit")
	runCmd.Flags().BoolVar(&noRawIO, "noraw", false, "disable raw terminal IO")
	runCmd.Flags().BoolVar(&dumpRegs, "dump", false, "dump registers to stderr upon exit")
	runCmd.Flags().StringArrayVar(&withFiles, "with", nil, "add `file` to the input list (can be specified multiple times)")
	runCmd.Flags().BoolVar(&allowRedefine, "allow-redefine", env.Bool("RVASM_ALLOW_REDEFINE"), "allow labels to be redefined, the last definition wins")
	rootCmd.AddCommand(runCmd)
}

func loadProgram(args []string) (vm.Image, error) {
	if imageFile != "" {
		if len(args) > 0 {
			return nil, errors.New("--image and a source file are mutually exclusive")
		}
		return vm.LoadFile(imageFile)
	}
	words, err := assemble(args)
	return vm.Image(words), err
}

// rawGetChar returns a getchar ecall handler for raw tty mode, where CTRL-D
// must be handled by hand.
func rawGetChar(out *bufio.Writer) vm.EcallHandler {
	return func(i *vm.Instance) error {
		if err := out.Flush(); err != nil {
			return errors.Wrap(err, "output flush")
		}
		return getChar(i)
	}
}

func getChar(i *vm.Instance) error {
	b, err := i.ReadByte()
	switch {
	case err == io.EOF || err == nil && b == 4:
		i.Reg[vm.RegA0] = ^uint32(0)
	case err != nil:
		return errors.Wrap(err, "input")
	case b == '\r':
		i.Reg[vm.RegA0] = '\n'
	default:
		i.Reg[vm.RegA0] = uint32(b)
	}
	return nil
}
