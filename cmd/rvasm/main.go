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
	"fmt"
	"io"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"
	"golang.org/x/term"

	"github.com/db47h/rvasm/asm"
	"github.com/db47h/rvasm/isa"
)

var (
	debug     bool
	noColor   bool
	tablesDir string
)

var rootCmd = &cobra.Command{
	Use:   "rvasm",
	Short: "RISC-V RV32 assembler, disassembler and simulator",
	Long: `rvasm assembles RV32I source code (with the M and Zicsr extensions)
into raw instruction words, disassembles them, and runs them in a simple
simulator.

Flag defaults can be set with the environment variables RVASM_FORMAT,
RVASM_TABLES, RVASM_ALLOW_REDEFINE, RVASM_MEM and RVASM_MAX_STEPS. Colored
output is disabled when NO_COLOR or RVASM_NO_COLOR is set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug diagnostics")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", env.Str("NO_COLOR") != "" || env.Bool("RVASM_NO_COLOR"), "disable colored output")
	rootCmd.PersistentFlags().StringVar(&tablesDir, "tables", env.Str("RVASM_TABLES"), "load register, CSR and pseudo instruction tables from `dir`")
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colors returns an aurora instance for f, with colors enabled only for
// terminals.
func colors(f *os.File) aurora.Aurora {
	return aurora.NewAurora(!noColor && isTerminal(f))
}

// tables returns the RV32I tables with the overlay from the --tables
// directory.
func tables() (*asm.Tables, error) {
	t := isa.RV32I()
	if tablesDir == "" {
		return t, nil
	}
	return isa.Overlay(t, tablesDir)
}

// openInput opens the named file, or returns stdin if name is empty or "-".
func openInput(args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), "<stdin>", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, args[0], errors.Wrap(err, "open failed")
	}
	return f, args[0], nil
}

// exitError reports the nonzero exit code of a simulated program to main.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// report prints err to w and returns the process exit code for it.
func report(w io.Writer, au aurora.Aurora, err error) int {
	if err == nil {
		return 0
	}
	if e, ok := errors.Cause(err).(*exitError); ok {
		return e.code
	}
	format := "%s %v\n"
	if debug {
		format = "%s %+v\n"
	}
	fmt.Fprintf(w, format, au.Bold(au.Red("error:")), err)
	return 1
}

func atExit(err error) {
	if code := report(os.Stderr, colors(os.Stderr), err); code != 0 {
		os.Exit(code)
	}
}

func main() {
	atExit(rootCmd.Execute())
}
