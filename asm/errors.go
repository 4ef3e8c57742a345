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

package asm

import (
	"fmt"
	"strconv"
)

// UnknownParameterError is returned for a token that is neither a register,
// a CSR, a numeric literal nor a known label.
type UnknownParameterError struct {
	Token string
}

func (e *UnknownParameterError) Error() string {
	return "unknown parameter: " + e.Token
}

// UnknownMnemonicError is returned when no encoding exists for a mnemonic
// reaching the encoder.
type UnknownMnemonicError struct {
	Mnemonic string
}

func (e *UnknownMnemonicError) Error() string {
	return "unknown mnemonic: " + e.Mnemonic
}

// MalformedLiteralError is returned for numeric literals with invalid digits
// or out of the 32 bits range.
type MalformedLiteralError struct {
	Token string
	Err   error
}

func (e *MalformedLiteralError) Error() string {
	if e.Err == nil {
		return "malformed immediate literal: " + e.Token
	}
	return "malformed immediate literal " + e.Token + ": " + e.Err.Error()
}

// TypeMismatchError is returned when an encoding requests a parameter of the
// wrong kind, or a parameter past the end of the operand list. In the latter
// case, Token is empty.
type TypeMismatchError struct {
	Expected Kind
	Token    string
}

func (e *TypeMismatchError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("missing %s operand", e.Expected)
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, strconv.Quote(e.Token))
}

// InvalidTemplateOutputError is returned when an encoding does not render to
// exactly 32 binary digits.
type InvalidTemplateOutputError struct {
	Mnemonic string
	Output   string
}

func (e *InvalidTemplateOutputError) Error() string {
	return fmt.Sprintf("invalid encoding output for %s: %q (%d bits)", e.Mnemonic, e.Output, len(e.Output))
}

// LabelRedefinedError is returned when a label is declared twice and label
// redefinition has not been enabled.
type LabelRedefinedError struct {
	Label    string
	Previous uint32
	Address  uint32
}

func (e *LabelRedefinedError) Error() string {
	return fmt.Sprintf("label redefinition: %s at address %d, previously defined at address %d", e.Label, e.Address, e.Previous)
}

// OperandCountError is returned when an instruction does not have the
// expected number of operands: too few for a pseudo instruction template, or
// more than its encoding uses.
type OperandCountError struct {
	Mnemonic string
	Want     int
	Got      int
}

func (e *OperandCountError) Error() string {
	return fmt.Sprintf("%s: expected %d operands, got %d", e.Mnemonic, e.Want, e.Got)
}
