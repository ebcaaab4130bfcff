// This file is part of iridium.
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
	"os"

	"github.com/pkg/errors"
)

// Instruction is one parsed line of source: either an opcode
// instruction (optionally prefixed by a label declaration) or a
// directive (section header or data declaration, optionally prefixed
// by a label declaration in the data section).
//
// Exactly one of Opcode/Directive is set; Label may accompany either.
type Instruction struct {
	Opcode    *Token
	Label     *Token
	Directive *Token
	Operands  [3]*Token // in declaration order; nil once exhausted
}

// IsLabel reports whether this instruction carries a label declaration.
func (ins *Instruction) IsLabel() bool { return ins.Label != nil }

// IsDirective reports whether this instruction carries a directive.
func (ins *Instruction) IsDirective() bool { return ins.Directive != nil }

// IsOpcode reports whether this instruction carries an opcode.
func (ins *Instruction) IsOpcode() bool { return ins.Opcode != nil }

// LabelName returns the label declaration's name, if any.
func (ins *Instruction) LabelName() string {
	if ins.Label == nil {
		return ""
	}
	return ins.Label.Name
}

// DirectiveName returns the directive's (lowercased) name, if any.
func (ins *Instruction) DirectiveName() string {
	if ins.Directive == nil {
		return ""
	}
	return ins.Directive.Name
}

// StringOperand returns the instruction's sole string-literal operand,
// if it has one (used by `.asciiz`).
func (ins *Instruction) StringOperand() (string, bool) {
	for _, op := range ins.Operands {
		if op != nil && op.Kind == TokString {
			return op.Str, true
		}
	}
	return "", false
}

// HasOperands reports whether any operand slot is populated.
func (ins *Instruction) HasOperands() bool {
	for _, op := range ins.Operands {
		if op != nil {
			return true
		}
	}
	return false
}

// ToBytes emits the exactly-4-byte encoding of an opcode instruction:
// byte 0 is the numeric opcode, bytes 1..3 are its operands in
// declaration order (zero-padded), per the image format.
func (ins *Instruction) ToBytes(symbols *SymbolTable) ([4]byte, error) {
	var out [4]byte
	if ins.Opcode == nil || ins.Opcode.Kind != TokOpcode {
		return out, errors.New("internal error: non-opcode token in opcode slot")
	}
	out[0] = byte(ins.Opcode.Op)

	i := 1
	for _, op := range ins.Operands {
		if op == nil {
			continue
		}
		switch op.Kind {
		case TokRegister:
			out[i] = op.Reg
			i++
		case TokInteger:
			hi, lo := int16Bytes(int16(op.Int))
			out[i], out[i+1] = hi, lo
			i += 2
		case TokLabelUse:
			offset, ok := symbols.ValueOf(op.Name)
			if !ok {
				// Unknown label use: warn and contribute no bytes, per
				// the encoder contract — the gap is left zero-padded.
				fmt.Fprintf(os.Stderr, "warning: unresolved label use @%s\n", op.Name)
				continue
			}
			hi, lo := int16Bytes(int16(offset))
			out[i], out[i+1] = hi, lo
			i += 2
		default:
			return out, errors.Errorf("internal error: opcode token %s found in operand slot", op.Kind)
		}
	}
	return out, nil
}

// int16Bytes returns the big-endian byte pair (high, low) of v's
// 16-bit representation, matching the encoder's big-endian choice for
// integer and label-use operands.
func int16Bytes(v int16) (hi, lo byte) {
	u := uint16(v)
	return byte(u >> 8), byte(u)
}
