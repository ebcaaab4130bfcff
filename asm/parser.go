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
	"strings"

	"github.com/pkg/errors"
)

// ParseProgram lexes and parses source into a Program: one
// Instruction per non-blank line, per the grammar's four forms (first
// match wins):
//
//  1. <opcode> <label_use>
//  2. <label_decl> <directive> <string_literal>
//  3. [label_decl] <opcode> [op] [op] [op]   (op = register | integer)
//  4. <directive> [op] [op] [op]
//
// Parsing is strictly structural: operand arity per opcode and legal
// section transitions are checked later, by the assembler.
func ParseProgram(source string) (*Program, error) {
	p := &Program{}
	for lineNo, line := range strings.Split(source, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		ins, err := parseLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo+1)
		}
		p.Instructions = append(p.Instructions, ins)
	}
	return p, nil
}

// tokenize reads every token off a line, left to right.
func tokenize(line string) ([]Token, error) {
	lx := newLexer(line)
	var toks []Token
	for {
		tok, ok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

func parseLine(line string) (*Instruction, error) {
	toks, err := tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, errors.New("empty instruction")
	}

	var label *Token
	rest := toks
	if toks[0].Kind == TokLabelDecl {
		t := toks[0]
		label = &t
		rest = toks[1:]
		if len(rest) == 0 {
			return nil, errors.Errorf("label %q declared with nothing following it", label.Name)
		}
	}

	switch rest[0].Kind {
	case TokOpcode:
		op := rest[0]
		operands := rest[1:]

		// Form 1: <opcode> <label_use>
		if len(operands) == 1 && operands[0].Kind == TokLabelUse {
			ins := &Instruction{Opcode: &op, Label: label}
			ins.Operands[0] = &operands[0]
			return ins, nil
		}

		// Form 3: [label_decl] <opcode> [op] [op] [op], op = register | integer
		if len(operands) > 3 {
			return nil, errors.Errorf("too many operands for %s: %d", op.Name, len(operands))
		}
		ins := &Instruction{Opcode: &op, Label: label}
		for i := range operands {
			t := operands[i]
			if t.Kind != TokRegister && t.Kind != TokInteger {
				return nil, errors.Errorf("%s: operand %d must be a register or integer literal, got %s", op.Name, i+1, t.Kind)
			}
			ins.Operands[i] = &t
		}
		return ins, nil

	case TokDirective:
		dir := rest[0]
		operands := rest[1:]

		// Form 2: <label_decl> <directive> <string_literal>
		if label != nil && len(operands) == 1 && operands[0].Kind == TokString {
			ins := &Instruction{Directive: &dir, Label: label}
			ins.Operands[0] = &operands[0]
			return ins, nil
		}

		// Form 4: <directive> [op] [op] [op]
		if len(operands) > 3 {
			return nil, errors.Errorf("too many operands for directive .%s: %d", dir.Name, len(operands))
		}
		ins := &Instruction{Directive: &dir, Label: label}
		for i := range operands {
			t := operands[i]
			if t.Kind == TokString {
				return nil, errors.Errorf(".%s: string operand only valid as the sole operand of a labeled directive", dir.Name)
			}
			ins.Operands[i] = &t
		}
		return ins, nil

	default:
		return nil, errors.Errorf("expected an opcode or directive, got %s", rest[0].Kind)
	}
}
