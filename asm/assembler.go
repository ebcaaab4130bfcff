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
	"strings"

	"iridium/vm"
)

// ErrorKind tags the six recognized assembler error conditions.
type ErrorKind int

const (
	ParsingError ErrorKind = iota
	InsufficientSections
	NoSegmentDeclarationFound
	SymbolAlreadyDeclared
	StringConstantDeclaredWithoutLabel
	UnknownDirectiveFound
)

func (k ErrorKind) String() string {
	switch k {
	case ParsingError:
		return "ParsingError"
	case InsufficientSections:
		return "InsufficientSections"
	case NoSegmentDeclarationFound:
		return "NoSegmentDeclarationFound"
	case SymbolAlreadyDeclared:
		return "SymbolAlreadyDeclared"
	case StringConstantDeclaredWithoutLabel:
		return "StringConstantDeclaredWithoutLabel"
	case UnknownDirectiveFound:
		return "UnknownDirectiveFound"
	default:
		return "UnknownError"
	}
}

// AssemblerError is one accumulated assembly failure. Instruction is
// the zero-based index of the offending instruction for
// NoSegmentDeclarationFound and for encoding failures in pass 2; other
// errors leave it zero. Name carries the unknown directive name for
// UnknownDirectiveFound.
type AssemblerError struct {
	Kind        ErrorKind
	Instruction int
	Name        string
}

func (e AssemblerError) Error() string {
	switch e.Kind {
	case NoSegmentDeclarationFound, StringConstantDeclaredWithoutLabel:
		return fmt.Sprintf("%s at instruction %d", e.Kind, e.Instruction)
	case UnknownDirectiveFound:
		return fmt.Sprintf("%s: %s", e.Kind, e.Name)
	default:
		return e.Kind.String()
	}
}

// ErrorList is every error accumulated during assembly. Assembly fails
// whenever it is non-empty.
type ErrorList []AssemblerError

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// section names the two recognized section headers.
type section int

const (
	sectionData section = iota
	sectionCode
)

func sectionFromName(name string) (section, bool) {
	switch name {
	case "data":
		return sectionData, true
	case "code":
		return sectionCode, true
	default:
		return 0, false
	}
}

// phase tracks which of the two assembler passes is running.
type phase int

const (
	phaseFirst phase = iota
	phaseSecond
)

// Assembler performs the two-pass translation of a Program into an
// image: pass 1 extracts labels and lays out the read-only section;
// pass 2 emits code bytes.
type Assembler struct {
	phase       phase
	symbols     *SymbolTable
	ro          []byte
	roOffset    uint32
	sections    []section
	currSection *section
	currInst    int
	errs        ErrorList
}

// NewAssembler returns a fresh, empty Assembler.
func NewAssembler() *Assembler {
	return &Assembler{symbols: NewSymbolTable()}
}

// Assemble parses source and assembles it into a complete image
// (header ‖ read-only data ‖ code). On failure it returns the full
// accumulated ErrorList.
func Assemble(source string) ([]byte, error) {
	prog, err := ParseProgram(source)
	if err != nil {
		return nil, ErrorList{{Kind: ParsingError}}
	}
	a := NewAssembler()
	return a.Assemble(prog)
}

// Assemble runs both passes over prog and returns the resulting image.
func (a *Assembler) Assemble(prog *Program) ([]byte, error) {
	a.processFirstPhase(prog)
	if len(a.errs) > 0 {
		return nil, a.errs
	}
	if len(a.sections) != 2 {
		a.errs = append(a.errs, AssemblerError{Kind: InsufficientSections})
		return nil, a.errs
	}

	code := a.processSecondPhase(prog)
	if len(a.errs) > 0 {
		return nil, a.errs
	}

	header := vm.BuildHeader(uint32(len(a.ro)))
	image := make([]byte, 0, len(header)+len(a.ro)+len(code))
	image = append(image, header...)
	image = append(image, a.ro...)
	image = append(image, code...)
	return image, nil
}

// processFirstPhase extracts labels, lays out the read-only section,
// and validates section structure.
func (a *Assembler) processFirstPhase(prog *Program) {
	a.currInst = 0
	for _, ins := range prog.Instructions {
		if ins.IsLabel() {
			if a.currSection != nil {
				a.processLabelDeclaration(ins)
			} else {
				a.errs = append(a.errs, AssemblerError{Kind: NoSegmentDeclarationFound, Instruction: a.currInst})
			}
		}
		if ins.IsDirective() {
			a.processDirective(ins)
		}
		a.currInst++
	}
	a.phase = phaseSecond
}

// processSecondPhase emits four bytes per opcode instruction.
// Directives are revisited (producing no code bytes) to keep
// currInst tracking parallel with pass 1.
func (a *Assembler) processSecondPhase(prog *Program) []byte {
	a.currInst = 0
	var code []byte
	for _, ins := range prog.Instructions {
		if ins.IsOpcode() {
			b, err := ins.ToBytes(a.symbols)
			if err != nil {
				a.errs = append(a.errs, AssemblerError{Kind: ParsingError, Instruction: a.currInst})
			} else {
				code = append(code, b[:]...)
			}
		}
		if ins.IsDirective() {
			a.processDirective(ins)
		}
		a.currInst++
	}
	return code
}

func (a *Assembler) processLabelDeclaration(ins *Instruction) {
	name := ins.LabelName()
	if a.symbols.Contains(name) {
		a.errs = append(a.errs, AssemblerError{Kind: SymbolAlreadyDeclared})
		return
	}
	a.symbols.Add(name)
}

// processDirective dispatches a directive: one with operands is a
// data directive, one without is a section header.
func (a *Assembler) processDirective(ins *Instruction) {
	name := ins.DirectiveName()
	if ins.HasOperands() {
		switch name {
		case "asciiz":
			a.handleAsciiz(ins)
		case "integer":
			// Reserved, not yet implemented — silently ignored, per
			// the directive set this assembler recognizes.
		default:
			a.errs = append(a.errs, AssemblerError{Kind: UnknownDirectiveFound, Name: name})
		}
		return
	}
	a.processSectionHeader(name)
}

func (a *Assembler) processSectionHeader(name string) {
	sec, ok := sectionFromName(name)
	if !ok {
		// Unknown header names are warned and ignored, not fatal.
		fmt.Fprintf(os.Stderr, "warning: unknown section header .%s ignored\n", name)
		return
	}
	a.sections = append(a.sections, sec)
	a.currSection = &sec
}

// handleAsciiz appends a null-terminated string constant to the
// read-only section, setting the accompanying label's offset to the
// current ro_offset before the bytes are appended — this ordering is
// load-bearing and must be preserved by any refactor.
func (a *Assembler) handleAsciiz(ins *Instruction) {
	if a.phase != phaseFirst {
		return
	}
	str, ok := ins.StringOperand()
	if !ok {
		return
	}
	if name := ins.LabelName(); name != "" {
		a.symbols.SetOffset(name, a.roOffset)
	}
	a.ro = append(a.ro, []byte(str)...)
	a.roOffset += uint32(len(str))
	a.ro = append(a.ro, 0)
	a.roOffset++
}
