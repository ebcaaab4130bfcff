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

// Package asm implements the iridium two-pass assembler: it lexes and
// parses assembly source into a Program, then assembles that Program
// into a loadable image (see package vm for the image format).
//
// Source is line-oriented; one instruction appears per line, matched
// against four grammar forms in order:
//
//	1. <opcode> <label_use>
//	2. <label_decl> <directive> <string_literal>
//	3. [label_decl] <opcode> [op] [op] [op]      (op = register | integer literal)
//	4. <directive> [op] [op] [op]
//
// Lexical forms:
//
//	$N     register N, 0-255                       ADD $0 $1 $2
//	#N     signed 32-bit integer literal            LOAD $0 #100
//	N.M    64-bit float literal, optional leading -  -3.14 (directive operands only)
//	'...'  string literal, no escapes               .asciiz 'hello'
//	name:  label declaration                        loop:  JMP @loop
//	@name  label use                                 JMP @loop
//	.name  directive, folded to lowercase            .code
//
// Bare words that are not label declarations, directives, registers,
// or literals are opcode mnemonics, matched case-insensitively against
// the table in package vm.
//
// Sections:
//
// A source file declares exactly two sections, in either order:
//
//	.data
//	.code
//
// Declaring any other number of sections fails assembly with
// InsufficientSections. Within .data, a labeled `.asciiz` directive
// lays out a null-terminated string constant in the image's read-only
// section and binds the label to its starting offset:
//
//	hello: .asciiz 'Hello, world!'
//
// Within .code, every instruction assembles to the Instruction.ToBytes
// encoding: one opcode byte followed by three operand bytes, with
// registers occupying one byte and integers or label uses occupying a
// big-endian signed 16-bit pair. A label use that never resolves
// contributes no bytes, leaving its slot zero-padded.
//
// Assembling a program:
//
//	image, err := asm.Assemble(source)
//	if err != nil {
//		// err is an asm.ErrorList
//	}
//
// Pass 1 (processFirstPhase) extracts label declarations and lays out
// the read-only section; pass 2 (processSecondPhase) emits code bytes,
// resolving label uses against the offsets pass 1 assigned. Only
// labels bound by `.asciiz` receive an offset: a label declared on a
// code line is recorded without one, so uses of it never resolve.
// Errors within a pass accumulate into an ErrorList rather than
// failing on the first one; pass 2 runs only when pass 1 reported
// nothing, and a source that fails to parse yields a single
// ParsingError.
package asm
