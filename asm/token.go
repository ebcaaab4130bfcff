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

import "iridium/vm"

// TokenKind tags the concrete shape a Token carries.
type TokenKind int

const (
	TokOpcode TokenKind = iota
	TokRegister
	TokInteger
	TokFloat
	TokString
	TokLabelDecl
	TokLabelUse
	TokDirective
)

func (k TokenKind) String() string {
	switch k {
	case TokOpcode:
		return "opcode"
	case TokRegister:
		return "register"
	case TokInteger:
		return "integer"
	case TokFloat:
		return "float"
	case TokString:
		return "string"
	case TokLabelDecl:
		return "label declaration"
	case TokLabelUse:
		return "label use"
	case TokDirective:
		return "directive"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of iridium assembly source.
type Token struct {
	Kind TokenKind

	Op    vm.Opcode
	Reg   uint8
	Int   int32
	Float float64
	Str   string
	Name  string // label declaration, label use, or directive name
}
