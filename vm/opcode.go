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

package vm

import "strings"

// Opcode is an 8-bit instruction tag. The numeric value of every
// constant below is part of the image format: changing it invalidates
// existing images.
type Opcode uint8

const (
	Load Opcode = iota
	Add
	Sub
	Mul
	Div
	Jmp
	Jmpf
	Jmpb
	Jmpe
	Eq
	Neq
	Gt
	Gte
	Lt
	Lte
	Aloc
	LoadM
	StoreM
	Inc
	Dec
	Prts
	LoadF64
	AddF64
	SubF64
	MulF64
	DivF64
	EqF64
	NeqF64
	GtF64
	GteF64
	LtF64
	LteF64
	And
	Or
	Xor
	Not
	Shl
	Shr
	Push
	Pop
	Call
	Ret
	Nop
	Hlt

	// Illegal is returned for any byte value outside the known opcode
	// range. It never appears as a positive assignment above: keep it
	// last so opcodeCount below always equals len(opcodes).
	Illegal
)

// opcodeCount is the number of real (non-Illegal) opcodes.
const opcodeCount = int(Illegal)

// opcodes is indexed by numeric opcode and holds the canonical
// lowercase mnemonic.
var opcodes = [opcodeCount]string{
	Load:    "load",
	Add:     "add",
	Sub:     "sub",
	Mul:     "mul",
	Div:     "div",
	Jmp:     "jmp",
	Jmpf:    "jmpf",
	Jmpb:    "jmpb",
	Jmpe:    "jmpe",
	Eq:      "eq",
	Neq:     "neq",
	Gt:      "gt",
	Gte:     "gte",
	Lt:      "lt",
	Lte:     "lte",
	Aloc:    "aloc",
	LoadM:   "loadm",
	StoreM:  "storem",
	Inc:     "inc",
	Dec:     "dec",
	Prts:    "prts",
	LoadF64: "loadf64",
	AddF64:  "addf64",
	SubF64:  "subf64",
	MulF64:  "mulf64",
	DivF64:  "divf64",
	EqF64:   "eqf64",
	NeqF64:  "neqf64",
	GtF64:   "gtf64",
	GteF64:  "gtef64",
	LtF64:   "ltf64",
	LteF64:  "ltef64",
	And:     "and",
	Or:      "or",
	Xor:     "xor",
	Not:     "not",
	Shl:     "shl",
	Shr:     "shr",
	Push:    "push",
	Pop:     "pop",
	Call:    "call",
	Ret:     "ret",
	Nop:     "nop",
	Hlt:     "hlt",
}

var mnemonicIndex = make(map[string]Opcode, len(opcodes))

func init() {
	for i, m := range opcodes {
		if m != "" {
			mnemonicIndex[m] = Opcode(i)
		}
	}
}

// String returns the canonical mnemonic for op, or "igl" for Illegal
// or any value outside the known range.
func (op Opcode) String() string {
	if int(op) < len(opcodes) {
		return opcodes[op]
	}
	return "igl"
}

// OpcodeFromByte maps a raw byte to an Opcode. Any value outside the
// known range saturates to Illegal rather than erroring: the VM treats
// this as a normal (if terminal) decode outcome.
func OpcodeFromByte(b byte) Opcode {
	if int(b) < opcodeCount {
		return Opcode(b)
	}
	return Illegal
}

// OpcodeFromMnemonic looks up a mnemonic case-insensitively. Unknown
// mnemonics resolve to Illegal rather than raising: the assembler
// encodes such an opcode as is, and the VM rejects it at run time.
func OpcodeFromMnemonic(s string) Opcode {
	if op, ok := mnemonicIndex[strings.ToLower(s)]; ok {
		return op
	}
	return Illegal
}
