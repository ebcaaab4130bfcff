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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iridium/vm"
)

func TestParseLine_form1_opcodeWithLabelUse(t *testing.T) {
	ins, err := parseLine("PRTS @hello")
	require.NoError(t, err)
	assert.Equal(t, vm.Prts, ins.Opcode.Op)
	require.NotNil(t, ins.Operands[0])
	assert.Equal(t, TokLabelUse, ins.Operands[0].Kind)
	assert.Equal(t, "hello", ins.Operands[0].Name)
}

func TestParseLine_form2_labeledAsciiz(t *testing.T) {
	ins, err := parseLine("hello: .asciiz 'Hi!'")
	require.NoError(t, err)
	assert.Equal(t, "hello", ins.LabelName())
	assert.Equal(t, "asciiz", ins.DirectiveName())
	str, ok := ins.StringOperand()
	require.True(t, ok)
	assert.Equal(t, "Hi!", str)
}

func TestParseLine_form3_opcodeWithRegistersAndLabel(t *testing.T) {
	ins, err := parseLine("start: LOAD $0 #100")
	require.NoError(t, err)
	assert.Equal(t, "start", ins.LabelName())
	assert.Equal(t, vm.Load, ins.Opcode.Op)
	assert.Equal(t, TokRegister, ins.Operands[0].Kind)
	assert.Equal(t, uint8(0), ins.Operands[0].Reg)
	assert.Equal(t, TokInteger, ins.Operands[1].Kind)
	assert.Equal(t, int32(100), ins.Operands[1].Int)
	assert.Nil(t, ins.Operands[2])
}

func TestParseLine_form4_directiveWithOperands(t *testing.T) {
	ins, err := parseLine(".integer #7")
	require.NoError(t, err)
	assert.Equal(t, "integer", ins.DirectiveName())
	assert.Equal(t, TokInteger, ins.Operands[0].Kind)
}

func TestParseLine_bareSectionHeader(t *testing.T) {
	ins, err := parseLine(".code")
	require.NoError(t, err)
	assert.Equal(t, "code", ins.DirectiveName())
	assert.False(t, ins.HasOperands())
}

func TestParseLine_tooManyOperands(t *testing.T) {
	_, err := parseLine("ADD $0 $1 $2 $3")
	assert.Error(t, err)
}

func TestParseLine_stringOperandOutsideLabeledForm(t *testing.T) {
	_, err := parseLine(".asciiz 'no label here'")
	assert.Error(t, err)
}

func TestParseLine_expectsOpcodeOrDirective(t *testing.T) {
	_, err := parseLine("$0 $1")
	assert.Error(t, err)
}

func TestParseProgram_skipsBlankLines(t *testing.T) {
	prog, err := ParseProgram(".code\n\nHLT\n")
	require.NoError(t, err)
	assert.Len(t, prog.Instructions, 2)
}

func TestParseProgram_wrapsErrorWithLineNumber(t *testing.T) {
	_, err := ParseProgram(".code\nADD $0 $1 $2 $3\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
