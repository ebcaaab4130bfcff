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

func TestLexer_registerToken(t *testing.T) {
	lx := newLexer("$12")
	tok, ok, err := lx.next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TokRegister, tok.Kind)
	assert.Equal(t, uint8(12), tok.Reg)
}

func TestLexer_integerToken(t *testing.T) {
	lx := newLexer("#-42")
	tok, ok, err := lx.next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TokInteger, tok.Kind)
	assert.Equal(t, int32(-42), tok.Int)
}

func TestLexer_floatToken(t *testing.T) {
	lx := newLexer("-3.25")
	tok, ok, err := lx.next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TokFloat, tok.Kind)
	assert.InDelta(t, -3.25, tok.Float, 1e-12)
}

func TestLexer_stringToken(t *testing.T) {
	lx := newLexer("'Hello, world!'")
	tok, ok, err := lx.next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TokString, tok.Kind)
	assert.Equal(t, "Hello, world!", tok.Str)
}

func TestLexer_unterminatedString(t *testing.T) {
	lx := newLexer("'oops")
	_, _, err := lx.next()
	assert.Error(t, err)
}

func TestLexer_labelUseAndDecl(t *testing.T) {
	lx := newLexer("@loop")
	tok, ok, err := lx.next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TokLabelUse, tok.Kind)
	assert.Equal(t, "loop", tok.Name)

	lx = newLexer("loop:")
	tok, ok, err = lx.next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TokLabelDecl, tok.Kind)
	assert.Equal(t, "loop", tok.Name)
}

func TestLexer_directiveFoldsToLowercase(t *testing.T) {
	lx := newLexer(".ASCIIZ")
	tok, ok, err := lx.next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TokDirective, tok.Kind)
	assert.Equal(t, "asciiz", tok.Name)
}

func TestLexer_opcodeMnemonic(t *testing.T) {
	lx := newLexer("LOAD")
	tok, ok, err := lx.next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TokOpcode, tok.Kind)
	assert.Equal(t, vm.Load, tok.Op)
}

func TestLexer_unknownMnemonicResolvesIllegal(t *testing.T) {
	lx := newLexer("frobnicate")
	tok, ok, err := lx.next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TokOpcode, tok.Kind)
	assert.Equal(t, vm.Illegal, tok.Op)
}

func TestLexer_multipleTokensOnOneLine(t *testing.T) {
	lx := newLexer("LOAD $0 #100")
	var kinds []TokenKind
	for {
		tok, ok, err := lx.next()
		require.NoError(t, err)
		if !ok {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{TokOpcode, TokRegister, TokInteger}, kinds)
}

func TestLexer_emptyLineYieldsNoTokens(t *testing.T) {
	lx := newLexer("   \t  ")
	_, ok, err := lx.next()
	require.NoError(t, err)
	assert.False(t, ok)
}
