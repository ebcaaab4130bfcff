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
)

func TestSymbolTable_addAndContains(t *testing.T) {
	st := NewSymbolTable()
	assert.False(t, st.Contains("foo"))
	assert.True(t, st.Add("foo"))
	assert.True(t, st.Contains("foo"))
}

func TestSymbolTable_rejectsDuplicateAdd(t *testing.T) {
	st := NewSymbolTable()
	require := assert.New(t)
	require.True(st.Add("foo"))
	require.False(st.Add("foo"))
}

func TestSymbolTable_valueOfUnsetOffset(t *testing.T) {
	st := NewSymbolTable()
	st.Add("foo")
	_, ok := st.ValueOf("foo")
	assert.False(t, ok)
}

func TestSymbolTable_setOffsetThenValueOf(t *testing.T) {
	st := NewSymbolTable()
	st.Add("foo")
	assert.True(t, st.SetOffset("foo", 42))
	v, ok := st.ValueOf("foo")
	assert.True(t, ok)
	assert.Equal(t, uint32(42), v)
}

func TestSymbolTable_setOffsetOnUnknownNameFails(t *testing.T) {
	st := NewSymbolTable()
	assert.False(t, st.SetOffset("ghost", 1))
}
