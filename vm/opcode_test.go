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

package vm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"iridium/vm"
)

func TestOpcodeFromByte_roundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		op := vm.OpcodeFromByte(byte(b))
		if b < int(vm.Illegal) {
			assert.Equal(t, vm.Opcode(b), op)
		} else {
			assert.Equal(t, vm.Illegal, op, "byte %d should saturate to Illegal", b)
		}
	}
}

func TestOpcodeFromMnemonic(t *testing.T) {
	cases := []struct {
		mnemonic string
		want     vm.Opcode
	}{
		{"load", vm.Load},
		{"LOAD", vm.Load},
		{"Hlt", vm.Hlt},
		{"jmpe", vm.Jmpe},
		{"nope-not-a-thing", vm.Illegal},
		{"", vm.Illegal},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, vm.OpcodeFromMnemonic(c.mnemonic), "mnemonic %q", c.mnemonic)
	}
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "load", vm.Load.String())
	assert.Equal(t, "hlt", vm.Hlt.String())
	assert.Equal(t, "igl", vm.Illegal.String())
	assert.Equal(t, "igl", vm.Opcode(255).String())
}
