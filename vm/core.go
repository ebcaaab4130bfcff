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

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// floatEpsilon is the tolerance used by the float comparison opcodes.
const floatEpsilon = 1e-10

// next8 returns the byte at PC and advances PC by one.
func (i *Instance) next8() byte {
	b := i.Program[i.PC]
	i.PC++
	return b
}

// next16 returns the big-endian uint16 at PC and advances PC by two,
// matching the encoder's big-endian operand layout.
func (i *Instance) next16() uint16 {
	v := uint16(i.Program[i.PC])<<8 | uint16(i.Program[i.PC+1])
	i.PC += 2
	return v
}

// Run verifies the header, then executes instructions until HLT, an
// illegal opcode, or the program counter runs off the end of the
// image. It records Start/Stop/Crash events as it goes.
func (i *Instance) Run() error {
	i.recordEvent(EventStart)
	if err := VerifyHeader(i.Program); err != nil {
		i.recordEvent(EventCrash)
		return errors.Wrap(err, "header verification failed")
	}
	for {
		done, err := i.RunOnce()
		if err != nil {
			return err
		}
		if done {
			break
		}
	}
	i.recordEvent(EventStop)
	return nil
}

// RunOnce executes a single instruction. done is true when the
// program counter has run off the end of the image or HLT was
// executed; the instance should not be stepped further once done is
// true. RunOnce does not verify the header or record Start/Stop
// events — callers stepping manually are responsible for both.
func (i *Instance) RunOnce() (done bool, err error) {
	if i.PC >= len(i.Program) {
		return true, nil
	}
	op := OpcodeFromByte(i.next8())
	switch op {
	case Load:
		r := i.next8()
		v := i.next16()
		i.Registers[r] = int32(v)

	case Add:
		a, b, d := i.next8(), i.next8(), i.next8()
		i.Registers[d] = i.Registers[a] + i.Registers[b]
	case Sub:
		a, b, d := i.next8(), i.next8(), i.next8()
		i.Registers[d] = i.Registers[a] - i.Registers[b]
	case Mul:
		a, b, d := i.next8(), i.next8(), i.next8()
		i.Registers[d] = i.Registers[a] * i.Registers[b]
	case Div:
		a, b, d := i.next8(), i.next8(), i.next8()
		lhs, rhs := i.Registers[a], i.Registers[b]
		i.Registers[d] = lhs / rhs
		i.Remainder = uint32(lhs % rhs)

	case Jmp:
		r := i.next8()
		i.next8()
		i.next8()
		i.PC = int(i.Registers[r])
	case Jmpf:
		r := i.next8()
		i.next8()
		i.next8()
		i.PC += int(i.Registers[r])
	case Jmpb:
		r := i.next8()
		i.next8()
		i.next8()
		i.PC -= int(i.Registers[r])
	case Jmpe:
		// Always consumes its one operand byte, flag or not — the
		// original left the PC desynchronized on the untaken branch.
		r := i.next8()
		i.next8()
		i.next8()
		if i.EqualFlag {
			i.PC = int(i.Registers[r])
		}

	case Eq:
		a, b := i.next8(), i.next8()
		i.next8()
		i.EqualFlag = i.Registers[a] == i.Registers[b]
	case Neq:
		a, b := i.next8(), i.next8()
		i.next8()
		i.EqualFlag = i.Registers[a] != i.Registers[b]
	case Gt:
		a, b := i.next8(), i.next8()
		i.next8()
		i.EqualFlag = i.Registers[a] > i.Registers[b]
	case Gte:
		a, b := i.next8(), i.next8()
		i.next8()
		i.EqualFlag = i.Registers[a] >= i.Registers[b]
	case Lt:
		a, b := i.next8(), i.next8()
		i.next8()
		i.EqualFlag = i.Registers[a] < i.Registers[b]
	case Lte:
		a, b := i.next8(), i.next8()
		i.next8()
		i.EqualFlag = i.Registers[a] <= i.Registers[b]

	case Aloc:
		r := i.next8()
		i.next8()
		i.next8()
		n := int(i.Registers[r])
		if n < 0 {
			return true, errors.Errorf("aloc with negative size %d at pc=%d", n, i.PC-4)
		}
		i.heap = append(i.heap, make([]byte, n)...)
	case LoadM:
		dst, addr := i.next8(), i.next8()
		i.next8()
		i.Registers[dst] = int32(i.heap[i.Registers[addr]])
	case StoreM:
		addr, src := i.next8(), i.next8()
		i.next8()
		i.heap[i.Registers[addr]] = byte(i.Registers[src])
	case Inc:
		r := i.next8()
		i.next8()
		i.next8()
		i.Registers[r]++
	case Dec:
		r := i.next8()
		i.next8()
		i.next8()
		i.Registers[r]--

	case Prts:
		offset := int(i.next16())
		i.next8()
		end := offset
		for end < len(i.roData) && i.roData[end] != 0 {
			end++
		}
		fmt.Fprint(i.stdout, string(i.roData[offset:end]))

	case LoadF64:
		r := i.next8()
		v := i.next16()
		i.FloatRegisters[r] = float64(v)
	case AddF64:
		a, b, d := i.next8(), i.next8(), i.next8()
		i.FloatRegisters[d] = i.FloatRegisters[a] + i.FloatRegisters[b]
	case SubF64:
		a, b, d := i.next8(), i.next8(), i.next8()
		i.FloatRegisters[d] = i.FloatRegisters[a] - i.FloatRegisters[b]
	case MulF64:
		a, b, d := i.next8(), i.next8(), i.next8()
		i.FloatRegisters[d] = i.FloatRegisters[a] * i.FloatRegisters[b]
	case DivF64:
		a, b, d := i.next8(), i.next8(), i.next8()
		i.FloatRegisters[d] = i.FloatRegisters[a] / i.FloatRegisters[b]
	case EqF64:
		a, b := i.next8(), i.next8()
		i.next8()
		i.EqualFlag = math.Abs(i.FloatRegisters[a]-i.FloatRegisters[b]) < floatEpsilon
	case NeqF64:
		a, b := i.next8(), i.next8()
		i.next8()
		i.EqualFlag = math.Abs(i.FloatRegisters[a]-i.FloatRegisters[b]) > floatEpsilon
	case GtF64:
		a, b := i.next8(), i.next8()
		i.next8()
		i.EqualFlag = i.FloatRegisters[a] > i.FloatRegisters[b]
	case GteF64:
		a, b := i.next8(), i.next8()
		i.next8()
		i.EqualFlag = i.FloatRegisters[a] >= i.FloatRegisters[b]
	case LtF64:
		a, b := i.next8(), i.next8()
		i.next8()
		i.EqualFlag = i.FloatRegisters[a] < i.FloatRegisters[b]
	case LteF64:
		a, b := i.next8(), i.next8()
		i.next8()
		i.EqualFlag = i.FloatRegisters[a] <= i.FloatRegisters[b]

	case And:
		a, b, d := i.next8(), i.next8(), i.next8()
		i.Registers[d] = i.Registers[a] & i.Registers[b]
	case Or:
		a, b, d := i.next8(), i.next8(), i.next8()
		i.Registers[d] = i.Registers[a] | i.Registers[b]
	case Xor:
		a, b, d := i.next8(), i.next8(), i.next8()
		i.Registers[d] = i.Registers[a] ^ i.Registers[b]
	case Not:
		a, d := i.next8(), i.next8()
		i.next8()
		i.Registers[d] = ^i.Registers[a]
	case Shl:
		r, n := i.next8(), i.next8()
		i.next8()
		amt := uint(i.Registers[n])
		if amt == 0 {
			amt = 16
		}
		i.Registers[r] = int32(uint32(i.Registers[r]) << (amt % 32))
	case Shr:
		r, n := i.next8(), i.next8()
		i.next8()
		amt := uint(i.Registers[n])
		if amt == 0 {
			amt = 16
		}
		i.Registers[r] = int32(uint32(i.Registers[r]) >> (amt % 32))

	case Push:
		r := i.next8()
		i.next8()
		i.next8()
		v := uint32(i.Registers[r])
		i.heap = append(i.heap, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	case Pop:
		r := i.next8()
		i.next8()
		i.next8()
		n := len(i.heap)
		if n < 4 {
			return true, errors.New("pop from empty stack")
		}
		b := i.heap[n-4:]
		i.Registers[r] = int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
		i.heap = i.heap[:n-4]
	case Call:
		r := i.next8()
		i.next8()
		i.next8()
		ret := uint32(i.PC)
		i.heap = append(i.heap, byte(ret), byte(ret>>8), byte(ret>>16), byte(ret>>24))
		i.PC = int(i.Registers[r])
	case Ret:
		i.next8()
		i.next8()
		i.next8()
		n := len(i.heap)
		if n < 4 {
			return true, errors.New("ret with empty call stack")
		}
		b := i.heap[n-4:]
		i.heap = i.heap[:n-4]
		i.PC = int(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)

	case Nop:
		i.next8()
		i.next8()
		i.next8()

	case Hlt:
		i.next8()
		i.next8()
		i.next8()
		return true, nil

	default:
		return true, errors.Errorf("illegal opcode %d at pc=%d", byte(op), i.PC-1)
	}
	i.insCount++
	return false, nil
}
