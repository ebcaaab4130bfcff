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

// Package vm implements the Iridium virtual machine: a fixed-width
// register interpreter that loads a header-prefixed bytecode image
// and executes it.
//
// The machine is single-threaded and synchronous: Run never blocks,
// suspends or spawns goroutines, and an *Instance has no shared
// mutable state. It is safe to hand an *Instance to another goroutine
// before Run is called, but not while it is running.
package vm

import (
	"io"
	"os"

	"github.com/google/uuid"
)

const numRegisters = 32

// Option configures an Instance at construction time.
type Option func(*Instance) error

// WithID overrides the instance's randomly generated unique identifier.
func WithID(id uuid.UUID) Option {
	return func(i *Instance) error { i.id = id; return nil }
}

// WithStdout sets the writer PRTS writes decoded strings to. Defaults
// to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(i *Instance) error { i.stdout = w; return nil }
}

// WithHeapCapacity preallocates the heap's backing array to n bytes
// (length stays 0; ALOC still grows it). Purely a performance hint.
func WithHeapCapacity(n int) Option {
	return func(i *Instance) error { i.heap = make([]byte, 0, n); return nil }
}

// Instance is one Iridium VM instance: registers, heap, flags and the
// loaded image.
type Instance struct {
	Registers      [numRegisters]int32
	FloatRegisters [numRegisters]float64

	PC int // byte index into Program

	Program []byte // full image: header + read-only + code
	roData  []byte // mirror of the image's read-only section

	heap []byte

	EqualFlag bool
	Remainder uint32

	id     uuid.UUID
	events []Event

	stdout io.Writer

	insCount int64
}

// New constructs an Instance over an already-assembled image. The
// image's header is not verified here: verification happens as part
// of Run, which records a Crash event and returns an error if it
// fails. The program counter starts at 64+ro_len, immediately after
// the header and read-only section, per the image layout.
func New(program []byte, opts ...Option) (*Instance, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	i := &Instance{
		Program: program,
		id:      id,
		stdout:  os.Stdout,
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	if len(program) >= HeaderLength {
		roLen := int(ReadOnlyLength(program))
		end := HeaderLength + roLen
		if end <= len(program) {
			i.roData = program[HeaderLength:end]
		}
		i.PC = end
	}
	return i, nil
}

// Heap returns the VM's heap byte vector. Mutating the returned slice
// mutates the VM's heap.
func (i *Instance) Heap() []byte { return i.heap }

// ID returns the instance's unique identifier.
func (i *Instance) ID() uuid.UUID { return i.id }

// InstructionCount returns the number of instructions executed so far,
// not counting an instruction that ended the run (HLT or an error).
func (i *Instance) InstructionCount() int64 { return i.insCount }

// ReadOnlyData returns the VM's read-only data buffer (the image's
// read-only section, as loaded).
func (i *Instance) ReadOnlyData() []byte { return i.roData }

