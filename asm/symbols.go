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

// SymbolKind tags what a Symbol names. Label is the only kind
// currently produced by the assembler.
type SymbolKind int

const (
	SymbolLabel SymbolKind = iota
)

// Symbol is a named offset within an emitted image. Offset is unset
// (ValueOf reports ok=false) until the assembler's first pass assigns
// it.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	offset    uint32
	hasOffset bool
}

// SymbolTable maps names to Symbols, rejecting duplicate insertion.
type SymbolTable struct {
	byName map[string]*Symbol
}

// NewSymbolTable returns an empty SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]*Symbol)}
}

// Add inserts a new Label symbol under name. ok is false if name is
// already present — the caller should treat this as
// SymbolAlreadyDeclared.
func (t *SymbolTable) Add(name string) (ok bool) {
	if _, exists := t.byName[name]; exists {
		return false
	}
	t.byName[name] = &Symbol{Name: name, Kind: SymbolLabel}
	return true
}

// Contains reports whether name is already in the table.
func (t *SymbolTable) Contains(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// ValueOf returns name's offset, if one has been set.
func (t *SymbolTable) ValueOf(name string) (offset uint32, ok bool) {
	s, exists := t.byName[name]
	if !exists || !s.hasOffset {
		return 0, false
	}
	return s.offset, true
}

// SetOffset sets name's offset. ok is false if name is not in the
// table.
func (t *SymbolTable) SetOffset(name string, offset uint32) (ok bool) {
	s, exists := t.byName[name]
	if !exists {
		return false
	}
	s.offset = offset
	s.hasOffset = true
	return true
}
