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

// Package vm implements the Iridium virtual machine.
//
// An image is a byte slice laid out as a 64-byte header, a read-only
// data section, then a code section of 4-byte big-endian
// instructions. LoadImage/SaveImage move images to and from disk;
// New builds an *Instance over an in-memory image; Run executes it to
// completion.
//
// The VM is single-threaded and synchronous: Run never blocks or
// spawns goroutines, and an *Instance carries no shared mutable
// state. It is safe to construct an *Instance on one goroutine and
// hand it to another before calling Run, but not to call Run
// concurrently with any other method.
//
// Opcode semantics and the image format are part of this package's
// compatibility surface: changing either invalidates existing images.
package vm
