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
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// MagicPrefix is the 4-byte signature every image begins with.
var MagicPrefix = [4]byte{0x2D, 0x32, 0x31, 0x2D}

// HeaderLength is the fixed size, in bytes, of an image's header.
const HeaderLength = 64

// BuildHeader returns a fresh 64-byte header: magic prefix, the
// read-only section length as a little-endian uint32, then zero
// padding out to HeaderLength.
func BuildHeader(roLen uint32) []byte {
	h := make([]byte, HeaderLength)
	copy(h[0:4], MagicPrefix[:])
	binary.LittleEndian.PutUint32(h[4:8], roLen)
	return h
}

// VerifyHeader checks that program begins with the magic prefix and is
// at least long enough to contain a full header.
func VerifyHeader(program []byte) error {
	if len(program) < HeaderLength {
		return errors.Errorf("image too short: %d bytes, need at least %d", len(program), HeaderLength)
	}
	var prefix [4]byte
	copy(prefix[:], program[0:4])
	if prefix != MagicPrefix {
		return errors.Errorf("bad magic prefix: got %v, want %v", prefix, MagicPrefix)
	}
	return nil
}

// ReadOnlyLength decodes the read-only section length from a verified
// header (bytes 4..8, little-endian).
func ReadOnlyLength(program []byte) uint32 {
	return binary.LittleEndian.Uint32(program[4:8])
}

// LoadImage reads a whole image file into memory.
func LoadImage(fileName string) ([]byte, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "fstat failed")
	}
	buf := make([]byte, st.Size())
	if st.Size() > 0 {
		if _, err := io.ReadFull(bufio.NewReader(f), buf); err != nil {
			return nil, errors.Wrap(err, "read failed")
		}
	}
	return buf, nil
}

// SaveImage writes an assembled image to fileName.
func SaveImage(fileName string, image []byte) (err error) {
	f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if ferr := w.Flush(); ferr != nil && err == nil {
			err = errors.Wrap(ferr, "flush failed")
		}
		f.Close()
		if err != nil {
			os.Remove(fileName)
		}
	}()
	_, err = w.Write(image)
	if err != nil {
		err = errors.Wrap(err, "write failed")
	}
	return err
}
