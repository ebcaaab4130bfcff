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
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"iridium/vm"
)

// lexer splits one line of assembly source into Tokens. It knows
// nothing about grammar or section state — that's the parser's job.
type lexer struct {
	line string
	pos  int
}

func newLexer(line string) *lexer {
	return &lexer{line: line}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.line) && (l.line[l.pos] == ' ' || l.line[l.pos] == '\t') {
		l.pos++
	}
}

func (l *lexer) eof() bool {
	l.skipSpace()
	return l.pos >= len(l.line)
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanWord consumes a maximal run of alphanumeric runes starting at pos.
func (l *lexer) scanWord() string {
	start := l.pos
	for l.pos < len(l.line) && isAlnum(rune(l.line[l.pos])) {
		l.pos++
	}
	return l.line[start:l.pos]
}

func (l *lexer) scanDigits() string {
	start := l.pos
	for l.pos < len(l.line) && l.line[l.pos] >= '0' && l.line[l.pos] <= '9' {
		l.pos++
	}
	return l.line[start:l.pos]
}

// next lexes and returns the next token on the line, or ok=false at
// end of line. err is non-nil on a malformed register/integer/string
// literal.
func (l *lexer) next() (tok Token, ok bool, err error) {
	l.skipSpace()
	if l.pos >= len(l.line) {
		return Token{}, false, nil
	}

	switch c := l.line[l.pos]; {
	case c == '$':
		l.pos++
		digits := l.scanDigits()
		if digits == "" {
			return Token{}, false, errors.Errorf("register: expected digits after '$' at %q", l.line[l.pos:])
		}
		n, err := strconv.ParseUint(digits, 10, 8)
		if err != nil {
			return Token{}, false, errors.Wrapf(err, "register number out of range: %q", digits)
		}
		return Token{Kind: TokRegister, Reg: uint8(n)}, true, nil

	case c == '#':
		l.pos++
		neg := false
		if l.pos < len(l.line) && l.line[l.pos] == '-' {
			neg = true
			l.pos++
		}
		digits := l.scanDigits()
		if digits == "" {
			return Token{}, false, errors.Errorf("integer literal: expected digits after '#'")
		}
		n, err := strconv.ParseInt(digits, 10, 32)
		if err != nil {
			return Token{}, false, errors.Wrapf(err, "integer literal out of range: %q", digits)
		}
		if neg {
			n = -n
		}
		return Token{Kind: TokInteger, Int: int32(n)}, true, nil

	case c == '@':
		l.pos++
		name := l.scanWord()
		if name == "" {
			return Token{}, false, errors.Errorf("label use: expected a name after '@'")
		}
		return Token{Kind: TokLabelUse, Name: name}, true, nil

	case c == '.':
		l.pos++
		start := l.pos
		for l.pos < len(l.line) && unicode.IsLetter(rune(l.line[l.pos])) {
			l.pos++
		}
		name := l.line[start:l.pos]
		if name == "" {
			return Token{}, false, errors.Errorf("directive: expected letters after '.'")
		}
		return Token{Kind: TokDirective, Name: strings.ToLower(name)}, true, nil

	case c == '\'':
		l.pos++
		start := l.pos
		for l.pos < len(l.line) && l.line[l.pos] != '\'' {
			l.pos++
		}
		if l.pos >= len(l.line) {
			return Token{}, false, errors.Errorf("string literal: missing closing quote")
		}
		s := l.line[start:l.pos]
		l.pos++ // consume closing quote
		return Token{Kind: TokString, Str: s}, true, nil

	case c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return l.scanNumberOrFloat()

	case unicode.IsLetter(rune(c)):
		return l.scanIdentLike()

	default:
		return Token{}, false, errors.Errorf("unexpected character %q", string(c))
	}
}

// scanNumberOrFloat handles a leading '-' or digit that is not a
// register/integer-literal (those require $/# prefixes): the only
// bare numeric form in the grammar is a float literal.
func (l *lexer) scanNumberOrFloat() (Token, bool, error) {
	start := l.pos
	if l.line[l.pos] == '-' {
		l.pos++
	}
	intPart := l.scanDigits()
	if intPart == "" || l.pos >= len(l.line) || l.line[l.pos] != '.' {
		l.pos = start
		return Token{}, false, errors.Errorf("unexpected numeric token at %q", l.line[start:])
	}
	l.pos++ // consume '.'
	fracPart := l.scanDigits()
	if fracPart == "" {
		l.pos = start
		return Token{}, false, errors.Errorf("malformed float literal at %q", l.line[start:])
	}
	f, err := strconv.ParseFloat(l.line[start:l.pos], 64)
	if err != nil {
		return Token{}, false, errors.Wrapf(err, "malformed float literal %q", l.line[start:l.pos])
	}
	return Token{Kind: TokFloat, Float: f}, true, nil
}

// scanIdentLike scans an alphanumeric word and decides, by trailing
// punctuation, whether it is a label declaration ("name:") or an
// opcode mnemonic.
func (l *lexer) scanIdentLike() (Token, bool, error) {
	word := l.scanWord()
	if l.pos < len(l.line) && l.line[l.pos] == ':' {
		l.pos++
		return Token{Kind: TokLabelDecl, Name: word}, true, nil
	}
	op := vm.OpcodeFromMnemonic(word)
	return Token{Kind: TokOpcode, Op: op, Name: strings.ToLower(word)}, true, nil
}
