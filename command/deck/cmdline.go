/*
 * S370 - Deck line scanner.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package deck

import (
	"strconv"
	"strings"
	"unicode"

	D "github.com/rcornwell/S370dec/emu/decimal"
	"github.com/rcornwell/S370dec/util/hex"
)

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Collect characters while match is true.
func (line *cmdLine) collect(match func(byte) bool) string {
	start := line.pos
	for !line.isEOL() && match(line.line[line.pos]) {
		line.pos++
	}
	return line.line[start:line.pos]
}

func isAlnum(by byte) bool {
	return unicode.IsLetter(rune(by)) || unicode.IsDigit(rune(by))
}

func isHex(by byte) bool {
	return (by >= '0' && by <= '9') || (by >= 'a' && by <= 'f') || (by >= 'A' && by <= 'F')
}

func isDigit(by byte) bool {
	return by >= '0' && by <= '9'
}

// Return next word in upper case, empty at end of line.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	return strings.ToUpper(line.collect(isAlnum))
}

// Check next character is by and skip over it.
func (line *cmdLine) expect(by byte) error {
	line.skipSpace()
	if line.isEOL() || line.line[line.pos] != by {
		return errOperand("expected '%c'", by)
	}
	line.pos++
	return nil
}

// Parse a hex address, limited to 24 bits.
func (line *cmdLine) getAddress() (uint32, error) {
	line.skipSpace()
	text := line.collect(isHex)
	if text == "" || len(text) > 6 {
		return 0, errOperand("invalid address %q", text)
	}
	addr, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return 0, errOperand("invalid address %q", text)
	}
	return uint32(addr), nil
}

// Parse a signed decimal number between low and high.
func (line *cmdLine) getNumber(low, high int) (int, error) {
	line.skipSpace()
	start := line.pos
	if !line.isEOL() && (line.line[line.pos] == '-' || line.line[line.pos] == '+') {
		line.pos++
	}
	line.collect(isDigit)
	text := line.line[start:line.pos]
	value, err := strconv.Atoi(text)
	if err != nil || value < low || value > high {
		return 0, errOperand("invalid number %q", text)
	}
	return value, nil
}

// Parse a general register number.
func (line *cmdLine) getRegister() (int, error) {
	return line.getNumber(0, 15)
}

// Parse a hex word.
func (line *cmdLine) getWord32() (uint32, error) {
	line.skipSpace()
	text := line.collect(isHex)
	value, err := hex.ParseWord(text)
	if err != nil {
		return 0, errOperand("%v", err)
	}
	return value, nil
}

// Parse remaining hex bytes on the line.
func (line *cmdLine) getBytes() ([]byte, error) {
	line.skipSpace()
	text := line.collect(func(by byte) bool { return isHex(by) || by == ' ' || by == '\t' })
	data, err := hex.ParseBytes(text)
	if err != nil {
		return nil, errOperand("%v", err)
	}
	return data, nil
}

// Parse <addr>(<len>) with length between 1 and limit.
func (line *cmdLine) getStorage(limit int) (D.Operand, error) {
	addr, err := line.getAddress()
	if err != nil {
		return D.Operand{}, err
	}
	if err := line.expect('('); err != nil {
		return D.Operand{}, err
	}
	length, err := line.getNumber(1, limit)
	if err != nil {
		return D.Operand{}, err
	}
	if err := line.expect(')'); err != nil {
		return D.Operand{}, err
	}
	return D.Operand{Addr: addr, Len: length}, nil
}

// Check nothing but a comment remains.
func (line *cmdLine) checkEOL() error {
	line.skipSpace()
	if !line.isEOL() {
		return errOperand("unexpected text %q", line.line[line.pos:])
	}
	return nil
}
