/*
 * S370 - Hex formatting and parsing of storage.
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

package hex

import (
	"strings"
	"unicode"

	"github.com/zeebo/errs"
)

var hexMap = "0123456789ABCDEF"

// Error is the class of hex parsing errors.
var Error = errs.Class("hex")

func FormatWord(str *strings.Builder, word []uint32) {
	for _, full := range word {
		shift := 28
		for j := 0; j < 8; j++ {
			str.WriteByte(hexMap[(full>>shift)&0xf])
			shift -= 4
		}
		str.WriteByte(' ')
	}
}

func FormatBytes(str *strings.Builder, space bool, data []uint8) {
	for i, by := range data {
		if space && i != 0 {
			str.WriteByte(' ')
		}
		FormatByte(str, by)
	}
}

func FormatByte(str *strings.Builder, data byte) {
	str.WriteByte(hexMap[(data>>4)&0xf])
	str.WriteByte(hexMap[data&0xf])
}

// Return bytes as a hex string, bytes separated by space.
func Bytes(data []byte) string {
	var str strings.Builder
	FormatBytes(&str, true, data)
	return str.String()
}

// Value of a hex digit, or -1.
func digit(by byte) int {
	switch {
	case by >= '0' && by <= '9':
		return int(by - '0')
	case by >= 'a' && by <= 'f':
		return int(by-'a') + 10
	case by >= 'A' && by <= 'F':
		return int(by-'A') + 10
	}
	return -1
}

// ParseBytes converts a string of hex digits to bytes. White space may
// separate bytes, a group with an odd number of digits is an error.
func ParseBytes(text string) ([]byte, error) {
	data := []byte{}
	for _, group := range strings.FieldsFunc(text, unicode.IsSpace) {
		if (len(group) & 1) != 0 {
			return nil, Error.New("odd number of digits: %s", group)
		}
		for i := 0; i < len(group); i += 2 {
			hi := digit(group[i])
			lo := digit(group[i+1])
			if hi < 0 || lo < 0 {
				return nil, Error.New("invalid hex digit: %s", group)
			}
			data = append(data, byte(hi<<4|lo))
		}
	}
	if len(data) == 0 {
		return nil, Error.New("no data")
	}
	return data, nil
}

// ParseWord converts up to eight hex digits.
func ParseWord(text string) (uint32, error) {
	if text == "" || len(text) > 8 {
		return 0, Error.New("invalid word: %q", text)
	}
	value := uint32(0)
	for i := 0; i < len(text); i++ {
		d := digit(text[i])
		if d < 0 {
			return 0, Error.New("invalid hex digit: %s", text)
		}
		value = (value << 4) | uint32(d)
	}
	return value, nil
}
