/*
 * S370 - Packed decimal load, store and validation.
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

package decimal

import (
	"errors"
	"math/big"
)

// ErrData is returned by Decode for an invalid digit or sign.
var ErrData = errors.New("decimal: invalid digit or sign code")

var bigTen = big.NewInt(10)

// Loaded packed number.
type number struct {
	value *big.Int // Signed value
}

// Only the rightmost 16 bytes of a longer field take part in a conversion.
func clip(addr uint32, length int) (uint32, int) {
	if length > maxPacked {
		addr += uint32(length - maxPacked)
		length = maxPacked
	}
	return addr, length
}

// Load a packed decimal number, false if any digit or the sign is invalid.
func load(mem []byte, addr uint32, length int) (number, bool) {
	addr, length = clip(addr, length)
	value := new(big.Int)
	digit := new(big.Int)
	last := addr + uint32(length) - 1

	for a := addr; a <= last; a++ {
		digitPair := mem[a]
		high := digitPair >> 4
		if high > 0x9 {
			return number{}, false
		}
		value.Mul(value, bigTen)
		value.Add(value, digit.SetUint64(uint64(high)))
		if a == last {
			break
		}
		low := digitPair & 0xf
		if low > 0x9 {
			return number{}, false
		}
		value.Mul(value, bigTen)
		value.Add(value, digit.SetUint64(uint64(low)))
	}

	sign := mem[last] & 0xf
	if sign < 0xa {
		return number{}, false
	}
	if minusSign(sign) {
		value.Neg(value)
	}
	return number{value: value}, true
}

// Store magnitude with preferred sign, digits that don't fit are
// dropped from the left. Returns true if any significant digit was lost.
func store(mem []byte, addr uint32, length int, mag *big.Int, minus bool) bool {
	addr, length = clip(addr, length)
	digits := mag.Text(10)
	room := 2*length - 1
	overflow := false
	if len(digits) > room {
		overflow = true
		digits = digits[len(digits)-room:]
	}

	for i := 0; i < length; i++ {
		mem[addr+uint32(i)] = 0
	}

	// Sign is the last nibble, digits fill leftwards from there.
	nibble := 2*length - 1
	putNibble(mem, addr, nibble, preferredSign(minus))
	for i := len(digits) - 1; i >= 0; i-- {
		nibble--
		putNibble(mem, addr, nibble, digits[i]-'0')
	}
	return overflow
}

// Place a nibble counting from the high half of the byte at addr.
func putNibble(mem []byte, addr uint32, nibble int, value uint8) {
	a := addr + uint32(nibble/2)
	if (nibble & 1) == 0 {
		mem[a] = (mem[a] & 0x0f) | (value << 4)
	} else {
		mem[a] = (mem[a] & 0xf0) | (value & 0xf)
	}
}

// Decode converts the packed field at addr into a signed integer.
// Fields longer than 16 bytes are limited to their rightmost 16 bytes.
func Decode(mem []byte, addr uint32, length int) (*big.Int, error) {
	num, ok := load(mem, addr, length)
	if !ok {
		return nil, ErrData
	}
	return num.value, nil
}

// Encode stores value into the packed field at addr with the preferred
// sign. If value has more digits than the field holds the low order
// digits are stored and true is returned.
func Encode(value *big.Int, mem []byte, addr uint32, length int) bool {
	mag := new(big.Int).Abs(value)
	return store(mem, addr, length, mag, value.Sign() < 0)
}

// IsValid checks digits and sign of a packed field without converting it.
func IsValid(mem []byte, addr uint32, length int) bool {
	addr, length = clip(addr, length)
	last := addr + uint32(length) - 1
	for a := addr; a < last; a++ {
		if mem[a] >= 0xa0 || (mem[a]&0xf) > 0x9 {
			return false
		}
	}
	return mem[last] < 0xa0 && (mem[last]&0xf) >= 0xa
}

// Unpack spreads the packed field into zoned format, one digit a byte,
// working right to left. fill supplies the zone of every byte; if keepSign
// is set the rightmost byte gets the packed sign as its zone instead.
// Extra zoned bytes get zero digits, extra packed digits are dropped.
// The sign nibble is returned.
func Unpack(mem []byte, packed, zoned Operand, fill uint8, keepSign bool) uint8 {
	src := packed.End()
	dst := zoned.End()
	srcLeft := packed.Len - 1
	dstLeft := zoned.Len - 1
	zone := (fill & 0xf) << 4

	// Flip first location
	t := mem[src]
	sign := t & 0xf
	first := zone
	if keepSign {
		first = sign << 4
	}
	mem[dst] = first | (t >> 4)
	src--
	dst--

	for dstLeft != 0 && srcLeft != 0 {
		t = mem[src]
		src--
		srcLeft--
		mem[dst] = zone | (t & 0xf)
		dst--
		dstLeft--
		if dstLeft != 0 {
			mem[dst] = zone | (t >> 4)
			dst--
			dstLeft--
		}
	}
	for dstLeft != 0 {
		mem[dst] = zone
		dst--
		dstLeft--
	}
	return sign
}
