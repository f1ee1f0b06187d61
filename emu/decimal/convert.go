/*
 * S370 - Decimal conversion and move instructions.
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
	"math"
	"math/big"
)

// Length of CVB and CVD operand.
const doubleWord = 8

// ConvertToBinary handles CVB. The binary value is returned, if it does
// not fit in 32 bits a fixed point divide is reported together with the
// low order 32 bits.
func ConvertToBinary(cc uint8, mem []byte, addr uint32) (Result, uint32) {
	num, ok := load(mem, addr, doubleWord)
	if !ok {
		return fault(IrcData, cc), 0
	}

	// Fifteen digits always fit in 64 bits
	v := num.value.Int64()
	if v > math.MaxInt32 || v < math.MinInt32 {
		return fault(IrcFixDiv, cc), uint32(v)
	}
	return success(cc), uint32(v)
}

// ConvertToDecimal handles CVD.
func ConvertToDecimal(cc uint8, mem []byte, addr uint32, value int32) Result {
	Encode(big.NewInt(int64(value)), mem, addr, doubleWord)
	return success(cc)
}

// MoveOffset handles MVO. The second operand is placed one digit to the
// left of the rightmost digit of the first operand. Digits are not checked.
func MoveOffset(cc uint8, mem []byte, op1, op2 Operand) Result {
	dst := op1.End()
	src := op2.End()
	dstLeft := op1.Len - 1
	srcLeft := op2.Len - 1

	t2 := mem[src]
	src--
	mem[dst] = (mem[dst] & 0xf) | (t2 << 4)
	dst--

	for dstLeft != 0 {
		t1 := t2 >> 4
		if srcLeft != 0 {
			t2 = mem[src]
			src--
			srcLeft--
		} else {
			t2 = 0
		}
		mem[dst] = t1 | (t2 << 4)
		dst--
		dstLeft--
	}
	return success(cc)
}

// Pack handles PACK. Zones are dropped except for the rightmost byte
// whose halves are swapped to give the sign.
func Pack(cc uint8, mem []byte, op1, op2 Operand) Result {
	dst := op1.End()
	src := op2.End()
	dstLeft := op1.Len - 1
	srcLeft := op2.Len - 1

	// Flip first location
	t := mem[src]
	mem[dst] = (t >> 4) | (t << 4)
	src--
	dst--

	for dstLeft != 0 && srcLeft != 0 {
		t = mem[src] & 0xf
		src--
		srcLeft--
		if srcLeft != 0 {
			t |= mem[src] << 4
			src--
			srcLeft--
		}
		mem[dst] = t
		dst--
		dstLeft--
	}
	for dstLeft != 0 {
		mem[dst] = 0
		dst--
		dstLeft--
	}
	return success(cc)
}

// UnpackZoned handles UNPK, the sign ends up in the zone of the rightmost
// byte.
func UnpackZoned(cc uint8, mem []byte, op1, op2 Operand) Result {
	Unpack(mem, op2, op1, zoneBits, true)
	return success(cc)
}
