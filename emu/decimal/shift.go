/*
 * S370 - Shift and round decimal.
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

// ShiftAmount returns the signed shift count held in the low six bits of
// the second operand address of SRP. Negative values shift right.
func ShiftAmount(addr uint32) int {
	shift := int(addr & 0x3f)
	if (shift & 0x20) != 0 {
		shift -= 0x40
	}
	return shift
}

// Spread digits of a packed field, most significant first.
func spreadDigits(mem []byte, addr uint32, length int, digits []uint8) {
	j := 0
	for i := 0; i < length; i++ {
		digitPair := mem[addr+uint32(i)]
		digits[j] = digitPair >> 4
		j++
		if j < len(digits) {
			digits[j] = digitPair & 0xf
			j++
		}
	}
}

// Pack digits back into field, sign goes in last nibble.
func gatherDigits(mem []byte, addr uint32, length int, digits []uint8, sign uint8) {
	j := 0
	for i := 0; i < length; i++ {
		high := digits[j]
		j++
		low := sign
		if j < len(digits) {
			low = digits[j]
			j++
		}
		mem[addr+uint32(i)] = (high << 4) | low
	}
}

// ShiftRound handles SRP. shift is positive for a left shift. On a right
// shift round is added to the leftmost digit shifted out. Digits lost on
// a left shift give condition code 3, the shifted result is still stored.
func ShiftRound(cc uint8, mem []byte, op Operand, shift int, round uint8) Result {
	if !IsValid(mem, op.Addr, op.Len) || round > 0x9 {
		return fault(IrcData, cc)
	}

	addr, length := clip(op.Addr, op.Len)
	last := addr + uint32(length) - 1
	minus := minusSign(mem[last] & 0xf)

	var digits [2 * maxPacked]uint8
	var result [2 * maxPacked]uint8
	n := 2*length - 1
	spreadDigits(mem, addr, length, digits[:n])

	lead := 0
	for lead < n && digits[lead] == 0 {
		lead++
	}

	// Zero is always plus zero
	if lead == n {
		mem[last] = (mem[last] & 0xf0) | signPlus
		return success(CCZero)
	}

	if shift == 0 {
		mem[last] = (mem[last] & 0xf0) | preferredSign(minus)
		if minus {
			return success(CCLow)
		}
		return success(CCHigh)
	}

	overflow := false
	if shift > 0 { // Shift to left
		// Check if we would move out of any non-zero digits
		if shift > lead {
			overflow = true
		}
		for i := shift; i < n; i++ {
			result[i-shift] = digits[i]
		}
	} else { // Shift to right
		count := -shift
		if count <= n-lead {
			keep := n - count
			copy(result[count:n], digits[:keep])
			carry := digits[keep]+round > 0x9
			for i := n - 1; carry && i >= 0; i-- {
				result[i]++
				if result[i] > 0x9 {
					result[i] = 0
				} else {
					carry = false
				}
			}
		}
	}

	zero := true
	for _, digit := range result[:n] {
		if digit != 0 {
			zero = false
			break
		}
	}

	sign := preferredSign(minus)
	if zero && !overflow {
		sign = signPlus
	}
	gatherDigits(mem, addr, length, result[:n], sign)

	switch {
	case overflow:
		return success(CCOverflow)
	case zero:
		return success(CCZero)
	case minus:
		return success(CCLow)
	}
	return success(CCHigh)
}
