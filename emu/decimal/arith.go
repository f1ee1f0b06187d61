/*
 * S370 - Decimal add, subtract, compare, multiply and divide.
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
	"math/big"
)

// Load both operands, second one first.
func loadPair(mem []byte, op1, op2 Operand) (number, number, bool) {
	num2, ok := load(mem, op2.Addr, op2.Len)
	if !ok {
		return number{}, number{}, false
	}
	num1, ok := load(mem, op1.Addr, op1.Len)
	if !ok {
		return number{}, number{}, false
	}
	return num1, num2, true
}

// Store signed result into first operand and compute condition code.
func storeResult(mem []byte, op1 Operand, result *big.Int) Result {
	if Encode(result, mem, op1.Addr, op1.Len) {
		return success(CCOverflow)
	}
	return success(signCC(result.Sign()))
}

// Add handles AP.
func Add(cc uint8, mem []byte, op1, op2 Operand) Result {
	num1, num2, ok := loadPair(mem, op1, op2)
	if !ok {
		return fault(IrcData, cc)
	}
	return storeResult(mem, op1, num1.value.Add(num1.value, num2.value))
}

// Subtract handles SP.
func Subtract(cc uint8, mem []byte, op1, op2 Operand) Result {
	num1, num2, ok := loadPair(mem, op1, op2)
	if !ok {
		return fault(IrcData, cc)
	}
	return storeResult(mem, op1, num1.value.Sub(num1.value, num2.value))
}

// Compare handles CP, storage is not changed.
func Compare(cc uint8, mem []byte, op1, op2 Operand) Result {
	num1, num2, ok := loadPair(mem, op1, op2)
	if !ok {
		return fault(IrcData, cc)
	}
	switch num1.value.Cmp(num2.value) {
	case -1:
		return success(CCLow)
	case 1:
		return success(CCHigh)
	}
	return success(CCZero)
}

// ZeroAdd handles ZAP. Only the second operand is checked, the first
// is overwritten.
func ZeroAdd(cc uint8, mem []byte, op1, op2 Operand) Result {
	num2, ok := load(mem, op2.Addr, op2.Len)
	if !ok {
		return fault(IrcData, cc)
	}
	return storeResult(mem, op1, num2.value)
}

// Check operand lengths for MP and DP.
func mulDivLength(op1, op2 Operand) bool {
	return op2.Len <= maxLen8 && op2.Len < op1.Len
}

// Multiply handles MP. The condition code is not changed.
func Multiply(cc uint8, mem []byte, op1, op2 Operand) Result {
	if !mulDivLength(op1, op2) {
		return fault(IrcSpec, cc)
	}

	// Multiplicand needs l2 zero bytes at its start
	for i := 0; i < op2.Len; i++ {
		if mem[op1.Addr+uint32(i)] != 0 {
			return fault(IrcSpec, cc)
		}
	}

	num1, num2, ok := loadPair(mem, op1, op2)
	if !ok {
		return fault(IrcData, cc)
	}

	product := num1.value.Mul(num1.value, num2.value)
	Encode(product, mem, op1.Addr, op1.Len)
	return success(cc)
}

// Copy of a storage window that can be put back.
type snapshot struct {
	mem  []byte
	addr uint32
	save []byte
}

func takeSnapshot(mem []byte, op Operand) snapshot {
	save := make([]byte, op.Len)
	copy(save, mem[op.Addr:op.Addr+uint32(op.Len)])
	return snapshot{mem: mem, addr: op.Addr, save: save}
}

func (s snapshot) restore() {
	copy(s.mem[s.addr:], s.save)
}

// Divide handles DP. The quotient replaces the leftmost len1-len2 bytes
// of the first operand and the remainder the rightmost len2 bytes. If the
// quotient does not fit the first operand is left as it was.
func Divide(cc uint8, mem []byte, op1, op2 Operand) Result {
	if !mulDivLength(op1, op2) {
		return fault(IrcSpec, cc)
	}
	num1, num2, ok := loadPair(mem, op1, op2)
	if !ok {
		return fault(IrcData, cc)
	}
	if num2.value.Sign() == 0 {
		return fault(IrcDecDiv, cc)
	}

	// Remainder takes the sign of the dividend.
	quot, rem := new(big.Int).QuoRem(num1.value, num2.value, new(big.Int))

	saved := takeSnapshot(mem, op1)
	qLen := op1.Len - op2.Len
	if Encode(quot, mem, op1.Addr, qLen) {
		saved.restore()
		return fault(IrcDecDiv, cc)
	}
	Encode(rem, mem, op1.Addr+uint32(qLen), op2.Len)
	return success(cc)
}
