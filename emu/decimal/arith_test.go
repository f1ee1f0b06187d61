/*
 * S370 - Decimal arithmetic test cases.
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
	"math/rand"
	"testing"
)

var (
	opA3 = Operand{0x100, 3}
	opB2 = Operand{0x200, 2}
)

// Place two operands.
func setupPair(op1 []byte, op2 []byte) []byte {
	mem := setup(0x100, op1...)
	copy(mem[0x200:], op2)
	return mem
}

// Test AP instruction.
func TestCycleAP(t *testing.T) {
	mem := setupPair([]byte{0x00, 0x12, 0x3c}, []byte{0x04, 0x5c})
	r := Add(0, mem, opA3, opB2)
	checkResult(t, "AP", r, 2, IrcNone)
	checkMem(t, "AP", mem, 0x100, 0x00, 0x16, 0x8c)
	checkMem(t, "AP op2", mem, 0x200, 0x04, 0x5c)

	// Mixed signs
	mem = setupPair([]byte{0x00, 0x12, 0x3c}, []byte{0x20, 0x0d})
	r = Add(0, mem, opA3, opB2)
	checkResult(t, "AP mixed", r, 1, IrcNone)
	checkMem(t, "AP mixed", mem, 0x100, 0x00, 0x07, 0x7d)

	// Zero result is plus
	mem = setupPair([]byte{0x00, 0x12, 0x3d}, []byte{0x12, 0x3f})
	r = Add(3, mem, opA3, opB2)
	checkResult(t, "AP zero", r, 0, IrcNone)
	checkMem(t, "AP zero", mem, 0x100, 0x00, 0x00, 0x0c)
}

// Overflow keeps low digits and sign of true result.
func TestCycleAPOverflow(t *testing.T) {
	mem := setupPair([]byte{0x99, 0x9c}, []byte{0x1c})
	r := Add(0, mem, Operand{0x100, 2}, Operand{0x200, 1})
	checkResult(t, "AP overflow", r, 3, IrcNone)
	checkMem(t, "AP overflow", mem, 0x100, 0x00, 0x0c)

	mem = setupPair([]byte{0x99, 0x9d}, []byte{0x1d})
	r = Add(0, mem, Operand{0x100, 2}, Operand{0x200, 1})
	checkResult(t, "AP overflow minus", r, 3, IrcNone)
	checkMem(t, "AP overflow minus", mem, 0x100, 0x00, 0x0d)

	mem = setupPair([]byte{0x99, 0x7c}, []byte{0x00, 0x00, 0x5c})
	r = Add(0, mem, Operand{0x100, 2}, Operand{0x200, 3})
	checkResult(t, "AP overflow long", r, 3, IrcNone)
	checkMem(t, "AP overflow long", mem, 0x100, 0x00, 0x2c)
}

// Invalid data leaves storage and CC alone.
func TestCycleAPData(t *testing.T) {
	mem := setupPair([]byte{0x00, 0x12, 0x3c}, []byte{0x1a, 0x2c})
	r := Add(1, mem, opA3, opB2)
	checkResult(t, "AP data", r, 1, IrcData)
	checkMem(t, "AP data", mem, 0x100, 0x00, 0x12, 0x3c)

	mem = setupPair([]byte{0x00, 0x12, 0x37}, []byte{0x12, 0x3c})
	r = Add(2, mem, opA3, opB2)
	checkResult(t, "AP sign", r, 2, IrcData)
	checkMem(t, "AP sign", mem, 0x100, 0x00, 0x12, 0x37)
}

// Test SP instruction.
func TestCycleSP(t *testing.T) {
	mem := setupPair([]byte{0x00, 0x12, 0x3c}, []byte{0x20, 0x0c})
	r := Subtract(0, mem, opA3, opB2)
	checkResult(t, "SP", r, 1, IrcNone)
	checkMem(t, "SP", mem, 0x100, 0x00, 0x07, 0x7d)

	mem = setupPair([]byte{0x00, 0x12, 0x3c}, []byte{0x12, 0x3f})
	r = Subtract(0, mem, opA3, opB2)
	checkResult(t, "SP zero", r, 0, IrcNone)
	checkMem(t, "SP zero", mem, 0x100, 0x00, 0x00, 0x0c)

	mem = setupPair([]byte{0x00, 0x12, 0x3c}, []byte{0x12, 0x3b})
	r = Subtract(0, mem, opA3, opB2)
	checkResult(t, "SP minus", r, 2, IrcNone)
	checkMem(t, "SP minus", mem, 0x100, 0x00, 0x24, 0x6c)

	// Same field for both operands
	mem = setup(0x100, 0x00, 0x12, 0x3d)
	r = Subtract(2, mem, opA3, opA3)
	checkResult(t, "SP self", r, 0, IrcNone)
	checkMem(t, "SP self", mem, 0x100, 0x00, 0x00, 0x0c)
}

// Test ZAP instruction.
func TestCycleZAP(t *testing.T) {
	// First operand is never checked
	mem := setupPair([]byte{0xff, 0xff, 0xff}, []byte{0x12, 0x3d})
	r := ZeroAdd(0, mem, opA3, opB2)
	checkResult(t, "ZAP", r, 1, IrcNone)
	checkMem(t, "ZAP", mem, 0x100, 0x00, 0x12, 0x3d)

	mem = setupPair([]byte{0x12, 0x34, 0x5c}, []byte{0x00, 0x0d})
	r = ZeroAdd(2, mem, opA3, opB2)
	checkResult(t, "ZAP minus zero", r, 0, IrcNone)
	checkMem(t, "ZAP minus zero", mem, 0x100, 0x00, 0x00, 0x0c)

	mem = setupPair([]byte{0x00, 0x00}, []byte{0x12, 0x34, 0x5f})
	r = ZeroAdd(0, mem, Operand{0x100, 2}, Operand{0x200, 3})
	checkResult(t, "ZAP overflow", r, 3, IrcNone)
	checkMem(t, "ZAP overflow", mem, 0x100, 0x34, 0x5c)

	mem = setupPair([]byte{0x00, 0x00, 0x0c}, []byte{0x12, 0xa4})
	r = ZeroAdd(2, mem, opA3, opB2)
	checkResult(t, "ZAP data", r, 2, IrcData)
	checkMem(t, "ZAP data", mem, 0x100, 0x00, 0x00, 0x0c)
}

// Test CP instruction.
func TestCycleCP(t *testing.T) {
	tests := []struct {
		op1 []byte
		op2 []byte
		cc  uint8
	}{
		{[]byte{0x00, 0x12, 0x3c}, []byte{0x12, 0x3f}, 0},
		{[]byte{0x00, 0x00, 0x0d}, []byte{0x00, 0x0c}, 0},
		{[]byte{0x00, 0x12, 0x3d}, []byte{0x00, 0x1c}, 1},
		{[]byte{0x00, 0x12, 0x3c}, []byte{0x99, 0x9d}, 2},
		{[]byte{0x01, 0x00, 0x0c}, []byte{0x99, 0x9c}, 2},
	}
	for _, test := range tests {
		mem := setupPair(test.op1, test.op2)
		r := Compare(3, mem, opA3, opB2)
		checkResult(t, "CP", r, test.cc, IrcNone)
		checkMem(t, "CP", mem, 0x100, test.op1...)
	}

	mem := setupPair([]byte{0x00, 0x1f, 0x3c}, []byte{0x12, 0x3c})
	r := Compare(3, mem, opA3, opB2)
	checkResult(t, "CP data", r, 3, IrcData)
}

// Random operands checked against big integer results.
func TestCycleRandom(t *testing.T) {
	limit := big.NewInt(100_000)
	for n := 0; n < testCycles; n++ {
		a := new(big.Int).Rand(rand.New(rand.NewSource(rand.Int63())), limit)
		b := new(big.Int).Rand(rand.New(rand.NewSource(rand.Int63())), limit)
		if (rand.Int() & 1) != 0 {
			a.Neg(a)
		}
		if (rand.Int() & 1) != 0 {
			b.Neg(b)
		}
		mem := setup(0)
		Encode(a, mem, 0x100, 3)
		Encode(b, mem, 0x200, 3)

		want := uint8(a.Cmp(b) + 1)
		switch want {
		case 0:
			want = 1
		case 1:
			want = 0
		}
		r := Compare(0, mem, opA3, Operand{0x200, 3})
		checkResult(t, "CP random", r, want, IrcNone)

		sum := new(big.Int).Add(a, b)
		r = Add(0, mem, opA3, Operand{0x200, 3})
		got, err := Decode(mem, 0x100, 3)
		if err != nil {
			t.Fatalf("AP random result invalid: %v", err)
		}
		if sum.CmpAbs(limit) >= 0 {
			if r.CC != 3 {
				t.Errorf("AP random %s+%s CC got: %d wanted: 3", a, b, r.CC)
			}
			low := new(big.Int).Rem(sum, limit)
			if got.Cmp(low) != 0 {
				t.Errorf("AP random %s+%s got: %s wanted: %s", a, b, got, low)
			}
			continue
		}
		if got.Cmp(sum) != 0 {
			t.Errorf("AP random %s+%s got: %s wanted: %s", a, b, got, sum)
		}
		if r.CC != signCC(sum.Sign()) {
			t.Errorf("AP random %s+%s CC got: %d", a, b, r.CC)
		}
	}
}

// Test MP instruction.
func TestCycleMP(t *testing.T) {
	op1 := Operand{0x100, 4}
	mem := setupPair([]byte{0x00, 0x00, 0x12, 0x3c}, []byte{0x04, 0x5d})
	r := Multiply(2, mem, op1, opB2)
	checkResult(t, "MP", r, 2, IrcNone)
	checkMem(t, "MP", mem, 0x100, 0x00, 0x05, 0x53, 0x5d)

	// Zero product is plus
	mem = setupPair([]byte{0x00, 0x00, 0x00, 0x0c}, []byte{0x1d})
	r = Multiply(1, mem, op1, Operand{0x200, 1})
	checkResult(t, "MP zero", r, 1, IrcNone)
	checkMem(t, "MP zero", mem, 0x100, 0x00, 0x00, 0x00, 0x0c)

	mem = setupPair([]byte{0x00, 0x00, 0x00, 0x0d}, []byte{0x1d})
	r = Multiply(1, mem, op1, Operand{0x200, 1})
	checkResult(t, "MP minus zero", r, 1, IrcNone)
	checkMem(t, "MP minus zero", mem, 0x100, 0x00, 0x00, 0x00, 0x0c)

	mem = setupPair([]byte{0x00, 0x00, 0x99, 0x9d}, []byte{0x99, 0x9d})
	r = Multiply(0, mem, op1, opB2)
	checkResult(t, "MP max", r, 0, IrcNone)
	checkMem(t, "MP max", mem, 0x100, 0x09, 0x98, 0x00, 0x1c)
}

// MP operand checks.
func TestCycleMPCheck(t *testing.T) {
	// Second operand as long as first
	mem := setupPair([]byte{0x00, 0x1c}, []byte{0x00, 0x1c})
	r := Multiply(2, mem, Operand{0x100, 2}, opB2)
	checkResult(t, "MP equal", r, 2, IrcSpec)

	// Second operand over 8 bytes
	mem = setup(0x100, 0x00)
	mem[0x20f] = 0x1c
	mem[0x208] = 0x0c
	r = Multiply(2, mem, Operand{0x100, 16}, Operand{0x200, 9})
	checkResult(t, "MP long", r, 2, IrcSpec)

	// Not enough leading zeros
	mem = setupPair([]byte{0x01, 0x00, 0x12, 0x3c}, []byte{0x04, 0x5c})
	r = Multiply(1, mem, Operand{0x100, 4}, opB2)
	checkResult(t, "MP zeros", r, 1, IrcSpec)
	checkMem(t, "MP zeros", mem, 0x100, 0x01, 0x00, 0x12, 0x3c)

	// Leading zero check comes before data check
	mem = setupPair([]byte{0x00, 0x10, 0x1a, 0x3c}, []byte{0x0a, 0x5c})
	r = Multiply(3, mem, Operand{0x100, 4}, opB2)
	checkResult(t, "MP zeros before data", r, 3, IrcSpec)

	mem = setupPair([]byte{0x00, 0x00, 0x12, 0x3c}, []byte{0x0a, 0x5c})
	r = Multiply(1, mem, Operand{0x100, 4}, opB2)
	checkResult(t, "MP data", r, 1, IrcData)
}

// Test DP instruction.
func TestCycleDP(t *testing.T) {
	op1 := Operand{0x100, 6}
	mem := setupPair([]byte{0x00, 0x00, 0x12, 0x34, 0x56, 0x7c}, []byte{0x01, 0x2c})
	r := Divide(3, mem, op1, opB2)
	checkResult(t, "DP", r, 3, IrcNone)
	checkMem(t, "DP", mem, 0x100, 0x01, 0x02, 0x88, 0x0c, 0x00, 0x7c)

	mem = setupPair([]byte{0x00, 0x00, 0x12, 0x34, 0x56, 0x7d}, []byte{0x01, 0x2c})
	r = Divide(0, mem, op1, opB2)
	checkResult(t, "DP minus", r, 0, IrcNone)
	checkMem(t, "DP minus", mem, 0x100, 0x01, 0x02, 0x88, 0x0d, 0x00, 0x7d)

	mem = setupPair([]byte{0x00, 0x00, 0x12, 0x34, 0x56, 0x7c}, []byte{0x01, 0x2d})
	r = Divide(0, mem, op1, opB2)
	checkResult(t, "DP minus divisor", r, 0, IrcNone)
	checkMem(t, "DP minus divisor", mem, 0x100, 0x01, 0x02, 0x88, 0x0d, 0x00, 0x7c)

	// Zero quotient is plus, remainder keeps dividend sign
	mem = setupPair([]byte{0x00, 0x00, 0x5d}, []byte{0x01, 0x2c})
	r = Divide(0, mem, opA3, opB2)
	checkResult(t, "DP zero quotient", r, 0, IrcNone)
	checkMem(t, "DP zero quotient", mem, 0x100, 0x0c, 0x00, 0x5d)

	// Zero remainder is plus
	mem = setupPair([]byte{0x00, 0x02, 0x4d}, []byte{0x01, 0x2c})
	r = Divide(0, mem, opA3, opB2)
	checkResult(t, "DP zero remainder", r, 0, IrcNone)
	checkMem(t, "DP zero remainder", mem, 0x100, 0x2d, 0x00, 0x0c)
}

// DP exceptions.
func TestCycleDPCheck(t *testing.T) {
	// Divide by zero
	mem := setupPair([]byte{0x00, 0x00, 0x12, 0x34, 0x56, 0x7c}, []byte{0x00, 0x0c})
	r := Divide(2, mem, Operand{0x100, 6}, opB2)
	checkResult(t, "DP zero", r, 2, IrcDecDiv)
	checkMem(t, "DP zero", mem, 0x100, 0x00, 0x00, 0x12, 0x34, 0x56, 0x7c)

	// Quotient too large, storage restored
	mem = setupPair([]byte{0x00, 0x12, 0x34, 0x56, 0x7d}, []byte{0x01, 0x2c})
	r = Divide(1, mem, Operand{0x100, 5}, opB2)
	checkResult(t, "DP overflow", r, 1, IrcDecDiv)
	checkMem(t, "DP overflow", mem, 0x100, 0x00, 0x12, 0x34, 0x56, 0x7d)

	// Length checked before data
	mem = setupPair([]byte{0xff, 0xff}, []byte{0x01, 0x2c})
	r = Divide(0, mem, Operand{0x100, 2}, opB2)
	checkResult(t, "DP length", r, 0, IrcSpec)
	checkMem(t, "DP length", mem, 0x100, 0xff, 0xff)

	mem = setupPair([]byte{0x00, 0x00, 0x12, 0x34, 0x56, 0x7c}, []byte{0x01, 0x2a, 0xff})
	r = Divide(0, mem, Operand{0x100, 6}, Operand{0x200, 3})
	checkResult(t, "DP data", r, 0, IrcData)
	checkMem(t, "DP data", mem, 0x100, 0x00, 0x00, 0x12, 0x34, 0x56, 0x7c)
}
