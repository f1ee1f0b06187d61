/*
 * S370 - Packed decimal unit, common definitions.
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

// Package decimal implements the IBM 370 packed decimal instructions.
//
// Every instruction works on a caller supplied storage slice. Operands are
// given as address and byte length pairs and are assumed to lie inside the
// slice. Nothing is retained between calls, so separate CPUs may call in
// concurrently as long as they do not share operand windows.
//
// Instructions return a Result. When Irc is not IrcNone the CC field holds
// the condition code passed in, unchanged. Decimal overflow is only reported
// as condition code 3; raising the overflow interruption is up to the caller
// and its program mask.
package decimal

// Interruption code.
type Irc uint16

const (
	IrcNone    Irc = 0x0000 // No interruption
	IrcSpec    Irc = 0x0006 // Specification error
	IrcData    Irc = 0x0007 // Data exception
	IrcFixDiv  Irc = 0x0009 // Fixed point divide
	IrcDecOver Irc = 0x000a // Decimal overflow, for callers only
	IrcDecDiv  Irc = 0x000b // Decimal divide
)

func (irc Irc) String() string {
	switch irc {
	case IrcNone:
		return "none"
	case IrcSpec:
		return "specification"
	case IrcData:
		return "data"
	case IrcFixDiv:
		return "fixed point divide"
	case IrcDecOver:
		return "decimal overflow"
	case IrcDecDiv:
		return "decimal divide"
	}
	return "unknown"
}

// Condition codes.
const (
	CCZero     uint8 = 0
	CCLow      uint8 = 1 // Negative, or first operand low
	CCHigh     uint8 = 2 // Positive, or first operand high
	CCOverflow uint8 = 3
)

// Outcome of one instruction.
type Result struct {
	CC  uint8 // New condition code, or the old one on an interruption
	Irc Irc   // Interruption code
}

// Ok reports that no interruption was recognized.
func (r Result) Ok() bool {
	return r.Irc == IrcNone
}

func success(cc uint8) Result {
	return Result{CC: cc}
}

func fault(irc Irc, oldCC uint8) Result {
	return Result{CC: oldCC, Irc: irc}
}

// Storage operand.
type Operand struct {
	Addr uint32 // Address of leftmost byte
	Len  int    // Length in bytes
}

// End returns the address of the rightmost byte.
func (op Operand) End() uint32 {
	return op.Addr + uint32(op.Len) - 1
}

const (
	maxPacked = 16 // Largest packed operand in bytes
	maxLen8   = 8  // Largest multiplier or divisor in bytes

	signPlus  uint8 = 0xc // Preferred plus sign
	signMinus uint8 = 0xd // Preferred minus sign
	zoneBits  uint8 = 0xf // Zone used for unpacked digits
)

// Check if sign code is minus.
func minusSign(sign uint8) bool {
	return sign == 0xb || sign == 0xd
}

// Return preferred sign code.
func preferredSign(minus bool) uint8 {
	if minus {
		return signMinus
	}
	return signPlus
}

// Condition code from sign of value.
func signCC(sign int) uint8 {
	switch {
	case sign < 0:
		return CCLow
	case sign > 0:
		return CCHigh
	}
	return CCZero
}
