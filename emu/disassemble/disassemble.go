/*
 * S370 - Decimal instruction decoder and disassembler.
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

package disassemble

import (
	"fmt"

	op "github.com/rcornwell/S370dec/emu/opcodemap"
)

// Inst holds the fields of one decoded instruction.
type Inst struct {
	Op op.Opcode
	R1 int    // Register for RX.
	X2 int    // Index register for RX.
	L1 int    // First operand length in bytes.
	L2 int    // Second operand length in bytes.
	I3 uint8  // Rounding digit for SRP.
	B1 int    // First operand base register.
	D1 uint32 // First operand displacement.
	B2 int    // Second operand base register.
	D2 uint32 // Second operand displacement.
}

// Base and displacement from two bytes.
func baseDisp(data1, data2 byte) (int, uint32) {
	return int((data1 >> 4) & 0xf), (uint32(data1&0xf) << 8) | uint32(data2)
}

// Decode a decimal instruction. Returns false if the opcode is not a
// decimal instruction or data is too short.
func Decode(data []byte) (Inst, bool) {
	inst := Inst{}
	if len(data) < 2 {
		return inst, false
	}
	name := op.Name(data[0])
	if name == "" {
		return inst, false
	}
	inst.Op, _ = op.Lookup(name)
	if len(data) < inst.Op.Length() {
		return inst, false
	}

	switch inst.Op.Type {
	case op.TyRX:
		inst.R1 = int((data[1] >> 4) & 0xf)
		inst.X2 = int(data[1] & 0xf)
		inst.B2, inst.D2 = baseDisp(data[2], data[3])
		return inst, true
	case op.TySS1:
		inst.L1 = int(data[1]) + 1
	case op.TySS2:
		inst.L1 = int((data[1]>>4)&0xf) + 1
		inst.L2 = int(data[1]&0xf) + 1
	case op.TySRP:
		inst.L1 = int((data[1]>>4)&0xf) + 1
		inst.I3 = data[1] & 0xf
	}
	inst.B1, inst.D1 = baseDisp(data[2], data[3])
	inst.B2, inst.D2 = baseDisp(data[4], data[5])
	return inst, true
}

// Disassemble returns the text of the instruction and its length.
func Disassemble(data []byte) (string, int) {
	inst, ok := Decode(data)
	if !ok {
		return undefined(data)
	}
	// Make opcode align
	text := inst.Op.Name + "       "
	text = text[:6]

	switch inst.Op.Type {
	case op.TyRX:
		text += fmt.Sprintf("%d,", inst.R1)
		text += address(inst.X2, inst.B2, inst.D2)
	case op.TySS1:
		text += storage(inst.D1, inst.L1, inst.B1) + ","
		text += address(0, inst.B2, inst.D2)
	case op.TySS2:
		text += storage(inst.D1, inst.L1, inst.B1) + ","
		text += storage(inst.D2, inst.L2, inst.B2)
	case op.TySRP:
		text += storage(inst.D1, inst.L1, inst.B1) + ","
		text += address(0, inst.B2, inst.D2)
		text += fmt.Sprintf(",%d", inst.I3)
	}
	return text, inst.Op.Length()
}

// Format D(L,B) operand.
func storage(disp uint32, length int, base int) string {
	text := fmt.Sprintf("%03x(%d", disp, length)
	if base != 0 {
		text += fmt.Sprintf(",%d", base)
	}
	return text + ")"
}

// Format D(X,B) operand.
func address(x2, b2 int, disp uint32) string {
	addr := fmt.Sprintf("%03x", disp)
	if x2 != 0 || b2 != 0 {
		addr += "("
		if x2 != 0 {
			addr += fmt.Sprintf("%d", x2)
			if b2 != 0 {
				addr += ","
			}
		}
		if b2 != 0 {
			addr += fmt.Sprintf("%d", b2)
		}
		addr += ")"
	}
	return addr
}

func undefined(data []byte) (string, int) {
	switch {
	case len(data) == 0:
		return "", 0
	case len(data) == 1:
		return fmt.Sprintf("%02x", data[0]), 1
	}
	return fmt.Sprintf("%02x %02x", data[0], data[1]), 2
}
