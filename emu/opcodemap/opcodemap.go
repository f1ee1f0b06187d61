/*
 * S370 - Decimal instruction opcodes.
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

package opcodemap

import "strings"

const (
	// Opcode definitions.
	OpCVD  = 0x4E // src1 = R1, src2 = addr
	OpCVB  = 0x4F // src1 = R1, src2 = addr
	OpED   = 0xDE
	OpEDMK = 0xDF
	OpSRP  = 0xF0 // 370 Shift and round decimal
	OpMVO  = 0xF1
	OpPACK = 0xF2
	OpUNPK = 0xF3
	OpZAP  = 0xF8
	OpCP   = 0xF9
	OpAP   = 0xFA
	OpSP   = 0xFB
	OpMP   = 0xFC
	OpDP   = 0xFD
)

// Operand formats.
const (
	TyRX  = 1 + iota // R1,D2(X2,B2)
	TySS1            // D1(L,B1),D2(B2)
	TySS2            // D1(L1,B1),D2(L2,B2)
	TySRP            // D1(L1,B1),D2(B2),I3
)

// Opcode gives the code and operand format of a mnemonic.
type Opcode struct {
	Code   uint8
	Type   int
	Name   string
	Packed bool // Both operands limited to 16 bytes.
}

var opMap = map[string]Opcode{
	"CVD":  {OpCVD, TyRX, "CVD", false},
	"CVB":  {OpCVB, TyRX, "CVB", false},
	"ED":   {OpED, TySS1, "ED", false},
	"EDMK": {OpEDMK, TySS1, "EDMK", false},
	"SRP":  {OpSRP, TySRP, "SRP", true},
	"MVO":  {OpMVO, TySS2, "MVO", true},
	"PACK": {OpPACK, TySS2, "PACK", true},
	"UNPK": {OpUNPK, TySS2, "UNPK", true},
	"ZAP":  {OpZAP, TySS2, "ZAP", true},
	"CP":   {OpCP, TySS2, "CP", true},
	"AP":   {OpAP, TySS2, "AP", true},
	"SP":   {OpSP, TySS2, "SP", true},
	"MP":   {OpMP, TySS2, "MP", true},
	"DP":   {OpDP, TySS2, "DP", true},
}

// Lookup a mnemonic, case is ignored.
func Lookup(name string) (Opcode, bool) {
	op, ok := opMap[strings.ToUpper(name)]
	return op, ok
}

// Return name of an opcode, empty if not a decimal instruction.
func Name(code uint8) string {
	for _, op := range opMap {
		if op.Code == code {
			return op.Name
		}
	}
	return ""
}

// Length of the instruction in bytes.
func (op Opcode) Length() int {
	if op.Type == TyRX {
		return 4
	}
	return 6
}
