/*
 * S370 - Decimal instruction dispatch.
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
	D "github.com/rcornwell/S370dec/emu/decimal"
	dis "github.com/rcornwell/S370dec/emu/disassemble"
	"github.com/rcornwell/S370dec/emu/memory"
	op "github.com/rcornwell/S370dec/emu/opcodemap"
	"github.com/rcornwell/S370dec/util/debug"
	"github.com/rcornwell/S370dec/util/hex"
)

const (
	maxPacked  = 16  // Longest packed operand.
	maxPattern = 256 // Longest edit pattern.
	doubleWord = 8   // CVB and CVD operand.
	edmkReg    = 1   // Register set by EDMK.
)

// Instructions that may raise decimal overflow.
var overflowOps = map[uint8]bool{
	op.OpAP:  true,
	op.OpSP:  true,
	op.OpZAP: true,
	op.OpSRP: true,
}

// Two operand storage to storage instructions.
var ss2Ops = map[uint8]func(uint8, []byte, D.Operand, D.Operand) D.Result{
	op.OpAP:   D.Add,
	op.OpSP:   D.Subtract,
	op.OpCP:   D.Compare,
	op.OpZAP:  D.ZeroAdd,
	op.OpMP:   D.Multiply,
	op.OpDP:   D.Divide,
	op.OpMVO:  D.MoveOffset,
	op.OpPACK: D.Pack,
	op.OpUNPK: D.UnpackZoned,
}

// Resolved operands of one instruction.
type operands struct {
	op1   D.Operand // First operand, pattern for ED.
	op2   D.Operand // Second operand. Address only for ED, SRP and RX.
	reg   int       // Register for CVB and CVD.
	round uint8     // Rounding digit for SRP.
}

// Check operand lies inside storage.
func checkOperand(operand D.Operand) error {
	if !memory.CheckRange(operand.Addr, operand.Len) {
		return ErrAddress
	}
	return nil
}

// Dump operand for data trace.
func traceData(name string, operand D.Operand) {
	data, bad := memory.GetBytes(operand.Addr, operand.Len)
	if bad {
		return
	}
	debug.Debugf("DECK", debugMsk, debugData, "%s %06x: %s", name, operand.Addr, hex.Bytes(data))
}

// Parse symbolic operands and run one instruction.
func (m *Machine) instruction(opcode op.Opcode, line *cmdLine) error {
	var ops operands
	var err error

	switch opcode.Type {
	case op.TySS2:
		if ops.op1, err = line.getStorage(maxPacked); err != nil {
			return err
		}
		if err = line.expect(','); err != nil {
			return err
		}
		if ops.op2, err = line.getStorage(maxPacked); err != nil {
			return err
		}

	case op.TySS1:
		if ops.op1, err = line.getStorage(maxPattern); err != nil {
			return err
		}
		if err = line.expect(','); err != nil {
			return err
		}
		if ops.op2.Addr, err = line.getAddress(); err != nil {
			return err
		}

	case op.TySRP:
		if ops.op1, err = line.getStorage(maxPacked); err != nil {
			return err
		}
		if err = line.expect(','); err != nil {
			return err
		}
		shift, err := line.getNumber(-32, 31)
		if err != nil {
			return err
		}
		if err = line.expect(','); err != nil {
			return err
		}
		round, err := line.getNumber(0, 15)
		if err != nil {
			return err
		}
		// The shift is carried in the low six bits of the address.
		ops.op2.Addr = uint32(shift) & 0x3f
		ops.round = uint8(round)

	case op.TyRX:
		if ops.reg, err = line.getRegister(); err != nil {
			return err
		}
		if err = line.expect(','); err != nil {
			return err
		}
		if ops.op2.Addr, err = line.getAddress(); err != nil {
			return err
		}
	}
	if err := line.checkEOL(); err != nil {
		return err
	}
	return m.run(opcode, ops)
}

// Effective address from base, index and displacement.
func (m *Machine) effective(x, b int, disp uint32) uint32 {
	addr := disp
	if x != 0 {
		addr += m.regs[x]
	}
	if b != 0 {
		addr += m.regs[b]
	}
	return addr & memory.AMASK
}

// exec <hexbytes>, run an instruction image.
func (m *Machine) exec(line *cmdLine) error {
	data, err := line.getBytes()
	if err != nil {
		return err
	}
	if err := line.checkEOL(); err != nil {
		return err
	}
	inst, ok := dis.Decode(data)
	if !ok {
		return errOperand("instruction %s", hex.Bytes(data))
	}
	if len(data) != inst.Op.Length() {
		return errOperand("instruction length %d", len(data))
	}
	text, _ := dis.Disassemble(data)
	debug.Debugf("DECK", debugMsk, debugTrace, "exec %s", text)

	ops := operands{reg: inst.R1, round: inst.I3}
	if inst.Op.Type == op.TyRX {
		ops.op2.Addr = m.effective(inst.X2, inst.B2, inst.D2)
	} else {
		ops.op1 = D.Operand{Addr: m.effective(0, inst.B1, inst.D1), Len: inst.L1}
		ops.op2 = D.Operand{Addr: m.effective(0, inst.B2, inst.D2), Len: inst.L2}
	}
	return m.run(inst.Op, ops)
}

// Check operands and run one instruction.
func (m *Machine) run(opcode op.Opcode, ops operands) error {
	mem := memory.Bytes()
	var r D.Result
	first := ops.op1

	switch opcode.Type {
	case op.TySS2:
		if err := checkOperand(ops.op1); err != nil {
			return err
		}
		if err := checkOperand(ops.op2); err != nil {
			return err
		}
		traceData("op1", ops.op1)
		traceData("op2", ops.op2)
		r = ss2Ops[opcode.Code](m.cc, mem, ops.op1, ops.op2)

	case op.TySS1:
		if err := checkOperand(ops.op1); err != nil {
			return err
		}
		if n := D.SourceLength(mem, ops.op1, ops.op2.Addr); n != 0 {
			if err := checkOperand(D.Operand{Addr: ops.op2.Addr, Len: n}); err != nil {
				return err
			}
		}
		traceData("pattern", ops.op1)
		if opcode.Code == op.OpEDMK {
			r, m.regs[edmkReg] = D.EditMark(m.cc, mem, ops.op1, ops.op2.Addr, m.regs[edmkReg])
		} else {
			r = D.Edit(m.cc, mem, ops.op1, ops.op2.Addr)
		}

	case op.TySRP:
		if err := checkOperand(ops.op1); err != nil {
			return err
		}
		traceData("op1", ops.op1)
		r = D.ShiftRound(m.cc, mem, ops.op1, D.ShiftAmount(ops.op2.Addr), ops.round)

	case op.TyRX:
		first = D.Operand{Addr: ops.op2.Addr, Len: doubleWord}
		if err := checkOperand(first); err != nil {
			return err
		}
		if opcode.Code == op.OpCVB {
			traceData("op2", first)
			var value uint32
			r, value = D.ConvertToBinary(m.cc, mem, first.Addr)
			if r.Irc != D.IrcData {
				m.regs[ops.reg] = value
			}
		} else {
			r = D.ConvertToDecimal(m.cc, mem, first.Addr, int32(m.regs[ops.reg]))
		}
	}

	m.complete(opcode, r)
	traceData("result", first)
	return nil
}

// Update state from the result. Overflow becomes an interruption only when
// the program mask allows it.
func (m *Machine) complete(opcode op.Opcode, r D.Result) {
	if r.Irc == D.IrcNone && r.CC == D.CCOverflow && overflowOps[opcode.Code] &&
		(m.mask&maskDecOver) != 0 {
		r.Irc = D.IrcDecOver
	}
	m.cc = r.CC
	m.irc = r.Irc
	m.stats.Executed++
	debug.Debugf("DECK", debugMsk, debugTrace, "%s cc=%d irc=%s", opcode.Name, r.CC, r.Irc)
	if !r.Ok() {
		m.log.Debug("interruption", "line", m.stats.Lines, "op", opcode.Name, "irc", r.Irc.String())
	}
}
