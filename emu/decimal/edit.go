/*
 * S370 - Edit and Edit and mark.
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

// Pattern characters.
const (
	DigitSelector  uint8 = 0x20
	SigStarter     uint8 = 0x21
	FieldSeparator uint8 = 0x22
)

const (
	maskAddress24   uint32 = 0x00ffffff
	maskRegisterTop uint32 = 0xff000000
)

// Significance indicator.
type significance uint8

const (
	sigOff significance = iota
	sigOn
)

// Contents of the field being edited so far.
type field uint8

const (
	fieldZero field = iota
	fieldNonZero
)

// Where the next source digit comes from.
type sourceHalf uint8

const (
	needByte sourceHalf = iota // Fetch a new source byte, use left digit
	rightDigit                 // Use right digit of current byte
)

// Edit machine state.
type editor struct {
	mem     []byte
	fill    uint8
	src     uint32 // Next source byte
	cur     uint8  // Current source byte
	half    sourceHalf
	sig     significance
	field   field
	mark    bool   // Record first significant digit
	marked  bool   // Address recorded at least once
	address uint32 // Address of first significant digit
}

// Fetch next source digit, false if it is not a digit.
func (e *editor) nextDigit() (uint8, bool) {
	var digit uint8
	if e.half == needByte {
		e.cur = e.mem[e.src]
		e.src++
		digit = e.cur >> 4
		if digit > 0x9 {
			return 0, false
		}
		e.half = rightDigit
		// Right digit may be a sign
		sign := e.cur & 0xf
		if sign > 0x9 {
			e.half = needByte
		}
		return digit, true
	}
	digit = e.cur & 0xf
	e.half = needByte
	return digit, true
}

// Sign in right half of current byte after its left digit was used.
// Plus turns significance off.
func (e *editor) checkSign() {
	if e.half != needByte {
		return
	}
	sign := e.cur & 0xf
	if sign <= 0x9 {
		return
	}
	switch sign {
	case 0xa, 0xc, 0xe, 0xf:
		e.sig = sigOff
	}
}

// Process one digit selector or significance starter.
func (e *editor) selectDigit(pattern uint8, addr uint32) (uint8, bool) {
	// Digit from right nibble does not examine sign again
	fromLeft := e.half == needByte
	digit, ok := e.nextDigit()
	if !ok {
		return 0, false
	}

	out := e.fill
	if digit != 0 || e.sig == sigOn {
		out = (zoneBits << 4) | digit
	}
	if digit != 0 {
		if e.sig == sigOff && e.mark {
			e.address = addr
			e.marked = true
		}
		e.field = fieldNonZero
	}
	if digit != 0 || pattern == SigStarter {
		e.sig = sigOn
	}
	if fromLeft {
		e.checkSign()
	}
	return out, true
}

// Run the edit over the pattern.
func (e *editor) run(pattern Operand) bool {
	for i := 0; i < pattern.Len; i++ {
		addr := pattern.Addr + uint32(i)
		ch := e.mem[addr]
		out := ch
		switch ch {
		case DigitSelector, SigStarter:
			var ok bool
			out, ok = e.selectDigit(ch, addr)
			if !ok {
				return false
			}
		case FieldSeparator:
			e.sig = sigOff
			e.field = fieldZero
			out = e.fill
		default:
			if e.sig == sigOff {
				out = e.fill
			}
		}
		e.mem[addr] = out
	}
	return true
}

func (e *editor) cc() uint8 {
	switch {
	case e.field == fieldZero:
		return CCZero
	case e.sig == sigOn:
		return CCLow
	}
	return CCHigh
}

func newEditor(mem []byte, pattern Operand, src uint32, mark bool) *editor {
	return &editor{
		mem:  mem,
		fill: mem[pattern.Addr],
		src:  src,
		half: needByte,
		sig:  sigOff,
		mark: mark,
	}
}

// SourceLength gives the number of source bytes an edit of pattern will
// fetch from src. Counting stops at the first invalid left digit or at the
// first byte past the end of mem, which is included in the count.
func SourceLength(mem []byte, pattern Operand, src uint32) int {
	n := 0
	half := needByte
	for i := 0; i < pattern.Len; i++ {
		ch := mem[pattern.Addr+uint32(i)]
		if ch != DigitSelector && ch != SigStarter {
			continue
		}
		if half == rightDigit {
			half = needByte
			continue
		}
		addr := uint64(src) + uint64(n)
		n++
		if addr >= uint64(len(mem)) {
			return n
		}
		by := mem[addr]
		if by>>4 > 0x9 {
			return n
		}
		half = rightDigit
		if by&0xf > 0x9 {
			half = needByte
		}
	}
	return n
}

// Edit handles ED. The first pattern byte is the fill character. Pattern
// bytes already processed stay changed if a data exception is found.
func Edit(cc uint8, mem []byte, pattern Operand, src uint32) Result {
	e := newEditor(mem, pattern, src, false)
	if !e.run(pattern) {
		return fault(IrcData, cc)
	}
	return success(e.cc())
}

// EditMark handles EDMK. The address of the first significant digit is
// placed in the low 24 bits of reg, the high byte is left alone. reg is
// returned unchanged if no digit became significant by a non-zero digit.
func EditMark(cc uint8, mem []byte, pattern Operand, src uint32, reg uint32) (Result, uint32) {
	e := newEditor(mem, pattern, src, true)
	ok := e.run(pattern)
	if e.marked {
		reg = (reg & maskRegisterTop) | (e.address & maskAddress24)
	}
	if !ok {
		return fault(IrcData, cc), reg
	}
	return success(e.cc()), reg
}
