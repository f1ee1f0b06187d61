/*
 * S370 - Decimal instruction exerciser.
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

// Package deck runs decks of decimal instructions against main storage
// and checks the results.
//
// A deck has one command per line, '#' starts a comment:
//
//	set  <addr> <hexbytes...>
//	cc   <n>
//	reg  <r> <hexword>
//	mask <hexdigit>
//	<op> <addr>(<len>),<addr>(<len>)      AP SP CP ZAP MP DP MVO PACK UNPK
//	ed   <addr>(<len>),<addr>             ED EDMK, EDMK uses register 1
//	srp  <addr>(<len>),<shift>,<round>
//	cvb  <r>,<addr>
//	cvd  <r>,<addr>
//	exec <hexbytes...>                    instruction image, base registers used
//	expect cc <n>
//	expect irc <none|spec|data|fixdiv|decover|decdiv>
//	expect mem <addr> <hexbytes...>
//	expect reg <r> <hexword>
//	show cc | show regs | show mem <addr> <len>
//
// Addresses are hex, lengths and counts decimal.
package deck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"github.com/zeebo/errs"

	config "github.com/rcornwell/S370dec/config/configparser"
	D "github.com/rcornwell/S370dec/emu/decimal"
	"github.com/rcornwell/S370dec/emu/memory"
	op "github.com/rcornwell/S370dec/emu/opcodemap"
	"github.com/rcornwell/S370dec/util/debug"
	"github.com/rcornwell/S370dec/util/hex"
)

// Error is the class of deck errors.
var Error = errs.Class("deck")

var (
	ErrUnknown = errors.New("unknown command")
	ErrOperand = errors.New("invalid operand")
	ErrAddress = errors.New("operand outside storage")
)

// SyntaxError reports a deck line that could not be run.
type SyntaxError struct {
	Line int    // Line number in deck.
	Text string // Text of line.
	Err  error  // What was wrong.
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, strings.TrimSpace(e.Text))
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func errOperand(format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrOperand}, a...)...)
}

// Stats counts what happened while running a deck.
type Stats struct {
	Lines    int // Lines read.
	Executed int // Instructions executed.
	Failed   int // Expectations not met.
}

const (
	debugCmd = 1 << iota
	debugData
	debugTrace
)

var debugOption = map[string]int{
	"CMD":   debugCmd,
	"DATA":  debugData,
	"TRACE": debugTrace,
}

var debugMsk int

// Enable debug options.
func Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return Error.New("deck debug option invalid: %s", opt)
	}
	debugMsk |= flag
	return nil
}

// Decks named in the configuration file.
var queued []string

// register deck option on initialize.
func init() {
	config.RegisterOption("DECK", queueDeck)
}

func queueDeck(name string, _ []config.Option) error {
	queued = append(queued, name)
	return nil
}

// Queued returns a copy of the decks given by DECK configuration lines.
func Queued() []string {
	return slices.Clone(queued)
}

// Program mask bit enabling decimal overflow interruptions.
const maskDecOver uint8 = 0x4

// Machine holds the state seen by deck commands. Storage is the emu/memory
// buffer.
type Machine struct {
	regs  [16]uint32   // General registers.
	cc    uint8        // Condition code.
	mask  uint8        // Program mask.
	irc   D.Irc        // Interruption from last instruction.
	stats Stats        // Counts for current deck.
	out   io.Writer    // Where show writes.
	log   *slog.Logger // Logger tagged with deck name.
}

// New creates a machine with cleared registers, show output goes to out.
func New(out io.Writer) *Machine {
	if out == nil {
		out = io.Discard
	}
	return &Machine{out: out, log: slog.Default()}
}

// Stats returns counts since the last Run.
func (m *Machine) Stats() Stats {
	return m.stats
}

var cmdList = map[string]func(*Machine, *cmdLine) error{
	"SET":    (*Machine).set,
	"CC":     (*Machine).setCC,
	"REG":    (*Machine).setReg,
	"MASK":   (*Machine).setMask,
	"EXPECT": (*Machine).expect,
	"SHOW":   (*Machine).show,
	"EXEC":   (*Machine).exec,
}

// Execute runs one deck line.
func (m *Machine) Execute(text string) error {
	m.stats.Lines++
	line := cmdLine{line: text}
	word := line.getWord()
	if word == "" {
		line.skipSpace()
		if !line.isEOL() {
			return m.syntax(text, ErrUnknown)
		}
		return nil
	}
	debug.Debugf("DECK", debugMsk, debugCmd, "%d: %s", m.stats.Lines, strings.TrimSpace(text))

	var err error
	if process, ok := cmdList[word]; ok {
		err = process(m, &line)
	} else if opcode, ok := op.Lookup(word); ok {
		err = m.instruction(opcode, &line)
	} else {
		err = fmt.Errorf("%w: %s", ErrUnknown, word)
	}
	if err != nil {
		return m.syntax(text, err)
	}
	return nil
}

func (m *Machine) syntax(text string, err error) error {
	return Error.Wrap(&SyntaxError{Line: m.stats.Lines, Text: text, Err: err})
}

// Run executes a deck, stopping at the first line in error.
func (m *Machine) Run(input io.Reader) (Stats, error) {
	m.stats = Stats{}
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		if err := m.Execute(scanner.Text()); err != nil {
			return m.stats, err
		}
	}
	if err := scanner.Err(); err != nil {
		return m.stats, Error.Wrap(err)
	}
	return m.stats, nil
}

// RunFile executes the deck in file name.
func (m *Machine) RunFile(fs afero.Fs, name string) (Stats, error) {
	file, err := fs.Open(name)
	if err != nil {
		return Stats{}, Error.Wrap(err)
	}
	defer file.Close()

	m.log = slog.Default().With("deck", name)
	defer func() { m.log = slog.Default() }()

	m.log.Info("running deck")
	stats, err := m.Run(file)
	m.log.Info("deck done", "lines", stats.Lines, "executed", stats.Executed, "failed", stats.Failed)
	return stats, err
}

// set <addr> <hexbytes...>
func (m *Machine) set(line *cmdLine) error {
	addr, err := line.getAddress()
	if err != nil {
		return err
	}
	data, err := line.getBytes()
	if err != nil {
		return err
	}
	if err := line.checkEOL(); err != nil {
		return err
	}
	if memory.PutBytes(addr, data) {
		return ErrAddress
	}
	return nil
}

// cc <n>
func (m *Machine) setCC(line *cmdLine) error {
	cc, err := line.getNumber(0, 3)
	if err != nil {
		return err
	}
	m.cc = uint8(cc)
	return line.checkEOL()
}

// reg <r> <hexword>
func (m *Machine) setReg(line *cmdLine) error {
	r, err := line.getRegister()
	if err != nil {
		return err
	}
	value, err := line.getWord32()
	if err != nil {
		return err
	}
	m.regs[r] = value
	return line.checkEOL()
}

// mask <hexdigit>
func (m *Machine) setMask(line *cmdLine) error {
	value, err := line.getWord32()
	if err != nil {
		return err
	}
	if value > 0xf {
		return errOperand("program mask %x", value)
	}
	m.mask = uint8(value)
	return line.checkEOL()
}

// Record a failed expectation.
func (m *Machine) failed(what string, got, wanted string) {
	m.stats.Failed++
	m.log.Warn("expect failed", "line", m.stats.Lines, "what", what, "got", got, "wanted", wanted)
}

var ircNames = map[string]D.Irc{
	"NONE":    D.IrcNone,
	"SPEC":    D.IrcSpec,
	"DATA":    D.IrcData,
	"FIXDIV":  D.IrcFixDiv,
	"DECOVER": D.IrcDecOver,
	"DECDIV":  D.IrcDecDiv,
}

// expect cc|irc|mem|reg ...
func (m *Machine) expect(line *cmdLine) error {
	switch what := line.getWord(); what {
	case "CC":
		cc, err := line.getNumber(0, 3)
		if err != nil {
			return err
		}
		if uint8(cc) != m.cc {
			m.failed("cc", fmt.Sprint(m.cc), fmt.Sprint(cc))
		}

	case "IRC":
		name := line.getWord()
		irc, ok := ircNames[name]
		if !ok {
			return errOperand("interruption %q", name)
		}
		if irc != m.irc {
			m.failed("irc", m.irc.String(), irc.String())
		}

	case "MEM":
		addr, err := line.getAddress()
		if err != nil {
			return err
		}
		want, err := line.getBytes()
		if err != nil {
			return err
		}
		got, bad := memory.GetBytes(addr, len(want))
		if bad {
			return ErrAddress
		}
		if string(got) != string(want) {
			m.failed(fmt.Sprintf("mem %x", addr), hex.Bytes(got), hex.Bytes(want))
		}

	case "REG":
		r, err := line.getRegister()
		if err != nil {
			return err
		}
		want, err := line.getWord32()
		if err != nil {
			return err
		}
		if m.regs[r] != want {
			m.failed(fmt.Sprintf("reg %d", r), fmt.Sprintf("%08x", m.regs[r]), fmt.Sprintf("%08x", want))
		}

	default:
		return errOperand("expect %q", what)
	}
	return line.checkEOL()
}

// show cc | regs | mem <addr> <len>
func (m *Machine) show(line *cmdLine) error {
	var str strings.Builder
	switch what := line.getWord(); what {
	case "CC":
		fmt.Fprintf(&str, "CC=%d IRC=%s MASK=%X", m.cc, m.irc, m.mask)
	case "REGS":
		for i := 0; i < 16; i += 4 {
			fmt.Fprintf(&str, "R%-2d ", i)
			hex.FormatWord(&str, m.regs[i:i+4])
			if i != 12 {
				str.WriteByte('\n')
			}
		}
	case "MEM":
		addr, err := line.getAddress()
		if err != nil {
			return err
		}
		length, err := line.getNumber(1, 256)
		if err != nil {
			return err
		}
		data, bad := memory.GetBytes(addr, length)
		if bad {
			return ErrAddress
		}
		fmt.Fprintf(&str, "%06X ", addr)
		hex.FormatBytes(&str, true, data)
	default:
		return errOperand("show %q", what)
	}
	if err := line.checkEOL(); err != nil {
		return err
	}
	str.WriteByte('\n')
	_, err := io.WriteString(m.out, str.String())
	return err
}
