/*
 * S370 - Configuration file parser.
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

package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/spf13/afero"
	"github.com/zeebo/errs"
)

// Error is the class of all configuration errors.
var Error = errs.Class("config")

// List of options to pass to create routine.
type Option struct {
	Name     string    // Name of option.
	EqualOpt string    // Value of string after =.
	Value    []*string // Value of option.
}

// Current option line being parsed.
type optionLine struct {
	line   string // Current option line.
	pos    int    // Current position in line.
	number int    // Line number in file.
}

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <keyword> |
 *           <keyword> <whitespace> <value> |
 *           <keyword> <whitespace> <value> <whitespace> <options>
 * <value> ::= <quoteopt>
 * <options> ::= *(<option> *(<whitespace>))
 * <option> ::= <opt> *(<commaopt>)
 * <opt> := <optvalue> | <string>
 * <commaopt> ::= ',' *(<whitespace>) <string>
 * <optvalue> ::= <string> '=' <quoteopt>
 * <quoteopt> ::= <string> | '"' *(<letter> | <whitespace>) '"'
 * <string> ::= *(<letter> | <number>)
 */

const (
	TypeOption  = 1 + iota // Accepts a option parameter.
	TypeOptions            // Accepts a parameter and list of options.
	TypeSwitch             // Option only used to set a flag.
)

// Keyword creation list.
type modelDef struct {
	create func(string, []Option) error
	ty     int
}

var models = map[string]modelDef{}

// Return type of keyword or 0 if not registered.
func getModel(mod string) int {
	model, ok := models[mod]
	if !ok {
		return 0
	}
	return model.ty
}

// Register should be called from init functions.
func RegisterModel(mod string, ty int, fn func(string, []Option) error) {
	mod = strings.ToUpper(mod)
	slog.Debug("Registering keyword: " + mod)
	models[mod] = modelDef{create: fn, ty: ty}
}

// Register should be called from init functions.
func RegisterSwitch(mod string, fn func(string, []Option) error) {
	RegisterModel(mod, TypeSwitch, fn)
}

// Register should be called from init functions.
func RegisterOption(mod string, fn func(string, []Option) error) {
	RegisterModel(mod, TypeOption, fn)
}

// Call create function of keyword after checking type.
func create(mod string, ty int, value string, options []Option) error {
	mod = strings.ToUpper(mod)
	model, ok := models[mod]
	if !ok {
		return Error.New("unknown keyword: %s", mod)
	}
	if model.ty != ty {
		return Error.New("keyword %s used incorrectly", mod)
	}
	return model.create(value, options)
}

// Load in a configuration file.
func LoadConfigFile(fs afero.Fs, name string) error {
	file, err := fs.Open(name)
	if err != nil {
		return Error.Wrap(err)
	}
	defer file.Close()
	return LoadConfig(file)
}

// Process configuration lines from reader.
func LoadConfig(input io.Reader) error {
	reader := bufio.NewReader(input)
	number := 0
	for {
		text, err := reader.ReadString('\n')
		number++
		if len(text) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Error.Wrap(err)
		}
		line := optionLine{line: strings.TrimRight(text, "\r\n"), number: number}
		if err := line.parseLine(); err != nil {
			return err
		}
	}
	return nil
}

// Parse one line from file.
func (line *optionLine) parseLine() error {
	model := line.parseModel()
	if model == "" {
		if !line.isEOL() {
			return line.fail("invalid keyword [%d]", line.pos)
		}
		return nil
	}
	switch getModel(model) {
	case TypeOption:
		first, ok := line.parseFirst()
		line.skipSpace()
		if !ok || !line.isEOL() {
			return line.fail("option: %s requires a single value", model)
		}
		return line.wrap(create(model, TypeOption, first, nil))

	case TypeOptions:
		first, ok := line.parseFirst()
		if !ok {
			return line.fail("option: %s not followed by value", model)
		}
		options, err := line.parseOptions()
		if err != nil {
			return err
		}
		return line.wrap(create(model, TypeOptions, first, options))

	case TypeSwitch:
		line.skipSpace()
		if !line.isEOL() {
			return line.fail("switch: %s followed by options", model)
		}
		return line.wrap(create(model, TypeSwitch, "", nil))
	}
	return line.fail("no type: %s registered", model)
}

// Create error with line number.
func (line *optionLine) fail(format string, args ...interface{}) error {
	args = append(args, line.number)
	return Error.New(format+", line: %d", args...)
}

// Add line number to error from create function.
func (line *optionLine) wrap(err error) error {
	if err == nil {
		return nil
	}
	return Error.Wrap(fmt.Errorf("%w, line: %d", err, line.number))
}

// Skip forward over line until none whitespace character found.
func (line *optionLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *optionLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Check if character is part of a name.
func isName(by byte) bool {
	return unicode.IsLetter(rune(by)) || unicode.IsNumber(rune(by))
}

// Collect a run of name characters.
func (line *optionLine) getName() string {
	start := line.pos
	for !line.isEOL() && isName(line.line[line.pos]) {
		line.pos++
	}
	return line.line[start:line.pos]
}

// Parse keyword.
func (line *optionLine) parseModel() string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}
	return strings.ToUpper(line.getName())
}

// Parse first parameter, may be quoted. Unquoted values end at space or comma.
func (line *optionLine) parseFirst() (string, bool) {
	line.skipSpace()
	if line.isEOL() {
		return "", false
	}
	if line.line[line.pos] == '"' {
		return line.parseQuoteString()
	}
	start := line.pos
	for !line.isEOL() {
		by := line.line[line.pos]
		if unicode.IsSpace(rune(by)) || by == ',' {
			break
		}
		line.pos++
	}
	return line.line[start:line.pos], true
}

// Parse string that is "string" or just string. Quotes are doubled
// inside a quoted string.
func (line *optionLine) parseQuoteString() (string, bool) {
	if line.pos >= len(line.line) || line.line[line.pos] != '"' {
		value := line.getName()
		return value, value != ""
	}
	line.pos++

	var value strings.Builder
	for line.pos < len(line.line) {
		by := line.line[line.pos]
		line.pos++
		if by == '"' {
			if line.pos < len(line.line) && line.line[line.pos] == '"' {
				line.pos++
			} else {
				return value.String(), true
			}
		}
		value.WriteByte(by)
	}
	return "", false
}

// Parse options for a line.
func (line *optionLine) parseOption() (*Option, error) {
	line.skipSpace()
	if line.isEOL() {
		return nil, nil
	}

	// First character must be alphabetic.
	if !unicode.IsLetter(rune(line.line[line.pos])) {
		return nil, line.fail("invalid option encountered [%d]", line.pos)
	}
	option := Option{Name: line.getName()}

	// Check if equals option.
	if !line.isEOL() && line.line[line.pos] == '=' {
		line.pos++
		v, ok := line.parseQuoteString()
		if !ok {
			return nil, line.fail("invalid quoted string [%d]", line.pos)
		}
		option.EqualOpt = v
	}

	line.skipSpace()

	// Grab all , options
	for !line.isEOL() && line.line[line.pos] == ',' {
		line.pos++
		line.skipSpace()
		v := line.getName()
		if v != "" {
			option.Value = append(option.Value, &v)
		}
		line.skipSpace()
	}

	return &option, nil
}

// Collect all options for line.
func (line *optionLine) parseOptions() ([]Option, error) {
	options := []Option{}
	for {
		option, err := line.parseOption()
		if err != nil {
			return nil, err
		}
		if option == nil {
			break
		}
		options = append(options, *option)
	}
	return options, nil
}
