/*
 * S370 - Configuration file parser test cases.
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
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOptions []Option
var testValue string
var testType string

func resetTest() {
	testOptions = nil
	testValue = "error"
	testType = ""
}

func cleanUpConfig() {
	models = map[string]modelDef{}
	resetTest()
	RegisterOption("testoption", modOption)
	RegisterSwitch("testswitch", modSwitch)
	RegisterModel("testoptions", TypeOptions, modOptions)
}

func modSwitch(value string, options []Option) error {
	testValue = value
	testType = "switch"
	testOptions = options
	return nil
}

func modOption(value string, options []Option) error {
	testValue = value
	testType = "option"
	testOptions = options
	return nil
}

func modOptions(value string, options []Option) error {
	testValue = value
	testType = "options"
	testOptions = options
	return nil
}

var errRejected = errors.New("rejected")

func parse(text string) error {
	line := optionLine{line: text, number: 1}
	return line.parseLine()
}

// Test registering keywords.
func TestRegister(t *testing.T) {
	cleanUpConfig()

	assert.Equal(t, TypeOption, getModel("TESTOPTION"))
	assert.Equal(t, TypeSwitch, getModel("TESTSWITCH"))
	assert.Equal(t, TypeOptions, getModel("TESTOPTIONS"))
	assert.Zero(t, getModel("TEST"))

	require.NoError(t, create("testSwitch", TypeSwitch, "", nil))
	assert.Equal(t, "switch", testType)
	assert.Error(t, create("test", TypeSwitch, "", nil))
	assert.Error(t, create("testswitch", TypeOption, "x", nil))
}

// Test parsing of switch types.
func TestParseLineSwitch(t *testing.T) {
	cleanUpConfig()

	require.NoError(t, parse("testSwitch"))
	assert.Equal(t, "switch", testType)
	assert.Empty(t, testOptions)

	resetTest()
	require.NoError(t, parse("testSwitch  # Comment"))
	assert.Equal(t, "switch", testType)

	resetTest()
	assert.Error(t, parse("testSwitch 0"))
	assert.Empty(t, testType)
}

// Test parsing of single value options.
func TestParseLineOption(t *testing.T) {
	cleanUpConfig()

	assert.Error(t, parse("TESTOPTION"))

	resetTest()
	require.NoError(t, parse("testOption enable  # Comment"))
	assert.Equal(t, "option", testType)
	assert.Equal(t, "enable", testValue)
	assert.Empty(t, testOptions)

	resetTest()
	require.NoError(t, parse(`testoption "decks/my deck.pd"`))
	assert.Equal(t, "decks/my deck.pd", testValue)

	resetTest()
	require.NoError(t, parse(`testoption "say ""hi"""`))
	assert.Equal(t, `say "hi"`, testValue)

	resetTest()
	require.NoError(t, parse("testoption 64K"))
	assert.Equal(t, "64K", testValue)

	resetTest()
	assert.Error(t, parse("testoption 64K more"))
	assert.Error(t, parse(`testoption "open`))
}

// Test parsing of value and option lists.
func TestParseLineOptions(t *testing.T) {
	cleanUpConfig()

	require.NoError(t, parse("testoptions deck trace, data cmd name=value # Comment"))
	assert.Equal(t, "options", testType)
	assert.Equal(t, "deck", testValue)
	require.Len(t, testOptions, 3)
	assert.Equal(t, "trace", testOptions[0].Name)
	require.Len(t, testOptions[0].Value, 1)
	assert.Equal(t, "data", *testOptions[0].Value[0])
	assert.Equal(t, "cmd", testOptions[1].Name)
	assert.Equal(t, "name", testOptions[2].Name)
	assert.Equal(t, "value", testOptions[2].EqualOpt)

	resetTest()
	require.NoError(t, parse(`testoptions deck file="a b"`))
	assert.Equal(t, "a b", testOptions[0].EqualOpt)

	resetTest()
	assert.Error(t, parse("testoptions"))
	assert.Error(t, parse("testoptions deck 12"))
}

// Unknown and invalid lines.
func TestParseLineInvalid(t *testing.T) {
	cleanUpConfig()

	require.NoError(t, parse(""))
	require.NoError(t, parse("    # just a comment"))

	err := parse("unknown 10")
	require.Error(t, err)
	assert.True(t, Error.Has(err))
	assert.Contains(t, err.Error(), "line: 1")

	assert.Error(t, parse("*bad"))
}

// Errors from keyword handlers are passed back.
func TestCreateError(t *testing.T) {
	cleanUpConfig()
	RegisterOption("reject", func(string, []Option) error {
		return errRejected
	})
	err := parse("reject now")
	require.Error(t, err)
	assert.ErrorIs(t, err, errRejected)
	assert.True(t, Error.Has(err))
}

// Load configuration from a file.
func TestLoadConfigFile(t *testing.T) {
	cleanUpConfig()
	values := []string{}
	RegisterOption("deck", func(value string, _ []Option) error {
		values = append(values, value)
		return nil
	})

	fs := afero.NewMemMapFs()
	text := strings.Join([]string{
		"# Test configuration",
		"deck first.pd",
		"",
		`deck "second.pd"   # comment`,
		"testswitch",
	}, "\n")
	require.NoError(t, afero.WriteFile(fs, "test.cfg", []byte(text), 0o644))

	require.NoError(t, LoadConfigFile(fs, "test.cfg"))
	assert.Equal(t, []string{"first.pd", "second.pd"}, values)
	assert.Equal(t, "switch", testType)

	require.NoError(t, afero.WriteFile(fs, "bad.cfg", []byte("deck a.pd\nbogus\n"), 0o644))
	err := LoadConfigFile(fs, "bad.cfg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line: 2")

	err = LoadConfigFile(fs, "missing.cfg")
	require.Error(t, err)
	assert.True(t, Error.Has(err))
}
