/*
 * S370 - Interactive deck console.
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

package reader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/rcornwell/S370dec/command/deck"
)

// Words offered for completion of the first word on a line.
var commands = []string{
	"ap", "cc", "cp", "cvb", "cvd", "dp", "ed", "edmk", "exec", "expect", "mask",
	"mp", "mvo", "pack", "quit", "reg", "set", "show", "sp", "srp", "unpk", "zap",
}

// Return commands starting with the text typed so far.
func CompleteCmd(line string) []string {
	if strings.ContainsAny(line, " \t") {
		return nil
	}
	prefix := strings.ToLower(line)
	match := []string{}
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, prefix) {
			match = append(match, cmd)
		}
	}
	sort.Strings(match)
	return match
}

// Check for request to leave console.
func isQuit(command string) bool {
	word := strings.ToLower(strings.TrimSpace(command))
	return word == "quit" || word == "exit"
}

// ConsoleReader feeds lines typed at the terminal to the machine until
// quit or end of input.
func ConsoleReader(m *deck.Machine) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(CompleteCmd)

	for {
		command, err := line.Prompt("S370> ")
		if err == nil {
			line.AppendHistory(command)
			if isQuit(command) {
				return
			}
			if err := m.Execute(command); err != nil {
				fmt.Println("Error: " + err.Error())
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return
		}
		slog.Error("error reading line: " + err.Error())
		return
	}
}
