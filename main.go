/*
 * S370 - Packed decimal instruction exerciser.
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

package main

import (
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	"github.com/spf13/afero"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rcornwell/S370dec/command/deck"
	reader "github.com/rcornwell/S370dec/command/reader"
	config "github.com/rcornwell/S370dec/config/configparser"
	"github.com/rcornwell/S370dec/emu/memory"
	logger "github.com/rcornwell/S370dec/util/logger"

	_ "github.com/rcornwell/S370dec/config/debugconfig"
	_ "github.com/rcornwell/S370dec/util/debug"
)

// Totals over all decks run.
type summary struct {
	decks  int
	errors int
	total  deck.Stats
}

func (s *summary) add(stats deck.Stats, err error) {
	s.decks++
	s.total.Lines += stats.Lines
	s.total.Executed += stats.Executed
	s.total.Failed += stats.Failed
	if err != nil {
		s.errors++
	}
}

func (s *summary) ok() bool {
	return s.errors == 0 && s.total.Failed == 0
}

func (s *summary) print(w io.Writer) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "%d decks, %d lines, %d instructions, %d failed expectations, %d errors\n",
		s.decks, s.total.Lines, s.total.Executed, s.total.Failed, s.errors)
}

// Run each deck on a fresh machine, storage reset first.
func runDecks(fs afero.Fs, names []string, out io.Writer) *summary {
	result := &summary{}
	for _, name := range names {
		memory.Reset()
		m := deck.New(out)
		stats, err := m.RunFile(fs, name)
		if err != nil {
			slog.Error(err.Error())
		}
		result.add(stats, err)
	}
	return result
}

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optInteractive := getopt.BoolLong("interactive", 'i', "Run console after decks")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("[deck ...]")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file io.Writer
	if *optLogFile != "" {
		f, err := os.Create(*optLogFile)
		if err != nil {
			slog.Error("unable to create log file: " + err.Error())
			os.Exit(1)
		}
		defer f.Close()
		file = f
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger := slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, *optDebug))
	slog.SetDefault(Logger)

	fs := afero.NewOsFs()
	if *optConfig != "" {
		if err := config.LoadConfigFile(fs, *optConfig); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}
	Logger.Debug("storage configured", "size", memory.GetSize())

	decks := append(deck.Queued(), getopt.Args()...)
	result := runDecks(fs, decks, os.Stdout)

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	switch {
	case *optInteractive || (len(decks) == 0 && interactive):
		reader.ConsoleReader(deck.New(os.Stdout))
	case len(decks) == 0:
		// Deck piped in on standard input.
		stats, err := deck.New(os.Stdout).Run(os.Stdin)
		if err != nil {
			Logger.Error(err.Error())
		}
		result.add(stats, err)
	}

	if result.decks != 0 {
		result.print(os.Stdout)
	}
	if !result.ok() {
		os.Exit(1)
	}
}
