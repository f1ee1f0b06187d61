/*
 * S370 - Debug trace output.
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

package debug

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/spf13/afero"

	config "github.com/rcornwell/S370dec/config/configparser"
)

var (
	mu      sync.Mutex
	logFile io.Writer
	logName string
)

// FileSystem is where DEBUGFILE is created.
var FileSystem = afero.NewOsFs()

// Generic debug message. Without a debug file messages go to the
// default logger at debug level.
func Debugf(module string, mask int, level int, format string, a ...interface{}) {
	if (mask & level) == 0 {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		slog.Debug(module + ": " + fmt.Sprintf(format, a...))
		return
	}
	fmt.Fprintf(logFile, module+": "+format+"\n", a...)
}

// SetOutput directs debug messages to w, nil restores the default logger.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logFile = w
	logName = ""
}

// register debug file on initialize.
func init() {
	config.RegisterOption("DEBUGFILE", create)
}

// Create the debug file.
func create(fileName string, _ []config.Option) error {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		return config.Error.New("can't have more then one debug file, previous: %s", logName)
	}

	file, err := FileSystem.Create(fileName)
	if err != nil {
		return config.Error.New("unable to create debug file: %s", fileName)
	}

	logFile = file
	logName = fileName
	return nil
}
