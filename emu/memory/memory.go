/*
 * S370 - Main storage for decimal exerciser.
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

package memory

import (
	"strconv"
	"strings"

	"github.com/zeebo/errs"

	config "github.com/rcornwell/S370dec/config/configparser"
)

type mem struct {
	mem  []byte
	size uint32
	keep bool // Storage kept between decks.
}

var memory mem

const (
	AMASK   uint32 = 0x00ffffff // Mask address bits
	maxSize int    = 16 * 1024  // Largest size in K
	defSize int    = 64         // Default size in K
)

// Error is the class of storage configuration errors.
var Error = errs.Class("memory")

// Set size in K, contents are cleared.
func SetSize(k int) {
	if k > maxSize {
		k = maxSize
	}
	if k < 0 {
		k = 0
	}
	memory.size = uint32(k * 1024)
	memory.mem = make([]byte, memory.size)
}

// Return size of memory in bytes.
func GetSize() uint32 {
	return memory.size
}

// Bytes gives the storage buffer the decimal instructions work on.
func Bytes() []byte {
	return memory.mem
}

// Clear storage to zeros.
func Clear() {
	clear(memory.mem)
}

// Reset storage before a deck, cleared unless KEEPMEMORY was given.
func Reset() {
	if !memory.keep {
		Clear()
	}
}

// Check that length bytes starting at addr are inside storage.
func CheckRange(addr uint32, length int) bool {
	if length <= 0 {
		return false
	}
	end := uint64(addr) + uint64(length)
	return end <= uint64(memory.size)
}

// Put a string of bytes to memory. Nothing is stored if any would fall
// outside of storage.
func PutBytes(addr uint32, data []byte) bool {
	if !CheckRange(addr, len(data)) {
		return true
	}
	copy(memory.mem[addr:], data)
	return false
}

// Get a string of bytes from memory.
func GetBytes(addr uint32, length int) ([]byte, bool) {
	if !CheckRange(addr, length) {
		return nil, true
	}
	data := make([]byte, length)
	copy(data, memory.mem[addr:])
	return data, false
}

// Parse a size of the form <n>, <n>K or <n>M into K.
func parseSize(value string) (int, error) {
	value = strings.ToUpper(value)
	mult := 1
	switch {
	case strings.HasSuffix(value, "K"):
		value = value[:len(value)-1]
	case strings.HasSuffix(value, "M"):
		mult = 1024
		value = value[:len(value)-1]
	}
	size, err := strconv.Atoi(value)
	if err != nil || size <= 0 {
		return 0, Error.New("invalid memory size: %q", value)
	}
	return size * mult, nil
}

// register memory option on initialize.
func init() {
	SetSize(defSize)
	config.RegisterOption("MEMORY", setMemory)
	config.RegisterSwitch("KEEPMEMORY", keepMemory)
}

// Set memory size from configuration.
func setMemory(value string, _ []config.Option) error {
	size, err := parseSize(value)
	if err != nil {
		return err
	}
	SetSize(size)
	return nil
}

// Keep storage contents from one deck to the next.
func keepMemory(_ string, _ []config.Option) error {
	memory.keep = true
	return nil
}
