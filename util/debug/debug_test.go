/*
 * S370 - Debug trace test cases.
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
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Debugf("DECK", 0x2, 0x1, "hidden %d", 1)
	assert.Empty(t, buf.String())

	Debugf("DECK", 0x3, 0x1, "AP %x", 0x100)
	assert.Equal(t, "DECK: AP 100\n", buf.String())
}

func TestCreate(t *testing.T) {
	FileSystem = afero.NewMemMapFs()
	defer func() {
		FileSystem = afero.NewOsFs()
		SetOutput(nil)
	}()

	require.NoError(t, create("debug.log", nil))
	Debugf("DECK", 1, 1, "line %d", 3)

	// Only one debug file.
	assert.Error(t, create("other.log", nil))

	data, err := afero.ReadFile(FileSystem, "debug.log")
	require.NoError(t, err)
	assert.Equal(t, "DECK: line 3\n", string(data))
}
