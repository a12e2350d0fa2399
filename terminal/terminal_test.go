// cvid-player - play monochrome bit-packed video as text art
// Copyright (C) 2020, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package terminal

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSize(cols, rows int) SizeFunc {
	return func() (int, int, error) { return cols, rows, nil }
}

func TestMaxSize(t *testing.T) {
	term := NewANSI(new(bytes.Buffer), fixedSize(80, 25))
	cols, rows, err := term.MaxSize()
	require.NoError(t, err)
	assert.Equal(t, 80, cols)
	assert.Equal(t, 25, rows)

	term = NewANSI(new(bytes.Buffer), fixedSize(80, 25), WithMaxSize(0, 60))
	cols, rows, err = term.MaxSize()
	require.NoError(t, err)
	assert.Equal(t, 80, cols)
	assert.Equal(t, 60, rows)

	term = NewANSI(new(bytes.Buffer), nil, WithMaxSize(240, 63))
	cols, rows, err = term.MaxSize()
	require.NoError(t, err)
	assert.Equal(t, 240, cols)
	assert.Equal(t, 63, rows)

	_, _, err = NewANSI(new(bytes.Buffer), nil).MaxSize()
	assert.Error(t, err)

	failing := func() (int, int, error) { return 0, 0, errors.New("not a tty") }
	_, _, err = NewANSI(new(bytes.Buffer), failing).MaxSize()
	assert.Error(t, err)
}

func TestResize(t *testing.T) {
	var out bytes.Buffer
	term := NewANSI(&out, fixedSize(80, 25))
	require.NoError(t, term.Resize(40, 12))
	assert.Equal(t, "\033[8;12;40t\033[2J", out.String())
}

func TestNativeResize(t *testing.T) {
	var out bytes.Buffer
	var got [2]int
	term := NewANSI(&out, fixedSize(80, 25))
	term.resize = func(cols, rows int) error {
		got = [2]int{cols, rows}
		return nil
	}
	require.NoError(t, term.Resize(40, 12))
	assert.Equal(t, [2]int{40, 12}, got)
	assert.Equal(t, "\033[2J", out.String())
}

func TestMoveCursor(t *testing.T) {
	var out bytes.Buffer
	term := NewANSI(&out, nil)
	require.NoError(t, term.MoveCursor(0, 0))
	assert.Equal(t, "\033[H", out.String())

	out.Reset()
	require.NoError(t, term.MoveCursor(4, 2))
	assert.Equal(t, "\033[3;5H", out.String())
}

func TestCursorVisibility(t *testing.T) {
	var out bytes.Buffer
	term := NewANSI(&out, nil)
	require.NoError(t, term.SetCursorVisible(false))
	require.NoError(t, term.SetCursorVisible(true))
	assert.Equal(t, "\033[?25l\033[?25h", out.String())

	out.Reset()
	require.NoError(t, term.Restore())
	assert.Equal(t, "\r\n\033[?25h", out.String())
}

func TestWrite(t *testing.T) {
	var out bytes.Buffer
	term := NewANSI(&out, nil)
	require.NoError(t, term.Write("▀ █▀\n▄▄  \n"))
	assert.Equal(t, "▀ █▀\r\n▄▄  ", out.String())
}

func TestWriteCP437(t *testing.T) {
	var out bytes.Buffer
	term := NewANSI(&out, nil, WithCP437())
	require.NoError(t, term.Write("▀ █▀\n"))
	assert.Equal(t, []byte{0xdf, 0x20, 0xdb, 0xdf}, out.Bytes())

	out.Reset()
	require.NoError(t, term.Write("▄\n▄\n"))
	assert.Equal(t, []byte{0xdc, '\r', '\n', 0xdc}, out.Bytes())
}

func TestShortWrites(t *testing.T) {
	out := &shortWriter{max: 3}
	term := NewANSI(out, nil)
	require.NoError(t, term.Write("abcdefgh"))
	assert.Equal(t, "abcdefgh", out.buf.String())

	// The buffer is reset after each flush.
	require.NoError(t, term.Write("ij"))
	assert.Equal(t, "abcdefghij", out.buf.String())
}

func TestWriteError(t *testing.T) {
	term := NewANSI(errWriter{}, nil)
	assert.Error(t, term.MoveCursor(0, 0))
	assert.Empty(t, term.buf)
}

type shortWriter struct {
	buf bytes.Buffer
	max int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.max {
		w.buf.Write(p[:w.max])
		return w.max, io.ErrShortWrite
	}
	return w.buf.Write(p)
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}
