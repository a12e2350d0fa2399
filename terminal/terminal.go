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

// Package terminal draws text frames on an ANSI/VT100 compatible
// terminal.
package terminal

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// SizeFunc reports the largest number of columns and rows a display can
// show.
type SizeFunc func() (cols, rows int, err error)

type Option func(*ANSI)

// WithMaxSize overrides the display size reported by MaxSize. Zero
// values leave the detected size in place.
func WithMaxSize(cols, rows int) Option {
	return func(t *ANSI) {
		t.maxCols, t.maxRows = cols, rows
	}
}

// WithCP437 encodes text as code page 437 instead of UTF-8, for
// terminals using a DOS font.
func WithCP437() Option {
	return func(t *ANSI) {
		t.enc = encoding.ReplaceUnsupported(charmap.CodePage437.NewEncoder())
	}
}

// ANSI is a display driven with escape sequences. Output is buffered
// and flushed once per operation.
type ANSI struct {
	out     io.Writer
	size    SizeFunc
	resize  func(cols, rows int) error
	enc     *encoding.Encoder
	buf     []byte
	maxCols int
	maxRows int
}

// NewANSI returns a display writing to out. size may be nil if
// WithMaxSize supplies both dimensions.
func NewANSI(out io.Writer, size SizeFunc, opts ...Option) *ANSI {
	t := &ANSI{
		out:  out,
		size: size,
		buf:  make([]byte, 0, 64*1024),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Open returns a display for the terminal attached to f, using the
// platform's way of finding and changing its size.
func Open(f *os.File, opts ...Option) (*ANSI, error) {
	if err := enableVT(f); err != nil {
		return nil, err
	}
	t := NewANSI(f, func() (int, int, error) { return size(f) }, opts...)
	t.resize = nativeResize(f)
	return t, nil
}

func (t *ANSI) MaxSize() (int, int, error) {
	if t.maxCols > 0 && t.maxRows > 0 {
		return t.maxCols, t.maxRows, nil
	}
	if t.size == nil {
		return 0, 0, errors.New("display size unknown")
	}
	cols, rows, err := t.size()
	if err != nil {
		return 0, 0, err
	}
	if t.maxCols > 0 {
		cols = t.maxCols
	}
	if t.maxRows > 0 {
		rows = t.maxRows
	}
	return cols, rows, nil
}

// Resize asks the terminal to change to cols x rows and clears it.
// Terminals that ignore the xterm resize request keep their size.
func (t *ANSI) Resize(cols, rows int) error {
	if t.resize != nil {
		if err := t.resize(cols, rows); err != nil {
			return err
		}
	} else {
		t.buf = append(t.buf, "\033[8;"...)
		t.buf = strconv.AppendInt(t.buf, int64(rows), 10)
		t.buf = append(t.buf, ';')
		t.buf = strconv.AppendInt(t.buf, int64(cols), 10)
		t.buf = append(t.buf, 't')
	}
	t.buf = append(t.buf, "\033[2J"...)
	return t.flush()
}

// MoveCursor moves to column x of row y, counting from zero.
func (t *ANSI) MoveCursor(x, y int) error {
	if x == 0 && y == 0 {
		t.buf = append(t.buf, "\033[H"...)
	} else {
		t.buf = append(t.buf, "\033["...)
		t.buf = strconv.AppendInt(t.buf, int64(y+1), 10)
		t.buf = append(t.buf, ';')
		t.buf = strconv.AppendInt(t.buf, int64(x+1), 10)
		t.buf = append(t.buf, 'H')
	}
	return t.flush()
}

// Write draws newline separated rows. Rows after the first start in
// column zero. A final newline is dropped so a display exactly as tall
// as the text doesn't scroll.
func (t *ANSI) Write(text string) error {
	text = strings.TrimSuffix(text, "\n")
	if t.enc != nil {
		var err error
		if text, err = t.enc.String(text); err != nil {
			return err
		}
	}
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			break
		}
		t.buf = append(t.buf, text[:i]...)
		t.buf = append(t.buf, "\r\n"...)
		text = text[i+1:]
	}
	t.buf = append(t.buf, text...)
	return t.flush()
}

func (t *ANSI) SetCursorVisible(visible bool) error {
	if visible {
		t.buf = append(t.buf, "\033[?25h"...)
	} else {
		t.buf = append(t.buf, "\033[?25l"...)
	}
	return t.flush()
}

// Restore shows the cursor, bypassing the buffer. It is meant for an
// interrupted playback, where a frame may still be half written.
func (t *ANSI) Restore() error {
	_, err := io.WriteString(t.out, "\r\n\033[?25h")
	return err
}

func (t *ANSI) flush() error {
	buf := t.buf
	for len(buf) > 0 {
		n, err := t.out.Write(buf)
		if err == io.ErrShortWrite {
			buf = buf[n:]
			continue
		}
		t.buf = t.buf[:0]
		return err
	}
	t.buf = t.buf[:0]
	return nil
}
