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

// Package glyph maps two-pixel cell codes onto the characters drawn for
// them.
package glyph

import (
	"bytes"
	"fmt"
	"unicode"
)

// Code describes a character cell covering two vertically stacked
// pixels. Bit 0 is the top pixel and bit 1 the bottom.
type Code uint8

const (
	Blank Code = iota
	Top
	Bottom
	Both
)

// Table holds the symbol drawn for each Code.
type Table [4]rune

// DefaultTable uses the block elements found in code page 437 (32, 223,
// 220 and 219).
var DefaultTable = Table{' ', '▀', '▄', '█'}

// NewTable returns DefaultTable with the symbols for Top, Bottom and
// Both replaced by the three characters of override. An empty override
// returns DefaultTable. Blank is always a space.
func NewTable(override string) (Table, error) {
	if override == "" {
		return DefaultTable, nil
	}
	r := []rune(override)
	if len(r) != 3 {
		return Table{}, fmt.Errorf("glyph override %q must have exactly 3 characters, got %d", override, len(r))
	}
	for _, c := range r {
		if !unicode.IsPrint(c) {
			return Table{}, fmt.Errorf("glyph override %q contains unprintable character %U", override, c)
		}
	}
	return Table{' ', r[0], r[1], r[2]}, nil
}

// Symbol returns the character for c.
func (t Table) Symbol(c Code) (rune, error) {
	if int(c) >= len(t) {
		return 0, fmt.Errorf("invalid glyph code %d", c)
	}
	return t[c], nil
}

func (t Table) String() string {
	return string(t[:])
}

// Render converts a grid of codes into text, with each of the rows
// terminated by a newline.
func Render(codes []Code, width, rows int, table Table) (string, error) {
	var buf bytes.Buffer
	if err := render(&buf, codes, width, rows, table); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Renderer renders successive frames into a reused buffer.
type Renderer struct {
	table Table
	buf   bytes.Buffer
}

func NewRenderer(table Table) *Renderer {
	return &Renderer{table: table}
}

func (r *Renderer) Render(codes []Code, width, rows int) (string, error) {
	r.buf.Reset()
	if err := render(&r.buf, codes, width, rows, r.table); err != nil {
		return "", err
	}
	return r.buf.String(), nil
}

func render(buf *bytes.Buffer, codes []Code, width, rows int, table Table) error {
	if width < 0 || rows < 0 || len(codes) != width*rows {
		return fmt.Errorf("have %d codes for %dx%d cells", len(codes), width, rows)
	}
	buf.Grow((width*3 + 1) * rows)
	for y := 0; y < rows; y++ {
		for _, c := range codes[y*width : (y+1)*width] {
			s, err := table.Symbol(c)
			if err != nil {
				return err
			}
			buf.WriteRune(s)
		}
		buf.WriteByte('\n')
	}
	return nil
}
