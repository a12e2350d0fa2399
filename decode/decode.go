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

// Package decode turns the bit-packed frames of a CVID video into grids
// of glyph codes.
package decode

import (
	"fmt"

	"github.com/TheCacophonyProject/cvid-player/cvid"
	"github.com/TheCacophonyProject/cvid-player/glyph"
)

// Cells holds one decoded frame: Width*Rows codes in row-major order.
type Cells struct {
	Width int
	Rows  int
	Codes []glyph.Code
}

// At returns the code for column x of character row y.
func (c *Cells) At(x, y int) glyph.Code {
	return c.Codes[y*c.Width+x]
}

// DecodeError is returned when a frame can't be decoded from the pixel
// data. Offset is -1 when the frame index itself is out of range, in
// which case Frames holds the frame count.
type DecodeError struct {
	Frame  int
	Offset int
	Len    int
	Frames int
}

func (e *DecodeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("frame %d out of range, video has %d frames", e.Frame, e.Frames)
	}
	return fmt.Sprintf("frame %d: byte offset %d is outside %d bytes of pixel data", e.Frame, e.Offset, e.Len)
}

// Frame decodes frame i into freshly allocated Cells.
func Frame(props cvid.VideoProperties, bits cvid.Bitstream, i int) (*Cells, error) {
	return NewDecoder(props, bits).Frame(i)
}

// Decoder decodes frames of a single video, reusing one Cells value.
type Decoder struct {
	props cvid.VideoProperties
	bits  cvid.Bitstream
	cells Cells
}

func NewDecoder(props cvid.VideoProperties, bits cvid.Bitstream) *Decoder {
	width, rows := int(props.Width), props.Rows()
	return &Decoder{
		props: props,
		bits:  bits,
		cells: Cells{
			Width: width,
			Rows:  rows,
			Codes: make([]glyph.Code, width*rows),
		},
	}
}

// Frame decodes frame i. The returned Cells are overwritten by the next
// call.
func (d *Decoder) Frame(i int) (*Cells, error) {
	if i < 0 || i >= int(d.props.FrameCount) {
		return nil, &DecodeError{Frame: i, Offset: -1, Len: d.bits.Len(), Frames: int(d.props.FrameCount)}
	}

	width, height := int(d.props.Width), int(d.props.Height)
	base := d.props.FrameOffset(i)
	for r := 0; r < d.cells.Rows; r++ {
		y := 2 * r
		for x := 0; x < width; x++ {
			top := y*width + x
			t, err := d.bit(i, base, top)
			if err != nil {
				return nil, err
			}
			var b glyph.Code
			// An odd height leaves the last row's bottom half empty.
			if y+1 < height {
				b, err = d.bit(i, base, top+width)
				if err != nil {
					return nil, err
				}
			}
			d.cells.Codes[r*width+x] = b<<1 | t
		}
	}
	return &d.cells, nil
}

func (d *Decoder) bit(frame, base, index int) (glyph.Code, error) {
	offset := base + index/8
	v, ok := d.bits.Byte(offset)
	if !ok {
		return 0, &DecodeError{Frame: frame, Offset: offset, Len: d.bits.Len()}
	}
	if v&(0x80>>uint(index%8)) != 0 {
		return 1, nil
	}
	return 0, nil
}
