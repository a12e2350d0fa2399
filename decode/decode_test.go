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

package decode

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/cvid-player/cvid"
	"github.com/TheCacophonyProject/cvid-player/glyph"
)

func props(width, height, frames int) cvid.VideoProperties {
	return cvid.VideoProperties{
		Width:      uint16(width),
		Height:     uint16(height),
		FrameCount: uint16(frames),
		FPS:        10,
	}
}

func TestFrame(t *testing.T) {
	// 1011 over 0010
	cells, err := Frame(props(4, 2, 1), cvid.NewBitstream([]byte{0xb2, 0x00}), 0)
	require.NoError(t, err)

	assert.Equal(t, 4, cells.Width)
	assert.Equal(t, 1, cells.Rows)
	assert.Equal(t, []glyph.Code{glyph.Top, glyph.Blank, glyph.Both, glyph.Top}, cells.Codes)

	text, err := glyph.Render(cells.Codes, cells.Width, cells.Rows, glyph.DefaultTable)
	require.NoError(t, err)
	assert.Equal(t, "▀ █▀\n", text)
}

func TestEveryCode(t *testing.T) {
	// A 1x2 frame has one cell; try each pixel pair.
	cases := []struct {
		b    byte
		code glyph.Code
	}{
		{0x00, glyph.Blank},
		{0x80, glyph.Top},
		{0x40, glyph.Bottom},
		{0xc0, glyph.Both},
	}
	for _, c := range cases {
		cells, err := Frame(props(1, 2, 1), cvid.NewBitstream([]byte{c.b}), 0)
		require.NoError(t, err)
		assert.Equal(t, c.code, cells.At(0, 0), "byte %#x", c.b)
	}
}

func TestOddHeight(t *testing.T) {
	// 3x3, all pixels on; the last row has no bottom pixels.
	cells, err := Frame(props(3, 3, 1), cvid.NewBitstream([]byte{0xff, 0xff}), 0)
	require.NoError(t, err)

	require.Equal(t, 2, cells.Rows)
	for x := 0; x < 3; x++ {
		assert.Equal(t, glyph.Both, cells.At(x, 0))
		assert.Equal(t, glyph.Top, cells.At(x, 1))
	}
}

func TestFrameOffset(t *testing.T) {
	// Second frame of a 4x2 video starts at byte 2.
	bits := cvid.NewBitstream([]byte{0x00, 0x00, 0xf0, 0x00})
	d := NewDecoder(props(4, 2, 2), bits)

	cells, err := d.Frame(0)
	require.NoError(t, err)
	assert.Equal(t, []glyph.Code{0, 0, 0, 0}, cells.Codes)

	cells, err = d.Frame(1)
	require.NoError(t, err)
	assert.Equal(t, []glyph.Code{glyph.Top, glyph.Top, glyph.Top, glyph.Top}, cells.Codes)
}

func TestTruncatedPixels(t *testing.T) {
	// The trailing stride byte is never read, so a last frame missing it
	// still decodes.
	_, err := Frame(props(4, 2, 1), cvid.NewBitstream([]byte{0xb2}), 0)
	assert.NoError(t, err)

	_, err = Frame(props(4, 2, 2), cvid.NewBitstream([]byte{0xb2, 0x00}), 1)
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 1, de.Frame)
	assert.Equal(t, 2, de.Offset)
	assert.Equal(t, 2, de.Len)

	_, err = Frame(props(4, 2, 1), cvid.NewBitstream(nil), 0)
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 0, de.Offset)
}

func TestFrameIndexOutOfRange(t *testing.T) {
	bits := cvid.NewBitstream([]byte{0xb2, 0x00, 0xb2, 0x00})
	for _, i := range []int{-1, 1, 2} {
		_, err := Frame(props(4, 2, 1), bits, i)
		var de *DecodeError
		require.True(t, errors.As(err, &de), "frame %d", i)
		assert.Equal(t, -1, de.Offset)
		assert.Equal(t, 1, de.Frames)
	}
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, size := range [][2]int{{1, 1}, {4, 2}, {5, 3}, {16, 9}, {33, 17}} {
		width, height := size[0], size[1]
		const frames = 3
		p := props(width, height, frames)

		pixels := make([][]bool, frames)
		var buf bytes.Buffer
		w := cvid.NewWriter(&buf)
		require.NoError(t, w.WriteHeader(p))
		for i := range pixels {
			pixels[i] = make([]bool, width*height)
			for j := range pixels[i] {
				pixels[i][j] = r.Intn(2) == 1
			}
			require.NoError(t, w.WriteFrame(pixels[i]))
		}
		require.NoError(t, w.Close())

		v, err := cvid.Parse(&buf)
		require.NoError(t, err)
		require.Equal(t, p, v.Properties)

		d := NewDecoder(v.Properties, v.Pixels)
		for i := 0; i < frames; i++ {
			cells, err := d.Frame(i)
			require.NoError(t, err)
			for y := 0; y < cells.Rows; y++ {
				for x := 0; x < width; x++ {
					var want glyph.Code
					if pixels[i][2*y*width+x] {
						want |= glyph.Top
					}
					if 2*y+1 < height && pixels[i][(2*y+1)*width+x] {
						want |= glyph.Bottom
					}
					assert.Equal(t, want, cells.At(x, y), "%dx%d frame %d cell %d,%d", width, height, i, x, y)
				}
			}
		}
	}
}
