// Copyright 2020 The Cacophony Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cvid reads and writes CVID files: monochrome video with a
// fixed 7 byte header followed by bit-packed frames.
//
// Header layout (big endian):
//
//	0-1  width in pixels
//	2-3  height in pixels
//	4-5  frame count
//	6    frames per second
//
// Each frame is row-major with the most significant bit first, and
// takes Stride(width, height) bytes.
package cvid

import (
	"encoding/binary"
	"fmt"
	"time"
)

const (
	// HeaderSize is the length of the fixed file header.
	HeaderSize = 7

	// Ext is the file extension used for CVID files.
	Ext = ".cvid"
)

// VideoProperties holds the header fields of a CVID file.
type VideoProperties struct {
	Width      uint16
	Height     uint16
	FrameCount uint16
	FPS        uint8
}

// Rows returns the number of character rows needed to show a frame,
// with each character covering two pixel rows.
func (p VideoProperties) Rows() int {
	return (int(p.Height) + 1) / 2
}

// Stride returns the number of bytes each frame occupies.
func (p VideoProperties) Stride() int {
	return Stride(int(p.Width), int(p.Height))
}

// FrameOffset returns the byte offset of frame i within the pixel data.
func (p VideoProperties) FrameOffset(i int) int {
	return i * p.Stride()
}

// FrameBudget returns the minimum time between frames, truncated to
// whole microseconds. It is zero when FPS is zero.
func (p VideoProperties) FrameBudget() time.Duration {
	if p.FPS == 0 {
		return 0
	}
	return time.Duration(1000000/int(p.FPS)) * time.Microsecond
}

// DataSize returns the number of pixel data bytes needed to hold every
// frame.
func (p VideoProperties) DataSize() int {
	return int(p.FrameCount) * p.Stride()
}

func (p VideoProperties) String() string {
	return fmt.Sprintf("%dx%d, %d frames @ %dfps", p.Width, p.Height, p.FrameCount, p.FPS)
}

// Stride returns the bytes used by a width x height frame. There is
// always one byte after the packed pixels, even when width*height is a
// multiple of 8.
func Stride(width, height int) int {
	return width*height/8 + 1
}

func parseHeader(b []byte) VideoProperties {
	return VideoProperties{
		Width:      binary.BigEndian.Uint16(b[0:2]),
		Height:     binary.BigEndian.Uint16(b[2:4]),
		FrameCount: binary.BigEndian.Uint16(b[4:6]),
		FPS:        b[6],
	}
}

func putHeader(b []byte, p VideoProperties) {
	binary.BigEndian.PutUint16(b[0:2], p.Width)
	binary.BigEndian.PutUint16(b[2:4], p.Height)
	binary.BigEndian.PutUint16(b[4:6], p.FrameCount)
	b[6] = p.FPS
}

// Bitstream is the read-only pixel data following the header.
type Bitstream struct {
	data []byte
}

// NewBitstream returns a Bitstream holding a copy of data.
func NewBitstream(data []byte) Bitstream {
	return Bitstream{data: append([]byte(nil), data...)}
}

// Len returns the number of bytes in the stream.
func (b Bitstream) Len() int {
	return len(b.data)
}

// Byte returns the byte at offset i. ok is false if i is out of range.
func (b Bitstream) Byte(i int) (v byte, ok bool) {
	if i < 0 || i >= len(b.data) {
		return 0, false
	}
	return b.data[i], true
}

// Video is a parsed CVID file.
type Video struct {
	Properties VideoProperties
	Pixels     Bitstream
}

// CheckLength reports whether the pixel data is long enough to hold
// every frame declared in the header.
func (v *Video) CheckLength() error {
	need := v.Properties.DataSize()
	if have := v.Pixels.Len(); have < need {
		return fmt.Errorf("pixel data is %d bytes but %d frames need %d", have, v.Properties.FrameCount, need)
	}
	return nil
}
