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

package cvid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// NewWriter returns a Writer that emits a CVID stream to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Writer handles the construction of a CVID stream. The header must be
// written first, followed by exactly FrameCount frames.
type Writer struct {
	w      io.Writer
	props  *VideoProperties
	frame  []byte
	frames int
}

// WriteHeader writes the file header.
func (w *Writer) WriteHeader(props VideoProperties) error {
	if w.props != nil {
		return errors.New("header already written")
	}
	if props.FPS == 0 {
		return ErrZeroFPS
	}
	buf := make([]byte, HeaderSize)
	putHeader(buf, props)
	if _, err := w.w.Write(buf); err != nil {
		return err
	}
	w.props = &props
	w.frame = make([]byte, props.Stride())
	return nil
}

// WriteFrame packs and writes one frame. pixels holds width*height
// values in row-major order; true means the pixel is on.
func (w *Writer) WriteFrame(pixels []bool) error {
	if w.props == nil {
		return errors.New("header not written")
	}
	if w.frames >= int(w.props.FrameCount) {
		return fmt.Errorf("header declares %d frames", w.props.FrameCount)
	}
	if want := int(w.props.Width) * int(w.props.Height); len(pixels) != want {
		return fmt.Errorf("frame has %d pixels, expected %d", len(pixels), want)
	}
	PackBits(pixels, w.frame)
	if _, err := w.w.Write(w.frame); err != nil {
		return err
	}
	w.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int {
	return w.frames
}

// Close checks that the number of frames written matches the header.
// The underlying writer is not closed.
func (w *Writer) Close() error {
	if w.props == nil {
		return errors.New("header not written")
	}
	if w.frames != int(w.props.FrameCount) {
		return fmt.Errorf("wrote %d of %d frames", w.frames, w.props.FrameCount)
	}
	return nil
}

// PackBits packs pixels into out with the most significant bit first.
// Bits in out past the last pixel are cleared, including the stride's
// trailing byte.
func PackBits(pixels []bool, out []byte) {
	for i := range out {
		out[i] = 0
	}
	for i, on := range pixels {
		if on {
			out[i>>3] |= 0x80 >> uint(i&7)
		}
	}
}

// NewFileWriter creates filename and returns a buffered Writer for it.
func NewFileWriter(filename string) (*FileWriter, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	bw := bufio.NewWriterSize(f, 1024*1024)
	return &FileWriter{
		Writer: NewWriter(bw),
		f:      f,
		bw:     bw,
	}, nil
}

// FileWriter wraps a Writer and provides a convenient way of writing a
// CVID stream to a disk file.
type FileWriter struct {
	*Writer
	f  *os.File
	bw *bufio.Writer
}

// Name returns the name of the file being written.
func (fw *FileWriter) Name() string {
	return fw.f.Name()
}

// Close flushes and closes the file. An error is returned if the frame
// count doesn't match the header, but the file is still closed.
func (fw *FileWriter) Close() error {
	err := fw.Writer.Close()
	if ferr := fw.bw.Flush(); err == nil {
		err = ferr
	}
	if cerr := fw.f.Close(); err == nil {
		err = cerr
	}
	return err
}
