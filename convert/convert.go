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

// Package convert turns animated images and thermal recordings into
// CVID videos.
package convert

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/gift"

	"github.com/TheCacophonyProject/cvid-player/cvid"
)

const (
	DefaultLuminance = 128

	// MaxWidth and MaxHeight are the largest sizes that fit a typical
	// full screen console.
	MaxWidth  = 240
	MaxHeight = 126
)

// Clip is a decoded source video.
type Clip struct {
	Frames []image.Image
	FPS    int
}

// Options controls how a Clip is scaled and reduced to monochrome.
type Options struct {
	// Height in pixels is required. A zero Width is derived from the
	// clip's aspect ratio.
	Width  int
	Height int

	// Pixels brighter than Luminance are on.
	Luminance int

	// FPS overrides the clip's frame rate when non-zero.
	FPS int
}

// Size returns the output size for a source of the given bounds.
func (o Options) Size(src image.Rectangle) (int, int) {
	if o.Width > 0 || src.Dy() == 0 {
		return o.Width, o.Height
	}
	aspect := float64(src.Dx()) / float64(src.Dy())
	return int(math.Floor(aspect * float64(o.Height))), o.Height
}

// Properties works out the header for converting clip with opts.
func Properties(clip *Clip, opts Options) (cvid.VideoProperties, error) {
	if len(clip.Frames) == 0 {
		return cvid.VideoProperties{}, errors.New("clip has no frames")
	}
	if len(clip.Frames) > math.MaxUint16 {
		return cvid.VideoProperties{}, fmt.Errorf("clip has %d frames, at most %d are supported", len(clip.Frames), math.MaxUint16)
	}
	if opts.Height <= 0 {
		return cvid.VideoProperties{}, errors.New("height must be positive")
	}
	if opts.Luminance < 0 || opts.Luminance > 255 {
		return cvid.VideoProperties{}, fmt.Errorf("luminance %d not in 0-255", opts.Luminance)
	}
	width, height := opts.Size(clip.Frames[0].Bounds())
	if width <= 0 || width > math.MaxUint16 || height > math.MaxUint16 {
		return cvid.VideoProperties{}, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	fps := clip.FPS
	if opts.FPS > 0 {
		fps = opts.FPS
	}
	if fps < 1 || fps > math.MaxUint8 {
		return cvid.VideoProperties{}, fmt.Errorf("frame rate %d not in 1-255", fps)
	}
	return cvid.VideoProperties{
		Width:      uint16(width),
		Height:     uint16(height),
		FrameCount: uint16(len(clip.Frames)),
		FPS:        uint8(fps),
	}, nil
}

// Convert scales, thresholds and writes every frame of clip to w,
// starting with the header.
func Convert(clip *Clip, opts Options, w *cvid.Writer) (cvid.VideoProperties, error) {
	props, err := Properties(clip, opts)
	if err != nil {
		return props, err
	}
	if err := w.WriteHeader(props); err != nil {
		return props, err
	}

	width, height := int(props.Width), int(props.Height)
	g := gift.New(
		gift.Resize(width, height, gift.LinearResampling),
		gift.Grayscale(),
	)
	gray := image.NewGray(image.Rect(0, 0, width, height))
	pixels := make([]bool, width*height)
	for i, frame := range clip.Frames {
		g.Draw(gray, frame)
		Threshold(gray, opts.Luminance, pixels)
		if err := w.WriteFrame(pixels); err != nil {
			return props, fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return props, nil
}

// Threshold sets out[i] for each pixel of img brighter than luminance,
// in row-major order.
func Threshold(img *image.Gray, luminance int, out []bool) {
	b := img.Bounds()
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			out[i] = int(row[x]) > luminance
			i++
		}
	}
}
