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

package convert

import (
	"errors"
	"image"
	"io"

	cptv "github.com/TheCacophonyProject/go-cptv"
	"github.com/TheCacophonyProject/go-cptv/cptvframe"
)

// cptvSource is the part of a cptv.Reader used here.
type cptvSource interface {
	cptvframe.CameraSpec
	ReadFrame(*cptvframe.Frame) error
}

// LoadCPTV reads every frame of a CPTV thermal recording. Each frame is
// stretched so its coldest pixel is black and its warmest white, which
// puts the default luminance threshold halfway between them.
func LoadCPTV(r io.Reader) (*Clip, error) {
	reader, err := cptv.NewReader(r)
	if err != nil {
		return nil, err
	}
	return readCPTV(reader)
}

func readCPTV(src cptvSource) (*Clip, error) {
	clip := &Clip{FPS: src.FPS()}
	frame := cptvframe.NewFrame(src)
	for {
		if err := src.ReadFrame(frame); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		clip.Frames = append(clip.Frames, normalise(frame, src.ResX(), src.ResY()))
	}
	if len(clip.Frames) == 0 {
		return nil, errors.New("recording has no frames")
	}
	return clip, nil
}

func normalise(frame *cptvframe.Frame, resX, resY int) *image.Gray {
	min, max := uint16(0xffff), uint16(0)
	for _, row := range frame.Pix {
		for _, v := range row {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	img := image.NewGray(image.Rect(0, 0, resX, resY))
	spread := int(max) - int(min)
	if spread == 0 {
		return img
	}
	for y, row := range frame.Pix {
		for x, v := range row {
			img.Pix[y*img.Stride+x] = uint8((int(v) - int(min)) * 255 / spread)
		}
	}
	return img
}
