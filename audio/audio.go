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

// Package audio starts a video's soundtrack without waiting for it.
package audio

import (
	"errors"
	"os"
)

var errNoPlayer = errors.New("no audio player found")

// Player plays audio files in the background.
type Player struct {
	stat func(string) (os.FileInfo, error)
	play func(string) error
	err  error
}

func NewPlayer() *Player {
	return &Player{
		stat: os.Stat,
		play: playFile,
	}
}

// PlayAsync starts playing path and returns straight away. Nothing
// happens if path isn't a regular file or can't be played.
func (p *Player) PlayAsync(path string) {
	info, err := p.stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	p.err = p.play(path)
}

// Err returns the error from the last attempt to start playing, if
// any.
func (p *Player) Err() error {
	return p.err
}
