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

package playback

// Surface is the display frames are drawn on. Coordinates and sizes are
// in character cells.
type Surface interface {
	// MaxSize returns the largest area the surface can show.
	MaxSize() (cols, rows int, err error)
	Resize(cols, rows int) error
	MoveCursor(x, y int) error
	// Write draws newline separated rows starting at the cursor.
	Write(text string) error
	SetCursorVisible(visible bool) error
}

// Audio starts a soundtrack. PlayAsync must return without waiting for
// playback and do nothing if path isn't playable.
type Audio interface {
	PlayAsync(path string)
}

// NoAudio is an Audio that never plays anything.
type NoAudio struct{}

func (NoAudio) PlayAsync(string) {}
