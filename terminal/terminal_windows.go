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

// +build windows

package terminal

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procSetConsoleScreenBufferSize = kernel32.NewProc("SetConsoleScreenBufferSize")
	procSetConsoleWindowInfo       = kernel32.NewProc("SetConsoleWindowInfo")
)

func size(f *os.File) (int, int, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(f.Fd()), &info); err != nil {
		return 0, 0, err
	}
	return int(info.MaximumWindowSize.X), int(info.MaximumWindowSize.Y), nil
}

func enableVT(f *os.File) error {
	h := windows.Handle(f.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return err
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_PROCESSED_OUTPUT|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
}

// nativeResize sets both the console window and its buffer to the
// requested size. The window is shrunk first as the buffer can't be
// made smaller than it.
func nativeResize(f *os.File) func(cols, rows int) error {
	h := f.Fd()
	return func(cols, rows int) error {
		rect := windows.SmallRect{Right: int16(cols - 1), Bottom: int16(rows - 1)}
		procSetConsoleWindowInfo.Call(h, 1, uintptr(unsafe.Pointer(&rect)))

		coord := uintptr(uint32(uint16(cols)) | uint32(uint16(rows))<<16)
		if r, _, err := procSetConsoleScreenBufferSize.Call(h, coord); r == 0 {
			return fmt.Errorf("SetConsoleScreenBufferSize: %v", err)
		}
		if r, _, err := procSetConsoleWindowInfo.Call(h, 1, uintptr(unsafe.Pointer(&rect))); r == 0 {
			return fmt.Errorf("SetConsoleWindowInfo: %v", err)
		}
		return nil
	}
}
