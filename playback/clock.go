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

import "time"

// Clock paces frames. WaitUntil blocks until the deadline has passed.
type Clock interface {
	Now() time.Time
	WaitUntil(deadline time.Time)
}

// SpinClock waits by polling the monotonic clock without yielding. It
// gives the most even cadence at the cost of a busy CPU core.
type SpinClock struct{}

func (SpinClock) Now() time.Time {
	return time.Now()
}

func (SpinClock) WaitUntil(deadline time.Time) {
	for time.Now().Before(deadline) {
	}
}

// HybridClock sleeps until Margin before the deadline and spins for the
// rest.
type HybridClock struct {
	Margin time.Duration
}

func (HybridClock) Now() time.Time {
	return time.Now()
}

func (c HybridClock) WaitUntil(deadline time.Time) {
	if d := time.Until(deadline) - c.Margin; d > 0 {
		time.Sleep(d)
	}
	SpinClock{}.WaitUntil(deadline)
}
