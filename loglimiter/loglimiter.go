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

package loglimiter

import (
	"fmt"
	"log"
	"time"

	"github.com/juju/ratelimit"
)

// New returns a LogLimiter that lets through rate messages per second
// on average, with bursts of up to burst messages.
func New(rate float64, burst int64) *LogLimiter {
	return NewWithClock(rate, burst, new(realClock))
}

func NewWithClock(rate float64, burst int64, clock ratelimit.Clock) *LogLimiter {
	return &LogLimiter{
		bucket: ratelimit.NewBucketWithRateAndClock(rate, burst, clock),
	}
}

// LogLimiter drops log messages once they arrive faster than its token
// bucket refills. The number dropped is reported with the next message
// that gets through.
type LogLimiter struct {
	bucket     *ratelimit.Bucket
	suppressed int
	total      int
}

func (limiter *LogLimiter) Printf(format string, v ...interface{}) {
	limiter.Print(fmt.Sprintf(format, v...))
}

func (limiter *LogLimiter) Print(s string) {
	if limiter.bucket.TakeAvailable(1) == 0 {
		limiter.suppressed++
		limiter.total++
		return
	}
	if limiter.suppressed > 0 {
		s = fmt.Sprintf("%s (%d more suppressed)", s, limiter.suppressed)
		limiter.suppressed = 0
	}
	log.Print(s)
}

// Suppressed returns the total number of messages dropped.
func (limiter *LogLimiter) Suppressed() int {
	return limiter.total
}

// realClock implements ratelimit.Clock in terms of standard time functions.
type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
