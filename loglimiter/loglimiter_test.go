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
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/juju/ratelimit"
	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {
	logs, reset := captureLogs()
	defer reset()

	limiter := New(1, 5)
	limiter.Print("hello")
	limiter.Print("world")

	assert.Equal(t, "hello\nworld\n", logs.String())
}

func TestPrintf(t *testing.T) {
	logs, reset := captureLogs()
	defer reset()

	limiter := New(1, 5)
	limiter.Printf("frame: %d", 42)
	limiter.Printf("late by: %v", 3*time.Millisecond)

	assert.Equal(t, "frame: 42\nlate by: 3ms\n", logs.String())
}

func TestLimitPrint(t *testing.T) {
	logs, reset := captureLogs()
	defer reset()

	clock := &testClock{now: time.Now()}
	limiter := NewWithClock(1, 2, clock)

	limiter.Print("one")
	limiter.Print("two")
	assert.Equal(t, "one\ntwo\n", logs.String())

	// Bucket is empty.
	limiter.Print("three")
	limiter.Print("four")
	assert.Equal(t, "one\ntwo\n", logs.String())
	assert.Equal(t, 2, limiter.Suppressed())

	// Advance time but not enough for a new token.
	clock.Sleep(500 * time.Millisecond)
	limiter.Print("five")
	assert.Equal(t, "one\ntwo\n", logs.String())

	// One token has been added now.
	clock.Sleep(500 * time.Millisecond)
	limiter.Print("six")
	assert.Equal(t, "one\ntwo\nsix (3 more suppressed)\n", logs.String())
	limiter.Print("seven")
	assert.Equal(t, "one\ntwo\nsix (3 more suppressed)\n", logs.String())
	assert.Equal(t, 4, limiter.Suppressed())
}

func captureLogs() (*bytes.Buffer, func()) {
	flags := log.Flags()
	log.SetFlags(0)

	logs := new(bytes.Buffer)
	log.SetOutput(logs)

	return logs, func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	}
}

var _ ratelimit.Clock = new(realClock)
var _ ratelimit.Clock = new(testClock)

// testClock implements a fake ratelimit.Clock for testing.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
}
