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

// Package playback draws the frames of a CVID video on a Surface at the
// video's frame rate.
package playback

import (
	"errors"
	"fmt"
	"time"

	"github.com/TheCacophonyProject/cvid-player/cvid"
	"github.com/TheCacophonyProject/cvid-player/decode"
	"github.com/TheCacophonyProject/cvid-player/glyph"
	"github.com/TheCacophonyProject/cvid-player/loglimiter"
)

// State is the lifecycle stage of a Scheduler. It only moves forward.
type State int

const (
	Idle State = iota
	Playing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrAlreadyPlayed is returned by Play on a Scheduler that has left
// Idle.
var ErrAlreadyPlayed = errors.New("video has already been played")

// DimensionError is returned when the video doesn't fit on the surface.
// Width and Height are in pixels, MaxCols and MaxRows in characters.
type DimensionError struct {
	Width   int
	Height  int
	MaxCols int
	MaxRows int
}

func (e *DimensionError) Error() string {
	if e.Width > e.MaxCols {
		return fmt.Sprintf("video is %d pixels wide but the display only fits %d", e.Width, e.MaxCols)
	}
	return fmt.Sprintf("video is %d pixels high but the display only fits %d", e.Height, e.MaxRows*2)
}

// Stats summarises a playback.
type Stats struct {
	Frames   int
	Overruns int
	// MaxLag is the largest amount a frame ran over its budget.
	MaxLag time.Duration
}

type Option func(*Scheduler)

// WithClock sets the clock used to pace frames. SpinClock is the
// default.
func WithClock(clock Clock) Option {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

// WithAudioPath sets the soundtrack started when playback begins.
func WithAudioPath(path string) Option {
	return func(s *Scheduler) {
		s.audioPath = path
	}
}

// WithLogger logs frames which take longer than their budget.
func WithLogger(logger *loglimiter.LogLimiter) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// Scheduler plays a video once.
type Scheduler struct {
	video     *cvid.Video
	table     glyph.Table
	surface   Surface
	audio     Audio
	audioPath string
	clock     Clock
	logger    *loglimiter.LogLimiter
	state     State
	stats     Stats
}

func New(video *cvid.Video, table glyph.Table, surface Surface, audio Audio, opts ...Option) *Scheduler {
	if audio == nil {
		audio = NoAudio{}
	}
	s := &Scheduler{
		video:   video,
		table:   table,
		surface: surface,
		audio:   audio,
		clock:   SpinClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) State() State {
	return s.state
}

func (s *Scheduler) Stats() Stats {
	return s.stats
}

// Play checks the video fits on the surface, prepares the surface and
// then draws every frame, waiting out each frame's budget. The cursor
// is hidden while playing.
func (s *Scheduler) Play() error {
	if s.state != Idle {
		return ErrAlreadyPlayed
	}

	props := s.video.Properties
	width, rows := int(props.Width), props.Rows()
	maxCols, maxRows, err := s.surface.MaxSize()
	if err != nil {
		return fmt.Errorf("failed to get display size: %w", err)
	}
	if width > maxCols || rows > maxRows {
		return &DimensionError{
			Width:   width,
			Height:  int(props.Height),
			MaxCols: maxCols,
			MaxRows: maxRows,
		}
	}

	s.state = Playing
	err = s.play(width, rows)
	s.state = Done
	if cerr := s.surface.SetCursorVisible(true); err == nil && cerr != nil {
		err = fmt.Errorf("failed to show cursor: %w", cerr)
	}
	return err
}

func (s *Scheduler) play(width, rows int) error {
	if err := s.surface.Resize(width, rows); err != nil {
		return fmt.Errorf("failed to resize display: %w", err)
	}
	if err := s.surface.SetCursorVisible(false); err != nil {
		return fmt.Errorf("failed to hide cursor: %w", err)
	}
	if s.audioPath != "" {
		s.audio.PlayAsync(s.audioPath)
	}

	props := s.video.Properties
	budget := props.FrameBudget()
	decoder := decode.NewDecoder(props, s.video.Pixels)
	renderer := glyph.NewRenderer(s.table)
	for i := 0; i < int(props.FrameCount); i++ {
		start := s.clock.Now()

		cells, err := decoder.Frame(i)
		if err != nil {
			return err
		}
		text, err := renderer.Render(cells.Codes, cells.Width, cells.Rows)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := s.surface.MoveCursor(0, 0); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := s.surface.Write(text); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		s.stats.Frames++

		deadline := start.Add(budget)
		if lag := s.clock.Now().Sub(deadline); lag > 0 {
			s.overrun(i, budget, lag)
		}
		s.clock.WaitUntil(deadline)
	}
	return nil
}

func (s *Scheduler) overrun(frame int, budget, lag time.Duration) {
	s.stats.Overruns++
	if lag > s.stats.MaxLag {
		s.stats.MaxLag = lag
	}
	if s.logger != nil {
		s.logger.Printf("frame %d took %v longer than its %v budget", frame, lag, budget)
	}
}
