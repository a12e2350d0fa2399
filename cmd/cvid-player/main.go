// Copyright 2020 The Cacophony Project. All rights reserved.
// Use of this source code is governed by the Apache License Version 2.0;
// see the LICENSE file for further details.

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	arg "github.com/alexflint/go-arg"

	"github.com/TheCacophonyProject/cvid-player/audio"
	"github.com/TheCacophonyProject/cvid-player/cvid"
	"github.com/TheCacophonyProject/cvid-player/glyph"
	"github.com/TheCacophonyProject/cvid-player/loglimiter"
	"github.com/TheCacophonyProject/cvid-player/playback"
	"github.com/TheCacophonyProject/cvid-player/terminal"
)

const overrunBurst = 5

var version = "<not set>"

type Args struct {
	Video      string `arg:"-v,--video" help:"name of the video to play, without its extension"`
	Charset    string `arg:"-c,--charset" help:"three characters to draw top, bottom and full cells with"`
	ConfigFile string `arg:"--config" help:"path to configuration file"`
	NoAudio    bool   `arg:"--no-audio" help:"don't play the video's soundtrack"`
	Timestamps bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
	Verbose    bool   `arg:"--verbose" help:"log frames that take longer than the frame rate allows"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.ConfigFile = "/etc/cvid-player.yaml"
	arg.MustParse(&args)
	return args
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	args := procArgs()

	if !args.Timestamps {
		log.SetFlags(0) // Removes default timestamp flag
	}

	conf, err := ParseConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}
	if args.Charset != "" {
		conf.Glyphs = args.Charset
	}
	if args.NoAudio {
		conf.Audio = false
	}
	table, err := glyph.NewTable(conf.Glyphs)
	if err != nil {
		return err
	}
	if args.Verbose {
		log.Printf("running version: %s", version)
		logConfig(conf)
	}

	name := args.Video
	if name == "" {
		name, err = promptVideoName(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
	}

	video, err := cvid.ReadFile(name + conf.VideoExt)
	if err != nil {
		return err
	}
	if err := video.CheckLength(); err != nil {
		log.Printf("warning: %v", err)
	}
	if args.Verbose {
		log.Printf("video: %v", video.Properties)
	}

	surface, err := terminal.Open(os.Stdout, terminalOptions(conf)...)
	if err != nil {
		return err
	}

	sched := playback.New(video, table, surface, audio.NewPlayer(), schedulerOptions(conf, name, args.Verbose)...)
	stop := restoreOnInterrupt(surface)
	defer stop()
	if err := sched.Play(); err != nil {
		var de *playback.DimensionError
		if errors.As(err, &de) {
			return fmt.Errorf("%v (enlarge the window or reduce the font size)", err)
		}
		return err
	}

	if args.Verbose {
		stats := sched.Stats()
		log.Printf("played %d frames, %d late (worst by %v)", stats.Frames, stats.Overruns, stats.MaxLag)
	}
	return nil
}

func logConfig(conf *Config) {
	if conf.Glyphs != "" {
		log.Printf("glyphs: %q", conf.Glyphs)
	}
	log.Printf("audio: %v", conf.Audio)
	log.Printf("cadence: %s", conf.Cadence)
	if conf.Cadence == cadenceHybrid {
		log.Printf("spin margin: %v", conf.SpinMargin)
	}
	if conf.MaxCols > 0 || conf.MaxRows > 0 {
		log.Printf("max size: %dx%d", conf.MaxCols, conf.MaxRows)
	}
	log.Printf("encoding: %s", conf.Encoding)
}

// promptVideoName asks for the video to play and reads a single word.
func promptVideoName(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter the name of the video to play: ")
	var name string
	if _, err := fmt.Fscan(in, &name); err != nil {
		return "", fmt.Errorf("no video given: %v", err)
	}
	return strings.TrimSpace(name), nil
}

func terminalOptions(conf *Config) []terminal.Option {
	var opts []terminal.Option
	if conf.MaxCols > 0 || conf.MaxRows > 0 {
		opts = append(opts, terminal.WithMaxSize(conf.MaxCols, conf.MaxRows))
	}
	if conf.Encoding == encodingCP437 {
		opts = append(opts, terminal.WithCP437())
	}
	return opts
}

func schedulerOptions(conf *Config, name string, verbose bool) []playback.Option {
	var opts []playback.Option
	if conf.Cadence == cadenceHybrid {
		opts = append(opts, playback.WithClock(playback.HybridClock{Margin: conf.SpinMargin}))
	}
	if conf.Audio {
		opts = append(opts, playback.WithAudioPath(name+conf.AudioExt))
	}
	if verbose {
		opts = append(opts, playback.WithLogger(loglimiter.New(conf.OverrunLogRate, overrunBurst)))
	}
	return opts
}

// restoreOnInterrupt shows the cursor again if playback is interrupted.
func restoreOnInterrupt(surface *terminal.ANSI) func() {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt)
	go func() {
		select {
		case <-sigs:
			surface.Restore()
			os.Exit(130)
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
