// Copyright 2020 The Cacophony Project. All rights reserved.
// Use of this source code is governed by the Apache License Version 2.0;
// see the LICENSE file for further details.

package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	arg "github.com/alexflint/go-arg"

	"github.com/TheCacophonyProject/cvid-player/convert"
	"github.com/TheCacophonyProject/cvid-player/cvid"
)

var version = "<not set>"

type Args struct {
	Source     string `arg:"positional,required" help:"animated .gif or .cptv recording to convert"`
	Height     int    `arg:"-H,--height,required" help:"output height in pixels"`
	Width      int    `arg:"-w,--width" help:"output width in pixels, defaults to keeping the aspect ratio"`
	Luminance  int    `arg:"-l,--luminance" help:"pixels brighter than this (0-255) are on"`
	FPS        int    `arg:"-r,--fps" help:"override the source frame rate"`
	Output     string `arg:"-o,--output" help:"output file, defaults to the source name with a .cvid extension"`
	Timestamps bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.Luminance = convert.DefaultLuminance
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

	clip, err := loadClip(args.Source)
	if err != nil {
		return err
	}
	log.Printf("loaded %d frames @ %dfps from %s", len(clip.Frames), clip.FPS, args.Source)

	opts := convert.Options{
		Width:     args.Width,
		Height:    args.Height,
		Luminance: args.Luminance,
		FPS:       args.FPS,
	}
	width, height := opts.Size(clip.Frames[0].Bounds())
	if width > convert.MaxWidth || height > convert.MaxHeight {
		log.Printf("warning: %dx%d is larger than %dx%d and may not fit on screen",
			width, height, convert.MaxWidth, convert.MaxHeight)
	}

	output := args.Output
	if output == "" {
		output = outputName(args.Source)
	}
	fw, err := cvid.NewFileWriter(output)
	if err != nil {
		return err
	}
	props, err := convert.Convert(clip, opts, fw.Writer)
	if err != nil {
		fw.Close()
		os.Remove(output)
		return err
	}
	if err := fw.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s (%v)", output, props)
	return nil
}

func loadClip(path string) (*convert.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gif":
		return convert.LoadGIF(r)
	case ".cptv":
		return convert.LoadCPTV(r)
	default:
		return nil, fmt.Errorf("unsupported source type %q", ext)
	}
}

func outputName(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + cvid.Ext
}
