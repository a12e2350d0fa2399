// Copyright 2020 The Cacophony Project. All rights reserved.
// Use of this source code is governed by the Apache License Version 2.0;
// see the LICENSE file for further details.

package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/TheCacophonyProject/cvid-player/glyph"
)

const (
	cadenceSpin   = "spin"
	cadenceHybrid = "hybrid"

	encodingUTF8  = "utf-8"
	encodingCP437 = "cp437"
)

type Config struct {
	Glyphs         string        `yaml:"glyphs"`
	Audio          bool          `yaml:"audio"`
	VideoExt       string        `yaml:"video-ext"`
	AudioExt       string        `yaml:"audio-ext"`
	Cadence        string        `yaml:"cadence"`
	SpinMargin     time.Duration `yaml:"spin-margin"`
	MaxCols        int           `yaml:"max-cols"`
	MaxRows        int           `yaml:"max-rows"`
	Encoding       string        `yaml:"encoding"`
	OverrunLogRate float64       `yaml:"overrun-log-rate"`
}

var defaultConfig = Config{
	Glyphs:         "",
	Audio:          true,
	VideoExt:       ".cvid",
	AudioExt:       ".wav",
	Cadence:        cadenceSpin,
	SpinMargin:     2 * time.Millisecond,
	Encoding:       encodingUTF8,
	OverrunLogRate: 1,
}

// ParseConfigFile reads filename. A missing file gives the defaults.
func ParseConfigFile(filename string) (*Config, error) {
	buf, err := ioutil.ReadFile(filename)
	if os.IsNotExist(err) {
		buf = nil
	} else if err != nil {
		return nil, err
	}
	return ParseConfig(buf)
}

func ParseConfig(buf []byte) (*Config, error) {
	conf := defaultConfig
	if err := yaml.Unmarshal(buf, &conf); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (conf *Config) Validate() error {
	if _, err := glyph.NewTable(conf.Glyphs); err != nil {
		return err
	}
	if conf.VideoExt == "" {
		return errors.New("video-ext can't be empty")
	}
	switch conf.Cadence {
	case cadenceSpin, cadenceHybrid:
	default:
		return fmt.Errorf("cadence must be %q or %q, not %q", cadenceSpin, cadenceHybrid, conf.Cadence)
	}
	if conf.SpinMargin < 0 {
		return errors.New("spin-margin can't be negative")
	}
	if conf.MaxCols < 0 || conf.MaxRows < 0 {
		return errors.New("max-cols and max-rows can't be negative")
	}
	switch conf.Encoding {
	case encodingUTF8, encodingCP437:
	default:
		return fmt.Errorf("encoding must be %q or %q, not %q", encodingUTF8, encodingCP437, conf.Encoding)
	}
	if conf.OverrunLogRate <= 0 {
		return errors.New("overrun-log-rate must be positive")
	}
	return nil
}
