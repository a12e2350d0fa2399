// Copyright 2020 The Cacophony Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cvid

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"os"
)

// ReadFile opens and parses the CVID file at path.
func ReadFile(path string) (*Video, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "could not open", Err: err}
	}
	defer f.Close()

	v, err := Parse(bufio.NewReader(f))
	if err != nil {
		if fe, ok := err.(*FormatError); ok {
			fe.Path = path
		}
		return nil, err
	}
	return v, nil
}

// Parse reads a complete CVID stream from r. Only the header is
// checked; a stream with too little pixel data parses successfully (see
// Video.CheckLength).
func Parse(r io.Reader) (*Video, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, &FormatError{Reason: "read failed", Err: err}
	}
	if len(data) < HeaderSize {
		return nil, &FormatError{
			Reason: fmt.Sprintf("truncated header: need %d bytes, got %d", HeaderSize, len(data)),
		}
	}

	props := parseHeader(data[:HeaderSize])
	if props.FPS == 0 {
		return nil, &FormatError{Reason: "invalid header", Err: ErrZeroFPS}
	}

	return &Video{
		Properties: props,
		Pixels:     Bitstream{data: data[HeaderSize:]},
	}, nil
}
