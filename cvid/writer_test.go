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
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackBits(t *testing.T) {
	out := []byte{0xff, 0xff}
	PackBits([]bool{true, false, true, true, false, false, true, false}, out)
	assert.Equal(t, []byte{0xb2, 0x00}, out)

	out = make([]byte, 2)
	PackBits([]bool{false, false, false, false, false, false, false, false, true}, out)
	assert.Equal(t, []byte{0x00, 0x80}, out)
}

func TestWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader(VideoProperties{Width: 4, Height: 2, FrameCount: 2, FPS: 10}))
	require.NoError(t, w.WriteFrame([]bool{true, false, true, true, false, false, true, false}))
	require.NoError(t, w.WriteFrame(make([]bool, 8)))
	require.NoError(t, w.Close())
	assert.Equal(t, 2, w.Frames())

	assert.Equal(t, []byte{
		0x00, 0x04, 0x00, 0x02, 0x00, 0x02, 0x0a,
		0xb2, 0x00,
		0x00, 0x00,
	}, buf.Bytes())

	v, err := Parse(&buf)
	require.NoError(t, err)
	assert.NoError(t, v.CheckLength())
}

func TestWriterErrors(t *testing.T) {
	w := NewWriter(ioutil.Discard)
	assert.Error(t, w.WriteFrame(make([]bool, 8)))
	assert.Equal(t, ErrZeroFPS, w.WriteHeader(VideoProperties{Width: 4, Height: 2, FrameCount: 1}))

	require.NoError(t, w.WriteHeader(VideoProperties{Width: 4, Height: 2, FrameCount: 1, FPS: 1}))
	assert.Error(t, w.WriteHeader(VideoProperties{Width: 4, Height: 2, FrameCount: 1, FPS: 1}))
	assert.Error(t, w.WriteFrame(make([]bool, 7)))
	assert.Error(t, w.Close())

	require.NoError(t, w.WriteFrame(make([]bool, 8)))
	assert.Error(t, w.WriteFrame(make([]bool, 8)))
	assert.NoError(t, w.Close())
}

func TestFileWriter(t *testing.T) {
	dir, err := ioutil.TempDir("", "cvid")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "out.cvid")
	fw, err := NewFileWriter(path)
	require.NoError(t, err)
	assert.Equal(t, path, fw.Name())
	require.NoError(t, fw.WriteHeader(VideoProperties{Width: 3, Height: 3, FrameCount: 1, FPS: 24}))
	require.NoError(t, fw.WriteFrame([]bool{
		true, true, true,
		false, false, false,
		true, false, true,
	}))
	require.NoError(t, fw.Close())

	v, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, VideoProperties{Width: 3, Height: 3, FrameCount: 1, FPS: 24}, v.Properties)
	b0, _ := v.Pixels.Byte(0)
	b1, _ := v.Pixels.Byte(1)
	assert.Equal(t, byte(0xe2), b0)
	assert.Equal(t, byte(0x80), b1)
}
