// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

func writeAIFF(t *testing.T, bits int, data []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := aiff.NewEncoder(f, 22050, bits, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 22050},
		Data:           data,
		SourceBitDepth: bits,
	}

	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("encode close: %v", err)
	}

	return path
}

func TestDecoder_16Bit(t *testing.T) {
	t.Parallel()

	f, err := os.Open(writeAIFF(t, 16, []int{16384, -16384, 0, -32768}))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	src, err := Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.SampleRate() != 22050 || src.Channels() != 1 {
		t.Fatalf("SampleRate() = %d, Channels() = %d", src.SampleRate(), src.Channels())
	}

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	want := []float32{0.5, -0.5, 0, -1}
	if n != len(want) {
		t.Fatalf("ReadSamples() = %d, want %d", n, len(want))
	}

	for i, w := range want {
		if buf[i] != w {
			t.Errorf("sample %d = %v, want %v", i, buf[i], w)
		}
	}
}

func TestDecoder_RejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("FORM....WAVE not aiff data")))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}
