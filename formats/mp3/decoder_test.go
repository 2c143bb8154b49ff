// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// chunkedPCM hands out its data a few bytes at a time, splitting samples
// across reads the way a frame boundary in the decoder can.
type chunkedPCM struct {
	data  []byte
	chunk int
	err   error
}

func (c *chunkedPCM) SampleRate() int { return 44100 }

func (c *chunkedPCM) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		if c.err != nil {
			return 0, c.err
		}
		return 0, io.EOF
	}

	n := copy(p[:min(len(p), c.chunk)], c.data)
	c.data = c.data[n:]

	return n, nil
}

func TestSource_ReassemblesSplitSamples(t *testing.T) {
	t.Parallel()

	// 0x4000 = 0.5, 0xC000 = -0.5, 0x7FFF, 0x8000
	pcm := []byte{0x00, 0x40, 0x00, 0xC0, 0xFF, 0x7F, 0x00, 0x80}
	src := newSource(&chunkedPCM{data: pcm, chunk: 3})

	if src.Channels() != 2 || src.SampleRate() != 44100 {
		t.Fatalf("Channels() = %d, SampleRate() = %d", src.Channels(), src.SampleRate())
	}

	var got []float32
	buf := make([]float32, 4)
	for range 20 {
		n, err := src.ReadSamples(buf)
		got = append(got, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := []float32{0.5, -0.5, 32767.0 / 32768, -1}
	if len(got) != len(want) {
		t.Fatalf("got %d samples %v, want %v", len(got), got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSource_PropagatesErrors(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken frame")
	src := newSource(&chunkedPCM{err: errBroken})

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, errBroken) {
		t.Errorf("ReadSamples() error = %v, want %v", err, errBroken)
	}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
}

func TestDecoder_RejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("not an mp3"))); err == nil {
		t.Error("Decode() error = nil for non-MP3 data")
	}
}
