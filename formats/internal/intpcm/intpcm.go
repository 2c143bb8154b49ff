// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio integer PCM decoders to audio.Source.
package intpcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// Reader is the subset of the go-audio wav and aiff decoders used here.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type Source struct {
	dec      Reader
	rate     int
	channels int
	offset   int
	scale    float32
	buf      *goaudio.IntBuffer
}

// New wraps dec. Samples are shifted by offset (for unsigned encodings) and
// scaled by 2^-(bits-1).
func New(dec Reader, format *goaudio.Format, bits, offset int) *Source {
	return &Source{
		dec:      dec,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		offset:   offset,
		scale:    1 / float32(int64(1)<<(bits-1)),
		buf:      &goaudio.IntBuffer{Format: format, SourceBitDepth: bits},
	}
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v-s.offset) * s.scale
	}

	switch {
	case n == 0 && err == nil:
		return 0, io.EOF
	case err != nil && err != io.EOF:
		return n, fmt.Errorf("%w", err)
	}

	return n, err
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return bytes.NewReader(data), nil
}
