// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources for tests. It does not
// import package audio so that audio's own tests can use it.
package audiotest

import (
	"io"
	"math"
)

// Source generates frames from a waveform function. It satisfies
// audio.Source.
type Source struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     func(frame, channel int) float32

	// Err, when set, is returned by ReadSamples once FailAt frames have
	// been produced.
	Err    error
	FailAt int

	Closed int
}

func New(rate, channels, frames int, wave func(frame, channel int) float32) *Source {
	return &Source{rate: rate, channels: channels, frames: frames, wave: wave}
}

func Silence(rate, channels, frames int) *Source {
	return New(rate, channels, frames, func(int, int) float32 { return 0 })
}

func Constant(rate, channels, frames int, v float32) *Source {
	return New(rate, channels, frames, func(int, int) float32 { return v })
}

func Sine(rate, channels, frames int, freq float64) *Source {
	return New(rate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(rate)))
	})
}

// Channels returns a source whose channel c carries the constant value
// values[c].
func Channels(rate, frames int, values ...float32) *Source {
	return New(rate, len(values), frames, func(_, c int) float32 { return values[c] })
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }

func (s *Source) Close() error {
	s.Closed++
	return nil
}

// Rewind restarts the waveform from frame zero.
func (s *Source) Rewind() { s.pos = 0 }

// Position is the number of frames produced so far.
func (s *Source) Position() int { return s.pos }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.Err != nil && s.pos >= s.FailAt {
		return 0, s.Err
	}

	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	if s.Err != nil {
		n = min(n, s.FailAt-s.pos)
	}

	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.wave(s.pos+f, c)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}
