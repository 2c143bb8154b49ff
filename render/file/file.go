// SPDX-License-Identifier: EPL-2.0

// Package file renders a decoded audio file.
//
// The whole file is decoded and conformed to the session format during
// Setup, so Render only copies memory and never touches the disk.
package file

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/victorzappi/ar-audioengine/audio"
	"github.com/victorzappi/ar-audioengine/render"
)

const readChunk = 4096

type Option func(*Renderer)

// WithLoop restarts the file when it ends instead of falling silent.
func WithLoop(loop bool) Option {
	return func(r *Renderer) { r.loop = loop }
}

// WithGain scales every sample.
func WithGain(gain float32) Option {
	return func(r *Renderer) { r.gain = gain }
}

func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

type Renderer struct {
	path     string
	registry *audio.Registry
	loop     bool
	gain     float32
	logger   *log.Logger

	samples []float32
	pos     int
}

func New(path string, registry *audio.Registry, opts ...Option) *Renderer {
	r := &Renderer{
		path:     path,
		registry: registry,
		gain:     1,
		logger:   log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Renderer) Setup(ctx *render.Context) error {
	src, err := r.registry.Open(r.path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer src.Close()

	r.logger.Info("decoding", "file", r.path, "rate", src.SampleRate(), "channels", src.Channels())

	conformed, err := audio.Conform(src, ctx.SampleRate, ctx.Channels)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	samples, err := readAll(conformed)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", r.path, err)
	}

	if len(samples) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, r.path)
	}

	if r.gain != 1 {
		for i := range samples {
			samples[i] *= r.gain
		}
	}

	r.samples, r.pos = samples, 0
	r.logger.Info("file ready", "frames", len(samples)/ctx.Channels, "loop", r.loop)

	return nil
}

func readAll(src audio.Source) ([]float32, error) {
	var out []float32
	buf := make([]float32, readChunk*src.Channels())

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Render copies the next period. After the end of a non-looping file the
// buffer is left as silence.
func (r *Renderer) Render(ctx *render.Context) {
	dst := ctx.Buffer[:ctx.PeriodSize*ctx.Channels]

	for len(dst) > 0 {
		if r.pos >= len(r.samples) {
			if !r.loop || len(r.samples) == 0 {
				return
			}
			r.pos = 0
		}

		n := copy(dst, r.samples[r.pos:])
		r.pos += n
		dst = dst[n:]
	}
}

// Done reports whether a non-looping file has been played out.
func (r *Renderer) Done() bool {
	return !r.loop && r.pos >= len(r.samples)
}

func (r *Renderer) Cleanup(*render.Context) {
	r.samples = nil
	r.pos = 0
}
