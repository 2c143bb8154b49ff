// SPDX-License-Identifier: EPL-2.0

// Package sine renders a fixed sine tone on every channel.
package sine

import (
	"math"

	"github.com/victorzappi/ar-audioengine/render"
)

const (
	DefaultAmplitude = 0.5
	DefaultFrequency = 330.0
)

const twoPi = 2 * math.Pi

// Renderer is a sine oscillator. The zero value is not usable; use New.
type Renderer struct {
	Amplitude float64
	Frequency float64

	phase    float64
	phaseInc float64
}

func New() *Renderer {
	return &Renderer{Amplitude: DefaultAmplitude, Frequency: DefaultFrequency}
}

func (r *Renderer) Setup(ctx *render.Context) error {
	if ctx.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	r.phase = 0
	r.phaseInc = twoPi * r.Frequency / float64(ctx.SampleRate)

	return nil
}

func (r *Renderer) Render(ctx *render.Context) {
	for n := range ctx.PeriodSize {
		sample := float32(r.Amplitude * math.Sin(r.phase))

		r.phase += r.phaseInc
		for r.phase > twoPi {
			r.phase -= twoPi
		}

		frame := ctx.Buffer[n*ctx.Channels : (n+1)*ctx.Channels]
		for c := range frame {
			frame[c] = sample
		}
	}
}

func (r *Renderer) Cleanup(*render.Context) {}
