// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/victorzappi/ar-audioengine/utils"
)

const resampleBlock = 1024

// Resampler converts src to another sample rate with Catmull-Rom cubic
// interpolation, keeping the channel count. When downsampling a one-pole
// low-pass runs over the input first. Equal rates pass straight through.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames per output frame
	channels int

	// taps[1] and taps[2] bracket the output position; taps[0] and taps[3]
	// are the outer points of the spline.
	taps [4][]float32
	frac float64
	live int // real (not padded) frames among taps[1..3]

	primed bool
	eof    bool

	block  []float32
	blkPos int
	blkLen int

	lowpass []float32
	alpha   float32
	settled bool
}

func NewResampler(src Source, rate int) *Resampler {
	ch := src.Channels()

	r := &Resampler{
		src:      src,
		rate:     rate,
		step:     float64(src.SampleRate()) / float64(rate),
		channels: ch,
		block:    make([]float32, resampleBlock*ch),
	}

	for i := range r.taps {
		r.taps[i] = make([]float32, ch)
	}

	if r.step > 1 {
		r.alpha = 0.5
		r.lowpass = make([]float32, ch)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }

// Passthrough reports whether the source already runs at the target rate.
func (r *Resampler) Passthrough() bool { return r.src.SampleRate() == r.rate }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// pull copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) pull(dst []float32) (bool, error) {
	for r.blkPos+r.channels > r.blkLen {
		if r.eof {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.block)
		r.blkPos, r.blkLen = 0, n-n%r.channels

		if errors.Is(err, io.EOF) {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.block[r.blkPos:r.blkPos+r.channels])
	r.blkPos += r.channels

	if r.lowpass != nil {
		if !r.settled {
			// start the filter settled on the first frame
			copy(r.lowpass, dst)
			r.settled = true
		}

		for c := range dst {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.lowpass[c]
			r.lowpass[c] = dst[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	ok, err := r.pull(r.taps[1])
	if err != nil || !ok {
		return err
	}

	copy(r.taps[0], r.taps[1])
	r.live = 1

	for i := 2; i < 4; i++ {
		ok, err := r.pull(r.taps[i])
		if err != nil {
			return err
		}

		if ok {
			r.live++
		} else {
			copy(r.taps[i], r.taps[i-1])
		}
	}

	return nil
}

func (r *Resampler) advance() error {
	first := r.taps[0]
	copy(r.taps[:], r.taps[1:])
	r.taps[3] = first

	ok, err := r.pull(r.taps[3])
	if err != nil {
		return err
	}

	r.live--
	if ok {
		r.live++
	} else {
		copy(r.taps[3], r.taps[2])
	}

	return nil
}

func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if r.Passthrough() {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		r.primed = true
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		if r.live <= 0 {
			break
		}

		out := dst[written*r.channels : (written+1)*r.channels]
		x := float32(r.frac)
		for c := range out {
			out[c] = utils.CubicInterpolate(r.taps[0][c], r.taps[1][c], r.taps[2][c], r.taps[3][c], x)
		}
		written++

		r.frac += r.step
		for r.frac >= 1 {
			r.frac--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}
	}

	if written == 0 {
		return 0, io.EOF
	}

	return written * r.channels, nil
}
