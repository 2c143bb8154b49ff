// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Conform wraps src so that it produces rate Hz with the given channel
// count. Channels are mapped before resampling so that a downmix shrinks
// the interpolation work. Stages that would be no-ops are skipped.
func Conform(src Source, rate, channels int) (Source, error) {
	if rate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: rate %d channels %d", ErrInvalidFormat, rate, channels)
	}

	if src.SampleRate() <= 0 || src.Channels() <= 0 {
		return nil, fmt.Errorf("%w: source rate %d channels %d", ErrInvalidFormat, src.SampleRate(), src.Channels())
	}

	out := src

	switch {
	case src.Channels() == channels:
	case channels == 1:
		out = NewMonoMixer(out)
	default:
		out = NewChannelMapper(out, channels)
	}

	if out.SampleRate() != rate {
		out = NewResampler(out, rate)
	}

	return out, nil
}
