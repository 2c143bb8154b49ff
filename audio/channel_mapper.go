// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMapper changes the channel count of src.
//
// A mono source fans out to every output channel. With fewer outputs than
// inputs, input channel i is averaged into output i%out. With more outputs,
// output o repeats input o%in. Equal counts pass through.
type ChannelMapper struct {
	src Source
	out int
	tmp []float32
	sum []int
}

func NewChannelMapper(src Source, channels int) *ChannelMapper {
	m := &ChannelMapper{src: src, out: channels}

	in := src.Channels()
	if channels < in {
		m.sum = make([]int, channels)
		for i := range in {
			m.sum[i%channels]++
		}
	}

	return m
}

func (m *ChannelMapper) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMapper) Channels() int   { return m.out }

func (m *ChannelMapper) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMapper) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}

	in := m.src.Channels()
	if in == m.out {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.out
	if cap(m.tmp) < frames*in {
		m.tmp = make([]float32, frames*in)
	}
	m.tmp = m.tmp[:frames*in]

	n, err := m.src.ReadSamples(m.tmp)
	frames = n / in

	for f := range frames {
		src := m.tmp[f*in : (f+1)*in]
		out := dst[f*m.out : (f+1)*m.out]

		if m.sum == nil {
			for o := range out {
				out[o] = src[o%in]
			}
			continue
		}

		clear(out)
		for i, s := range src {
			out[i%m.out] += s
		}
		for o := range out {
			out[o] /= float32(m.sum[o])
		}
	}

	return frames * m.out, err
}
