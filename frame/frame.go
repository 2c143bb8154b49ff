// SPDX-License-Identifier: EPL-2.0

// Package frame converts a period of float samples into the raw byte
// layout a PCM device expects.
package frame

import (
	"fmt"
	"math"

	"github.com/victorzappi/ar-audioengine/pcmformat"
	"github.com/victorzappi/ar-audioengine/utils"
)

// Context holds the per-stream conversion parameters and the two period
// buffers. Input is filled by the renderer, Output is handed to the device.
type Context struct {
	Format pcmformat.Format

	// BytesPerSample is the number of bytes written per sample.
	BytesPerSample int
	// PhysicalBytesPerSample is the storage width of a sample.
	PhysicalBytesPerSample int
	// MaxValue is the positive full scale of integer formats.
	MaxValue int64

	BigEndian bool
	Float     bool

	PeriodSize int
	Channels   int
	// Samples is PeriodSize*Channels.
	Samples int

	Input  []float32
	Output []byte
}

// NewContext sizes the buffers for one period. bits is the significant
// bit depth used for quantization; zero derives it from the format. It is
// ignored for float formats.
func NewContext(format pcmformat.Format, bits, channels, periodSize int) (*Context, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	if channels <= 0 || periodSize <= 0 {
		return nil, fmt.Errorf("%w: %d channels, period of %d frames", ErrInvalidGeometry, channels, periodSize)
	}

	c := &Context{
		Format:                 format,
		PhysicalBytesPerSample: format.PhysicalBits() / 8,
		BigEndian:              format.BigEndian(),
		Float:                  format.Float(),
		PeriodSize:             periodSize,
		Channels:               channels,
		Samples:                periodSize * channels,
	}

	c.BytesPerSample = c.PhysicalBytesPerSample
	if format == pcmformat.S24_3LE || format == pcmformat.S24_3BE {
		c.BytesPerSample = 3
	}

	if !c.Float {
		if bits == 0 {
			bits = format.SignedBits()
		}

		if bits < 2 || bits > 8*c.PhysicalBytesPerSample {
			return nil, fmt.Errorf("%w: %d bits in %v", ErrInvalidBits, bits, format)
		}

		c.MaxValue = utils.MaxValue(bits)
	}

	c.Input = make([]float32, c.Samples)
	c.Output = make([]byte, c.Samples*c.PhysicalBytesPerSample)

	return c, nil
}

// FrameBytes is the size of one interleaved frame in Output.
func (c *Context) FrameBytes() int {
	return c.Channels * c.PhysicalBytesPerSample
}

// Convert writes Input into Output and zeroes Input for the next period.
func (c *Context) Convert() []byte {
	out := c.Output
	off := 0

	for _, x := range c.Input {
		var v int32
		if c.Float {
			v = int32(math.Float32bits(x))
		} else {
			v = utils.Quantize(x, c.MaxValue)
		}

		if c.BigEndian {
			SplitBE(out[off:off+c.PhysicalBytesPerSample], v, c.BytesPerSample)
		} else {
			SplitLE(out[off:], v, c.BytesPerSample)
		}

		off += c.BytesPerSample
	}

	clear(c.Input)

	return out
}

// SplitLE writes the n low bytes of v, least significant first.
func SplitLE(dst []byte, v int32, n int) {
	for i := range n {
		dst[i] = byte(v >> (8 * i))
	}
}

// SplitBE writes the n low bytes of v, least significant at the end of dst.
func SplitBE(dst []byte, v int32, n int) {
	last := len(dst) - 1
	for i := range n {
		dst[last-i] = byte(v >> (8 * i))
	}
}
