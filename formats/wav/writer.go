// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/victorzappi/ar-audioengine/pcmformat"
)

// Writer stores raw interleaved frames, as produced by the frame converter,
// in a WAV file. It accepts the signed little-endian integer formats.
type Writer struct {
	enc      *wav.Encoder
	format   pcmformat.Format
	phys     int // container bytes per sample
	bytes    int // significant bytes per sample
	channels int
	frames   int
	buf      *goaudio.IntBuffer
}

func NewWriter(w io.WriteSeeker, format pcmformat.Format, rate, channels int) (*Writer, error) {
	switch format {
	case pcmformat.S16LE, pcmformat.S24LE, pcmformat.S24_3LE, pcmformat.S32LE:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if rate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: rate %d channels %d", ErrUnsupportedWavLayout, rate, channels)
	}

	bits := format.SignedBits()

	return &Writer{
		enc:      wav.NewEncoder(w, rate, bits, channels, formatPCM),
		format:   format,
		phys:     format.PhysicalBits() / 8,
		bytes:    bits / 8,
		channels: channels,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
			SourceBitDepth: bits,
		},
	}, nil
}

// Write encodes p, which must hold whole frames.
func (w *Writer) Write(p []byte) (int, error) {
	frameBytes := w.phys * w.channels
	if len(p)%frameBytes != 0 {
		return 0, fmt.Errorf("%w: %d bytes, frame is %d", ErrPartialFrame, len(p), frameBytes)
	}

	samples := len(p) / w.phys
	if cap(w.buf.Data) < samples {
		w.buf.Data = make([]int, samples)
	}
	w.buf.Data = w.buf.Data[:samples]

	shift := 32 - 8*w.bytes
	for i := range samples {
		src := p[i*w.phys:]

		var v uint32
		for b := range w.bytes {
			v |= uint32(src[b]) << (8 * b)
		}
		w.buf.Data[i] = int(int32(v<<shift) >> shift)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	w.frames += samples / w.channels

	return len(p), nil
}

// Frames is the number of frames written so far.
func (w *Writer) Frames() int { return w.frames }

// Close finalizes the headers. It does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
