// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedEncoding  = errors.New("only integer PCM WAV of 8, 16, 24 or 32 bits is supported")
	ErrUnsupportedWavChunks = errors.New("unsupported WAV chunks")
	ErrUnsupportedFormat    = errors.New("WAV writer needs a signed little-endian sample format")
	ErrPartialFrame         = errors.New("write is not a whole number of frames")
)
