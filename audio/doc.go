// SPDX-License-Identifier: EPL-2.0

// Package audio holds the decoded-audio side of the engine: the Source
// interface implemented by every decoder in formats/, a Registry that picks
// a decoder by file extension, and the stages used to bring a file to the
// session format.
//
// # Pipeline
//
//	src, err := registry.Open("loop.wav")
//	if err != nil {
//	    return err
//	}
//	conformed, err := audio.Conform(src, 48000, 2)
//
// Conform chains a MonoMixer or ChannelMapper with a Resampler as needed.
// Samples are float32 in [-1,1], interleaved.
//
// # End of stream
//
// A Source may return n > 0 together with io.EOF. Callers consume the n
// samples before acting on the error.
package audio
