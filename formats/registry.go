// SPDX-License-Identifier: EPL-2.0

// Package formats wires the decoders under this directory into an
// audio.Registry.
package formats

import (
	"github.com/victorzappi/ar-audioengine/audio"
	"github.com/victorzappi/ar-audioengine/formats/aiff"
	"github.com/victorzappi/ar-audioengine/formats/mp3"
	"github.com/victorzappi/ar-audioengine/formats/vorbis"
	"github.com/victorzappi/ar-audioengine/formats/wav"
)

// Registry returns a registry with every built-in decoder.
func Registry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(wav.Decoder{}, "wav", "wave")
	r.Register(aiff.Decoder{}, "aif", "aiff", "aifc")
	r.Register(mp3.Decoder{}, "mp3")
	r.Register(vorbis.Decoder{}, "ogg", "oga")

	return r
}
