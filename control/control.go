// SPDX-License-Identifier: EPL-2.0

// Package control describes the named mixer controls through which an
// audio graph is configured.
//
// Controls are addressed as "<device> <suffix>", where device is a
// frontend (e.g. "PCM100") or backend (e.g. "CODEC_DMA-LPAIF_WSA-RX-0")
// name.
package control

import "fmt"

// Control suffixes.
const (
	Metadata      = "metadata"
	Control       = "control"
	Connect       = "connect"
	Disconnect    = "disconnect"
	SetParam      = "setParam"
	GetTaggedInfo = "getTaggedInfo"
	MediaConfig   = "rate ch fmt"
)

// Endpoint builds a control name from a device name and a suffix.
func Endpoint(device, suffix string) string {
	return device + " " + suffix
}

// Mixer is a control transport. Writes are either an enumerated string,
// an integer array or a byte blob; reads are byte blobs.
type Mixer interface {
	SetEnum(name, value string) error
	SetInts(name string, values []int) error
	SetBytes(name string, data []byte) error
	ReadBytes(name string, dst []byte) (int, error)
	Close() error
}

// MixerOpener opens the control transport of a card.
type MixerOpener interface {
	OpenMixer(card uint) (Mixer, error)
}

// OpenerFunc adapts a function to MixerOpener.
type OpenerFunc func(card uint) (Mixer, error)

func (f OpenerFunc) OpenMixer(card uint) (Mixer, error) { return f(card) }

// FrontendName returns the conventional frontend name for a PCM device.
func FrontendName(device uint) string {
	return fmt.Sprintf("PCM%d", device)
}
