// SPDX-License-Identifier: EPL-2.0

package param

import "fmt"

// MediaFormat is the output media format of a media format converter.
type MediaFormat struct {
	SampleRate int32
	BitWidth   int16
	Channels   int16
}

const mediaFormatFixedSize = 8

func (m MediaFormat) String() string {
	return fmt.Sprintf("mfc %d Hz %d bit %d ch", m.SampleRate, m.BitWidth, m.Channels)
}

// Build lays out rate, bit width, channel count and the channel map.
func (m MediaFormat) Build(miid uint32) *Payload {
	channels := max(int(m.Channels), 0)

	p := New(miid, IDMFCOutputMediaFormat, mediaFormatFixedSize+2*channels)
	c := cursor{b: p.Body()}
	c.i32(m.SampleRate)
	c.i16(m.BitWidth)
	c.i16(m.Channels)

	for _, role := range ChannelMap(channels) {
		c.u16(role)
	}

	return p
}

// DeviceInterfaceConfig configures an ALSA sink module. Zero thresholds
// leave the choice to the sink.
type DeviceInterfaceConfig struct {
	CardID           int32
	DeviceID         int32
	PeriodCount      int32
	StartThreshold   int32
	StopThreshold    int32
	SilenceThreshold int32
}

func (d DeviceInterfaceConfig) String() string {
	return fmt.Sprintf("alsa sink card %d device %d periods %d", d.CardID, d.DeviceID, d.PeriodCount)
}

func (d DeviceInterfaceConfig) Build(miid uint32) *Payload {
	p := New(miid, IDALSADeviceIntfCfg, 24)
	c := cursor{b: p.Body()}
	c.i32(d.CardID)
	c.i32(d.DeviceID)
	c.i32(d.PeriodCount)
	c.i32(d.StartThreshold)
	c.i32(d.StopThreshold)
	c.i32(d.SilenceThreshold)

	return p
}

// FrameSizeFactor sets the hardware endpoint frame size factor. It can only
// be applied once per endpoint, so concurrent instances on the same sink
// must not set it.
type FrameSizeFactor struct {
	Factor int32
}

func (f FrameSizeFactor) String() string {
	return fmt.Sprintf("frame size factor %d", f.Factor)
}

func (f FrameSizeFactor) Build(miid uint32) *Payload {
	p := New(miid, IDHWEndpointFrameSizeFac, 4)
	c := cursor{b: p.Body()}
	c.i32(f.Factor)

	return p
}
