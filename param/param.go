// SPDX-License-Identifier: EPL-2.0

// Package param builds module parameter payloads for the setParam control.
//
// A payload is a 16-byte header followed by a parameter body, zero padded
// so the transmitted length is a multiple of 8 bytes.
package param

import "encoding/binary"

// HeaderSize is the size of the module parameter header.
const HeaderSize = 16

// Parameter ids.
const (
	IDMFCOutputMediaFormat   uint32 = 0x08001024
	IDALSADeviceIntfCfg      uint32 = 0x08FFFFF3
	IDHWEndpointFrameSizeFac uint32 = 0x08001018
)

// Pad8 returns the number of zero bytes needed to round x up to a multiple of 8.
func Pad8(x int) int {
	return ((x + 7) & 7) ^ 7
}

// Header is the module parameter header.
type Header struct {
	ModuleInstanceID uint32
	ParamID          uint32
	ParamSize        uint32
	ErrorCode        uint32
}

// Payload is a header plus body plus alignment padding in one buffer.
type Payload struct {
	buf      []byte
	bodySize int
}

// New allocates a zeroed payload and writes its header. The body is left
// for the caller to fill through Body.
func New(miid, paramID uint32, bodySize int) *Payload {
	unpadded := HeaderSize + bodySize
	buf := make([]byte, unpadded+Pad8(unpadded))

	binary.LittleEndian.PutUint32(buf[0:], miid)
	binary.LittleEndian.PutUint32(buf[4:], paramID)
	binary.LittleEndian.PutUint32(buf[8:], uint32(bodySize))
	binary.LittleEndian.PutUint32(buf[12:], 0)

	return &Payload{buf: buf, bodySize: bodySize}
}

// Header decodes the header back from the buffer.
func (p *Payload) Header() Header {
	return Header{
		ModuleInstanceID: binary.LittleEndian.Uint32(p.buf[0:]),
		ParamID:          binary.LittleEndian.Uint32(p.buf[4:]),
		ParamSize:        binary.LittleEndian.Uint32(p.buf[8:]),
		ErrorCode:        binary.LittleEndian.Uint32(p.buf[12:]),
	}
}

// Body is the writable body region, without padding.
func (p *Payload) Body() []byte {
	return p.buf[HeaderSize : HeaderSize+p.bodySize]
}

// Bytes is the full padded payload, ready for transmission.
func (p *Payload) Bytes() []byte { return p.buf }

func (p *Payload) UnpaddedSize() int { return HeaderSize + p.bodySize }

func (p *Payload) Padding() int { return len(p.buf) - p.UnpaddedSize() }

// Builder produces a payload for a resolved module instance.
type Builder interface {
	Build(miid uint32) *Payload
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(miid uint32) *Payload

func (f BuilderFunc) Build(miid uint32) *Payload { return f(miid) }

// cursor writes little-endian fields into a body.
type cursor struct {
	b   []byte
	off int
}

func (c *cursor) i32(v int32) {
	binary.LittleEndian.PutUint32(c.b[c.off:], uint32(v))
	c.off += 4
}

func (c *cursor) i16(v int16) {
	binary.LittleEndian.PutUint16(c.b[c.off:], uint16(v))
	c.off += 2
}

func (c *cursor) u16(v uint16) {
	binary.LittleEndian.PutUint16(c.b[c.off:], v)
	c.off += 2
}
