// SPDX-License-Identifier: EPL-2.0

// Package pcmformat models PCM sample formats using the kernel (SNDRV)
// numbering, which is also what the ALSA transport and the graph backend
// configuration expect.
package pcmformat

import (
	"fmt"
	"strings"
)

// Format is a SNDRV PCM sample format.
type Format int

const (
	S8      Format = 0
	U8      Format = 1
	S16LE   Format = 2
	S16BE   Format = 3
	U16LE   Format = 4
	U16BE   Format = 5
	S24LE   Format = 6
	S24BE   Format = 7
	U24LE   Format = 8
	U24BE   Format = 9
	S32LE   Format = 10
	S32BE   Format = 11
	U32LE   Format = 12
	U32BE   Format = 13
	FloatLE Format = 14
	FloatBE Format = 15
	S24_3LE Format = 32
	S24_3BE Format = 33

	// Invalid marks an unset format.
	Invalid Format = -1
)

var names = map[Format]string{
	S8:      "S8",
	U8:      "U8",
	S16LE:   "S16_LE",
	S16BE:   "S16_BE",
	U16LE:   "U16_LE",
	U16BE:   "U16_BE",
	S24LE:   "S24_LE",
	S24BE:   "S24_BE",
	U24LE:   "U24_LE",
	U24BE:   "U24_BE",
	S32LE:   "S32_LE",
	S32BE:   "S32_BE",
	U32LE:   "U32_LE",
	U32BE:   "U32_BE",
	FloatLE: "FLOAT_LE",
	FloatBE: "FLOAT_BE",
	S24_3LE: "S24_3LE",
	S24_3BE: "S24_3BE",
}

func (f Format) String() string {
	if n, ok := names[f]; ok {
		return n
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	_, ok := names[f]
	return ok
}

// PhysicalBits is the storage width of one sample, padding included.
func (f Format) PhysicalBits() int {
	switch f {
	case S8, U8:
		return 8
	case S16LE, S16BE, U16LE, U16BE:
		return 16
	case S24_3LE, S24_3BE:
		return 24
	case S24LE, S24BE, U24LE, U24BE, S32LE, S32BE, U32LE, U32BE, FloatLE, FloatBE:
		return 32
	default:
		return 0
	}
}

// SignedBits is the number of significant bits of a signed format.
// S24_LE stores 24 significant bits in 32. Unknown formats report 16.
func (f Format) SignedBits() int {
	switch f {
	case S24_3LE, S24LE:
		return 24
	case S32LE:
		return 32
	case S8:
		return 8
	default:
		return 16
	}
}

func (f Format) BigEndian() bool {
	switch f {
	case S16BE, S24BE, S24_3BE, S32BE, FloatBE:
		return true
	default:
		return false
	}
}

func (f Format) Float() bool {
	return f == FloatLE || f == FloatBE
}

// FromSignedBits picks the little-endian signed format for a bit depth.
// 24 bits select the packed 3-byte layout.
func FromSignedBits(bits int) (Format, error) {
	switch bits {
	case 8:
		return S8, nil
	case 16:
		return S16LE, nil
	case 24:
		return S24_3LE, nil
	case 32:
		return S32LE, nil
	default:
		return Invalid, fmt.Errorf("%w: %d", ErrUnsupportedBits, bits)
	}
}

// BackendFromBits is the backend format for a bit depth when no explicit
// format is configured. Unsupported depths fall back to S16_LE.
func BackendFromBits(bits int) Format {
	switch bits {
	case 32:
		return S32LE
	case 8:
		return S8
	case 24:
		return S24_3LE
	default:
		return S16LE
	}
}

// Backend restricts f to the formats a backend accepts. Others fall back
// to S16_LE.
func Backend(f Format) Format {
	switch f {
	case S32LE, S8, S24_3LE, S24LE:
		return f
	default:
		return S16LE
	}
}

// Parse reads a format name, with or without the "PCM_FORMAT_" prefix.
// Only the signed little-endian formats a backend accepts are recognized.
func Parse(s string) (Format, error) {
	switch strings.TrimPrefix(strings.TrimSpace(s), "PCM_FORMAT_") {
	case "S16_LE":
		return S16LE, nil
	case "S32_LE":
		return S32LE, nil
	case "S8":
		return S8, nil
	case "S24_LE":
		return S24LE, nil
	case "S24_3LE":
		return S24_3LE, nil
	default:
		return Invalid, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}
