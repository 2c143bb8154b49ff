// SPDX-License-Identifier: EPL-2.0

// Package backendconf loads the backend configuration file, which lists the
// media format of every hardware backend:
//
//	<config>
//	  <device name="CODEC_DMA-LPAIF_WSA-RX-0" rate="48000" ch="2" bits="16"/>
//	  <device name="CODEC_DMA-LPAIF_RXTX-RX-0" rate="48000" ch="2" bits="24" format="PCM_FORMAT_S24_LE"/>
//	  <group_device name="TDM-LPAIF-RX-SECONDARY-VIRT-0" rate="48000" ch="8" bits="16" slot_mask="255"/>
//	</config>
package backendconf

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/victorzappi/ar-audioengine/pcmformat"
)

const (
	elemDevice = "device"
	elemGroup  = "group_device"
)

// Device is one backend record. Format is pcmformat.Invalid when the record
// has no usable format attribute.
type Device struct {
	Name     string
	Rate     int
	Channels int
	Bits     int
	Format   pcmformat.Format
}

// MediaFormat returns the format and bit depth pushed to the backend. An
// explicit format wins and fixes the bit depth; otherwise the depth picks
// the format.
func (d Device) MediaFormat() (pcmformat.Format, int) {
	if d.Format.Valid() {
		f := pcmformat.Backend(d.Format)
		return f, f.SignedBits()
	}

	return pcmformat.BackendFromBits(d.Bits), d.Bits
}

func (d Device) String() string {
	f, bits := d.MediaFormat()
	return fmt.Sprintf("%s %d Hz %d ch %d bit %s", d.Name, d.Rate, d.Channels, bits, f)
}

// Group is a group_device record: a Device plus the TDM slot mask.
type Group struct {
	Device
	SlotMask uint32
}

type Config struct {
	Devices []Device
	Groups  []Group
}

// Load parses the file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse reads every device and group_device element in r, at any depth.
// Records missing one of name, rate, ch or bits are skipped.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := xml.NewDecoder(r)
	dec.CharsetReader = asciiCharset

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case elemDevice:
			if d, ok := parseDevice(start.Attr); ok {
				cfg.Devices = append(cfg.Devices, d)
			}
		case elemGroup:
			d, ok := parseDevice(start.Attr)
			mask, hasMask := attrInt(start.Attr, "slot_mask")
			if ok && hasMask {
				cfg.Groups = append(cfg.Groups, Group{Device: d, SlotMask: uint32(mask)})
			}
		}
	}
}

// asciiCharset accepts the single-byte encodings these files declare
// (ISO-8859-1, US-ASCII). Their content is plain ASCII.
func asciiCharset(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}

func attr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}

func attrInt(attrs []xml.Attr, name string) (int, bool) {
	s, ok := attr(attrs, name)
	if !ok {
		return 0, false
	}

	// unparsable numbers read as 0, like atoi
	v, _ := strconv.Atoi(s)
	return v, true
}

func parseDevice(attrs []xml.Attr) (Device, bool) {
	var (
		d  Device
		ok bool
	)

	if d.Name, ok = attr(attrs, "name"); !ok {
		return d, false
	}
	if d.Rate, ok = attrInt(attrs, "rate"); !ok {
		return d, false
	}
	if d.Channels, ok = attrInt(attrs, "ch"); !ok {
		return d, false
	}
	if d.Bits, ok = attrInt(attrs, "bits"); !ok {
		return d, false
	}

	d.Format = pcmformat.Invalid
	if s, has := attr(attrs, "format"); has {
		if f, err := pcmformat.Parse(s); err == nil {
			d.Format = f
		}
	}

	return d, true
}

// Find returns the first device record named name. A record with a zero
// rate counts as absent.
func (c *Config) Find(name string) (Device, error) {
	for _, d := range c.Devices {
		if d.Name == name && d.Rate != 0 {
			return d, nil
		}
	}

	return Device{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// FindGroup is Find for group_device records.
func (c *Config) FindGroup(name string) (Group, error) {
	for _, g := range c.Groups {
		if g.Name == name && g.Rate != 0 {
			return g, nil
		}
	}

	return Group{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}
