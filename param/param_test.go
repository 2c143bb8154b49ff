// SPDX-License-Identifier: EPL-2.0

package param

import (
	"encoding/binary"
	"testing"
)

func TestPad8(t *testing.T) {
	t.Parallel()

	for x := 0; x < 4096; x++ {
		p := Pad8(x)
		if p < 0 || p > 7 {
			t.Fatalf("Pad8(%d) = %d, out of [0,7]", x, p)
		}

		if (x+p)%8 != 0 {
			t.Fatalf("Pad8(%d) = %d, sum %d not a multiple of 8", x, p, x+p)
		}
	}
}

func TestNew_HeaderAndPadding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bodySize    int
		wantPadding int
	}{
		{0, 0},
		{4, 4},
		{8, 0},
		{12, 4},
		{13, 3},
		{24, 0},
	}

	for _, tt := range tests {
		p := New(0x1234, 0x08001024, tt.bodySize)

		if p.UnpaddedSize() != HeaderSize+tt.bodySize {
			t.Errorf("body %d: UnpaddedSize() = %d", tt.bodySize, p.UnpaddedSize())
		}

		if p.Padding() != tt.wantPadding {
			t.Errorf("body %d: Padding() = %d, want %d", tt.bodySize, p.Padding(), tt.wantPadding)
		}

		if len(p.Bytes())%8 != 0 {
			t.Errorf("body %d: len(Bytes()) = %d, not 8-aligned", tt.bodySize, len(p.Bytes()))
		}

		h := p.Header()
		want := Header{ModuleInstanceID: 0x1234, ParamID: 0x08001024, ParamSize: uint32(tt.bodySize)}
		if h != want {
			t.Errorf("body %d: Header() = %+v, want %+v", tt.bodySize, h, want)
		}
	}
}

func TestMediaFormat_Build(t *testing.T) {
	t.Parallel()

	p := MediaFormat{SampleRate: 48000, BitWidth: 16, Channels: 2}.Build(0xAB)
	b := p.Bytes()

	// 16 header + 8 fixed + 4 map = 28, padded to 32.
	if len(b) != 32 {
		t.Fatalf("len = %d, want 32", len(b))
	}

	if p.Header().ParamSize != 12 {
		t.Errorf("ParamSize = %d, want 12", p.Header().ParamSize)
	}

	if got := binary.LittleEndian.Uint32(b[16:]); got != 48000 {
		t.Errorf("rate = %d", got)
	}

	if got := binary.LittleEndian.Uint16(b[20:]); got != 16 {
		t.Errorf("bit width = %d", got)
	}

	if got := binary.LittleEndian.Uint16(b[22:]); got != 2 {
		t.Errorf("channels = %d", got)
	}

	if l, r := binary.LittleEndian.Uint16(b[24:]), binary.LittleEndian.Uint16(b[26:]); l != ChannelL || r != ChannelR {
		t.Errorf("map = [%d %d], want [L R]", l, r)
	}

	for i := 28; i < 32; i++ {
		if b[i] != 0 {
			t.Errorf("padding byte %d = %d, want 0", i, b[i])
		}
	}
}

func TestDeviceInterfaceConfig_Build(t *testing.T) {
	t.Parallel()

	p := DeviceInterfaceConfig{CardID: 0, DeviceID: 1, PeriodCount: 4}.Build(7)
	b := p.Bytes()

	if len(b) != 40 || p.Padding() != 0 {
		t.Fatalf("len = %d padding = %d, want 40 and 0", len(b), p.Padding())
	}

	if p.Header().ParamID != IDALSADeviceIntfCfg {
		t.Errorf("ParamID = 0x%X", p.Header().ParamID)
	}

	want := []uint32{0, 1, 4, 0, 0, 0}
	for i, w := range want {
		if got := binary.LittleEndian.Uint32(b[16+4*i:]); got != w {
			t.Errorf("field %d = %d, want %d", i, got, w)
		}
	}
}

func TestFrameSizeFactor_Build(t *testing.T) {
	t.Parallel()

	p := FrameSizeFactor{Factor: 10}.Build(9)
	if len(p.Bytes()) != 24 || p.Padding() != 4 {
		t.Fatalf("len = %d padding = %d, want 24 and 4", len(p.Bytes()), p.Padding())
	}

	if got := binary.LittleEndian.Uint32(p.Body()); got != 10 {
		t.Errorf("factor = %d", got)
	}
}

func TestChannelMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want []uint16
	}{
		{1, []uint16{ChannelC}},
		{2, []uint16{ChannelL, ChannelR}},
		{6, []uint16{ChannelL, ChannelR, ChannelC, ChannelLFE, ChannelLB, ChannelRB}},
		{9, make([]uint16, 9)},
		{11, make([]uint16, 11)},
		{0, []uint16{}},
	}

	for _, tt := range tests {
		got := ChannelMap(tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("ChannelMap(%d) len = %d, want %d", tt.n, len(got), len(tt.want))
		}

		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ChannelMap(%d)[%d] = %d, want %d", tt.n, i, got[i], tt.want[i])
			}
		}
	}

	m16 := ChannelMap(16)
	if m16[14] != ChannelRLC || m16[15] != ChannelRRC || m16[9] != ChannelTS {
		t.Errorf("ChannelMap(16) = %v", m16)
	}
}

func TestChannelMap_DoesNotAlias(t *testing.T) {
	t.Parallel()

	m := ChannelMap(2)
	m[0] = 99

	if ChannelMap(2)[0] != ChannelL {
		t.Error("ChannelMap returned a shared slice")
	}
}

func BenchmarkMediaFormat_Build(b *testing.B) {
	mf := MediaFormat{SampleRate: 48000, BitWidth: 24, Channels: 8}

	b.ReportAllocs()
	for b.Loop() {
		_ = mf.Build(0x4001)
	}
}
