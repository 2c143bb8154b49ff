// SPDX-License-Identifier: EPL-2.0

package frame

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/victorzappi/ar-audioengine/pcmformat"
)

func joinLE(src []byte, n int) int32 {
	var v uint32
	for i := range n {
		v |= uint32(src[i]) << (8 * i)
	}

	// sign extend from n bytes
	shift := 32 - 8*n
	return int32(v<<shift) >> shift
}

func joinBE(src []byte, n int) int32 {
	var v uint32
	last := len(src) - 1
	for i := range n {
		v |= uint32(src[last-i]) << (8 * i)
	}

	shift := 32 - 8*n
	return int32(v<<shift) >> shift
}

func TestConvert_S16LE(t *testing.T) {
	t.Parallel()

	ctx, err := NewContext(pcmformat.S16LE, 16, 1, 3)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}

	copy(ctx.Input, []float32{1.0, -1.0, 0.0})
	got := ctx.Convert()

	want := []byte{0xFF, 0x7F, 0x00, 0x80, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("Convert() = % x, want % x", got, want)
	}
}

func TestConvert_ZeroesInput(t *testing.T) {
	t.Parallel()

	ctx, err := NewContext(pcmformat.S16LE, 16, 2, 4)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}

	for i := range ctx.Input {
		ctx.Input[i] = 0.25
	}

	ctx.Convert()

	for i, x := range ctx.Input {
		if x != 0 {
			t.Fatalf("Input[%d] = %v after Convert, want 0", i, x)
		}
	}
}

func TestConvert_Layouts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format pcmformat.Format
		bits   int
		in     float32
		want   []byte
	}{
		{"S8 max", pcmformat.S8, 8, 1.0, []byte{0x7F}},
		{"S8 min", pcmformat.S8, 8, -1.0, []byte{0x80}},
		{"S16BE max", pcmformat.S16BE, 16, 1.0, []byte{0x7F, 0xFF}},
		{"S16BE min", pcmformat.S16BE, 16, -1.0, []byte{0x80, 0x00}},
		{"S24_3LE max", pcmformat.S24_3LE, 24, 1.0, []byte{0xFF, 0xFF, 0x7F}},
		{"S24_3LE min", pcmformat.S24_3LE, 24, -1.0, []byte{0x00, 0x00, 0x80}},
		{"S24_3BE min", pcmformat.S24_3BE, 24, -1.0, []byte{0x80, 0x00, 0x00}},
		{"S24LE sign extends", pcmformat.S24LE, 24, -1.0, []byte{0x00, 0x00, 0x80, 0xFF}},
		{"S32LE max", pcmformat.S32LE, 32, 1.0, []byte{0xFF, 0xFF, 0xFF, 0x7F}},
		{"S32BE min", pcmformat.S32BE, 32, -1.0, []byte{0x80, 0x00, 0x00, 0x00}},
		{"FLOAT_LE one", pcmformat.FloatLE, 0, 1.0, []byte{0x00, 0x00, 0x80, 0x3F}},
		{"FLOAT_BE one", pcmformat.FloatBE, 0, 1.0, []byte{0x3F, 0x80, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, err := NewContext(tt.format, tt.bits, 1, 1)
			if err != nil {
				t.Fatalf("NewContext() error = %v", err)
			}

			ctx.Input[0] = tt.in
			if got := ctx.Convert(); !bytes.Equal(got, tt.want) {
				t.Errorf("Convert() = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestConvert_Interleaved(t *testing.T) {
	t.Parallel()

	ctx, err := NewContext(pcmformat.S24_3LE, 24, 2, 2)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}

	if len(ctx.Output) != 12 || ctx.FrameBytes() != 6 {
		t.Fatalf("len(Output) = %d, FrameBytes() = %d, want 12 and 6", len(ctx.Output), ctx.FrameBytes())
	}

	copy(ctx.Input, []float32{0.5, -0.5, 0.25, -0.25})
	out := ctx.Convert()

	want := []int32{4194303, -4194304, 2097151, -2097152}
	for i, w := range want {
		if got := joinLE(out[3*i:], 3); got != w {
			t.Errorf("sample %d = %d, want %d", i, got, w)
		}
	}
}

func TestNewContext_Geometry(t *testing.T) {
	t.Parallel()

	ctx, err := NewContext(pcmformat.S16LE, 16, 2, 960)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}

	if ctx.Samples != 1920 || len(ctx.Input) != 1920 || len(ctx.Output) != 3840 {
		t.Errorf("Samples = %d, len(Input) = %d, len(Output) = %d", ctx.Samples, len(ctx.Input), len(ctx.Output))
	}

	if ctx.MaxValue != math.MaxInt16 || ctx.BytesPerSample != 2 || ctx.PhysicalBytesPerSample != 2 {
		t.Errorf("MaxValue = %d, BytesPerSample = %d, Physical = %d", ctx.MaxValue, ctx.BytesPerSample, ctx.PhysicalBytesPerSample)
	}
}

func TestNewContext_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   pcmformat.Format
		bits     int
		channels int
		period   int
		want     error
	}{
		{"invalid format", pcmformat.Invalid, 16, 2, 960, ErrUnsupportedFormat},
		{"no channels", pcmformat.S16LE, 16, 0, 960, ErrInvalidGeometry},
		{"no period", pcmformat.S16LE, 16, 2, 0, ErrInvalidGeometry},
		{"bits too wide", pcmformat.S16LE, 24, 2, 960, ErrInvalidBits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewContext(tt.format, tt.bits, tt.channels, tt.period); !errors.Is(err, tt.want) {
				t.Errorf("NewContext() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	t.Parallel()

	values := []int32{0, 1, -1, 127, -128, 32767, -32768, 8388607, -8388608, math.MaxInt32, math.MinInt32, 0x123456}

	for _, n := range []int{1, 2, 3, 4} {
		for _, v := range values {
			shift := 32 - 8*n
			want := int32(uint32(v)<<shift) >> shift

			le := make([]byte, n)
			SplitLE(le, v, n)
			if got := joinLE(le, n); got != want {
				t.Errorf("LE n=%d v=%d: round trip = %d, want %d", n, v, got, want)
			}

			be := make([]byte, n)
			SplitBE(be, v, n)
			if got := joinBE(be, n); got != want {
				t.Errorf("BE n=%d v=%d: round trip = %d, want %d", n, v, got, want)
			}

			for i := range n {
				if le[i] != be[n-1-i] {
					t.Errorf("n=%d v=%d: BE is not LE reversed: % x vs % x", n, v, le, be)
					break
				}
			}
		}
	}
}

func TestConvert_NoAllocs(t *testing.T) {
	ctx, err := NewContext(pcmformat.S24_3LE, 24, 8, 960)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}

	allocs := testing.AllocsPerRun(100, func() {
		ctx.Input[0] = 0.5
		ctx.Convert()
	})

	if allocs != 0 {
		t.Errorf("Convert() allocated %.1f times per run, want 0", allocs)
	}
}

func BenchmarkConvert_S16LE_Stereo(b *testing.B) {
	ctx, err := NewContext(pcmformat.S16LE, 16, 2, 960)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(ctx.Output)))
	for b.Loop() {
		ctx.Convert()
	}
}

func BenchmarkConvert_S24_3LE_8ch(b *testing.B) {
	ctx, err := NewContext(pcmformat.S24_3LE, 24, 8, 960)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(ctx.Output)))
	for b.Loop() {
		ctx.Convert()
	}
}
