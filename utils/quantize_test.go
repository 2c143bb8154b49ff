// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestQuantize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		bits  int
		want  int32
	}{
		{
			name:  "zero",
			input: 0.0,
			bits:  16,
			want:  0,
		},
		{
			name:  "max positive",
			input: 1.0,
			bits:  16,
			want:  math.MaxInt16,
		},
		{
			name:  "max negative gets the extra step",
			input: -1.0,
			bits:  16,
			want:  math.MinInt16,
		},
		{
			name:  "half positive",
			input: 0.5,
			bits:  16,
			want:  16383, // 32767 * 0.5 = 16383.5
		},
		{
			name:  "half negative",
			input: -0.5,
			bits:  16,
			want:  -16384,
		},
		{
			name:  "small positive truncates",
			input: 0.001,
			bits:  16,
			want:  32, // 32.767
		},
		{
			name:  "small negative truncates toward zero",
			input: -0.001,
			bits:  16,
			want:  -32, // -32.768
		},
		{
			name:  "8 bit",
			input: -1.0,
			bits:  8,
			want:  math.MinInt8,
		},
		{
			name:  "24 bit full scale",
			input: 1.0,
			bits:  24,
			want:  1<<23 - 1,
		},
		{
			name:  "32 bit full scale",
			input: 1.0,
			bits:  32,
			want:  math.MaxInt32,
		},
		{
			name:  "32 bit negative full scale",
			input: -1.0,
			bits:  32,
			want:  math.MinInt32,
		},
		{
			name:  "saturate over max",
			input: 1.5,
			bits:  16,
			want:  math.MaxInt16,
		},
		{
			name:  "saturate under min",
			input: -100.0,
			bits:  16,
			want:  math.MinInt16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Quantize(tt.input, MaxValue(tt.bits))
			if got != tt.want {
				t.Errorf("Quantize(%v, %d bits) = %d, want %d", tt.input, tt.bits, got, tt.want)
			}
		})
	}
}

func TestQuantize_NaN(t *testing.T) {
	t.Parallel()

	if got := Quantize(float32(math.NaN()), MaxValue(16)); got != 0 {
		t.Errorf("Quantize(NaN) = %d, want 0", got)
	}
}

func TestMaxValue(t *testing.T) {
	t.Parallel()

	tests := map[int]int64{8: 127, 16: 32767, 24: 8388607, 32: 2147483647}
	for bits, want := range tests {
		if got := MaxValue(bits); got != want {
			t.Errorf("MaxValue(%d) = %d, want %d", bits, got, want)
		}
	}
}

func BenchmarkQuantize(b *testing.B) {
	maxValue := MaxValue(24)

	b.ReportAllocs()
	for b.Loop() {
		_ = Quantize(0.707, maxValue)
	}
}
