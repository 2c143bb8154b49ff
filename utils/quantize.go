// SPDX-License-Identifier: EPL-2.0

package utils

// Quantize scales a normalized sample to a signed integer whose positive
// full scale is maxValue. Negative samples scale by maxValue+1, matching
// the two's complement range. The product is truncated toward zero and
// saturated to [-maxValue-1, maxValue].
func Quantize(x float32, maxValue int64) int32 {
	if x != x {
		return 0
	}

	scale := maxValue
	if x < 0 {
		scale++
	}

	v := int64(float64(scale) * float64(x))
	if v > maxValue {
		v = maxValue
	} else if v < -maxValue-1 {
		v = -maxValue - 1
	}

	return int32(v)
}

// MaxValue is the positive full scale of a signed integer of the given
// bit width.
func MaxValue(bits int) int64 {
	return (int64(1) << (bits - 1)) - 1
}
