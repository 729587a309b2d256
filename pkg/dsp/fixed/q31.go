// Package fixed converts between floating point audio and the Q31
// fixed-point sample format used by the oscillator output.
package fixed

import "math"

// Q31 full-scale factor.
const q31Scale = 0x7FFFFFFF

// Float32ToQ31 converts a sample in [-1, 1) to Q31. Values outside the
// representable range saturate.
func Float32ToQ31(sample float32) int32 {
	scaled := float64(sample) * q31Scale
	if scaled >= math.MaxInt32 {
		return math.MaxInt32
	}
	if scaled <= math.MinInt32 {
		return math.MinInt32
	}
	return int32(scaled)
}

// Q31ToFloat32 converts a Q31 sample back to floating point.
func Q31ToFloat32(sample int32) float32 {
	return float32(float64(sample) / q31Scale)
}

// EncodeBuffer converts src into dst, stopping at the shorter of the two.
// It returns the number of samples written.
func EncodeBuffer(dst []int32, src []float32) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = Float32ToQ31(src[i])
	}
	return n
}

// DecodeBuffer converts Q31 samples in src into dst.
func DecodeBuffer(dst []float32, src []int32) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = Q31ToFloat32(src[i])
	}
	return n
}
