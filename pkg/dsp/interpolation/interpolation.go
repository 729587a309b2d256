// Package interpolation provides sample interpolation primitives.
package interpolation

// Linear performs linear interpolation between two samples.
// frac is the fractional position between y0 and y1 (0.0 to 1.0).
func Linear(y0, y1, frac float32) float32 {
	return y0 + (y1-y0)*frac
}

// Linear64 is Linear for float64 values.
func Linear64(y0, y1, frac float64) float64 {
	return y0 + (y1-y0)*frac
}

// HalfSaturate remaps a crossfade position so it ramps twice as fast and
// holds at 1 once frac passes 0.5.
func HalfSaturate(frac float32) float32 {
	if frac > 0.5 {
		return 1
	}
	return 2 * frac
}
