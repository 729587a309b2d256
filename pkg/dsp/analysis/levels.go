package analysis

import "math"

// Levels summarizes the amplitude of a block of samples.
type Levels struct {
	Peak float64
	RMS  float64
	DC   float64
}

// PeakDB returns the peak level in dBFS.
func (l Levels) PeakDB() float64 {
	return toDB(l.Peak)
}

// RMSDB returns the RMS level in dBFS.
func (l Levels) RMSDB() float64 {
	return toDB(l.RMS)
}

func toDB(v float64) float64 {
	if v <= 0 {
		return -200.0
	}
	return 20 * math.Log10(v)
}

// Measure computes peak, RMS and DC offset of samples.
func Measure(samples []float32) Levels {
	if len(samples) == 0 {
		return Levels{}
	}

	var peak, sum, sumSq float64
	for _, s := range samples {
		v := float64(s)
		peak = math.Max(peak, math.Abs(v))
		sum += v
		sumSq += v * v
	}
	n := float64(len(samples))
	return Levels{
		Peak: peak,
		RMS:  math.Sqrt(sumSq / n),
		DC:   sum / n,
	}
}
