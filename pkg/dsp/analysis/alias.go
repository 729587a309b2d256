package analysis

import "math"

// HarmonicReport splits the energy of a spectrum into the harmonic series
// of a fundamental and everything else.
type HarmonicReport struct {
	Fundamental      float64 // Hz
	Harmonics        int     // Harmonics below Nyquist
	HarmonicEnergy   float64
	InharmonicEnergy float64
}

// AliasRatio is the share of energy that is not part of the harmonic
// series. For a periodic oscillator this is aliasing plus interpolation
// noise.
func (r HarmonicReport) AliasRatio() float64 {
	total := r.HarmonicEnergy + r.InharmonicEnergy
	if total == 0 {
		return 0
	}
	return r.InharmonicEnergy / total
}

// AliasDB is AliasRatio in decibels.
func (r HarmonicReport) AliasDB() float64 {
	ratio := r.AliasRatio()
	if ratio <= 0 {
		return -200.0
	}
	return 10 * math.Log10(ratio)
}

// Harmonics measures samples against the harmonic series of fundamental.
// Bins within tolerance bins of a harmonic count as harmonic; the DC bin
// is ignored.
func Harmonics(f *FFT, samples []float32, sampleRate, fundamental float64, tolerance int) HarmonicReport {
	mags := f.Magnitude(samples)
	binHz := sampleRate / float64(f.Size())
	nyquist := sampleRate / 2

	report := HarmonicReport{Fundamental: fundamental}
	if fundamental > 0 {
		report.Harmonics = int(nyquist / fundamental)
	}

	for i := 1 + tolerance; i < len(mags); i++ {
		energy := mags[i] * mags[i]
		freq := float64(i) * binHz

		harmonic := false
		if fundamental > 0 {
			k := math.Round(freq / fundamental)
			if k >= 1 && math.Abs(freq-k*fundamental) <= float64(tolerance)*binHz {
				harmonic = true
			}
		}

		if harmonic {
			report.HarmonicEnergy += energy
		} else {
			report.InharmonicEnergy += energy
		}
	}
	return report
}
