package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// WindowFunc represents a window function type
type WindowFunc int

const (
	RectangularWindow WindowFunc = iota
	HannWindow
	HammingWindow
	BlackmanWindow
	BlackmanHarrisWindow
)

// Window returns the coefficients of window w for size samples.
func Window(w WindowFunc, size int) []float64 {
	coeffs := make([]float64, size)
	n := float64(size - 1)
	if size == 1 {
		n = 1
	}

	for i := range coeffs {
		x := 2.0 * math.Pi * float64(i) / n
		switch w {
		case HannWindow:
			coeffs[i] = 0.5 * (1.0 - math.Cos(x))
		case HammingWindow:
			coeffs[i] = 0.54 - 0.46*math.Cos(x)
		case BlackmanWindow:
			coeffs[i] = math.Max(0, 0.42-0.5*math.Cos(x)+0.08*math.Cos(2*x))
		case BlackmanHarrisWindow:
			a0, a1, a2, a3 := 0.35875, 0.48829, 0.14128, 0.01168
			coeffs[i] = a0 - a1*math.Cos(x) + a2*math.Cos(2*x) - a3*math.Cos(3*x)
		default:
			coeffs[i] = 1.0
		}
	}
	return coeffs
}

// FFT computes windowed magnitude spectra of a fixed size
type FFT struct {
	size   int
	fft    *fourier.FFT
	window []float64
	input  []float64
	coeffs []complex128
	mags   []float64
}

// NewFFT creates a new FFT processor with the specified size and window function
func NewFFT(size int, window WindowFunc) *FFT {
	return &FFT{
		size:   size,
		fft:    fourier.NewFFT(size),
		window: Window(window, size),
		input:  make([]float64, size),
		coeffs: make([]complex128, size/2+1),
		mags:   make([]float64, size/2+1),
	}
}

// Size returns the transform length.
func (f *FFT) Size() int {
	return f.size
}

// Magnitude returns the magnitude spectrum (size/2+1 bins) of samples.
// Input shorter than the transform is zero padded. The returned slice is
// reused by the next call.
func (f *FFT) Magnitude(samples []float32) []float64 {
	for i := range f.input {
		if i < len(samples) {
			f.input[i] = float64(samples[i]) * f.window[i]
		} else {
			f.input[i] = 0
		}
	}

	f.coeffs = f.fft.Coefficients(f.coeffs, f.input)
	for i, c := range f.coeffs {
		f.mags[i] = cmplx.Abs(c)
	}
	return f.mags
}

// BinFrequency returns the centre frequency of bin i in Hz.
func (f *FFT) BinFrequency(i int, sampleRate float64) float64 {
	return f.fft.Freq(i) * sampleRate
}
