package analysis

import (
	"math"
	"testing"
)

func TestWindowShapes(t *testing.T) {
	tests := []struct {
		name   string
		window WindowFunc
		edge   float64
	}{
		{"rectangular", RectangularWindow, 1.0},
		{"hann", HannWindow, 0.0},
		{"hamming", HammingWindow, 0.08},
		{"blackman", BlackmanWindow, 0.0},
		{"blackman-harris", BlackmanHarrisWindow, 0.00006},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Window(tt.window, 65)
			if math.Abs(w[0]-tt.edge) > 1e-6 {
				t.Errorf("w[0] = %f, want %f", w[0], tt.edge)
			}
			if math.Abs(w[0]-w[64]) > 1e-9 {
				t.Errorf("window not symmetric: %f vs %f", w[0], w[64])
			}
			if math.Abs(w[32]-1.0) > 1e-6 {
				t.Errorf("centre = %f, want 1", w[32])
			}
		})
	}
}

func TestMagnitudeOfBinCentredSine(t *testing.T) {
	const size = 1024
	const bin = 37

	samples := make([]float32, size)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * bin * float64(i) / size))
	}

	f := NewFFT(size, RectangularWindow)
	mags := f.Magnitude(samples)
	if len(mags) != size/2+1 {
		t.Fatalf("got %d bins, want %d", len(mags), size/2+1)
	}

	peak := 0
	for i := range mags {
		if mags[i] > mags[peak] {
			peak = i
		}
	}
	if peak != bin {
		t.Errorf("peak bin = %d, want %d", peak, bin)
	}
	if math.Abs(mags[bin]-size/2) > 0.01*size {
		t.Errorf("peak magnitude = %f, want %f", mags[bin], float64(size/2))
	}
	if got := f.BinFrequency(bin, 48000); math.Abs(got-bin*48000.0/size) > 1e-9 {
		t.Errorf("BinFrequency = %f, want %f", got, bin*48000.0/size)
	}
}

func TestMagnitudeZeroPads(t *testing.T) {
	f := NewFFT(256, HannWindow)
	mags := f.Magnitude(nil)
	for i, m := range mags {
		if m != 0 {
			t.Fatalf("bin %d = %f, want 0", i, m)
		}
	}
}
