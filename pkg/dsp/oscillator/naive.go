package oscillator

// NaiveSaw is a trivial sawtooth with no band limiting. It aliases at
// high pitches and serves as the reference the wavetable oscillator is
// measured against.
type NaiveSaw struct {
	phase float64
}

// Reset resets the phase to 0.
func (s *NaiveSaw) Reset() {
	s.phase = 0
}

// Next generates the next sample, falling from 1 to -1 over one period so
// it lines up with the wavetable bank.
func (s *NaiveSaw) Next(w0 float64) float32 {
	sample := float32(1.0 - 2.0*s.phase)
	s.phase = advance(s.phase, w0)
	return sample
}

// Fill fills buffer with the naive sawtooth - no allocations
func (s *NaiveSaw) Fill(buffer []float32, w0 float64) {
	for i := range buffer {
		buffer[i] = s.Next(w0)
	}
}
