package midi

import "math"

const (
	// DefaultSampleRate is the host output rate.
	DefaultSampleRate = 48000.0
	// DefaultTuning is the frequency of A4 (note 69).
	DefaultTuning = 440.0
	// maxW0 keeps the phase increment below Nyquist.
	maxW0 = 0.5 - 1e-6
)

// Pitch is the host pitch encoding: the high byte is the semitone and the
// low byte a fraction of a semitone in 1/256 steps.
type Pitch uint16

// NewPitch builds a pitch from a semitone and fraction.
func NewPitch(semitone, fraction uint8) Pitch {
	return Pitch(uint16(semitone)<<8 | uint16(fraction))
}

// PitchFromNote encodes a continuous note number, clamping to the
// representable range.
func PitchFromNote(note float64) Pitch {
	if note <= 0 {
		return 0
	}
	v := math.Round(note * 256)
	if v >= math.MaxUint16 {
		return math.MaxUint16
	}
	return Pitch(v)
}

// Semitone returns the integer note number.
func (p Pitch) Semitone() uint8 {
	return uint8(p >> 8)
}

// Fraction returns the sub-semitone fraction in [0, 256).
func (p Pitch) Fraction() uint8 {
	return uint8(p & 0xFF)
}

// Note returns the continuous note number.
func (p Pitch) Note() float32 {
	return float32(p.Semitone()) + float32(p.Fraction())/256.0
}

// Frequency returns the pitch in Hz.
func (p Pitch) Frequency(tuningA4 float64) float64 {
	return NoteToFrequency(float64(p.Semitone())+float64(p.Fraction())/256.0, tuningA4)
}

// W0 returns the per-sample phase increment for p at sampleRate, in
// cycles per sample. The result stays below Nyquist.
func W0(p Pitch, sampleRate float64) float64 {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	w0 := p.Frequency(DefaultTuning) / sampleRate
	if w0 > maxW0 {
		return maxW0
	}
	return w0
}
