package wavetable

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// ErrInvalidConfig is returned when a generator configuration cannot
// produce a bank.
var ErrInvalidConfig = errors.New("wavetable: invalid generator config")

// GeneratorConfig describes a band-limited bank built from a harmonic
// series.
type GeneratorConfig struct {
	TableLength  int     // Half-period length in samples
	MaxFrequency float64 // Highest harmonic frequency kept, in Hz
	LowNote      int     // First note covered by the bank
	HighNote     int     // Last note covered by the bank (at most 255)
	Amplitude    float64 // Peak scaling applied to the series
}

// DefaultGeneratorConfig returns the settings of the built-in sawtooth bank.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		TableLength:  128,
		MaxFrequency: 20000.0,
		LowNote:      54,
		HighNote:     137,
		Amplitude:    1.0 / 1.18,
	}
}

// Validate checks the configuration.
func (c GeneratorConfig) Validate() error {
	switch {
	case c.TableLength <= 0:
		return fmt.Errorf("%w: table length %d", ErrInvalidConfig, c.TableLength)
	case c.MaxFrequency <= 0:
		return fmt.Errorf("%w: max frequency %f", ErrInvalidConfig, c.MaxFrequency)
	case c.LowNote < 0 || c.HighNote > math.MaxUint8 || c.LowNote > c.HighNote:
		return fmt.Errorf("%w: note range %d..%d", ErrInvalidConfig, c.LowNote, c.HighNote)
	}
	return nil
}

// noteToFreq converts a note number to Hz with A4 (note 69) at 440 Hz.
func noteToFreq(note int) float64 {
	return 440.0 / 32 * math.Pow(2, float64(note-9)/12)
}

// Harmonics returns the number of harmonics of note that fit under
// MaxFrequency.
func (c GeneratorConfig) Harmonics(note int) int {
	return int(c.MaxFrequency / noteToFreq(note))
}

// partial returns the coefficient of harmonic k, or 0 if the harmonic is
// not part of the series.
type partial func(k int) float64

func sawPartial(k int) float64 {
	return 2 / (math.Pi * float64(k))
}

func squarePartial(k int) float64 {
	if k%2 == 0 {
		return 0
	}
	return 4 / (math.Pi * float64(k))
}

// GenerateSawtooth builds a sawtooth bank. Notes are grouped by harmonic
// count; each group gets one table whose boundary is the highest note of
// the group. A table for h harmonics sums partials 1..h-1.
func GenerateSawtooth(cfg GeneratorConfig) (*Bank, error) {
	return generate(cfg, sawPartial)
}

// GenerateSquare builds a bank of odd-harmonic square waves grouped the
// same way as GenerateSawtooth.
func GenerateSquare(cfg GeneratorConfig) (*Bank, error) {
	return generate(cfg, squarePartial)
}

func generate(cfg GeneratorConfig, coeff partial) (*Bank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		tables     [][]float32
		boundaries []uint8
	)
	for note := cfg.LowNote; note <= cfg.HighNote; note++ {
		h := cfg.Harmonics(note)
		if note < cfg.HighNote && cfg.Harmonics(note+1) == h {
			continue
		}
		tables = append(tables, harmonicTable(cfg, h, coeff))
		boundaries = append(boundaries, uint8(note))
	}

	return NewBank(tables, boundaries)
}

func harmonicTable(cfg GeneratorConfig, harmonics int, coeff partial) []float32 {
	n := cfg.TableLength
	table := make([]float32, n)
	for i := range table {
		t := (float64(i) + 0.5) / float64(2*n)
		var sum float64
		for k := 1; k < harmonics; k++ {
			c := coeff(k)
			if c == 0 {
				continue
			}
			sum += cfg.Amplitude * c * math.Sin(2*math.Pi*float64(k)*t)
		}
		table[i] = float32(sum)
	}
	return table
}

var (
	sawtoothOnce sync.Once
	sawtoothBank *Bank
)

// Sawtooth returns the shared default sawtooth bank, generated on first
// use.
func Sawtooth() *Bank {
	sawtoothOnce.Do(func() {
		bank, err := GenerateSawtooth(DefaultGeneratorConfig())
		if err != nil {
			panic(fmt.Sprintf("wavetable: default sawtooth bank: %v", err))
		}
		sawtoothBank = bank
	})
	return sawtoothBank
}
