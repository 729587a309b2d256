package wavetable

import (
	"fmt"
	"strings"

	"github.com/justyntemme/blsaw/pkg/dsp/interpolation"
)

// Mode selects how a sample is reconstructed from the bank.
type Mode int

const (
	// ModeBlend crossfades between the selected table and its successor.
	ModeBlend Mode = iota
	// ModeNearest reads only the selected table.
	ModeNearest
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeBlend:
		return "blend"
	case ModeNearest:
		return "nearest"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blend", "":
		return ModeBlend, nil
	case "nearest":
		return ModeNearest, nil
	default:
		return ModeBlend, fmt.Errorf("wavetable: unknown mode %q", s)
	}
}

// SampleFunc reconstructs one sample at phase x for a table index.
type SampleFunc func(x float64, idx float32) float32

// Sampler returns the sample function for mode.
func (b *Bank) Sampler(mode Mode) SampleFunc {
	if mode == ModeNearest {
		return b.SampleNearest
	}
	return b.Sample
}

// Sample returns the band-limited value at phase x, crossfading between
// adjacent tables according to the fractional part of idx.
func (b *Bank) Sample(x float64, idx float32) float32 {
	sel := b.Select(idx)
	p := locate(x, b.length)
	y0 := b.tables[sel.Lower].read(p)
	if sel.Weight == 0 {
		return y0
	}
	y1 := b.tables[sel.Upper].read(p)
	return interpolation.Linear(y0, y1, sel.Weight)
}

// SampleNearest returns the value at phase x from the table selected by
// the integer part of idx, without crossfading.
func (b *Bank) SampleNearest(x float64, idx float32) float32 {
	if idx < 0 {
		idx = 0
	}
	return b.tables[b.clamp(int(idx))].read(locate(x, b.length))
}
