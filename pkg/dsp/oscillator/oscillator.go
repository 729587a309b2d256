// Package oscillator provides audio oscillators for synthesis
package oscillator

import (
	"math"

	"github.com/justyntemme/blsaw/pkg/dsp/fixed"
	"github.com/justyntemme/blsaw/pkg/dsp/wavetable"
)

// Flags holds pending oscillator events.
type Flags uint8

const (
	// FlagNone means no event is pending.
	FlagNone Flags = 0
	// FlagReset restarts the phase at the next buffer fill.
	FlagReset Flags = 1 << 0
)

// State is the persistent oscillator state carried between buffer fills.
// The zero value is an initialized oscillator.
type State struct {
	Phase float64 // Current phase, 0-1
	Flags Flags
}

// Oscillator is a band-limited wavetable oscillator. It is not safe for
// concurrent use; the host drives it from a single audio thread.
type Oscillator struct {
	bank   *wavetable.Bank
	mode   wavetable.Mode
	sample wavetable.SampleFunc
	state  *State
}

// New creates an oscillator over bank with its own state.
func New(bank *wavetable.Bank, mode wavetable.Mode) *Oscillator {
	return NewWithState(bank, mode, &State{})
}

// NewWithState creates an oscillator that reads and updates state.
func NewWithState(bank *wavetable.Bank, mode wavetable.Mode, state *State) *Oscillator {
	return &Oscillator{
		bank:   bank,
		mode:   mode,
		sample: bank.Sampler(mode),
		state:  state,
	}
}

// Init resets the phase to 0 and clears pending events.
func (o *Oscillator) Init() {
	o.state.Phase = 0
	o.state.Flags = FlagNone
}

// Reset schedules a phase reset for the next buffer fill. The current
// phase is left untouched.
func (o *Oscillator) Reset() {
	o.state.Flags |= FlagReset
}

// Phase returns the current phase (0-1)
func (o *Oscillator) Phase() float64 {
	return o.state.Phase
}

// State returns the oscillator state.
func (o *Oscillator) State() *State {
	return o.state
}

// Mode returns the sampler mode.
func (o *Oscillator) Mode() wavetable.Mode {
	return o.mode
}

// Bank returns the wavetable bank.
func (o *Oscillator) Bank() *wavetable.Bank {
	return o.bank
}

// begin consumes pending events and returns the starting phase.
func (o *Oscillator) begin() float64 {
	flags := o.state.Flags
	o.state.Flags = FlagNone
	if flags&FlagReset != 0 {
		return 0
	}
	return o.state.Phase
}

// advance moves phase by w0 and wraps it into [0, 1).
func advance(phase, w0 float64) float64 {
	phase += w0
	if phase >= 1.0 || phase < 0 {
		phase -= math.Floor(phase)
	}
	return phase
}

// Fill writes len(out) Q31 samples at note, advancing the phase by w0
// cycles per sample - no allocations
func (o *Oscillator) Fill(out []int32, note float32, w0 float64) {
	phase := o.begin()
	idx := o.bank.Index(note)

	for i := range out {
		out[i] = fixed.Float32ToQ31(o.sample(phase, idx))
		phase = advance(phase, w0)
	}
	o.state.Phase = phase
}

// FillFloat is Fill without the fixed-point encoding - no allocations
func (o *Oscillator) FillFloat(out []float32, note float32, w0 float64) {
	phase := o.begin()
	idx := o.bank.Index(note)

	for i := range out {
		out[i] = o.sample(phase, idx)
		phase = advance(phase, w0)
	}
	o.state.Phase = phase
}
