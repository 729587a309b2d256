// Package simpleva is a band-limited sawtooth oscillator unit.
package simpleva

import (
	"github.com/justyntemme/blsaw/pkg/dsp/oscillator"
	"github.com/justyntemme/blsaw/pkg/dsp/wavetable"
	"github.com/justyntemme/blsaw/pkg/framework/debug"
	"github.com/justyntemme/blsaw/pkg/framework/plugin"
	"github.com/justyntemme/blsaw/pkg/midi"
)

// Unit implements plugin.Processor over the default sawtooth bank.
type Unit struct {
	osc        *oscillator.Oscillator
	sampleRate float64
	logger     *debug.Logger
}

var _ plugin.Processor = (*Unit)(nil)

// Option configures a Unit.
type Option func(*Unit)

// WithBank plays bank instead of the default sawtooth bank.
func WithBank(bank *wavetable.Bank, mode wavetable.Mode) Option {
	return func(u *Unit) {
		u.osc = oscillator.New(bank, mode)
	}
}

// WithMode selects the sampler mode for the default bank.
func WithMode(mode wavetable.Mode) Option {
	return func(u *Unit) {
		u.osc = oscillator.New(u.osc.Bank(), mode)
	}
}

// WithSampleRate sets the output rate used to derive phase increments.
func WithSampleRate(rate float64) Option {
	return func(u *Unit) {
		if rate > 0 {
			u.sampleRate = rate
		}
	}
}

// WithLogger routes lifecycle messages to logger.
func WithLogger(logger *debug.Logger) Option {
	return func(u *Unit) {
		u.logger = logger
	}
}

// New creates a unit. Options apply in order.
func New(opts ...Option) *Unit {
	u := &Unit{
		osc:        oscillator.New(wavetable.Sawtooth(), wavetable.ModeBlend),
		sampleRate: midi.DefaultSampleRate,
		logger:     debug.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Info returns the unit metadata.
func (u *Unit) Info() plugin.Info {
	return plugin.Info{
		ID:       "com.blsaw.simpleva",
		Name:     "Simple VA",
		Version:  "1.0.0",
		Vendor:   "blsaw",
		Category: "Oscillator",
	}
}

// Init resets the oscillator.
func (u *Unit) Init(platform, api uint32) {
	u.osc.Init()
	u.logger.Debug("%s init: platform=%#x api=%#x mode=%s tables=%d rate=%.0f",
		u.Info().Name, platform, api, u.osc.Mode(), u.osc.Bank().Len(), u.sampleRate)
}

// Cycle fills out at the pitch in params.
func (u *Unit) Cycle(params *plugin.Params, out []int32) {
	u.osc.Fill(out, params.Pitch.Note(), midi.W0(params.Pitch, u.sampleRate))
}

// NoteOn restarts the phase at the next Cycle.
func (u *Unit) NoteOn(params *plugin.Params) {
	u.osc.Reset()
}

// NoteOff has no effect; the unit has no envelope.
func (u *Unit) NoteOff(params *plugin.Params) {}

// Param has no effect; the unit has no parameters.
func (u *Unit) Param(index, value uint16) {}

// Oscillator returns the underlying oscillator.
func (u *Unit) Oscillator() *oscillator.Oscillator {
	return u.osc
}

// SampleRate returns the output rate.
func (u *Unit) SampleRate() float64 {
	return u.sampleRate
}
