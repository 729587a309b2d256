// Package plugin defines the host contract for oscillator units.
package plugin

import "github.com/justyntemme/blsaw/pkg/midi"

// Params is the per-call host parameter block.
type Params struct {
	Pitch midi.Pitch // Semitone in the high byte, fraction in the low byte
}

// Processor is an oscillator driven by the host.
//
// The host calls every method from one audio thread, strictly in
// sequence. Cycle must not allocate or block.
type Processor interface {
	// Info returns the unit metadata.
	Info() Info

	// Init is called once before the first Cycle. The identifiers are
	// informational.
	Init(platform, api uint32)

	// Cycle writes exactly len(out) Q31 samples at params.Pitch.
	Cycle(params *Params, out []int32)

	// NoteOn and NoteOff are called on gate events.
	NoteOn(params *Params)
	NoteOff(params *Params)

	// Param is called when a user parameter changes.
	Param(index, value uint16)
}

// Dispatch forwards a note or parameter event to p. Note-on events also
// update params with the event pitch.
func Dispatch(p Processor, params *Params, event midi.Event) {
	switch e := event.(type) {
	case midi.NoteOnEvent:
		params.Pitch = e.Pitch()
		p.NoteOn(params)
	case midi.NoteOffEvent:
		p.NoteOff(params)
	case midi.ParamChangeEvent:
		p.Param(e.Index, e.Value)
	}
}
