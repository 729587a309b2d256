package midi

import (
	"fmt"
	"math"
)

type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypeParamChange
)

type Event interface {
	Type() EventType
	Channel() uint8
	SampleOffset() int32
	String() string
}

type BaseEvent struct {
	EventChannel uint8
	Offset       int32
}

func (e BaseEvent) Channel() uint8 {
	return e.EventChannel
}

func (e BaseEvent) SampleOffset() int32 {
	return e.Offset
}

// NoteOnEvent starts a note. Fine is the sub-semitone fraction (0-255).
type NoteOnEvent struct {
	BaseEvent
	NoteNumber uint8
	Fine       uint8
	Velocity   uint8
}

func (e NoteOnEvent) Type() EventType {
	return EventTypeNoteOn
}

// Pitch returns the host pitch value of the note.
func (e NoteOnEvent) Pitch() Pitch {
	return NewPitch(e.NoteNumber, e.Fine)
}

func (e NoteOnEvent) String() string {
	return fmt.Sprintf("NoteOn{ch:%d, note:%d, fine:%d, vel:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Fine, e.Velocity, e.Offset)
}

type NoteOffEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

func (e NoteOffEvent) Type() EventType {
	return EventTypeNoteOff
}

func (e NoteOffEvent) String() string {
	return fmt.Sprintf("NoteOff{ch:%d, note:%d, vel:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity, e.Offset)
}

// ParamChangeEvent carries a host parameter change.
type ParamChangeEvent struct {
	BaseEvent
	Index uint16
	Value uint16
}

func (e ParamChangeEvent) Type() EventType {
	return EventTypeParamChange
}

func (e ParamChangeEvent) String() string {
	return fmt.Sprintf("Param{index:%d, val:%d, offset:%d}", e.Index, e.Value, e.Offset)
}

// withOffset returns e moved by delta samples.
func withOffset(e Event, delta int32) Event {
	switch ev := e.(type) {
	case NoteOnEvent:
		ev.Offset += delta
		return ev
	case NoteOffEvent:
		ev.Offset += delta
		return ev
	case ParamChangeEvent:
		ev.Offset += delta
		return ev
	}
	return e
}

func NoteToFrequency(note float64, tuningA4 float64) float64 {
	if tuningA4 == 0 {
		tuningA4 = DefaultTuning
	}
	return tuningA4 * math.Pow(2, (note-69.0)/12.0)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func NoteNumberToName(note uint8) string {
	octave := int(note/12) - 1
	return fmt.Sprintf("%s%d", noteNames[note%12], octave)
}

// ParseNoteName parses names such as "C4", "F#2" or "A-1".
func ParseNoteName(name string) (uint8, error) {
	if len(name) < 2 {
		return 0, fmt.Errorf("midi: invalid note name %q", name)
	}
	for i := len(noteNames) - 1; i >= 0; i-- {
		n := noteNames[i]
		if len(name) <= len(n) || name[:len(n)] != n {
			continue
		}
		var octave int
		if _, err := fmt.Sscanf(name[len(n):], "%d", &octave); err != nil {
			return 0, fmt.Errorf("midi: invalid octave in %q: %w", name, err)
		}
		note := (octave+1)*12 + i
		if note < 0 || note > math.MaxUint8 {
			return 0, fmt.Errorf("midi: note %q out of range", name)
		}
		return uint8(note), nil
	}
	return 0, fmt.Errorf("midi: invalid note name %q", name)
}
