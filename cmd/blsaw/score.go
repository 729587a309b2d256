package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/justyntemme/blsaw/pkg/midi"
)

// parseNote accepts a MIDI note number ("60") or name ("C4", "F#2").
func parseNote(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 127 {
			return 0, fmt.Errorf("note %d out of range 0..127", n)
		}
		return uint8(n), nil
	}
	return midi.ParseNoteName(s)
}

// parseScore parses a comma separated list of events of the form
// NOTE[+FINE]@SECONDS or off@SECONDS, for example "C4@0,A4+128@0.5,off@1".
func parseScore(s string, sampleRate int) ([]midi.Event, error) {
	var events []midi.Event
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		what, at, ok := strings.Cut(item, "@")
		if !ok {
			return nil, fmt.Errorf("score event %q: missing @time", item)
		}
		seconds, err := strconv.ParseFloat(at, 64)
		if err != nil || seconds < 0 || math.IsInf(seconds, 0) {
			return nil, fmt.Errorf("score event %q: invalid time %q", item, at)
		}
		frame := math.Round(seconds * float64(sampleRate))
		if frame > math.MaxInt32 {
			return nil, fmt.Errorf("score event %q: time %q is beyond the last addressable frame", item, at)
		}
		base := midi.BaseEvent{Offset: int32(frame)}

		if strings.EqualFold(what, "off") {
			events = append(events, midi.NoteOffEvent{BaseEvent: base})
			continue
		}

		name, fineStr, hasFine := strings.Cut(what, "+")
		note, err := parseNote(name)
		if err != nil {
			return nil, fmt.Errorf("score event %q: %w", item, err)
		}
		var fine uint64
		if hasFine {
			if fine, err = strconv.ParseUint(fineStr, 10, 8); err != nil {
				return nil, fmt.Errorf("score event %q: invalid fine %q", item, fineStr)
			}
		}
		events = append(events, midi.NoteOnEvent{
			BaseEvent:  base,
			NoteNumber: note,
			Fine:       uint8(fine),
			Velocity:   100,
		})
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("score %q has no events", s)
	}
	return events, nil
}
