package wavetable

import "github.com/justyntemme/blsaw/pkg/dsp/interpolation"

// search returns the first table whose boundary is at or above note,
// or the last table if note is above every boundary.
func (b *Bank) search(note int) int {
	for i, boundary := range b.boundaries {
		if int(boundary) >= note {
			return i
		}
	}
	return len(b.boundaries) - 1
}

// Index maps a continuous note number to a continuous table index in
// [0, Len()-1].
//
// Inside a table's range the result is that table's index. Within one
// semitone below a boundary crossing the fractional part of the note is
// added, so the selection ramps into the next table instead of jumping.
// The search compares the integer part of the note against the
// boundaries.
func (b *Bank) Index(note float32) float32 {
	if note < 0 {
		note = 0
	}
	whole := int(note)
	i0 := b.search(whole)
	i1 := b.search(whole + 1)
	if i0 == i1 {
		return float32(i0)
	}
	return float32(i0) + (note - float32(whole))
}

// Selection is a table index split into the pair of tables to read and
// the crossfade weight toward the upper one.
type Selection struct {
	Lower  int
	Upper  int
	Weight float32
}

// Select splits a table index produced by Index. The crossfade weight is
// twice the fractional part, saturating at 1 once the fraction passes 0.5.
func (b *Bank) Select(idx float32) Selection {
	if idx < 0 {
		idx = 0
	}
	lower := b.clamp(int(idx))
	frac := idx - float32(int(idx))
	if int(idx) >= len(b.tables)-1 {
		frac = 0
	}
	return Selection{
		Lower:  lower,
		Upper:  b.clamp(lower + 1),
		Weight: interpolation.HalfSaturate(frac),
	}
}
