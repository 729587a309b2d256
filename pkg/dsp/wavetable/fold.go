package wavetable

import (
	"math"

	"github.com/justyntemme/blsaw/pkg/dsp/interpolation"
)

// foldPos is a pair of neighbouring full-period positions folded back
// into a half-period table, with the interpolation fraction between them.
type foldPos struct {
	i0, i1 int
	s0, s1 float32
	k      float32
}

// locate maps phase x onto a half-period table of length n.
//
// The full period spans 2n virtual samples centred on (j+0.5)/2n. The
// second half is the first half reversed and negated, so position j >= n
// reads index 2n-1-j with sign -1.
func locate(x float64, n int) foldPos {
	x -= math.Floor(x)

	pos := x*float64(2*n) - 0.5
	x0 := int(math.Floor(pos))
	p := foldPos{k: float32(pos - float64(x0)), s0: 1}

	// The first half sample sits between the last sample and sample 0.
	if x0 < 0 {
		x0 += 2 * n
	}
	if x0 >= n {
		x0 = 2*n - 1 - x0
		p.s0 = -1
	}

	x1 := x0 + int(p.s0)
	p.s1 = p.s0
	switch {
	case x1 < 0:
		x1 = 0
		p.s1 = 1
	case x1 == n:
		// Crossing into the mirrored half.
		x1 = n - 1
		p.s1 = -p.s0
	}

	p.i0, p.i1 = x0, x1
	return p
}

func (t Table) read(p foldPos) float32 {
	return interpolation.Linear(t.samples[p.i0]*p.s0, t.samples[p.i1]*p.s1, p.k)
}

// Fold returns the interpolated full-period value of the table at phase
// x. x is wrapped into [0, 1).
func (t Table) Fold(x float64) float32 {
	return t.read(locate(x, len(t.samples)))
}
