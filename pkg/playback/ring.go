package playback

import "sync/atomic"

// Ring is a lock-free single-producer single-consumer sample buffer. One
// goroutine may Write while another Reads.
type Ring struct {
	data     []float32
	mask     uint64
	readPos  atomic.Uint64
	writePos atomic.Uint64

	underruns atomic.Uint64
	overruns  atomic.Uint64
}

// RingStats provides health monitoring information.
type RingStats struct {
	Underruns uint64
	Overruns  uint64
	Buffered  int
	Capacity  int
}

// NewRing creates a ring holding at least minSize samples.
func NewRing(minSize int) *Ring {
	size := nextPowerOf2(uint64(minSize))
	return &Ring{
		data: make([]float32, size),
		mask: size - 1,
	}
}

// Capacity returns the number of samples the ring holds.
func (r *Ring) Capacity() int {
	return len(r.data)
}

// Buffered returns the number of samples ready to read.
func (r *Ring) Buffered() int {
	return int(r.writePos.Load() - r.readPos.Load())
}

// Space returns the number of samples that can be written.
func (r *Ring) Space() int {
	return len(r.data) - r.Buffered()
}

// Write copies as many samples as fit and returns the count. A short
// write counts as an overrun.
func (r *Ring) Write(samples []float32) int {
	writePos := r.writePos.Load()
	free := uint64(len(r.data)) - (writePos - r.readPos.Load())

	n := uint64(len(samples))
	if n > free {
		n = free
		r.overruns.Add(1)
	}
	for i := uint64(0); i < n; {
		idx := (writePos + i) & r.mask
		i += uint64(copy(r.data[idx:], samples[i:n]))
	}
	r.writePos.Store(writePos + n)
	return int(n)
}

// Read copies up to len(out) samples and returns the count. Reading less
// than requested counts as an underrun.
func (r *Ring) Read(out []float32) int {
	readPos := r.readPos.Load()
	avail := r.writePos.Load() - readPos

	n := uint64(len(out))
	if n > avail {
		n = avail
		r.underruns.Add(1)
	}
	for i := uint64(0); i < n; {
		idx := (readPos + i) & r.mask
		i += uint64(copy(out[i:n], r.data[idx:]))
	}
	r.readPos.Store(readPos + n)
	return int(n)
}

// Stats returns the current buffer statistics.
func (r *Ring) Stats() RingStats {
	return RingStats{
		Underruns: r.underruns.Load(),
		Overruns:  r.overruns.Load(),
		Buffered:  r.Buffered(),
		Capacity:  r.Capacity(),
	}
}

func nextPowerOf2(n uint64) uint64 {
	if n < 2 {
		return 2
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}
