package playback

import (
	"context"
	"sync/atomic"
	"time"
)

// Prefetcher renders a Source ahead of the audio device on its own
// goroutine so that rendering never runs inside the device callback.
type Prefetcher struct {
	ring *Ring
	done atomic.Bool
	quit chan struct{}
}

// Prefetch starts filling a ring of at least ahead samples from src. The
// producer stops when src is exhausted or ctx is cancelled.
func Prefetch(ctx context.Context, src Source, ahead int) *Prefetcher {
	p := &Prefetcher{
		ring: NewRing(ahead),
		quit: make(chan struct{}),
	}
	go p.produce(ctx, src)
	return p
}

func (p *Prefetcher) produce(ctx context.Context, src Source) {
	defer close(p.quit)
	defer p.done.Store(true)

	buf := make([]float32, 256)
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for {
		space := p.ring.Space()
		if space == 0 {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			continue
		}
		if space > len(buf) {
			space = len(buf)
		}

		n := src.ReadFloat(buf[:space])
		if n == 0 {
			return
		}
		p.ring.Write(buf[:n])
	}
}

// ReadFloat drains buffered samples into dst. When the producer falls
// behind it pads with silence; it returns 0 only once the source is
// exhausted and the ring is empty.
func (p *Prefetcher) ReadFloat(dst []float32) int {
	if n := p.ring.Read(dst); n > 0 {
		return n
	}
	if p.done.Load() {
		// Samples written before done was set are visible now.
		return p.ring.Read(dst)
	}
	for i := range dst {
		dst[i] = 0
	}
	return len(dst)
}

// Finished is closed when the producer goroutine exits.
func (p *Prefetcher) Finished() <-chan struct{} {
	return p.quit
}

// Stats returns the ring statistics.
func (p *Prefetcher) Stats() RingStats {
	return p.ring.Stats()
}
