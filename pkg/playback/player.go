package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/justyntemme/blsaw/pkg/framework/debug"
)

// Latency is how far rendering runs ahead of the device.
const Latency = 50 * time.Millisecond

// Player plays a Stream on the default output device.
type Player struct {
	ctx        *oto.Context
	player     *oto.Player
	stream     *Stream
	sampleRate int
	logger     *debug.Logger
	mutex      sync.Mutex
}

// NewPlayer opens a mono float32 output at sampleRate. Only one Player
// may exist per process.
func NewPlayer(sampleRate int, logger *debug.Logger) (*Player, error) {
	if logger == nil {
		logger = debug.Default()
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   Latency,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("playback: opening audio device: %w", err)
	}
	<-ready
	logger.Debug("audio device ready at %d Hz", sampleRate)

	return &Player{
		ctx:        ctx,
		sampleRate: sampleRate,
		logger:     logger,
	}, nil
}

// Play streams src until it is exhausted or ctx is cancelled. Rendering
// runs ahead of the device by Latency on a separate goroutine.
func (p *Player) Play(ctx context.Context, src Source) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ahead := int(Latency.Seconds() * float64(p.sampleRate))
	pre := Prefetch(ctx, src, ahead)

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
prime:
	for pre.Stats().Buffered < ahead/2 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-pre.Finished():
			break prime
		case <-ticker.C:
		}
	}

	p.mutex.Lock()
	p.stream = NewStream(pre)
	p.player = p.ctx.NewPlayer(p.stream)
	p.player.Play()
	player, stream := p.player, p.stream
	p.mutex.Unlock()

	defer p.stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			p.logger.Info("playback cancelled after %d frames", stream.Frames())
			return ctx.Err()
		case <-ticker.C:
		}
	}
	if err := player.Err(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	stats := pre.Stats()
	p.logger.Info("played %d frames (%.2fs), %d underruns",
		stream.Frames(), float64(stream.Frames())/float64(p.sampleRate), stats.Underruns)
	return nil
}

func (p *Player) stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player != nil {
		if err := p.player.Close(); err != nil {
			p.logger.Warn("closing player: %v", err)
		}
		p.player = nil
	}
}
