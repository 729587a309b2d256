package render

import (
	"fmt"

	"github.com/justyntemme/blsaw/pkg/dsp/fixed"
	"github.com/justyntemme/blsaw/pkg/framework/debug"
	"github.com/justyntemme/blsaw/pkg/framework/plugin"
	"github.com/justyntemme/blsaw/pkg/midi"
)

// Renderer plays a Config's score through a processor the way a host
// does: events are dispatched at block boundaries, then the block is
// cycled.
type Renderer struct {
	proc   plugin.Processor
	cfg    Config
	queue  *midi.EventQueue
	params plugin.Params
	logger *debug.Logger

	events []midi.Event
	block  []int32
	floats []float32
	spill  []float32
	pos    int
	frames int
}

// NewRenderer validates cfg and initializes proc.
func NewRenderer(proc plugin.Processor, cfg Config, logger *debug.Logger) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := proc.Info().Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if logger == nil {
		logger = debug.Default()
	}

	r := &Renderer{
		proc:   proc,
		cfg:    cfg,
		queue:  midi.NewEventQueue(),
		logger: logger,
		events: make([]midi.Event, 0, 16),
		block:  make([]int32, cfg.BlockSize),
		floats: make([]float32, cfg.BlockSize),
		frames: cfg.Frames(),
	}
	r.queue.AddMultiple(cfg.Score)
	proc.Init(0, 0)

	logger.Info("rendering %s: %d frames at %d Hz, block %d, %d events",
		proc.Info(), r.frames, cfg.SampleRate, cfg.BlockSize, len(cfg.Score))
	return r, nil
}

// Config returns the render configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Position returns the number of frames rendered so far.
func (r *Renderer) Position() int {
	return r.pos
}

// Done reports whether every frame has been rendered.
func (r *Renderer) Done() bool {
	return r.pos >= r.frames
}

// Next renders the next block and returns it. The final block may be
// short; after the end Next returns nil. The returned slice is reused by
// the next call.
func (r *Renderer) Next() []int32 {
	if r.Done() {
		return nil
	}

	n := len(r.block)
	if rest := r.frames - r.pos; rest < n {
		n = rest
	}
	start, end := int32(r.pos), int32(r.pos+n)

	r.events = r.queue.AppendRange(r.events[:0], start, end)
	for _, e := range r.events {
		if r.logger.Enabled(debug.LogLevelDebug) {
			r.logger.Debug("frame %d: %s", r.pos, e)
		}
		plugin.Dispatch(r.proc, &r.params, e)
	}
	r.queue.RemoveBefore(end)

	out := r.block[:n]
	r.proc.Cycle(&r.params, out)
	r.pos += n
	return out
}

// ReadFloat renders into dst as float samples and returns the count
// written. Blocks are always cycled at full length; samples that do not
// fit in dst are kept for the next call. It returns 0 once the render is
// done.
func (r *Renderer) ReadFloat(dst []float32) int {
	total := 0
	for total < len(dst) {
		if len(r.spill) == 0 {
			out := r.Next()
			if out == nil {
				break
			}
			r.spill = r.floats[:fixed.DecodeBuffer(r.floats, out)]
		}
		n := copy(dst[total:], r.spill)
		r.spill = r.spill[n:]
		total += n
	}
	return total
}

// Render produces every remaining frame.
func (r *Renderer) Render() []int32 {
	out := make([]int32, 0, r.frames-r.pos)
	for !r.Done() {
		out = append(out, r.Next()...)
	}
	r.logger.Debug("rendered %d frames", len(out))
	return out
}
