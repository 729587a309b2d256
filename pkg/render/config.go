// Package render drives an oscillator unit offline, block by block, with
// a score of note events, and stores the result as 32-bit PCM WAV.
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/justyntemme/blsaw/pkg/dsp/wavetable"
	"github.com/justyntemme/blsaw/pkg/midi"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("render: invalid config")

// MaxBlockSize bounds the block length a renderer will request.
const MaxBlockSize = 4096

// Config describes one offline render.
type Config struct {
	SampleRate int
	BlockSize  int
	Mode       wavetable.Mode
	Seconds    float64
	// Score holds note and parameter events at absolute sample offsets.
	// Events take effect at the start of the block containing them.
	Score []midi.Event
}

// DefaultConfig renders one second of middle C at 48 kHz.
func DefaultConfig() Config {
	return Config{
		SampleRate: midi.DefaultSampleRate,
		BlockSize:  64,
		Mode:       wavetable.ModeBlend,
		Seconds:    1,
		Score: []midi.Event{
			midi.NoteOnEvent{NoteNumber: 60, Velocity: 100},
		},
	}
}

// Frames returns the number of samples the render produces.
func (c Config) Frames() int {
	return int(math.Round(c.Seconds * float64(c.SampleRate)))
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.BlockSize <= 0 || c.BlockSize > MaxBlockSize:
		return fmt.Errorf("%w: block size %d not in 1..%d", ErrInvalidConfig, c.BlockSize, MaxBlockSize)
	case c.Seconds <= 0 || math.IsNaN(c.Seconds) || math.IsInf(c.Seconds, 0):
		return fmt.Errorf("%w: duration %v", ErrInvalidConfig, c.Seconds)
	case c.Frames() > math.MaxInt32:
		return fmt.Errorf("%w: %d frames exceed event offset range", ErrInvalidConfig, c.Frames())
	}
	if _, err := wavetable.ParseMode(c.Mode.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for _, e := range c.Score {
		if e.SampleOffset() < 0 {
			return fmt.Errorf("%w: negative offset in %s", ErrInvalidConfig, e)
		}
	}
	return nil
}
