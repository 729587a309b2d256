package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"testing"

	"github.com/justyntemme/blsaw/pkg/dsp/fixed"
	"github.com/justyntemme/blsaw/pkg/dsp/wavetable"
	"github.com/justyntemme/blsaw/pkg/framework/debug"
	"github.com/justyntemme/blsaw/pkg/framework/plugin"
	"github.com/justyntemme/blsaw/pkg/midi"
	"github.com/justyntemme/blsaw/pkg/simpleva"
)

// recorder logs lifecycle calls together with the frame they happen at.
type recorder struct {
	frame int
	calls []string
}

func (r *recorder) Info() plugin.Info {
	return plugin.Info{ID: "test.recorder", Name: "Recorder"}
}

func (r *recorder) Init(platform, api uint32) {
	r.calls = append(r.calls, "init")
}

func (r *recorder) Cycle(params *plugin.Params, out []int32) {
	for i := range out {
		out[i] = int32(r.frame + i)
	}
	r.frame += len(out)
}

func (r *recorder) NoteOn(params *plugin.Params) {
	r.calls = append(r.calls, fmt.Sprintf("on %d @%d", params.Pitch.Semitone(), r.frame))
}

func (r *recorder) NoteOff(params *plugin.Params) {
	r.calls = append(r.calls, fmt.Sprintf("off @%d", r.frame))
}

func (r *recorder) Param(index, value uint16) {
	r.calls = append(r.calls, fmt.Sprintf("param %d=%d @%d", index, value, r.frame))
}

func quietLogger() *debug.Logger {
	return debug.New(io.Discard, "", 0)
}

func framesConfig(frames, block int, score ...midi.Event) Config {
	cfg := DefaultConfig()
	cfg.BlockSize = block
	cfg.Seconds = float64(frames) / float64(cfg.SampleRate)
	cfg.Score = score
	return cfg
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero rate", func(c *Config) { c.SampleRate = 0 }},
		{"zero block", func(c *Config) { c.BlockSize = 0 }},
		{"huge block", func(c *Config) { c.BlockSize = MaxBlockSize + 1 }},
		{"zero duration", func(c *Config) { c.Seconds = 0 }},
		{"nan duration", func(c *Config) { c.Seconds = math.NaN() }},
		{"bad mode", func(c *Config) { c.Mode = wavetable.Mode(9) }},
		{"negative offset", func(c *Config) {
			c.Score = []midi.Event{midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: -1}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestDefaultConfigFrames(t *testing.T) {
	if got := DefaultConfig().Frames(); got != 48000 {
		t.Errorf("Frames() = %d, want 48000", got)
	}
}

func TestNewRendererRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlockSize = -1
	if _, err := NewRenderer(&recorder{}, cfg, quietLogger()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewRenderer() error = %v, want ErrInvalidConfig", err)
	}
}

func TestEventsDispatchAtBlockBoundaries(t *testing.T) {
	rec := &recorder{}
	cfg := framesConfig(256, 64,
		midi.NoteOffEvent{BaseEvent: midi.BaseEvent{Offset: 130}},
		midi.NoteOnEvent{NoteNumber: 60},
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 100}, NoteNumber: 72},
		midi.ParamChangeEvent{BaseEvent: midi.BaseEvent{Offset: 255}, Index: 1, Value: 7},
	)

	r, err := NewRenderer(rec, cfg, quietLogger())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	r.Render()

	want := []string{"init", "on 60 @0", "on 72 @64", "off @128", "param 1=7 @192"}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, rec.calls[i], want[i])
		}
	}
}

func TestNextBlockLengths(t *testing.T) {
	r, err := NewRenderer(&recorder{}, framesConfig(150, 64), quietLogger())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	for i, want := range []int{64, 64, 22} {
		block := r.Next()
		if len(block) != want {
			t.Errorf("block %d has %d samples, want %d", i, len(block), want)
		}
	}
	if !r.Done() {
		t.Error("renderer should be done")
	}
	if r.Position() != 150 {
		t.Errorf("Position() = %d, want 150", r.Position())
	}
	if block := r.Next(); block != nil {
		t.Errorf("Next() after end = %d samples, want nil", len(block))
	}
}

func TestRenderMatchesDirectCycles(t *testing.T) {
	cfg := framesConfig(1000, 128,
		midi.NoteOnEvent{NoteNumber: 57, Fine: 64},
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 500}, NoteNumber: 81},
	)

	r, err := NewRenderer(simpleva.New(simpleva.WithLogger(quietLogger())), cfg, quietLogger())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	got := r.Render()
	if len(got) != 1000 {
		t.Fatalf("rendered %d frames, want 1000", len(got))
	}

	u := simpleva.New(simpleva.WithLogger(quietLogger()))
	u.Init(0, 0)
	params := &plugin.Params{Pitch: midi.NewPitch(57, 64)}
	u.NoteOn(params)
	want := make([]int32, 1000)
	for pos := 0; pos < 1000; pos += 128 {
		if pos == 384 { // block containing offset 500
			params.Pitch = midi.NewPitch(81, 0)
			u.NoteOn(params)
		}
		end := pos + 128
		if end > 1000 {
			end = 1000
		}
		u.Cycle(params, want[pos:end])
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestReadFloatMatchesRender(t *testing.T) {
	cfg := framesConfig(700, 64, midi.NoteOnEvent{NoteNumber: 64})

	r1, err := NewRenderer(&recorder{}, cfg, quietLogger())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	want := r1.Render()

	r2, err := NewRenderer(&recorder{}, cfg, quietLogger())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	var got []float32
	buf := make([]float32, 50)
	for {
		n := r2.ReadFloat(buf)
		if n == 0 {
			break
		}
		got = append(got, buf[:n]...)
	}

	if len(got) != len(want) {
		t.Fatalf("read %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != fixed.Q31ToFloat32(want[i]) {
			t.Fatalf("sample %d = %f, want %f", i, got[i], fixed.Q31ToFloat32(want[i]))
		}
	}
}

func TestWAVRoundTrip(t *testing.T) {
	cfg := framesConfig(2048, 64, midi.NoteOnEvent{NoteNumber: 45})
	r, err := NewRenderer(simpleva.New(simpleva.WithLogger(quietLogger())), cfg, quietLogger())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	clip := Clip{SampleRate: cfg.SampleRate, Samples: r.Render()}

	fn := filepath.Join(t.TempDir(), "saw.wav")
	if err := WriteWAV(fn, clip); err != nil {
		t.Fatalf("WriteWAV() error = %v", err)
	}
	got, err := ReadWAV(fn)
	if err != nil {
		t.Fatalf("ReadWAV() error = %v", err)
	}

	if got.SampleRate != clip.SampleRate {
		t.Errorf("sample rate = %d, want %d", got.SampleRate, clip.SampleRate)
	}
	if len(got.Samples) != len(clip.Samples) {
		t.Fatalf("read %d samples, want %d", len(got.Samples), len(clip.Samples))
	}
	for i := range clip.Samples {
		if got.Samples[i] != clip.Samples[i] {
			t.Fatalf("sample %d = %d, want %d", i, got.Samples[i], clip.Samples[i])
		}
	}
	if math.Abs(got.Seconds()-2048.0/48000) > 1e-12 {
		t.Errorf("Seconds() = %f, want %f", got.Seconds(), 2048.0/48000)
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	_, err := DecodeWAV(bytes.NewReader([]byte("definitely not a RIFF stream")))
	if !errors.Is(err, ErrNotWAV) {
		t.Errorf("DecodeWAV() error = %v, want ErrNotWAV", err)
	}
}

func TestReadWAVMissingFile(t *testing.T) {
	if _, err := ReadWAV(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("ReadWAV() on missing file should fail")
	}
}

func TestNextDoesNotAllocate(t *testing.T) {
	cfg := framesConfig(1<<20, 64, midi.NoteOnEvent{NoteNumber: 60})
	r, err := NewRenderer(simpleva.New(simpleva.WithLogger(quietLogger())), cfg, quietLogger())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	r.Next()

	allocs := testing.AllocsPerRun(100, func() {
		r.Next()
	})
	if allocs != 0 {
		t.Errorf("Next allocated %f times per run, want 0", allocs)
	}
}

func TestNextWithEventsDoesNotAllocate(t *testing.T) {
	score := make([]midi.Event, 0, 256)
	for i := 0; i < 256; i++ {
		score = append(score, midi.NoteOnEvent{
			BaseEvent:  midi.BaseEvent{Offset: int32(i*64 + 10)},
			NoteNumber: uint8(40 + i%48),
		})
	}
	cfg := framesConfig(256*64, 64, score...)
	r, err := NewRenderer(simpleva.New(simpleva.WithLogger(quietLogger())), cfg, quietLogger())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	r.Next()

	allocs := testing.AllocsPerRun(100, func() {
		r.Next()
	})
	if allocs != 0 {
		t.Errorf("Next with one event per block allocated %f times per run, want 0", allocs)
	}
}
